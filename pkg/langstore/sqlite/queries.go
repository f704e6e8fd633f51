package sqlite

import (
	"context"
)

type Lang struct {
	App  string
	Lang string
}

const getLangs = `-- name: GetLangs :many
select app, lang from langs order by app
`

func (q *Queries) GetLangs(ctx context.Context) ([]Lang, error) {
	rows, err := q.db.QueryContext(ctx, getLangs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Lang
	for rows.Next() {
		var i Lang
		if err := rows.Scan(&i.App, &i.Lang); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteLangs = `-- name: DeleteLangs :exec
delete from langs
`

func (q *Queries) DeleteLangs(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteLangs)
	return err
}

const setLang = `-- name: SetLang :exec
insert into langs (app, lang) values (?, ?)
on conflict (app) do update set lang = excluded.lang
`

type SetLangParams struct {
	App  string
	Lang string
}

func (q *Queries) SetLang(ctx context.Context, arg SetLangParams) error {
	_, err := q.db.ExecContext(ctx, setLang, arg.App, arg.Lang)
	return err
}
