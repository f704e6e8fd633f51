package sqlite

import (
	"codeberg.org/miketth/langswitcher/pkg/langstore/sqlite/migrations"
	"codeberg.org/miketth/langswitcher/pkg/langswitch"
	"context"
	"database/sql"
	"fmt"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type LangStore struct {
	db      *sql.DB
	querier *Queries
}

func NewLangStore(filename string, log *zap.SugaredLogger) (*LangStore, error) {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := migrations.Migrate(db, log); err != nil {
		return nil, multierr.Append(fmt.Errorf("migrate: %w", err), db.Close())
	}

	return &LangStore{
		db:      db,
		querier: New(db),
	}, nil
}

func (s *LangStore) Close() error {
	return s.db.Close()
}

func (s *LangStore) Load() (langswitch.Config, error) {
	langs, err := s.querier.GetLangs(context.Background())
	if err != nil {
		return langswitch.Config{}, fmt.Errorf("sqlite select: %w", err)
	}

	ret := make(langswitch.Config, len(langs))
	for _, l := range langs {
		ret[l.App] = l.Lang
	}

	return ret, nil
}

// Save replaces the whole mapping in one transaction.
func (s *LangStore) Save(cfg langswitch.Config) (err error) {
	ctx := context.Background()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite begin: %w", err)
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, tx.Rollback())
		}
	}()

	q := s.querier.WithTx(tx)
	if err := q.DeleteLangs(ctx); err != nil {
		return fmt.Errorf("sqlite delete: %w", err)
	}

	for app, lang := range cfg {
		if err := q.SetLang(ctx, SetLangParams{App: app, Lang: lang}); err != nil {
			return fmt.Errorf("sqlite insert %q: %w", app, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite commit: %w", err)
	}

	return nil
}
