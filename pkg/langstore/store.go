package langstore

import (
	jsonstore "codeberg.org/miketth/langswitcher/pkg/langstore/json"
	"codeberg.org/miketth/langswitcher/pkg/langstore/sqlite"
	"codeberg.org/miketth/langswitcher/pkg/langswitch"
	"errors"
	"fmt"
	"github.com/adrg/xdg"
	"go.uber.org/zap"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	appDir      = "LangSwitcher"
	jsonFile    = "lang_config.json"
	sqliteFile  = "lang_config.db"
	KindJSON    = "json"
	KindSQLite  = "sqlite"
	seedDirName = "assets"
)

var ErrUnknownKind = errors.New("unknown store kind")

type Store interface {
	langswitch.ConfigStore
	Close() error
}

// DefaultPath returns the fixed config location for kind, creating its
// directory. A fresh JSON location is seeded from assets/lang_config.json
// next to the executable when that file exists.
func DefaultPath(kind string) (string, error) {
	name := jsonFile
	if kind == KindSQLite {
		name = sqliteFile
	}

	path, err := xdg.ConfigFile(filepath.Join(appDir, name))
	if err != nil {
		return "", fmt.Errorf("resolve config file: %w", err)
	}

	if kind != KindSQLite {
		if err := seed(path); err != nil {
			return "", fmt.Errorf("seed config: %w", err)
		}
	}

	return path, nil
}

func seed(path string) error {
	if _, err := os.Stat(path); err == nil || !errors.Is(err, os.ErrNotExist) {
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return nil
	}

	src, err := os.Open(filepath.Join(filepath.Dir(exe), seedDirName, jsonFile))
	if err != nil {
		return nil
	}
	defer src.Close()

	dst, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("copy seed: %w", err)
	}

	return dst.Close()
}

// Open opens the store of the given kind. An empty path means DefaultPath.
func Open(kind, path string, log *zap.SugaredLogger) (Store, error) {
	kind = strings.ToLower(kind)
	if kind == "" {
		kind = KindJSON
	}

	if path == "" {
		var err error
		path, err = DefaultPath(kind)
		if err != nil {
			return nil, err
		}
	}

	switch kind {
	case KindJSON:
		store, err := jsonstore.NewLangStore(path)
		if err != nil {
			return nil, fmt.Errorf("open json store: %w", err)
		}
		return store, nil
	case KindSQLite:
		store, err := sqlite.NewLangStore(path, log)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}
