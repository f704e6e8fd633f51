package main

import (
	"codeberg.org/miketth/langswitcher/pkg/langstore"
	"codeberg.org/miketth/langswitcher/pkg/langswitch"
	"codeberg.org/miketth/langswitcher/pkg/logging"
	"codeberg.org/miketth/langswitcher/pkg/platform"
	"codeberg.org/miketth/langswitcher/pkg/procs"
	"codeberg.org/miketth/langswitcher/pkg/supervisor"
	"codeberg.org/miketth/langswitcher/pkg/tui"
	"fmt"
	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"log"
	"path/filepath"
	"strings"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		log.Fatalf("error: %+v", err)
	}
}

type app struct {
	configPath string
	storeKind  string
	languages  string
	debug      bool

	log   *zap.SugaredLogger
	path  string
	store langstore.Store
	langs []string
}

func newCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:          "langswitch",
		Short:        "Pick a keyboard language per program",
		Long:         `langswitch lists running programs and stores the keyboard language each one should get. The langwatcher daemon applies it whenever the program is focused.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd == cmd.Root())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.teardown()
		},
		RunE: func(*cobra.Command, []string) error {
			return a.runTUI()
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to the language config (default: user config dir)")
	cmd.PersistentFlags().StringVar(&a.storeKind, "store", langstore.KindJSON, "config store: json or sqlite")
	cmd.PersistentFlags().StringVar(&a.languages, "languages", strings.Join(langswitch.DefaultLanguages, ","), "languages to cycle through, comma separated")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		a.newListCommand(),
		a.newGetCommand(),
		a.newSetCommand(),
		a.newUnsetCommand(),
		a.newPathCommand(),
		a.newWatcherCommand(),
	)

	return cmd
}

// setup builds the logger and opens the store. The TUI owns the terminal,
// so it logs to a file in the user state dir.
func (a *app) setup(interactive bool) error {
	var outputs []string
	if interactive {
		logPath, err := xdg.StateFile(filepath.Join("LangSwitcher", "langswitch.log"))
		if err != nil {
			return fmt.Errorf("get log path: %w", err)
		}
		outputs = []string{logPath}
	} else {
		outputs = []string{"stderr"}
	}

	var err error
	a.log, err = logging.New(a.debug, outputs...)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	a.langs, err = langswitch.ParseLanguages(a.languages)
	if err != nil {
		return fmt.Errorf("parse --languages: %w", err)
	}

	a.path = a.configPath
	if a.path == "" {
		a.path, err = langstore.DefaultPath(a.storeKind)
		if err != nil {
			return fmt.Errorf("get config path: %w", err)
		}
	}

	a.store, err = langstore.Open(a.storeKind, a.path, a.log)
	if err != nil {
		return fmt.Errorf("open config store: %w", err)
	}

	return nil
}

func (a *app) teardown() error {
	if a.log != nil {
		defer func() { _ = a.log.Sync() }()
	}
	if a.store == nil {
		return nil
	}
	if err := a.store.Close(); err != nil {
		return fmt.Errorf("close config store: %w", err)
	}
	return nil
}

// newLister works without a window backend, it then lists every process.
func (a *app) newLister() (*langswitch.Lister, func()) {
	plat, err := platform.Detect(platform.Options{Kind: platform.KindAuto}, a.log)
	if err != nil {
		a.log.Infow("no window backend, listing all processes", "error", err)
		plat = noWindows{err: err}
	}

	lister := langswitch.NewLister(plat, procs.NewSource(), a.store, a.log, langswitch.WithLanguages(a.langs))
	return lister, func() { _ = plat.Close() }
}

func (a *app) runTUI() error {
	lister, closePlatform := a.newLister()
	defer closePlatform()

	if err := tui.Run(lister, supervisor.New(a.log)); err != nil {
		return fmt.Errorf("run lister: %w", err)
	}
	return nil
}

type noWindows struct {
	err error
}

func (p noWindows) ForegroundPID() (int32, error) { return 0, p.err }

func (p noWindows) VisibleWindowPIDs() (map[int32]struct{}, error) { return nil, p.err }

func (p noWindows) SwitchLayout(int32, string) error { return p.err }

func (noWindows) Close() error { return nil }
