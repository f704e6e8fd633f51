package main

import (
	"codeberg.org/miketth/langswitcher/pkg/langswitch"
	"errors"
	"fmt"
	"github.com/spf13/cobra"
	"strings"
	"text/tabwriter"
)

// editor is implemented by stores that can change single entries in place.
type editor interface {
	Set(name, lang string)
	Delete(name string) bool
	Flush() error
}

func (a *app) newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List running programs with their language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lister, closePlatform := a.newLister()
			defer closePlatform()

			if err := lister.Scan(); err != nil {
				return fmt.Errorf("scan programs: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLANG\tPATH")
			for _, p := range lister.Programs() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.Lang, p.ExePath)
			}
			return w.Flush()
		},
	}
}

func (a *app) newGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <exe>",
		Short: "Print the language stored for a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load()
			if err != nil {
				return err
			}

			lang, ok := cfg.Lookup(args[0])
			if !ok {
				lang = langswitch.DefaultLanguage
				a.log.Debugw("program not configured, using default", "program", args[0])
			}

			fmt.Fprintln(cmd.OutOrStdout(), lang)
			return nil
		},
	}
}

func (a *app) newSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "set <exe> <lang>",
		Short:   "Store the language for a program",
		Example: `langswitch set Code.exe fa`,
		Args:    cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			lang, err := langswitch.NormalizeLanguage(args[1])
			if err != nil {
				return err
			}

			cfg, err := a.load()
			if err != nil {
				return err
			}

			if ed, ok := a.store.(editor); ok {
				ed.Set(args[0], lang)
				err = ed.Flush()
			} else {
				cfg.Set(args[0], lang)
				err = a.store.Save(cfg)
			}
			if err != nil {
				return fmt.Errorf("save config: %w", err)
			}

			a.log.Infow("stored language", "program", args[0], "lang", lang)
			return nil
		},
	}
}

func (a *app) newUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <exe>",
		Short: "Remove a program from the config",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := a.load()
			if err != nil {
				return err
			}

			if _, ok := cfg.Lookup(args[0]); !ok {
				return fmt.Errorf("program %q is not configured", args[0])
			}

			if ed, ok := a.store.(editor); ok {
				ed.Delete(args[0])
				err = ed.Flush()
			} else {
				for name := range cfg {
					if strings.EqualFold(name, args[0]) {
						delete(cfg, name)
					}
				}
				err = a.store.Save(cfg)
			}
			if err != nil {
				return fmt.Errorf("save config: %w", err)
			}

			a.log.Infow("removed program", "program", args[0])
			return nil
		},
	}
}

func (a *app) newPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.path)
			return nil
		},
	}
}

// load tolerates a corrupt document, edits then replace it.
func (a *app) load() (langswitch.Config, error) {
	cfg, err := a.store.Load()
	switch {
	case errors.Is(err, langswitch.ErrCorrupt):
		a.log.Warnw("ignoring corrupt config", "path", a.path, "error", err)
		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
