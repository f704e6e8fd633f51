package main

import (
	"codeberg.org/miketth/langswitcher/pkg/supervisor"
	"fmt"
	"github.com/spf13/cobra"
)

func (a *app) newWatcherCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watcher",
		Short: "Control the langwatcher daemon",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "start",
			Short: "Start the watcher unless one is running",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				return supervisor.New(a.log).Start()
			},
		},
		&cobra.Command{
			Use:   "stop",
			Short: "Stop every running watcher",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				return supervisor.New(a.log).Stop()
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print whether a watcher is running",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				status := "stopped"
				if supervisor.New(a.log).Running() {
					status = "running"
				}
				fmt.Fprintln(cmd.OutOrStdout(), status)
				return nil
			},
		},
	)

	return cmd
}
