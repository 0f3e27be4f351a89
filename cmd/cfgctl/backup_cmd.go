package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func newBackupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Trigger a backup run on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			slog.Debug("triggering backup", "server", client.BaseURL())
			resp, err := client.TriggerBackup(cmd.Context())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Backup: %s\n", green.Render(resp.Status))
			return err
		},
	}
}
