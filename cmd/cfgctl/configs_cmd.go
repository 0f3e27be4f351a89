package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newConfigsCmd(a *app) *cobra.Command {
	var asJSON bool

	configsCmd := &cobra.Command{
		Use:     "configs",
		Aliases: []string{"ls"},
		Short:   "List tracked configs",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			configs, err := client.GetConfigs(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, configs)
			}

			if len(configs) == 0 {
				fmt.Fprintf(out, "No configs tracked at '%s'\n", cyan.Render(client.BaseURL()))
				return nil
			}

			var sb strings.Builder
			for idx, config := range configs {
				if idx > 0 {
					sb.WriteString("\n")
				}
				field(&sb, 8, "Name", green.Render(config.FriendlyName))
				field(&sb, 8, "Group", cyan.Render(config.Group))
				field(&sb, 8, "ID", config.ID)
				field(&sb, 8, "Type", string(config.BackupType))
				field(&sb, 8, "Backups", fmt.Sprintf("%d (%s)", config.BackupCount, humanize.Bytes(uint64(config.BackupsSize))))
				if !config.LastBackup.IsZero() {
					field(&sb, 8, "Latest", humanize.Time(config.LastBackup))
				}
			}
			_, err = fmt.Fprint(out, sb.String())
			return err
		},
	}

	configsCmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON")

	return configsCmd
}
