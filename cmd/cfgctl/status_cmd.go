package main

import (
	"fmt"
	"strings"

	"github.com/ha-config-history/cfgctl/internal/historysdk"
	"github.com/ha-config-history/cfgctl/internal/version"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show server health and version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			var (
				health *historysdk.HealthResponse
				server *historysdk.VersionResponse
			)

			eg, ctx := errgroup.WithContext(cmd.Context())
			eg.Go(func() (err error) {
				health, err = client.Health(ctx)
				return err
			})
			eg.Go(func() (err error) {
				server, err = client.Version(ctx)
				return err
			})
			if err := eg.Wait(); err != nil {
				return err
			}

			status := green.Render(health.Status)
			if health.Status != "ok" {
				status = yellow.Render(health.Status)
			}

			var sb strings.Builder
			field(&sb, 10, "Server", cyan.Render(client.BaseURL()))
			field(&sb, 10, "Status", status)
			field(&sb, 10, "Uptime", health.Uptime)
			field(&sb, 10, "Version", fmt.Sprintf("%s (%s)", server.Version, server.Commit))
			field(&sb, 10, "Client", version.Short())
			if a.cfg.Path != "" {
				field(&sb, 10, "Config", a.cfg.Path)
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), sb.String())
			return err
		},
	}
}
