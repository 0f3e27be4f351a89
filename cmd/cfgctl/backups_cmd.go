package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/ha-config-history/cfgctl/internal/historysdk"
	"github.com/ha-config-history/cfgctl/internal/utils"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var errInvalidFilename = errors.New("invalid backup filename")

func newBackupsCmd(a *app) *cobra.Command {
	backupsCmd := &cobra.Command{
		Use:     "backups",
		Aliases: []string{"b"},
		Short:   "Inspect and manage the backups of a config",
	}

	backupsCmd.AddCommand(newBackupsCmdList(a))
	backupsCmd.AddCommand(newBackupsCmdShow(a))
	backupsCmd.AddCommand(newBackupsCmdDiff(a))
	backupsCmd.AddCommand(newBackupsCmdRestore(a))
	backupsCmd.AddCommand(newBackupsCmdRemove(a))
	backupsCmd.AddCommand(newBackupsCmdPurge(a))
	backupsCmd.AddCommand(newBackupsCmdExport(a))

	return backupsCmd
}

func newBackupsCmdList(a *app) *cobra.Command {
	var asJSON bool

	listCmd := &cobra.Command{
		Use:     "list GROUP ID",
		Aliases: []string{"ls"},
		Short:   "List the backups of a config, newest first",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			group, id := args[0], args[1]
			backups, err := client.GetConfigBackups(cmd.Context(), group, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, backups)
			}

			if len(backups) == 0 {
				fmt.Fprintf(out, "No backups for '%s'\n", cyan.Render(group+"/"+id))
				return nil
			}

			width := 0
			for _, b := range backups {
				width = max(width, len(b.Filename))
			}

			var sb strings.Builder
			for _, b := range backups {
				sb.WriteString(green.Render(fmt.Sprintf("%-*s", width, b.Filename)))
				sb.WriteString("  ")
				sb.WriteString(gray.Render(fmt.Sprintf("%-10s", humanize.Bytes(uint64(b.Size)))))
				sb.WriteString(humanize.Time(b.Date))
				sb.WriteString("\n")
			}
			_, err = fmt.Fprint(out, sb.String())
			return err
		},
	}

	listCmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON")

	return listCmd
}

func newBackupsCmdShow(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "show GROUP ID FILENAME",
		Aliases: []string{"cat"},
		Short:   "Print the content of a backup",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			content, err := client.GetBackupContent(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), content)
			return err
		},
	}
}

func newBackupsCmdDiff(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "diff GROUP ID LEFT RIGHT",
		Short: "Compare two backups of a config",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			diff, err := client.CompareBackups(cmd.Context(), args[0], args[1], args[2], args[3])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", red.Render("---"), diff.LeftFilename)
			fmt.Fprintf(out, "%s %s\n", green.Render("+++"), diff.RightFilename)

			if diff.Diff == "" {
				fmt.Fprintln(out, gray.Render("no differences"))
				return nil
			}

			for _, line := range strings.SplitAfter(diff.Diff, "\n") {
				switch {
				case strings.HasPrefix(line, "+"):
					line = green.Render(strings.TrimSuffix(line, "\n")) + "\n"
				case strings.HasPrefix(line, "-"):
					line = red.Render(strings.TrimSuffix(line, "\n")) + "\n"
				}
				fmt.Fprint(out, line)
			}
			return nil
		},
	}
}

func newBackupsCmdRestore(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore GROUP ID FILENAME",
		Short: "Restore a backup over the live config",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			resp, err := client.RestoreBackup(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			if !resp.Success {
				return fmt.Errorf("restore failed: %s", resp.Error)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), green.Render(resp.Message))
			return err
		},
	}
}

func newBackupsCmdRemove(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm GROUP ID FILENAME",
		Aliases: []string{"delete"},
		Short:   "Delete a single backup",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			resp, err := client.DeleteBackup(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted '%s': %s\n", cyan.Render(args[2]), resp.Status)
			return err
		},
	}
}

func newBackupsCmdPurge(a *app) *cobra.Command {
	var yes bool

	purgeCmd := &cobra.Command{
		Use:   "purge GROUP ID",
		Short: "Delete every backup of a config",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			group, id := args[0], args[1]
			if !yes {
				return fmt.Errorf("refusing to delete all backups of '%s/%s' without --yes", group, id)
			}

			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			resp, err := client.DeleteAllBackups(cmd.Context(), group, id)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Purged '%s': %s\n", cyan.Render(group+"/"+id), resp.Status)
			return err
		},
	}

	purgeCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm deletion")

	return purgeCmd
}

func newBackupsCmdExport(a *app) *cobra.Command {
	var parallel int

	exportCmd := &cobra.Command{
		Use:   "export GROUP ID DIR",
		Short: "Download every backup of a config into a directory",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if parallel < 1 {
				return fmt.Errorf("--parallel must be at least 1")
			}

			dir, err := utils.ResolvePath(args[2])
			if err != nil {
				return err
			}

			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			n, err := exportBackups(cmd.Context(), client, args[0], args[1], dir, parallel)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d backups to '%s'\n", n, green.Render(dir))
			return err
		},
	}

	exportCmd.Flags().IntVarP(&parallel, "parallel", "p", 4, "Number of concurrent downloads")

	return exportCmd
}

// exportBackups writes every backup of group/id into dir and returns how many were written.
func exportBackups(ctx context.Context, client *historysdk.Client, group, id, dir string, parallel int) (int, error) {
	backups, err := client.GetConfigBackups(ctx, group, id)
	if err != nil {
		return 0, err
	}

	// check names before touching the filesystem
	for _, b := range backups {
		if err := checkFilename(b.Filename); err != nil {
			return 0, err
		}
	}

	if err := utils.EnsureDir(dir); err != nil {
		return 0, fmt.Errorf("create export dir: %w", err)
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(parallel)

	for _, b := range backups {
		eg.Go(func() error {
			content, err := client.GetBackupContent(egCtx, group, id, b.Filename)
			if err != nil {
				return err
			}
			return os.WriteFile(filepath.Join(dir, b.Filename), []byte(content), 0o644)
		})
	}

	if err := eg.Wait(); err != nil {
		return 0, err
	}
	return len(backups), nil
}

// checkFilename rejects names that would escape the export directory.
func checkFilename(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", errInvalidFilename, name)
	}
	return nil
}
