package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/ha-config-history/cfgctl/internal/historysdk"
	"github.com/ha-config-history/cfgctl/internal/utils"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errUnknownFormat = errors.New("unknown output format")

func newSettingsCmd(a *app) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Read or replace the server settings",
	}

	settingsCmd.AddCommand(newSettingsCmdGet(a))
	settingsCmd.AddCommand(newSettingsCmdSet(a))

	return settingsCmd
}

func newSettingsCmdGet(a *app) *cobra.Command {
	var format string

	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("%w: %q (want json or yaml)", errUnknownFormat, format)
			}

			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			settings, err := client.GetSettings(cmd.Context())
			if err != nil {
				return err
			}

			if format == "yaml" {
				return writeYAML(cmd.OutOrStdout(), settings)
			}
			return writeJSON(cmd.OutOrStdout(), settings)
		},
	}

	getCmd.Flags().StringVarP(&format, "output", "o", "yaml", "Output format (json|yaml)")

	return getCmd
}

func newSettingsCmdSet(a *app) *cobra.Command {
	var file string

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the settings with the contents of a JSON or YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := readSettingsFile(file)
			if err != nil {
				return err
			}

			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			resp, err := client.UpdateSettings(cmd.Context(), settings)
			if err != nil {
				return err
			}
			if !resp.Success {
				return fmt.Errorf("update rejected: %s", resp.Error)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), green.Render(resp.Message))
			return err
		},
	}

	setCmd.Flags().StringVarP(&file, "file", "f", "", "Settings file (.json, .yaml or .yml)")
	_ = setCmd.MarkFlagRequired("file")

	return setCmd
}

// readSettingsFile decodes settings as YAML or JSON depending on the file extension.
func readSettingsFile(path string) (*historysdk.AppSettings, error) {
	path, err := utils.ResolvePath(path)
	if err != nil {
		return nil, err
	}

	if !utils.FileExists(path) {
		return nil, fmt.Errorf("settings file '%s' not found", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var settings historysdk.AppSettings
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &settings)
	case ".json":
		err = json.Unmarshal(data, &settings)
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse settings '%s': %w", path, err)
	}

	return &settings, nil
}
