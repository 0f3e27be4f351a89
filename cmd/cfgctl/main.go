package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ha-config-history/cfgctl/internal/historysdk"
	"github.com/ha-config-history/cfgctl/internal/version"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	home, _        = os.UserHomeDir()
	configFileName = "config"
	envPrefix      = "CFGCTL"
)

// cliConfig is the resolved configuration shared by every command.
type cliConfig struct {
	Path      string
	ServerURL string
	Debug     bool
	Verbose   bool
}

// app carries per-invocation state so that every root command gets its own viper.
type app struct {
	v   *viper.Viper
	cfg *cliConfig
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           "cfgctl",
		Short:         "Browse and manage configuration history backups",
		Version:       version.Detailed(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			setupLogging(cmd.ErrOrStderr(), cfg.Verbose)
			return nil
		},
	}

	rootCmd.PersistentFlags().SortFlags = false
	rootCmd.PersistentFlags().StringP("server", "s", historysdk.DefaultBaseURL, "Config history server URL")
	rootCmd.PersistentFlags().StringP("config", "c", "", "cfgctl config file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("debug", false, "Dump HTTP requests and responses")

	rootCmd.AddCommand(newConfigsCmd(a))
	rootCmd.AddCommand(newBackupsCmd(a))
	rootCmd.AddCommand(newBackupCmd(a))
	rootCmd.AddCommand(newSettingsCmd(a))
	rootCmd.AddCommand(newStatusCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func main() {
	// Setup root context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// client builds an api client from the resolved configuration.
func (a *app) client() (*historysdk.Client, error) {
	if a.cfg == nil {
		return nil, errors.New("config not loaded")
	}
	return historysdk.New(&historysdk.Config{
		BaseURL: a.cfg.ServerURL,
		Debug:   a.cfg.Debug,
	})
}

func loadConfig(cmd *cobra.Command, v *viper.Viper) (*cliConfig, error) {
	// .env only fills variables that are not already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	// config path
	if f := cmd.Flag("config"); f != nil && f.Changed {
		v.SetConfigFile(f.Value.String())
	} else if envPath := os.Getenv(envPrefix + "_CONFIG_PATH"); envPath != "" {
		v.SetConfigFile(envPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".cfgctl"))         // Then check .cfgctl
		v.AddConfigPath(filepath.Join(home, ".config", "cfgctl")) // Then check .config/cfgctl
		v.SetConfigName(configFileName)                           // Name of config file (without extension)
	}

	// Read config file, a missing one is fine
	configPath := ""
	if err := v.ReadInConfig(); err != nil {
		enoent := errors.Is(err, os.ErrNotExist)
		var notFound viper.ConfigFileNotFoundError
		if !enoent && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config read '%s': %w", v.ConfigFileUsed(), err)
		}
	} else {
		configPath = v.ConfigFileUsed()
	}

	// Bind flags to viper
	_ = v.BindPFlag("server_url", cmd.Flags().Lookup("server"))
	_ = v.BindPFlag("debug", cmd.Flags().Lookup("debug"))
	_ = v.BindPFlag("verbose", cmd.Flags().Lookup("verbose"))

	// Set up environment variables
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	return &cliConfig{
		Path:      configPath,
		ServerURL: v.GetString("server_url"),
		Debug:     v.GetBool("debug"),
		Verbose:   v.GetBool("verbose"),
	}, nil
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !isTerminal(w),
	})
	slog.SetDefault(slog.New(handler))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
