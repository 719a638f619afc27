package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/dashboard/backend"
	"github.com/rustyeddy/dashboard/config"
	"github.com/rustyeddy/dashboard/dashboard"
	"github.com/rustyeddy/dashboard/internal/logging"
	"github.com/rustyeddy/dashboard/view"
)

// RootConfig holds the persistent flags and what PersistentPreRunE builds
// from them.
type RootConfig struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
	BackendURL string

	Config *config.Config
	Log    zerolog.Logger
}

func NewRootCmd() *cobra.Command {
	rc := &RootConfig{}

	cmd := &cobra.Command{
		Use:           "dashboard",
		Short:         "Trading system status dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to config file (optional)")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "", "Log level: debug|info|warn|error")
	cmd.PersistentFlags().StringVar(&rc.LogFormat, "log-format", "", "Log format: console|json")
	cmd.PersistentFlags().StringVar(&rc.BackendURL, "backend", "", "Reporting API base URL")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return rc.load(cmd)
	}

	cmd.AddCommand(
		newServeCmd(rc),
		newRenderCmd(rc),
		newRollCmd(rc),
		newConfigCmd(),
		newVersionCmd(),
	)

	return cmd
}

// load resolves the configuration: defaults, then the config file, then
// DASHBOARD_* variables (a .env file is read first if present), then flags.
func (rc *RootConfig) load(cmd *cobra.Command) error {
	_ = godotenv.Load()

	cfg := config.Default()
	if rc.ConfigPath != "" {
		var err error
		if cfg, err = config.LoadFromFile(rc.ConfigPath); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	cfg.ApplyEnv(os.Getenv)

	if rc.LogLevel != "" {
		cfg.Log.Level = rc.LogLevel
	}
	if rc.LogFormat != "" {
		cfg.Log.Format = rc.LogFormat
	}
	if rc.BackendURL != "" {
		cfg.Backend.URL = rc.BackendURL
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	rc.Config = cfg
	rc.Log = log
	return nil
}

func (rc *RootConfig) newDashboard() *dashboard.Dashboard {
	client := backend.NewClient(rc.Config.Backend.URL, time.Duration(rc.Config.Backend.Timeout))
	return dashboard.New(client, view.NewDocument(), rc.Log)
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
