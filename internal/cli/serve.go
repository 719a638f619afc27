package cli

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/dashboard/config"
	"github.com/rustyeddy/dashboard/web"
)

func newServeCmd(rc *RootConfig) *cobra.Command {
	var (
		port int
		lan  bool
		poll time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		Long: `Serve the dashboard page, polling the reporting API in the background.

The server listens on loopback only unless visible_on_lan is set.

Example:
  dashboard serve --backend http://127.0.0.1:5000 --port 8080 --poll 30s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rc.Config
			flags := cmd.Flags()
			if flags.Changed("port") {
				cfg.Server.Port = port
			}
			if flags.Changed("lan") {
				cfg.Server.VisibleOnLAN = lan
			}
			if flags.Changed("poll") {
				cfg.Poll.Interval = config.Duration(poll)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			d := rc.newDashboard()
			addr := cfg.ListenAddr()
			if cfg.Server.VisibleOnLAN {
				rc.Log.Warn().Str("addr", addr).Msg("dashboard is reachable from the network without authentication")
			}

			interval := time.Duration(cfg.Poll.Interval)
			reloadURL := web.PathIndex
			if interval > 0 {
				_ = d.Refresh(ctx)
				go d.Run(ctx, interval)
				reloadURL = web.PathView
			}

			srv := web.NewServer(web.Config{
				Addr:          addr,
				RefreshOnLoad: cfg.Server.RefreshOnLoad,
				Reload:        interval,
				ReloadURL:     reloadURL,
				Log:           rc.Log,
			}, d)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP port (overrides server.port)")
	cmd.Flags().BoolVar(&lan, "lan", false, "Listen on server.addr instead of loopback")
	cmd.Flags().DurationVar(&poll, "poll", 0, "Background refresh interval, 0 disables polling")

	return cmd
}
