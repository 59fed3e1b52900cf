package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/yildizm/scrollmark/internal/backend"
	"github.com/yildizm/scrollmark/internal/emoji"
	"github.com/yildizm/scrollmark/internal/server"
	"github.com/yildizm/scrollmark/internal/session"
	"github.com/yildizm/scrollmark/internal/virality"
)

var serveAddr string

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard API over HTTP",
		Long: `Expose one upload session over HTTP for a browser front end.

Upload a CSV with POST /api/session/file, start the analysis with
POST /api/session/analyze and follow progress on the websocket at
/api/session/events. Results are served per metric domain under
/api/session/result.

Examples:
  scrollmark serve
  scrollmark serve --addr 0.0.0.0:8080`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	if cmd.Flags().Changed("addr") {
		cfg.Server.Addr = serveAddr
	}
	if !isVerbose() {
		gin.SetMode(gin.ReleaseMode)
	}

	log := newLogger()
	client, err := backend.New(cfg.Backend, log)
	if err != nil {
		return err
	}
	ctrl := session.NewController(client, session.NewSimulator(cfg.Progress), session.WithLogger(log))
	srv := server.New(cfg, ctrl, virality.New(cfg.Virality), log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.ErrOrStderr(), "%s Serving the dashboard API on http://%s (Ctrl+C to stop)\n", emoji.GetEmoji("rocket"), cfg.Server.Addr)
	return srv.Run(ctx)
}
