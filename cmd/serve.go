package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/datamock/internal/api"
	"github.com/Lumos-Labs-HQ/datamock/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `
Serve classification, defaults, validation, conversion and preview over HTTP.

Examples:
  datamock serve
  datamock serve --addr :9090 -d postgresql`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		log := newLogger(cfg)
		defer logger.Cleanup(log)

		if cfg.Log.Level != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}

		h := api.NewHandler(newRegistry(cfg), dialectOf(cfg), cfg.Preview.Rows, log)
		srv := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           api.NewRouter(h),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			color.Green("🚀 datamock API listening on %s (%s)", cfg.Server.Addr, dialectOf(cfg))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		color.Yellow("⏳ Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
