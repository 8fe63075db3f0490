package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/angelcm/adboard-go/internal/config"
	"github.com/angelcm/adboard-go/internal/httpx"
	"github.com/angelcm/adboard-go/internal/loader"
	"github.com/angelcm/adboard-go/internal/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
		slog.SetDefault(logger)

		ld := loader.New(logger)
		svc := metrics.NewService(ld, cfg, logger)
		if svc.BusinessMissing() {
			logger.Warn("business file not found, business KPIs unavailable",
				slog.String("file", cfg.BusinessFile))
		}

		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           httpx.NewRouter(logger, svc),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       cfg.HTTPTimeout,
			WriteTimeout:      cfg.HTTPTimeout,
		}

		logger.Info("starting server", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
