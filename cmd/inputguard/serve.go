package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tripnest/inputguard/internal/api"
	"github.com/tripnest/inputguard/pkg/httpserver"
	"github.com/tripnest/inputguard/pkg/logger"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, a)
		},
	}
}

func serve(ctx context.Context, a *app) error {
	log := a.log
	metrics := api.NewMetrics()
	engine := newSanitizer(a.cfg, log, metrics)

	policy, err := loadPolicy(a.cfg.Sanitizer.PolicyFile)
	if err != nil {
		log.Error("policy not loaded", logger.Error(err))
		return err
	}
	if policy != nil {
		log.Info("policy loaded", logger.Truncated("path", a.cfg.Sanitizer.PolicyFile))
	}

	router := api.NewRouter(api.Config{
		Sanitizer:    engine,
		Policy:       policy,
		Metrics:      metrics,
		Logger:       log,
		MaxBodySize:  a.cfg.Sanitizer.MaxBodySize,
		RateLimitRPM: a.cfg.RateLimitRPM,
		CORSOrigins:  a.cfg.CORSOrigins,
		IPHeaders:    a.cfg.IPHeaders,
	})

	srv := httpserver.NewFromConfig(a.cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}
