// Package httpserver runs an http.Server with graceful shutdown, hardened
// timeouts and slog lifecycle logging.
//
// Run blocks until its context is cancelled or SIGINT/SIGTERM arrives, then
// calls http.Server.Shutdown within the shutdown timeout. Construction goes
// through New or NewFromConfig with functional options; invalid option
// values panic at construction time.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// HealthCheckHandler serves liveness (no checks) and readiness (named
// checks) probes as JSON.
//
// Run wraps listen errors with ErrStart and Shutdown wraps shutdown errors
// with ErrShutdown; use errors.Is to tell them apart.
package httpserver
