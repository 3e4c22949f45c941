// Package httpserver runs an http.Handler with graceful shutdown and provides
// health-check handlers.
//
// Server is built with New or NewFromConfig and functional options
// (WithAddr, timeouts, WithLogger, start and stop hooks). Run blocks until the
// context is cancelled, SIGINT/SIGTERM arrives or Shutdown is called, then
// drains in-flight requests within the shutdown timeout.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	r := chi.NewRouter()
//	r.Get("/healthz", httpserver.HealthCheckHandler(log))
//	r.Get("/readyz", httpserver.HealthCheckHandler(log, checkStore))
//	err := srv.Run(ctx, r)
//
// Listen failures are wrapped with ErrStart and shutdown failures with
// ErrShutdown; match them with errors.Is.
package httpserver
