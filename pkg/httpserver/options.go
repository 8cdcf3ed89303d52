package httpserver

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures the HTTP server. Invalid values panic at construction.
type Option func(*config)

func WithAddr(addr string) Option {
	if addr == "" {
		panic("WithAddr: addr cannot be empty")
	}
	return func(c *config) { c.addr = addr }
}

func WithReadTimeout(d time.Duration) Option {
	mustPositive("WithReadTimeout", d)
	return func(c *config) { c.readTimeout = d }
}

// WithReadHeaderTimeout bounds how long a client may take to send headers,
// which keeps slow-header clients from pinning connections.
func WithReadHeaderTimeout(d time.Duration) Option {
	mustPositive("WithReadHeaderTimeout", d)
	return func(c *config) { c.readHeaderTimeout = d }
}

func WithWriteTimeout(d time.Duration) Option {
	mustPositive("WithWriteTimeout", d)
	return func(c *config) { c.writeTimeout = d }
}

func WithIdleTimeout(d time.Duration) Option {
	mustPositive("WithIdleTimeout", d)
	return func(c *config) { c.idleTimeout = d }
}

// WithShutdownTimeout sets the deadline for graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	mustPositive("WithShutdownTimeout", d)
	return func(c *config) { c.shutdownTimeout = d }
}

// WithMaxHeaderBytes caps the size of request headers.
func WithMaxHeaderBytes(n int) Option {
	if n <= 0 {
		panic("WithMaxHeaderBytes: size must be > 0")
	}
	return func(c *config) { c.maxHeaderBytes = n }
}

// WithServer uses srv instead of a fresh http.Server. Fields already set on
// srv take precedence over the options.
func WithServer(srv *http.Server) Option {
	if srv == nil {
		panic("WithServer: nil server")
	}
	return func(c *config) { c.server = srv }
}

// WithLogger sets the lifecycle logger. Nil means discard.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithStartHook registers a callback run right before the server starts listening.
func WithStartHook(h func(*slog.Logger)) Option {
	if h == nil {
		panic("WithStartHook: nil hook")
	}
	return func(c *config) { c.startHooks = append(c.startHooks, h) }
}

// WithStopHook registers a callback run after graceful shutdown.
func WithStopHook(h func(*slog.Logger)) Option {
	if h == nil {
		panic("WithStopHook: nil hook")
	}
	return func(c *config) { c.stopHooks = append(c.stopHooks, h) }
}

func mustPositive(name string, d time.Duration) {
	if d <= 0 {
		panic(name + ": duration must be > 0")
	}
}
