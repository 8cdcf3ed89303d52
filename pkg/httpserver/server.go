package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/tripnest/inputguard/pkg/logger"
)

var errAlreadyRunning = errors.New("server already running")

type config struct {
	addr              string
	readTimeout       time.Duration
	readHeaderTimeout time.Duration
	writeTimeout      time.Duration
	idleTimeout       time.Duration
	shutdownTimeout   time.Duration
	maxHeaderBytes    int
	server            *http.Server
	logger            *slog.Logger
	startHooks        []func(*slog.Logger)
	stopHooks         []func(*slog.Logger)
}

// Server runs an http.Server until its context is cancelled or the process
// receives SIGINT/SIGTERM, then shuts it down gracefully.
type Server struct {
	cfg  *config
	once sync.Once
	mu   sync.Mutex
	srv  *http.Server
}

func New(opts ...Option) *Server {
	cfg := &config{
		addr:              ":8080",
		readHeaderTimeout: 5 * time.Second,
		shutdownTimeout:   10 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.Discard()
	}
	return &Server{cfg: cfg}
}

// Run starts the server and blocks until shutdown. Listen failures are
// wrapped with ErrStart; a nil handler serves 404 for everything.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	srv, err := s.prepare(handler)
	if err != nil {
		return err
	}

	log := s.cfg.logger.With(logger.Component("httpserver"))
	for _, h := range s.cfg.startHooks {
		h(s.cfg.logger)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.InfoContext(ctx, "http server started", slog.String("addr", srv.Addr))

	select {
	case <-ctx.Done():
		return s.stop(log, errCh)
	case sig := <-stop:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
		return s.stop(log, errCh)
	case err := <-errCh:
		return s.finish(log, err)
	}
}

func (s *Server) stop(log *slog.Logger, errCh <-chan error) error {
	if err := s.Shutdown(context.Background()); err != nil {
		log.Error("graceful shutdown failed", logger.Error(err))
		return err
	}
	return s.finish(log, <-errCh)
}

func (s *Server) finish(log *slog.Logger, err error) error {
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http server failed", logger.Error(err))
		return errors.Join(ErrStart, err)
	}
	log.Info("http server stopped")
	return nil
}

func (s *Server) prepare(handler http.Handler) (*http.Server, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.srv != nil {
		return nil, errors.Join(ErrStart, errAlreadyRunning)
	}

	cfg := s.cfg
	srv := cfg.server
	if srv == nil {
		srv = &http.Server{}
	}
	if srv.Addr == "" {
		srv.Addr = cfg.addr
	}
	setIfZero(&srv.ReadTimeout, cfg.readTimeout)
	setIfZero(&srv.ReadHeaderTimeout, cfg.readHeaderTimeout)
	setIfZero(&srv.WriteTimeout, cfg.writeTimeout)
	setIfZero(&srv.IdleTimeout, cfg.idleTimeout)
	if srv.MaxHeaderBytes == 0 {
		srv.MaxHeaderBytes = cfg.maxHeaderBytes
	}
	if srv.ErrorLog == nil {
		srv.ErrorLog = slog.NewLogLogger(cfg.logger.Handler(), slog.LevelWarn)
	}
	srv.Handler = handler

	s.srv = srv
	return srv, nil
}

// Shutdown stops the server gracefully within the configured timeout.
// Repeated calls are no-ops. Failures are wrapped with ErrShutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.once.Do(func() {
		s.mu.Lock()
		srv := s.srv
		s.mu.Unlock()
		if srv == nil {
			return
		}

		ctx, cancel := context.WithTimeout(ctx, s.cfg.shutdownTimeout)
		defer cancel()
		err = srv.Shutdown(ctx)

		for _, h := range s.cfg.stopHooks {
			h(s.cfg.logger)
		}
	})

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(ErrShutdown, err)
	}
	return nil
}

func setIfZero(dst *time.Duration, v time.Duration) {
	if *dst == 0 {
		*dst = v
	}
}
