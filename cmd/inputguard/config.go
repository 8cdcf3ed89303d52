package main

import (
	"errors"
	"io"
	"log/slog"

	"github.com/tripnest/inputguard/internal/api"
	"github.com/tripnest/inputguard/pkg/clientip"
	"github.com/tripnest/inputguard/pkg/config"
	"github.com/tripnest/inputguard/pkg/httpserver"
	"github.com/tripnest/inputguard/pkg/logger"
	"github.com/tripnest/inputguard/pkg/requestid"
	"github.com/tripnest/inputguard/pkg/sanitizer"
)

// Config is the service configuration, read from the environment and an
// optional .env file.
type Config struct {
	AppEnv       string   `env:"APP_ENV" envDefault:"development"`
	ServiceName  string   `env:"SERVICE_NAME" envDefault:"inputguard"`
	LogLevel     string   `env:"LOG_LEVEL"`
	RateLimitRPM int      `env:"RATE_LIMIT_RPM" envDefault:"600"`
	CORSOrigins  []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	IPHeaders    []string `env:"TRUSTED_IP_HEADERS" envSeparator:","`

	LogFile   logger.FileConfig
	HTTP      httpserver.Config
	Sanitizer SanitizerConfig
}

type SanitizerConfig struct {
	MaxDepth    int    `env:"SANITIZER_MAX_DEPTH" envDefault:"10"`
	MaxBodySize int64  `env:"SANITIZER_MAX_BODY_SIZE" envDefault:"1048576"`
	PolicyFile  string `env:"SANITIZER_POLICY_FILE"`
}

func loadConfig(envFiles []string) (Config, error) {
	if len(envFiles) > 0 {
		if err := config.LoadEnv(envFiles...); err != nil {
			return Config{}, err
		}
	}
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// newLogger builds the process logger. The returned closer flushes the
// rotating log file, if one is configured.
func newLogger(cfg Config, out io.Writer) (*slog.Logger, io.Closer, error) {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.AppEnv, cfg.ServiceName),
		logger.WithOutput(out),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	}
	if cfg.LogLevel != "" {
		lvl, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, logger.WithLevel(lvl))
	}

	var closer io.Closer = nopCloser{}
	if file := logger.RotatingFile(cfg.LogFile); file != nil {
		opts = append(opts, logger.WithTee(file))
		closer = file
	}
	return logger.New(opts...), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newSanitizer builds the engine and installs it as the package default so
// library callers in the same process share logger and metrics.
func newSanitizer(cfg Config, log *slog.Logger, m *api.Metrics) *sanitizer.Sanitizer {
	opts := []sanitizer.SanitizerOption{
		sanitizer.WithLogger(log),
		sanitizer.WithDefaultMaxDepth(cfg.Sanitizer.MaxDepth),
	}
	if m != nil {
		opts = append(opts, sanitizer.WithDetectionHook(m.DetectionHook()))
	}
	s := sanitizer.New(opts...)
	sanitizer.SetDefault(s)
	return s
}

func loadPolicy(path string) (*sanitizer.Policy, error) {
	if path == "" {
		return nil, nil
	}
	p, err := sanitizer.LoadPolicy(path)
	if err != nil {
		return nil, errors.Join(errPolicyFile, err)
	}
	return p, nil
}

var (
	errPolicyFile   = errors.New("cannot load policy file")
	errInvalidInput = errors.New("input rejected")
)
