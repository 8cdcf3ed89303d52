// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv (optional .env files) and
// github.com/caarlos0/env/v11 (struct tag parsing). Each configuration type is
// parsed once per process and cached; ResetCache clears the cache in tests.
//
//	type Config struct {
//	    AppEnv   string `env:"APP_ENV" envDefault:"development"`
//	    MaxDepth int    `env:"SANITIZER_MAX_DEPTH" envDefault:"10"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Errors can be matched with errors.Is against ErrParsingConfig,
// ErrLoadingEnvFile and ErrNilPointer.
package config
