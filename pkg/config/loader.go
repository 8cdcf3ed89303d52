package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	cacheMu sync.RWMutex
	cache   = make(map[reflect.Type]any)

	defaultEnvOnce sync.Once
)

// LoadEnv loads variables from the given .env files into the process
// environment. Variables already present in the environment win. Without
// arguments the default ".env" in the working directory is loaded.
func LoadEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// MustLoadEnv is LoadEnv that panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("failed to load env files: %v", err))
	}
}

// Load parses environment variables into v using `env` struct tags.
// Each configuration type is parsed once; later calls are served from cache.
// The default .env file is read on first use if present.
//
//	type SanitizerConfig struct {
//		MaxDepth int `env:"SANITIZER_MAX_DEPTH" envDefault:"10"`
//	}
//
//	var cfg SanitizerConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle
//	}
func Load[T any](v *T) error {
	defaultEnvOnce.Do(func() {
		// The default .env file is optional.
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	key := reflect.TypeFor[T]()

	cacheMu.RLock()
	cached, ok := cache[key]
	cacheMu.RUnlock()
	if ok {
		*v = cached.(T)
		return nil
	}

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cached, ok := cache[key]; ok {
		*v = cached.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	cache[key] = parsed
	*v = parsed
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// ResetCache forgets every parsed configuration. Intended for tests.
func ResetCache() {
	cacheMu.Lock()
	cache = make(map[reflect.Type]any)
	cacheMu.Unlock()
}
