package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DotEnvVar names the variable that points at an alternative .env file.
const DotEnvVar = "ENV_FILE"

var dotenvOnce sync.Once

// Load fills a T from the process environment. The first call also loads the
// .env file (or the file named by ENV_FILE) without overriding variables that
// are already set; a missing file is not an error.
//
//	tcfg, err := config.Load[tenant.Config]()
func Load[T any]() (T, error) {
	dotenvOnce.Do(func() {
		file := os.Getenv(DotEnvVar)
		if file == "" {
			file = ".env"
		}
		_ = godotenv.Load(file)
	})
	return parse[T](env.Options{})
}

// LoadFrom fills a T from the given variables only. Used by tests and by
// tools that read configuration from something other than the environment.
func LoadFrom[T any](vars map[string]string) (T, error) {
	if vars == nil {
		vars = map[string]string{}
	}
	return parse[T](env.Options{Environment: vars})
}

// MustLoad is Load for values the binary cannot start without.
func MustLoad[T any]() T {
	v, err := Load[T]()
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return v
}

func parse[T any](opts env.Options) (T, error) {
	var v T
	if err := env.ParseWithOptions(&v, opts); err != nil {
		var zero T
		return zero, errors.Join(ErrParsingConfig, err)
	}
	return v, nil
}
