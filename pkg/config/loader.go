// Package config reads configuration from the process environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load fills cfg from environment variables declared with `env` tags.
//
// Example:
//
//	type Config struct {
//	    Port      int    `env:"HTTP_PORT" envDefault:"8080"`
//	    RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("load config from environment: %w", err)
	}
	return nil
}
