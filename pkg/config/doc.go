// Package config loads configuration structs from environment variables.
//
// It wraps `github.com/joho/godotenv` (optional .env files) and
// `github.com/caarlos0/env/v11` (struct tag parsing):
//
//	type ServiceConfig struct {
//	    Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	if err := config.LoadEnv("./config/.env"); err != nil {
//	    log.Fatal(err)
//	}
//	var cfg ServiceConfig
//	config.MustLoad(&cfg)
//
// Load reads ./.env once per process before the first parse; a missing file
// is not an error. WithPrefix scopes a struct to a variable prefix and
// WithEnvironment swaps the process environment for a fixed map.
//
// Errors: ErrParsingConfig, ErrLoadingEnvFile and ErrNilPointer, all usable
// with errors.Is.
package config
