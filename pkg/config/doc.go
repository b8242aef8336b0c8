// Package config loads typed configuration from the process environment.
//
// Structs are described with github.com/caarlos0/env/v11 tags and parsed once
// per type; later calls return the memoised copy. The default .env file in
// the working directory is read with github.com/joho/godotenv on first use.
//
//	type StorageConfig struct {
//		Dir     string `env:"STORAGE_DIR" envDefault:"./storage"`
//		BaseURL string `env:"STORAGE_BASE_URL"`
//	}
//
//	var cfg StorageConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// LoadEnv reads additional .env files, later files overriding earlier ones.
// Variables already present in the environment always win. Reset drops the
// memoised structs, which tests use after changing the environment.
package config
