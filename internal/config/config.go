// Package config reads assetdesk settings from the environment, after loading
// an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the settings shared by the server and the CLI.
type Config struct {
	DB         string        `envconfig:"DB" default:"assetdesk.db"`
	Addr       string        `envconfig:"ADDR" default:":8080"`
	Log        string        `envconfig:"LOG"`
	StorageKey string        `envconfig:"STORAGE_KEY" default:"qtts-asset-storage"`
	TokenTTL   time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
}

// Prefix is prepended to every variable name, e.g. ASSETDESK_DB.
const Prefix = "ASSETDESK"

// Load reads envFiles (a missing file is not an error) and then the process
// environment. Variables already set in the environment win over the files.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}
	return cfg, nil
}
