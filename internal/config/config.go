// Package config provides functionality for managing configuration options
// for the application using command-line flags, a JSON config file, and
// environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
)

// Options holds the configuration values for the application.
type Options struct {
	// VaultPath is the path to the JSON vault file used by the file-backed
	// persistence store.
	VaultPath string

	// DatabaseDSN holds the PostgreSQL connection string. When set, the
	// database-backed persistence store is used instead of the vault file.
	DatabaseDSN string

	// MasterSecret is the raw-encoded master password the login gate
	// verifies attempts against.
	MasterSecret string

	// TimeoutSeconds is the inactivity countdown duration in seconds.
	TimeoutSeconds int

	// MaxAttempts is the number of failed login attempts before lockout.
	MaxAttempts int

	// TickRate is the session timer resolution in ticks per second.
	TickRate int

	// Config is the path to the config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.VaultPath, "vault", "vault.json", "path to vault file")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.MasterSecret, "secret", "", "raw-encoded master password")
	flag.IntVar(&options.TimeoutSeconds, "timeout", 120, "inactivity timeout in seconds")
	flag.IntVar(&options.MaxAttempts, "attempts", 5, "failed login attempts before lockout")
	flag.IntVar(&options.TickRate, "tickrate", 100, "session timer ticks per second")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if vaultPath := os.Getenv("VAULT_PATH"); vaultPath != "" {
		options.VaultPath = vaultPath
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if secret := os.Getenv("MASTER_SECRET"); secret != "" {
		options.MasterSecret = secret
	}

	return options
}
