package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=bugginho_atm_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"

type Config struct {
	DatabaseDSN   string `mapstructure:"DATABASE_DSN"`
	MigrationsDir string `mapstructure:"MIGRATIONS_DIR"`
}

// Load reads configuration from ATM_-prefixed environment variables, falling
// back to an optional config.yaml in the working directory and then to the
// local-development defaults.
func Load() (Config, error) {
	viper.SetEnvPrefix("atm")
	viper.AutomaticEnv()
	viper.SetDefault("DATABASE_DSN", defaultConnectionString)
	viper.SetDefault("MIGRATIONS_DIR", filepath.Join("src", "migrations"))

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	cfg.DatabaseDSN = normalizeConnectionString(strings.TrimSpace(cfg.DatabaseDSN))
	return cfg, nil
}

// normalizeConnectionString accepts ADO-style "Key=Value;" connection strings
// and rewrites them into the space-separated key=value form libpq expects.
// Strings already in libpq form pass through unchanged apart from the
// sslmode default.
func normalizeConnectionString(raw string) string {
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
