package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps persistent CLI flags onto configuration keys.
var flagKeys = map[string]string{
	"db-url":     "ledger.db_url",
	"log-level":  "log.level",
	"log-format": "log.format",
}

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence. Only flags the
// user changed override lower layers; flags may be nil.
func LoadConfig(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	d := Default()
	v.SetDefault("ledger.db_url", d.Ledger.DBURL)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("ingest.schema_gate", d.Ingest.SchemaGate)
	v.SetDefault("ingest.max_file_size", d.Ingest.MaxFileSize)
	v.SetDefault("metrics.textfile", d.Metrics.Textfile)
	v.SetDefault("watch.debounce", d.Watch.Debounce.String())
	v.SetDefault("watch.extensions", d.Watch.Extensions)

	// Bind environment variables with OTDS_ prefix
	v.SetEnvPrefix("OTDS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := validateNoSecretsInConfig(configPath); err != nil {
			return nil, err
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	cfg := &Config{
		Ledger: LedgerConfig{DBURL: v.GetString("ledger.db_url")},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Ingest: IngestConfig{
			SchemaGate:  v.GetString("ingest.schema_gate"),
			MaxFileSize: v.GetInt64("ingest.max_file_size"),
		},
		Metrics: MetricsConfig{Textfile: v.GetString("metrics.textfile")},
		Watch: WatchConfig{
			Debounce:   v.GetDuration("watch.debounce"),
			Extensions: v.GetStringSlice("watch.extensions"),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateNoSecretsInConfig rejects a ledger URL carrying a password in the
// config file itself. Credentials belong in OTDS_LEDGER_DB_URL.
func validateNoSecretsInConfig(configPath string) error {
	file := viper.New()
	file.SetConfigFile(configPath)
	if err := file.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	raw := file.GetString("ledger.db_url")
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	if _, ok := u.User.Password(); ok {
		return fmt.Errorf("database passwords not allowed in config files (use OTDS_LEDGER_DB_URL environment variable)")
	}
	return nil
}
