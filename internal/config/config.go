// Package config loads process settings from defaults, an optional
// cotizador.yaml, COTIZADOR_* environment variables and bound CLI flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. COTIZADOR_DB_DSN.
const EnvPrefix = "COTIZADOR"

const (
	KeyDBDriver            = "db.driver"
	KeyDBDSN               = "db.dsn"
	KeyOwner               = "owner"
	KeyLocale              = "locale"
	KeyLogLevel            = "log.level"
	KeyLogFile             = "log.file"
	KeyDebug               = "debug"
	KeySequenceMaxAttempts = "sequence.max_attempts"
	KeySequenceBackoff     = "sequence.backoff"
)

type Config struct {
	DB       DBConfig       `mapstructure:"db"`
	Owner    string         `mapstructure:"owner"`
	Locale   string         `mapstructure:"locale"`
	Log      LogConfig      `mapstructure:"log"`
	Debug    bool           `mapstructure:"debug"`
	Sequence SequenceConfig `mapstructure:"sequence"`
}

type DBConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type SequenceConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	Backoff     time.Duration `mapstructure:"backoff"`
}

// Dir is where the default database and config file live (~/.cotizador).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cotizador"
	}
	return filepath.Join(home, ".cotizador")
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyDBDriver, "sqlite")
	v.SetDefault(KeyDBDSN, filepath.Join(Dir(), "cotizador.db"))
	v.SetDefault(KeyOwner, "local")
	v.SetDefault(KeyLocale, "es-MX")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeySequenceMaxAttempts, 3)
	v.SetDefault(KeySequenceBackoff, 50*time.Millisecond)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file and decodes the merged settings. An explicit
// file must exist; without one, cotizador.yaml is looked up in Dir() and the
// working directory and may be absent.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("cotizador")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	var problems []string
	switch c.DB.Driver {
	case "sqlite", "pgx":
	default:
		problems = append(problems, fmt.Sprintf("db.driver %q must be sqlite or pgx", c.DB.Driver))
	}
	if strings.TrimSpace(c.DB.DSN) == "" {
		problems = append(problems, "db.dsn is required")
	}
	if strings.TrimSpace(c.Owner) == "" {
		problems = append(problems, "owner is required")
	}
	if c.Sequence.MaxAttempts < 1 {
		problems = append(problems, "sequence.max_attempts must be at least 1")
	}
	if c.Sequence.Backoff < 0 {
		problems = append(problems, "sequence.backoff must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
