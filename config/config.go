package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "FLEXROW"

const (
	MemoryBackend = "memory"
	CqlBackend    = "cql"
)

type Config struct {
	Backend string        `mapstructure:"backend"`
	Storage StorageConfig `mapstructure:"storage"`
	Cql     CqlConfig     `mapstructure:"cql"`
	Schema  SchemaConfig  `mapstructure:"schema"`
	Log     LogConfig     `mapstructure:"log"`
}

type StorageConfig struct {
	// snapshot folder of the memory backend, empty keeps nothing on disk
	Path string `mapstructure:"path"`
}

type CqlConfig struct {
	Hosts             []string      `mapstructure:"hosts"`
	Keyspace          string        `mapstructure:"keyspace"`
	Consistency       string        `mapstructure:"consistency"`
	Timeout           time.Duration `mapstructure:"timeout"`
	ReplicationFactor int           `mapstructure:"replication_factor"`
}

type SchemaConfig struct {
	IndexNewColumns bool `mapstructure:"index_new_columns"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend", MemoryBackend)
	v.SetDefault("storage.path", "./storage")

	v.SetDefault("cql.hosts", []string{"127.0.0.1"})
	v.SetDefault("cql.keyspace", "flexrow")
	v.SetDefault("cql.consistency", "QUORUM")
	v.SetDefault("cql.timeout", 5*time.Second)
	v.SetDefault("cql.replication_factor", 3)

	v.SetDefault("schema.index_new_columns", true)

	v.SetDefault("log.level", "INFO")
	v.SetDefault("log.format", "text")
}

// Load reads the optional config file at path, then FLEXROW_ prefixed
// environment variables (FLEXROW_CQL_KEYSPACE -> cql.keyspace).
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case MemoryBackend:
	case CqlBackend:
		if len(c.Cql.Hosts) == 0 {
			return fmt.Errorf("cql backend requires at least one host")
		}
		if c.Cql.Keyspace == "" {
			return fmt.Errorf("cql backend requires a keyspace")
		}
	default:
		return fmt.Errorf("unknown backend `%s`", c.Backend)
	}

	return nil
}
