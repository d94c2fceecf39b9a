package config

import (
    "errors"
    "fmt"
    "strings"

    "github.com/spf13/viper"
)

type ServerConfig struct {
    Address         string `mapstructure:"address"`
    ReadTimeoutSec  int    `mapstructure:"read_timeout_sec"`
    WriteTimeoutSec int    `mapstructure:"write_timeout_sec"`
    IdleTimeoutSec  int    `mapstructure:"idle_timeout_sec"`
}

type LogConfig struct {
    Level  string `mapstructure:"level"`
    Format string `mapstructure:"format"`
}

type DatabaseConfig struct {
    // URL is a postgres DSN. Empty selects the in-memory store.
    URL string `mapstructure:"url"`
}

type AuthConfig struct {
    JWTSecret string `mapstructure:"jwt_secret"`
    Issuer    string `mapstructure:"issuer"`
}

// OrgConfig is the business identity printed in report preambles.
type OrgConfig struct {
    Name    string `mapstructure:"name"`
    Address string `mapstructure:"address"`
    GSTIN   string `mapstructure:"gstin"`
    Phone   string `mapstructure:"phone"`
}

type Config struct {
    Server   ServerConfig   `mapstructure:"server"`
    Log      LogConfig      `mapstructure:"log"`
    Database DatabaseConfig `mapstructure:"database"`
    Auth     AuthConfig     `mapstructure:"auth"`
    Org      OrgConfig      `mapstructure:"org"`
    // DevSeed loads a small party set into the memory backend at startup.
    // Override with PPAY_DEV_SEED=true.
    DevSeed bool `mapstructure:"dev_seed"`
}

// Load reads configuration from the given file path, defaulting to
// config.yaml in the working directory. Environment variables with a
// PPAY_ prefix override file values, e.g. PPAY_SERVER_ADDRESS=:9000.
// A missing config file is fine; defaults and environment apply.
func Load(path string) (*Config, error) {
    v := viper.New()

    v.SetDefault("server.address", ":8080")
    v.SetDefault("server.read_timeout_sec", 10)
    v.SetDefault("server.write_timeout_sec", 30)
    v.SetDefault("server.idle_timeout_sec", 60)
    v.SetDefault("log.level", "info")
    v.SetDefault("log.format", "json")
    v.SetDefault("auth.issuer", "pharmapay")
    v.SetDefault("org.name", "PharmaDesk Distributors")
    v.SetDefault("dev_seed", false)

    if path == "" {
        v.SetConfigName("config")
        v.SetConfigType("yaml")
        v.AddConfigPath(".")
    } else {
        v.SetConfigFile(path)
    }

    v.SetEnvPrefix("PPAY")
    v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
    v.AutomaticEnv()

    if err := v.ReadInConfig(); err != nil {
        var notFound viper.ConfigFileNotFoundError
        if path != "" || !errors.As(err, &notFound) {
            return nil, fmt.Errorf("read config: %w", err)
        }
    }

    var c Config
    if err := v.Unmarshal(&c); err != nil {
        return nil, fmt.Errorf("unmarshal config: %w", err)
    }
    return &c, nil
}
