package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Log            LogConfig            `mapstructure:"log"`
	AccountService AccountServiceConfig `mapstructure:"account_service"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Cache          CacheConfig          `mapstructure:"cache"`
	Seed           SeedConfig           `mapstructure:"seed"`
}

type LogConfig struct {
	Debug bool `mapstructure:"debug"`
}

type AccountServiceConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	HealthTimeout  time.Duration `mapstructure:"health_timeout"`
	RateLimitRPS   float64       `mapstructure:"rate_limit_rps"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst"`
}

type DatabaseConfig struct {
	Mode         string        `mapstructure:"mode"` // sqlite | mysql | postgres
	SQLitePath   string        `mapstructure:"sqlite_path"`
	SQLiteCreate bool          `mapstructure:"sqlite_create"` // allow creating a missing sqlite file
	MySQLDSN     string        `mapstructure:"mysql_dsn"`
	PostgresDSN  string        `mapstructure:"postgres_dsn"`
	MaxOpen      int           `mapstructure:"max_open"`
	MaxIdle      int           `mapstructure:"max_idle"`
	MaxLife      time.Duration `mapstructure:"max_life"`
}

type CacheConfig struct {
	RedisAddr       string        `mapstructure:"redis_addr"`
	RedisPassword   string        `mapstructure:"redis_password"`
	RedisDB         int           `mapstructure:"redis_db"`
	LocalGCInterval time.Duration `mapstructure:"local_gc_interval"`
	LockTTL         time.Duration `mapstructure:"lock_ttl"`
}

type SeedConfig struct {
	SampleOrders bool   `mapstructure:"sample_orders"`
	AdminEmail   string `mapstructure:"admin_email"`
	// DefaultPassword replaces the password of every seeded account when set.
	DefaultPassword string `mapstructure:"default_password"`
}

// Load reads config from the given YAML file path. A missing file is not an
// error; defaults and SEED_* environment variables still apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("seed")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.debug", false)
	v.SetDefault("account_service.base_url", "http://localhost:3000")
	v.SetDefault("account_service.timeout", "10s")
	v.SetDefault("account_service.health_timeout", "5s")
	v.SetDefault("account_service.rate_limit_rps", 5)
	v.SetDefault("account_service.rate_limit_burst", 1)
	v.SetDefault("database.mode", "sqlite")
	v.SetDefault("database.sqlite_path", "./database.sqlite")
	v.SetDefault("database.sqlite_create", false)
	v.SetDefault("database.mysql_dsn", "")
	v.SetDefault("database.postgres_dsn", "")
	v.SetDefault("database.max_open", 10)
	v.SetDefault("database.max_idle", 2)
	v.SetDefault("database.max_life", "1h")
	v.SetDefault("cache.redis_addr", "")
	v.SetDefault("cache.redis_password", "")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.local_gc_interval", "30s")
	v.SetDefault("cache.lock_ttl", "5m")
	v.SetDefault("seed.sample_orders", true)
	v.SetDefault("seed.admin_email", "admin@coffeemon.com")
	v.SetDefault("seed.default_password", "")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
