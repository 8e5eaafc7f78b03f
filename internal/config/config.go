package config

import (
	"fmt"
	"log"
	"os"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultSQLiteDSN = "file:messenger.db?_pragma=foreign_keys(1)"
)

type Config struct {
	AppName string `env:"APP_NAME,default=Messenger"`
	Port    int    `env:"PORT,default=8080"`
	GinMode string `env:"GIN_MODE,default=debug"`

	DBDriver          string        `env:"DB_DRIVER,default=postgres"`
	DatabaseURL       string        `env:"DATABASE_URL"`
	DBConnectAttempts int           `env:"DB_CONNECT_ATTEMPTS,default=5"`
	DBConnectBackoff  time.Duration `env:"DB_CONNECT_BACKOFF,default=2s"`

	// Пустой REDIS_URL: flash-сообщения хранятся в памяти процесса
	RedisURL string        `env:"REDIS_URL"`
	FlashTTL time.Duration `env:"FLASH_TTL,default=10m"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`
}

// Load читает .env.local, затем .env и переменные окружения
func Load() (Config, error) {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	es, err := env.EnvironToEnvSet(os.Environ())
	if err != nil {
		return Config{}, err
	}
	return Parse(es)
}

// Parse заполняет Config из набора переменных и проверяет его
func Parse(es env.EnvSet) (Config, error) {
	var cfg Config
	if err := env.Unmarshal(es, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is not set")
		}
	case DriverSQLite:
		if c.DatabaseURL == "" {
			c.DatabaseURL = defaultSQLiteDSN
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	if c.DBConnectAttempts < 1 {
		return fmt.Errorf("DB_CONNECT_ATTEMPTS must be at least 1, got %d", c.DBConnectAttempts)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	return nil
}

// Addr адрес для http.Server
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
