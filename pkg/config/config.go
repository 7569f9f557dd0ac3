package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"

	StorageBackendFile  = "file"
	StorageBackendRedis = "redis"
)

type Config struct {
	App      AppConfig
	Backend  BackendConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Checkout CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	if cfg.Storage.Backend == StorageBackendRedis && cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		return nil, fmt.Errorf("either %s or %s is required for the redis storage backend", EnvRedisURL, EnvRedisAddr)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TIENDA_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"TIENDA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TIENDA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type BackendConfig struct {
	BaseURL string        `envconfig:"TIENDA_BACKEND_URL" default:"http://localhost:3000"`
	Timeout time.Duration `envconfig:"TIENDA_BACKEND_TIMEOUT" default:"10s"`
}

type StorageConfig struct {
	Backend  string `envconfig:"TIENDA_STORAGE_BACKEND" default:"file"`
	StateDir string `envconfig:"TIENDA_STATE_DIR" default:".tienda"`
}

func (s StorageConfig) validate() error {
	switch s.Backend {
	case StorageBackendFile, StorageBackendRedis:
		return nil
	default:
		return fmt.Errorf("unknown storage backend %q", s.Backend)
	}
}

type RedisConfig struct {
	URL          string        `envconfig:"TIENDA_REDIS_URL"`
	Address      string        `envconfig:"TIENDA_REDIS_ADDR"`
	Password     string        `envconfig:"TIENDA_REDIS_PASSWORD"`
	DB           int           `envconfig:"TIENDA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TIENDA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TIENDA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TIENDA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TIENDA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TIENDA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CheckoutConfig struct {
	Merchant        string        `envconfig:"TIENDA_CHECKOUT_MERCHANT" default:"TuTienda"`
	PaymentWindow   time.Duration `envconfig:"TIENDA_CHECKOUT_PAYMENT_WINDOW" default:"5m"`
	ProcessingDelay time.Duration `envconfig:"TIENDA_CHECKOUT_PROCESSING_DELAY" default:"3s"`
	RequireAddress  bool          `envconfig:"TIENDA_CHECKOUT_REQUIRE_ADDRESS" default:"true"`
	MinAddressLen   int           `envconfig:"TIENDA_CHECKOUT_MIN_ADDRESS_LEN" default:"5"`
	RequireLocality bool          `envconfig:"TIENDA_CHECKOUT_REQUIRE_LOCALITY" default:"true"`
}
