package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "WHOLESALE"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv   = "WHOLESALE_APP_ENV"
	EnvPort     = "WHOLESALE_APP_PORT"
	EnvDBDSN    = "WHOLESALE_DB_DSN"
	EnvDBHost   = "WHOLESALE_DB_HOST"
	EnvDBUser   = "WHOLESALE_DB_USER"
	EnvDBName   = "WHOLESALE_DB_NAME"
	EnvRedisURL = "WHOLESALE_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Policy       PolicyConfig
	Cron         CronConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Policy.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"WHOLESALE_APP_ENV" required:"true"`
	Port         string `envconfig:"WHOLESALE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"WHOLESALE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WHOLESALE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"WHOLESALE_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"WHOLESALE_DB_DSN"`
	Driver string `envconfig:"WHOLESALE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"WHOLESALE_DB_HOST"`
	LegacyPort     int    `envconfig:"WHOLESALE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"WHOLESALE_DB_USER"`
	LegacyPassword string `envconfig:"WHOLESALE_DB_PASSWORD"`
	LegacyName     string `envconfig:"WHOLESALE_DB_NAME"`
	LegacySSLMode  string `envconfig:"WHOLESALE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WHOLESALE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WHOLESALE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WHOLESALE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WHOLESALE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"WHOLESALE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"WHOLESALE_REDIS_ADDR"`
	Password     string        `envconfig:"WHOLESALE_REDIS_PASSWORD"`
	DB           int           `envconfig:"WHOLESALE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WHOLESALE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WHOLESALE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WHOLESALE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WHOLESALE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WHOLESALE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"WHOLESALE_AUTO_MIGRATE" default:"false"`
}

// PolicyConfig carries the business-policy thresholds used by stock warnings
// and payout aging. The defaults match the values the business has operated
// with historically.
type PolicyConfig struct {
	LowStockRatio       float64 `envconfig:"WHOLESALE_POLICY_LOW_STOCK_RATIO" default:"0.8"`
	OverdueDays         int     `envconfig:"WHOLESALE_POLICY_PAYOUT_OVERDUE_DAYS" default:"30"`
	UrgentDays          int     `envconfig:"WHOLESALE_POLICY_PAYOUT_URGENT_DAYS" default:"60"`
	EstimatedTaxPercent float64 `envconfig:"WHOLESALE_POLICY_ESTIMATED_TAX_PERCENT" default:"0"`
}

func (p PolicyConfig) validate() error {
	if p.LowStockRatio <= 0 || p.LowStockRatio > 1 {
		return fmt.Errorf("%s_POLICY_LOW_STOCK_RATIO must be in (0, 1]", EnvPrefix)
	}
	if p.OverdueDays <= 0 || p.UrgentDays <= p.OverdueDays {
		return fmt.Errorf("payout aging thresholds must satisfy 0 < overdue < urgent")
	}
	if p.EstimatedTaxPercent < 0 || p.EstimatedTaxPercent > 100 {
		return fmt.Errorf("%s_POLICY_ESTIMATED_TAX_PERCENT must be in [0, 100]", EnvPrefix)
	}
	return nil
}

type CronConfig struct {
	Interval time.Duration `envconfig:"WHOLESALE_CRON_INTERVAL" default:"24h"`
	LockTTL  time.Duration `envconfig:"WHOLESALE_CRON_LOCK_TTL" default:"25h"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
