package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is applied by envconfig when resolving variables.
const EnvPrefix = "thusong"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "THUSONG_DB_DSN"
	EnvDBHost = "THUSONG_DB_HOST"
	EnvDBUser = "THUSONG_DB_USER"
	EnvDBName = "THUSONG_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"THUSONG_APP_ENV" required:"true"`
	Port         string `envconfig:"THUSONG_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"THUSONG_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"THUSONG_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"THUSONG_DB_DSN"`
	Driver string `envconfig:"THUSONG_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"THUSONG_DB_HOST"`
	LegacyPort     int    `envconfig:"THUSONG_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"THUSONG_DB_USER"`
	LegacyPassword string `envconfig:"THUSONG_DB_PASSWORD"`
	LegacyName     string `envconfig:"THUSONG_DB_NAME"`
	LegacySSLMode  string `envconfig:"THUSONG_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"THUSONG_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"THUSONG_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"THUSONG_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"THUSONG_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"THUSONG_REDIS_URL" required:"true"`
	Address      string        `envconfig:"THUSONG_REDIS_ADDR"`
	Password     string        `envconfig:"THUSONG_REDIS_PASSWORD"`
	DB           int           `envconfig:"THUSONG_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"THUSONG_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"THUSONG_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"THUSONG_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"THUSONG_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"THUSONG_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret string `envconfig:"THUSONG_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"THUSONG_JWT_ISSUER" required:"true"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"THUSONG_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"THUSONG_AUTO_MIGRATE" default:"false"`
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
