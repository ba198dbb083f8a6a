package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	Studio       StudioConfig
	Contracts    ContractsConfig
	PDF          PDFConfig
	MercadoPago  MercadoPagoConfig
	RateLimit    RateLimitConfig
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
	Env          string   `envconfig:"STUDIO_APP_ENV" required:"true"`
	Port         string   `envconfig:"STUDIO_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"STUDIO_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"STUDIO_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"STUDIO_CORS_ORIGINS" default:"http://localhost:5173"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"STUDIO_DB_DSN"`

	LegacyHost     string `envconfig:"STUDIO_DB_HOST"`
	LegacyPort     int    `envconfig:"STUDIO_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STUDIO_DB_USER"`
	LegacyPassword string `envconfig:"STUDIO_DB_PASSWORD"`
	LegacyName     string `envconfig:"STUDIO_DB_NAME"`
	LegacySSLMode  string `envconfig:"STUDIO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STUDIO_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"STUDIO_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"STUDIO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STUDIO_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	SlowQueryThreshold time.Duration `envconfig:"STUDIO_DB_SLOW_QUERY_THRESHOLD" default:"500ms"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STUDIO_REDIS_URL" required:"true"`
	Address      string        `envconfig:"STUDIO_REDIS_ADDR"`
	Password     string        `envconfig:"STUDIO_REDIS_PASSWORD"`
	DB           int           `envconfig:"STUDIO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STUDIO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STUDIO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STUDIO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STUDIO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STUDIO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string        `envconfig:"STUDIO_JWT_SECRET" required:"true"`
	Issuer            string        `envconfig:"STUDIO_JWT_ISSUER" required:"true"`
	ExpirationMinutes int           `envconfig:"STUDIO_JWT_EXPIRATION_MINUTES" default:"60"`
	Leeway            time.Duration `envconfig:"STUDIO_JWT_LEEWAY" default:"30s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STUDIO_AUTO_MIGRATE" default:"false"`
}

// StudioConfig identifies the business on generated documents.
type StudioConfig struct {
	BusinessName     string `envconfig:"STUDIO_BUSINESS_NAME" default:"Lumen Fotografia"`
	BusinessSlug     string `envconfig:"STUDIO_BUSINESS_SLUG" default:"lumen"`
	BusinessDocument string `envconfig:"STUDIO_BUSINESS_DOCUMENT"`
	BusinessCity     string `envconfig:"STUDIO_BUSINESS_CITY" default:"São Paulo"`
	Locale           string `envconfig:"STUDIO_LOCALE" default:"pt-BR"`
	Currency         string `envconfig:"STUDIO_CURRENCY" default:"BRL"`
	AdminEmail       string `envconfig:"STUDIO_ADMIN_EMAIL"`
}

type ContractsConfig struct {
	QueryTimeout time.Duration `envconfig:"STUDIO_CONTRACTS_QUERY_TIMEOUT" default:"10s"`
}

type PDFConfig struct {
	BrowserBin    string        `envconfig:"STUDIO_PDF_BROWSER_BIN"`
	ControlURL    string        `envconfig:"STUDIO_PDF_CONTROL_URL"`
	RenderTimeout time.Duration `envconfig:"STUDIO_PDF_RENDER_TIMEOUT" default:"30s"`
}

// MercadoPagoConfig holds the payment provider credentials. An empty access token is
// allowed at boot; requests that need it fail with a configuration error.
type MercadoPagoConfig struct {
	AccessToken string        `envconfig:"STUDIO_MERCADOPAGO_ACCESS_TOKEN"`
	BaseURL     string        `envconfig:"STUDIO_MERCADOPAGO_BASE_URL" default:"https://api.mercadopago.com"`
	Timeout     time.Duration `envconfig:"STUDIO_MERCADOPAGO_TIMEOUT" default:"15s"`
}

// RateLimitConfig throttles the public payment endpoint. A zero window disables it.
type RateLimitConfig struct {
	PaymentsWindow     time.Duration `envconfig:"STUDIO_PAYMENTS_RATE_WINDOW" default:"1m"`
	PaymentsIPLimit    int           `envconfig:"STUDIO_PAYMENTS_RATE_IP_LIMIT" default:"20"`
	PaymentsEmailLimit int           `envconfig:"STUDIO_PAYMENTS_RATE_EMAIL_LIMIT" default:"5"`
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
