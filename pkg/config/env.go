package config

// EnvPrefix is handed to envconfig; every field declares its full variable name.
const EnvPrefix = "STUDIO"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv       = "STUDIO_APP_ENV"
	EnvPort         = "STUDIO_APP_PORT"
	EnvDBDSN        = "STUDIO_DB_DSN"
	EnvDBHost       = "STUDIO_DB_HOST"
	EnvDBUser       = "STUDIO_DB_USER"
	EnvDBName       = "STUDIO_DB_NAME"
	EnvRedisURL     = "STUDIO_REDIS_URL"
	EnvJWTSecret    = "STUDIO_JWT_SECRET"
	EnvJWTIssuer    = "STUDIO_JWT_ISSUER"
	EnvAdminEmail   = "STUDIO_ADMIN_EMAIL"
	EnvQueryTimeout = "STUDIO_CONTRACTS_QUERY_TIMEOUT"
	EnvMPToken      = "STUDIO_MERCADOPAGO_ACCESS_TOKEN"
	EnvCORSOrigins  = "STUDIO_CORS_ORIGINS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
