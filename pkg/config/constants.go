package config

// EnvPrefix scopes every configuration variable consumed by envconfig.
const EnvPrefix = "tastebite"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "TASTEBITE_DB_DSN"
	EnvDBHost = "TASTEBITE_DB_HOST"
	EnvDBUser = "TASTEBITE_DB_USER"
	EnvDBName = "TASTEBITE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
