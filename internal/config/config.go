package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDynamoDB = "dynamodb"
	StorageSQLite   = "sqlite"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Logging   LoggingConfig
	Storage   StorageConfig
	DynamoDB  DynamoDBConfig
	Auth      AuthConfig
	Bootstrap BootstrapConfig
	Server    ServerConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
}

type LoggingConfig struct {
	Level  string
	Format string
}

// StorageConfig selects the persistence driver: "dynamodb" or "sqlite".
type StorageConfig struct {
	Driver     string
	SQLitePath string
}

// DynamoDBConfig is used when Storage.Driver is "dynamodb". Local DynamoDB
// does not check credentials, but the SDK requires some.
type DynamoDBConfig struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsersTable      string
	TemplatesTable  string
	EstimatesTable  string
}

type AuthConfig struct {
	JWTSecret       string
	Issuer          string
	TokenTTLMinutes int
}

// BootstrapConfig is the admin account created at start-up when missing.
// Leaving the password empty skips the bootstrap.
type BootstrapConfig struct {
	AdminUsername string
	AdminPassword string
}

type ServerConfig struct {
	EnableSwagger bool
}

// TokenTTL returns the session lifetime as duration
func (a *AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

// Addr returns the listen address for the HTTP server
func (a *AppConfig) Addr() string {
	return fmt.Sprintf(":%d", a.Port)
}

func (a *AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindLegacyEnv(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Auth.JWTSecret == "" && !cfg.App.IsProduction() {
		cfg.Auth.JWTSecret = "devsessionsecret"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Driver {
	case StorageDynamoDB:
		if c.DynamoDB.UsersTable == "" || c.DynamoDB.TemplatesTable == "" || c.DynamoDB.EstimatesTable == "" {
			errs = append(errs, errors.New("dynamodb table names are required"))
		}
	case StorageSQLite:
		if c.Storage.SQLitePath == "" {
			errs = append(errs, errors.New("storage.sqlitePath is required for the sqlite driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}

	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwtSecret is required"))
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		errs = append(errs, errors.New("auth.tokenTTLMinutes must be positive"))
	}
	if c.App.Port <= 0 {
		errs = append(errs, errors.New("app.port must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// bindLegacyEnv keeps the plain AWS and table variable names working next to
// the DYNAMODB_* forms.
func bindLegacyEnv(v *viper.Viper) {
	_ = v.BindEnv("dynamodb.region", "DYNAMODB_REGION", "AWS_REGION")
	_ = v.BindEnv("dynamodb.endpoint", "DYNAMODB_ENDPOINT")
	_ = v.BindEnv("dynamodb.accessKeyId", "DYNAMODB_ACCESSKEYID", "AWS_ACCESS_KEY_ID")
	_ = v.BindEnv("dynamodb.secretAccessKey", "DYNAMODB_SECRETACCESSKEY", "AWS_SECRET_ACCESS_KEY")
	_ = v.BindEnv("dynamodb.usersTable", "DYNAMODB_USERSTABLE", "USERS_TABLE")
	_ = v.BindEnv("dynamodb.templatesTable", "DYNAMODB_TEMPLATESTABLE", "TEMPLATES_TABLE")
	_ = v.BindEnv("dynamodb.estimatesTable", "DYNAMODB_ESTIMATESTABLE", "ESTIMATES_TABLE")
	_ = v.BindEnv("app.port", "APP_PORT", "PORT")
	_ = v.BindEnv("auth.jwtSecret", "AUTH_JWTSECRET", "JWT_SECRET")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "Estimador API")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 8080)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("storage.driver", StorageDynamoDB)
	v.SetDefault("storage.sqlitePath", "estimador.db")

	v.SetDefault("dynamodb.region", "us-east-1")
	v.SetDefault("dynamodb.endpoint", "")
	v.SetDefault("dynamodb.accessKeyId", "local")
	v.SetDefault("dynamodb.secretAccessKey", "local")
	v.SetDefault("dynamodb.usersTable", "users")
	v.SetDefault("dynamodb.templatesTable", "templates")
	v.SetDefault("dynamodb.estimatesTable", "estimates")

	v.SetDefault("auth.jwtSecret", "")
	v.SetDefault("auth.issuer", "estimador")
	v.SetDefault("auth.tokenTTLMinutes", 480)

	v.SetDefault("bootstrap.adminUsername", "admin")
	v.SetDefault("bootstrap.adminPassword", "")

	v.SetDefault("server.enableSwagger", true)
}
