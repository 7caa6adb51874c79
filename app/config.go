package main

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"

	"github.com/sushihentaime/inkwell/internal/userservice"
)

const (
	storeDriverPostgres = "postgres"
	storeDriverMongo    = "mongo"
)

type Config struct {
	Port           string   `mapstructure:"PORT"`
	Environment    string   `mapstructure:"ENVIRONMENT"`
	Version        string   `mapstructure:"VERSION"`
	TrustedOrigins []string `mapstructure:"TRUSTED_ORIGINS"`
	TLSCertFile    string   `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile     string   `mapstructure:"TLS_KEY_FILE"`

	StoreDriver string `mapstructure:"STORE_DRIVER"`

	DBHost           string `mapstructure:"POSTGRES_HOST"`
	DBPort           string `mapstructure:"POSTGRES_PORT"`
	DBUser           string `mapstructure:"POSTGRES_USER"`
	DBPassword       string `mapstructure:"POSTGRES_PASSWORD"`
	DBName           string `mapstructure:"POSTGRES_DB"`
	MigrationsSource string `mapstructure:"MIGRATIONS_SOURCE"`

	MongoURI string `mapstructure:"MONGO_URI"`
	MongoDB  string `mapstructure:"MONGO_DB"`

	SecretAccessKey string        `mapstructure:"SECRET_ACCESS_KEY"`
	TokenTTL        time.Duration `mapstructure:"TOKEN_TTL"`

	AWSRegion          string        `mapstructure:"AWS_REGION"`
	AWSAccessKey       string        `mapstructure:"AWS_ACCESS_KEY"`
	AWSSecretAccessKey string        `mapstructure:"AWS_SECRET_ACCESS_KEY"`
	AWSBucket          string        `mapstructure:"AWS_BUCKET"`
	UploadURLExpiry    time.Duration `mapstructure:"UPLOAD_URL_EXPIRY"`

	MailHost      string `mapstructure:"MAIL_HOST"`
	MailPort      int    `mapstructure:"MAIL_PORT"`
	MailUser      string `mapstructure:"MAIL_USER"`
	MailPassword  string `mapstructure:"MAIL_PASSWORD"`
	MailSender    string `mapstructure:"MAIL_SENDER"`
	MailRecipient string `mapstructure:"MAIL_RECIPIENT"`

	MQHost     string `mapstructure:"RABBITMQ_HOST"`
	MQPort     string `mapstructure:"RABBITMQ_PORT"`
	MQUser     string `mapstructure:"RABBITMQ_USER"`
	MQPassword string `mapstructure:"RABBITMQ_PASSWORD"`

	CacheTTL time.Duration `mapstructure:"CACHE_TTL"`
}

var configDefaults = map[string]any{
	"PORT":                  "3000",
	"ENVIRONMENT":           "development",
	"VERSION":               "1.0.0",
	"TRUSTED_ORIGINS":       "",
	"TLS_CERT_FILE":         "",
	"TLS_KEY_FILE":          "",
	"STORE_DRIVER":          storeDriverPostgres,
	"POSTGRES_HOST":         "localhost",
	"POSTGRES_PORT":         "5432",
	"POSTGRES_USER":         "",
	"POSTGRES_PASSWORD":     "",
	"POSTGRES_DB":           "",
	"MIGRATIONS_SOURCE":     "",
	"MONGO_URI":             "mongodb://localhost:27017",
	"MONGO_DB":              "inkwell",
	"SECRET_ACCESS_KEY":     "",
	"TOKEN_TTL":             userservice.AccessTokenTime,
	"AWS_REGION":            "us-east-1",
	"AWS_ACCESS_KEY":        "",
	"AWS_SECRET_ACCESS_KEY": "",
	"AWS_BUCKET":            "",
	"UPLOAD_URL_EXPIRY":     "1000s",
	"MAIL_HOST":             "",
	"MAIL_PORT":             587,
	"MAIL_USER":             "",
	"MAIL_PASSWORD":         "",
	"MAIL_SENDER":           "",
	"MAIL_RECIPIENT":        "",
	"RABBITMQ_HOST":         "",
	"RABBITMQ_PORT":         "5672",
	"RABBITMQ_USER":         "",
	"RABBITMQ_PASSWORD":     "",
	"CACHE_TTL":             "1m",
}

// loadConfig reads path as a .env file. Environment variables override file values and a
// missing file falls back to the environment alone.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range configDefaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	if c.SecretAccessKey == "" {
		return errors.New("SECRET_ACCESS_KEY must be provided")
	}

	switch c.StoreDriver {
	case storeDriverPostgres, storeDriverMongo:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.TokenTTL < 0 {
		return errors.New("TOKEN_TTL must not be negative")
	}

	return nil
}

func (c *Config) rabbitMQURI() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", c.MQUser, c.MQPassword, c.MQHost, c.MQPort)
}
