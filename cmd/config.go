package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort string `mapstructure:"HTTP_PORT"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSslMode  string `mapstructure:"DB_SSLMODE"`

	LogLevel       string `mapstructure:"LOG_LEVEL"`
	LogDevelopment bool   `mapstructure:"LOG_DEVELOPMENT"`

	AuthSecret     string        `mapstructure:"AUTH_SECRET"`
	AuthTokenTTL   time.Duration `mapstructure:"AUTH_TOKEN_TTL"`
	AuthBcryptCost int           `mapstructure:"AUTH_BCRYPT_COST"`
	ServiceKey     string        `mapstructure:"SERVICE_KEY"`

	KafkaBrokers          []string `mapstructure:"KAFKA_BROKERS"`
	KafkaOrderEventsTopic string   `mapstructure:"KAFKA_ORDER_EVENTS_TOPIC"`

	PushGatewayURL     string        `mapstructure:"PUSH_GATEWAY_URL"`
	PushGatewayAPIKey  string        `mapstructure:"PUSH_GATEWAY_API_KEY"`
	PushGatewayTimeout time.Duration `mapstructure:"PUSH_GATEWAY_TIMEOUT"`

	OutboxRelaySchedule  string `mapstructure:"OUTBOX_RELAY_SCHEDULE"`
	OutboxRelayBatchSize int    `mapstructure:"OUTBOX_RELAY_BATCH_SIZE"`

	ArchiveSchedule  string        `mapstructure:"ARCHIVE_SCHEDULE"`
	ArchiveRetention time.Duration `mapstructure:"ARCHIVE_RETENTION"`
	ArchiveBatchSize int           `mapstructure:"ARCHIVE_BATCH_SIZE"`

	DefaultDeliveryFeePaise int64 `mapstructure:"DEFAULT_DELIVERY_FEE_PAISE"`
}

var configDefaults = map[string]any{
	"HTTP_PORT": "8080",

	"DB_HOST":     "localhost",
	"DB_PORT":     "5432",
	"DB_USER":     "postgres",
	"DB_PASSWORD": "",
	"DB_NAME":     "bolpurmart",
	"DB_SSLMODE":  "disable",

	"LOG_LEVEL":       "info",
	"LOG_DEVELOPMENT": false,

	"AUTH_SECRET":      "",
	"AUTH_TOKEN_TTL":   "720h",
	"AUTH_BCRYPT_COST": 0,
	"SERVICE_KEY":      "",

	"KAFKA_BROKERS":            "localhost:9092",
	"KAFKA_ORDER_EVENTS_TOPIC": "order.lifecycle",

	"PUSH_GATEWAY_URL":     "",
	"PUSH_GATEWAY_API_KEY": "",
	"PUSH_GATEWAY_TIMEOUT": "5s",

	"OUTBOX_RELAY_SCHEDULE":   "*/2 * * * * *",
	"OUTBOX_RELAY_BATCH_SIZE": 100,

	"ARCHIVE_SCHEDULE":   "0 0 3 * * *",
	"ARCHIVE_RETENTION":  "720h",
	"ARCHIVE_BATCH_SIZE": 500,

	"DEFAULT_DELIVERY_FEE_PAISE": 3000,
}

// LoadConfig reads envFile if it exists, then the environment. Values from the process
// environment win over the file.
func LoadConfig(v *viper.Viper, envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	for key, value := range configDefaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// DSN is the libpq connection string for gorm and the change listener. Every value is
// quoted so that empty values and values with spaces survive parsing.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dsnValue(c.DBHost), dsnValue(c.DBPort), dsnValue(c.DBUser),
		dsnValue(c.DBPassword), dsnValue(c.DBName), dsnValue(c.DBSslMode))
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func dsnValue(v string) string {
	return "'" + dsnEscaper.Replace(v) + "'"
}
