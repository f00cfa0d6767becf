package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Event brokers.
const (
	BrokerNone     = "none"
	BrokerLog      = "log"
	BrokerKafka    = "kafka"
	BrokerRabbitMQ = "rabbitmq"
)

type Config struct {
	HTTPPort string `yaml:"http_port"`

	StorageDriver string `yaml:"storage_driver"`
	DBHost        string `yaml:"db_host"`
	DBPort        string `yaml:"db_port"`
	DBUser        string `yaml:"db_user"`
	DBPassword    string `yaml:"db_password"`
	DBName        string `yaml:"db_name"`
	DBSslMode     string `yaml:"db_sslmode"`

	ActivationSweepSchedule string `yaml:"activation_sweep_schedule"`
	TransitionSweepSchedule string `yaml:"transition_sweep_schedule"`

	EventsBroker           string `yaml:"events_broker"`
	KafkaHost              string `yaml:"kafka_host"`
	KafkaOrderChangedTopic string `yaml:"kafka_order_changed_topic"`
	RabbitMQURL            string `yaml:"rabbitmq_url"`
	RabbitMQExchange       string `yaml:"rabbitmq_exchange"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	SeedMenu bool `yaml:"seed_menu"`
}

// DefaultConfig returns the settings used when nothing else is configured.
func DefaultConfig() Config {
	return Config{
		HTTPPort:                "8080",
		StorageDriver:           StoragePostgres,
		DBHost:                  "localhost",
		DBPort:                  "5432",
		DBSslMode:               "disable",
		ActivationSweepSchedule: "@every 60s",
		TransitionSweepSchedule: "@every 5s",
		EventsBroker:            BrokerNone,
		KafkaOrderChangedTopic:  "order.status.changed",
		RabbitMQExchange:        "order.status",
		LogLevel:                "info",
		LogFormat:               "json",
	}
}

// LoadConfig layers, lowest priority first: defaults, the YAML file at path
// (skipped when path is empty), a .env file in the working directory when
// present, and the process environment.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err = yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

func applyEnvOverrides(cfg *Config) error {
	vars := map[string]*string{
		"HTTP_PORT":                 &cfg.HTTPPort,
		"STORAGE_DRIVER":            &cfg.StorageDriver,
		"DB_HOST":                   &cfg.DBHost,
		"DB_PORT":                   &cfg.DBPort,
		"DB_USER":                   &cfg.DBUser,
		"DB_PASSWORD":               &cfg.DBPassword,
		"DB_NAME":                   &cfg.DBName,
		"DB_SSLMODE":                &cfg.DBSslMode,
		"ACTIVATION_SWEEP_SCHEDULE": &cfg.ActivationSweepSchedule,
		"TRANSITION_SWEEP_SCHEDULE": &cfg.TransitionSweepSchedule,
		"EVENTS_BROKER":             &cfg.EventsBroker,
		"KAFKA_HOST":                &cfg.KafkaHost,
		"KAFKA_ORDER_CHANGED_TOPIC": &cfg.KafkaOrderChangedTopic,
		"RABBITMQ_URL":              &cfg.RabbitMQURL,
		"RABBITMQ_EXCHANGE":         &cfg.RabbitMQExchange,
		"LOG_LEVEL":                 &cfg.LogLevel,
		"LOG_FORMAT":                &cfg.LogFormat,
	}
	for key, field := range vars {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*field = v
		}
	}

	if v, ok := os.LookupEnv("SEED_MENU"); ok && v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SEED_MENU %q: %w", v, err)
		}
		cfg.SeedMenu = seed
	}
	return nil
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	var err error

	switch c.StorageDriver {
	case StoragePostgres, StorageMemory:
	default:
		err = errors.Join(err, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver))
	}

	switch c.EventsBroker {
	case BrokerNone, BrokerLog:
	case BrokerKafka:
		if c.KafkaHost == "" {
			err = errors.Join(err, errors.New("KAFKA_HOST is required for the kafka broker"))
		}
	case BrokerRabbitMQ:
		if c.RabbitMQURL == "" {
			err = errors.Join(err, errors.New("RABBITMQ_URL is required for the rabbitmq broker"))
		}
	default:
		err = errors.Join(err, fmt.Errorf("unknown EVENTS_BROKER %q", c.EventsBroker))
	}

	return err
}

// DSN is the Postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// KafkaBrokers splits KAFKA_HOST on commas.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
