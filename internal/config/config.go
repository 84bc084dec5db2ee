package config

import (
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/nimasrn/branch-backoffice/pkg/logger"
	"github.com/pkg/errors"
)

const ConfigTagName = "env"
const ConfigDefaultTagName = "default"

var config *Config

// Config holds every configuration value used by the back-office
// binaries. Only this struct must be used to hold configuration,
// no direct access to env or any other config source should be made.
type Config struct {
	AppEnv              string `env:"APP_ENV" default:"dev"`
	AppName             string `env:"APP_NAME" default:"branch_backoffice"`
	AppDebug            bool   `env:"APP_DEBUG" default:"1"`
	AppDebugMetricsAddr string `env:"APP_DEBUG_METRIC_ADDR"`
	AppDebugMetricsURI  string `env:"APP_DEBUG_METRIC_URI"`

	HttpListenAddr         string `env:"HTTP_LISTEN_ADDR" validation:"mustExists"`
	HttpServerReadTimeout  int    `env:"HTTP_SERVER_READ_TIMEOUT"`
	HttpServerWriteTimeout int    `env:"HTTP_SERVER_WRITE_TIMEOUT"`

	PostgresReadHost     string `env:"POSTGRES_READ_HOST"`
	PostgresReadPort     string `env:"POSTGRES_READ_PORT"`
	PostgresReadUser     string `env:"POSTGRES_READ_USER"`
	PostgresReadPassword string `env:"POSTGRES_READ_PASSWORD"`
	PostgresReadDatabase string `env:"POSTGRES_READ_DBNAME"`

	PostgresWriteHost     string `env:"POSTGRES_WRITE_HOST"`
	PostgresWritePort     string `env:"POSTGRES_WRITE_PORT"`
	PostgresWriteUser     string `env:"POSTGRES_WRITE_USER"`
	PostgresWritePassword string `env:"POSTGRES_WRITE_PASSWORD"`
	PostgresWriteDatabase string `env:"POSTGRES_WRITE_DBNAME"`

	RedisAddr               string `env:"REDIS_ADDR"`
	RedisUsername           string `env:"REDIS_USER"`
	RedisPassword           string `env:"REDIS_PASS"`
	RedisDatabase           int    `env:"REDIS_DATABASE"`
	RedisUniversalKeyPrefix string `env:"REDIS_UNIVERSAL_KEY_PREFIX"`

	PromNamespace  string `env:"PROM_NAMESPACE"`
	PromListenAddr string `env:"PROM_LISTEN_ADDR" default:":9100"`

	LogLevel []string `env:"LOG_LEVEL"`

	SessionTokenTTL time.Duration `env:"SESSION_TOKEN_TTL" default:"12h"`

	NotifyQueueName              string        `env:"NOTIFY_QUEUE_NAME" default:"notifications"`
	NotifyQueueConsumerGroup     string        `env:"NOTIFY_QUEUE_CONSUMER_GROUP" default:"notifier"`
	NotifyQueueConsumerName      string        `env:"NOTIFY_QUEUE_CONSUMER_NAME"`
	NotifyQueueMaxRetries        int           `env:"NOTIFY_QUEUE_MAX_RETRIES" default:"3"`
	NotifyQueueVisibilityTimeout time.Duration `env:"NOTIFY_QUEUE_VISIBILITY_TIMEOUT" default:"30s"`
	NotifyQueuePollInterval      time.Duration `env:"NOTIFY_QUEUE_POLL_INTERVAL" default:"100ms"`
	NotifyQueueBatchSize         int64         `env:"NOTIFY_QUEUE_BATCH_SIZE" default:"10"`
	NotifyQueueMaxLen            int64         `env:"NOTIFY_QUEUE_MAX_LEN"`
	NotifyQueueEnableDLQ         bool          `env:"NOTIFY_QUEUE_ENABLE_DLQ" default:"1"`

	ChatServiceBaseUrl string `env:"CHAT_SERVICE_BASE_URL"`
	ChatServiceToken   string `env:"CHAT_SERVICE_TOKEN"`
}

func Load(path string) error {
	logger.Info("loading configs..", "path", path)
	c := &Config{}
	var err error
	if path != "" {
		logger.Info("trying to publish env from file", "path", path)
		err = godotenv.Load(path)
		if err != nil {
			return errors.New("failed to load configuration file " + path + " error: " + err.Error())
		}
	}

	_, err = env.UnmarshalFromEnviron(c)

	if err != nil {
		return errors.New("failed to map env variables to Configuration object " + " error: " + err.Error())
	}

	config = c
	return nil
}

func Get() *Config {
	if config == nil {
		logger.Panic("Config is not initialized")
	}
	return config
}
