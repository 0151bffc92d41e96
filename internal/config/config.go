package config

import (
	"os"
	"strconv"
	"time"
	_ "time/tzdata"
)

type Config struct {
	Env      string
	Port     string
	Timezone *time.Location

	JWTSecret string

	DB    DatabaseConfig
	Redis RedisConfig
	Kafka KafkaConfig
	SMTP  SMTPConfig

	TelegramBotToken    string
	TelegramAlertChatID int64

	UploadDir            string
	UploadCallbackSecret string

	EvaluatorInterval  time.Duration
	OutboxPollInterval time.Duration
}

type DatabaseConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
	// AutoMigrate applies embedded migrations when the API starts.
	AutoMigrate bool
}

type RedisConfig struct {
	Addr string
}

type KafkaConfig struct {
	Broker string
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Load reads the process environment. Call godotenv.Load before it when a
// .env file should be honored.
func Load() Config {
	loc, err := time.LoadLocation(getEnv("APP_TIMEZONE", "UTC"))
	if err != nil {
		loc = time.UTC
	}

	return Config{
		Env:       getEnv("APP_ENV", "development"),
		Port:      getEnv("APP_PORT", "8080"),
		Timezone:  loc,
		JWTSecret: os.Getenv("JWT_SECRET"),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnv("DB_NAME", "hrpay"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),

			AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{Addr: getEnv("REDIS_ADDR", "localhost:6379")},
		Kafka: KafkaConfig{Broker: os.Getenv("KAFKA_BROKER")},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnvInt("SMTP_PORT", 587),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getEnv("SMTP_FROM", "no-reply@hrpay.local"),
		},
		TelegramBotToken:     os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramAlertChatID:  getEnvInt64("TELEGRAM_ALERT_CHAT_ID", 0),
		UploadDir:            getEnv("UPLOAD_DIR", "./uploads"),
		UploadCallbackSecret: os.Getenv("UPLOAD_CALLBACK_SECRET"),
		EvaluatorInterval:    getEnvDuration("EVALUATOR_INTERVAL", 24*time.Hour),
		OutboxPollInterval:   getEnvDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
	}
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
