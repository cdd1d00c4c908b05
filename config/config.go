package config

import (
	"os"
	"strings"

	"pos-service/internal/database"

	"go.uber.org/zap"
)

type Config struct {
	Port string
	DB   DB

	KafkaBrokers []string
	KafkaTopic   string

	// Политики поведения заказа, различаются между точками
	AllowItemEditInPreparing bool
	EagerDirectDeduct        bool
	AllowCompletedCancel     bool
}

type DB struct {
	database.Config
}

func Load(log *zap.Logger) *Config {
	return &Config{
		Port: getEnv("APP_PORT", log),
		DB: DB{
			Config: database.Config{
				Host:     getEnv("DB_HOST", log),
				Port:     getEnv("DB_PORT", log),
				User:     getEnv("DB_USER", log),
				Password: getEnv("DB_PASSWORD", log),
				Name:     getEnv("DB_NAME", log),
				SSLMode:  getEnv("DB_SSLMODE", log),
			},
		},
		// Kafka необязателен: без брокеров события просто не публикуются
		KafkaBrokers: splitAndTrim(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getEnvDefault("KAFKA_TOPIC_ORDERS", "pos.orders"),

		AllowItemEditInPreparing: getEnvDefault("ALLOW_ITEM_EDIT_PREPARING", "false") == "true",
		EagerDirectDeduct:        getEnvDefault("EAGER_DIRECT_DEDUCT", "false") == "true",
		AllowCompletedCancel:     getEnvDefault("ALLOW_COMPLETED_CANCEL", "false") == "true",
	}
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("Обязательная переменная окружения не установлена", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func getEnvDefault(key, def string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := []string{}
	for _, p := range strings.Split(s, ",") {
		pt := strings.TrimSpace(p)
		if pt != "" {
			parts = append(parts, pt)
		}
	}
	return parts
}
