package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	GinMode string

	MongoURI      string
	MongoDatabase string

	RabbitMQURI      string
	RabbitMQExchange string

	OracleBaseURL string
	OracleAPIKey  string
	OracleModel   string
	OracleTimeout time.Duration

	JWTSecret string

	QuizQuestionCount int
	ChatHistoryTTL    time.Duration
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),

		MongoURI:      getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOrDefault("MONGO_DB", "assessment"),

		RabbitMQURI:      getEnvOrDefault("RABBITMQ_URI", ""),
		RabbitMQExchange: getEnvOrDefault("RABBITMQ_EXCHANGE", "assessment.events"),

		OracleBaseURL: getEnvOrDefault("ORACLE_BASE_URL", "http://localhost:11434/v1"),
		OracleAPIKey:  getEnvOrDefault("ORACLE_API_KEY", "none"),
		OracleModel:   getEnvOrDefault("ORACLE_MODEL", "llama3.2"),
		OracleTimeout: getDurationOrDefault("ORACLE_TIMEOUT", 120*time.Second),

		JWTSecret: getEnvOrDefault("JWT_SECRET", "your-secret-key"),

		QuizQuestionCount: getIntOrDefault("QUIZ_QUESTION_COUNT", 10),
		ChatHistoryTTL:    getDurationOrDefault("CHAT_HISTORY_TTL", 30*time.Minute),
	}

	log.Printf("Config loaded: port=%s db=%s oracle=%s model=%s",
		AppConfig.Port, AppConfig.MongoDatabase, AppConfig.OracleBaseURL, AppConfig.OracleModel)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Warning: invalid value for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Warning: invalid value for %s, using default %s", key, defaultValue)
	}
	return defaultValue
}
