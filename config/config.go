package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the messaging core. It follows the
// 12-factor methodology: everything comes from environment variables with
// documented defaults.
type Config struct {
	AppPort string
	AppMode string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisHost       string
	RedisPort       string
	RedisPassword   string
	RedisDB         int
	AnalyticsStream string

	// Conversation defaults applied when a create request omits them.
	DefaultTimezone        string
	DefaultQuietHoursStart string
	DefaultQuietHoursEnd   string
	DefaultGreeting        string
	RetentionDays          int

	// AI-assist suggestion pipeline. Endpoint and key are optional; when
	// unset the heuristic classifier serves every request.
	AIAssistModel          string
	AIAssistEndpoint       string
	AIAssistAPIKey         string
	SuggestionTemperature  float64
	AIAssistTimeoutSeconds int

	// Realtime audio/video token credentials. Both must be set for video
	// sessions to be available.
	RealtimeAppID           string
	RealtimeAppSecret       string
	RealtimeTokenTTLSeconds int

	// Attachment storage.
	S3Region     string
	S3Bucket     string
	S3AccessKey  string
	S3SecretKey  string
	S3Endpoint   string
	S3PresignTTL int
}

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		AppPort: getEnv("APP_PORT", "8080"),
		AppMode: getEnv("APP_MODE", "debug"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "markethub_messaging"),
		DBPort:     getEnv("DB_PORT", "5432"),

		RedisHost:       getEnv("REDIS_HOST", "localhost"),
		RedisPort:       getEnv("REDIS_PORT", "6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvAsInt("REDIS_DB", 0),
		AnalyticsStream: getEnv("ANALYTICS_STREAM", "communications.events"),

		DefaultTimezone:        getEnv("DEFAULT_TIMEZONE", "UTC"),
		DefaultQuietHoursStart: getEnv("DEFAULT_QUIET_HOURS_START", "22:00"),
		DefaultQuietHoursEnd:   getEnv("DEFAULT_QUIET_HOURS_END", "07:00"),
		DefaultGreeting:        getEnv("DEFAULT_GREETING", "Thanks for reaching out! How can we help?"),
		RetentionDays:          getEnvAsInt("RETENTION_DAYS", 365),

		AIAssistModel:          getEnv("AI_ASSIST_MODEL", "gpt-4o-mini"),
		AIAssistEndpoint:       getEnv("AI_ASSIST_ENDPOINT", ""),
		AIAssistAPIKey:         getEnv("AI_ASSIST_API_KEY", ""),
		SuggestionTemperature:  getEnvAsFloat("SUGGESTION_TEMPERATURE", 0.7),
		AIAssistTimeoutSeconds: getEnvAsInt("AI_ASSIST_TIMEOUT_SECONDS", 4),

		RealtimeAppID:           getEnv("REALTIME_APP_ID", ""),
		RealtimeAppSecret:       getEnv("REALTIME_APP_SECRET", ""),
		RealtimeTokenTTLSeconds: getEnvAsInt("REALTIME_TOKEN_TTL_SECONDS", 3600),

		S3Region:     getEnv("S3_REGION", ""),
		S3Bucket:     getEnv("S3_BUCKET", ""),
		S3AccessKey:  getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:  getEnv("S3_SECRET_KEY", ""),
		S3Endpoint:   getEnv("S3_ENDPOINT", ""),
		S3PresignTTL: getEnvAsInt("S3_PRESIGN_TTL_SECONDS", 900),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return fallback
}
