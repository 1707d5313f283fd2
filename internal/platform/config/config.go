package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string
	Env     string
	JWTKey  []byte
	JWTExp  time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CourseCacheTTL time.Duration

	GenAIBaseURL string
	GenAIAPIKey  string
	GenAIModel   string

	SendgridAPIKey string
	EmailFromName  string
	EmailFromAddr  string

	AdminName     string
	AdminEmail    string
	AdminPassword string
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort: getEnv("API_PORT", "8080"),
		Env:     getEnv("APP_ENV", "development"),
		JWTKey:  []byte(getEnv("JWT_SECRET", "defaultsecret")),
		// Access tokens live for 7 days; there is no refresh or revocation.
		JWTExp: time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 168)) * time.Hour,

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "user"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "courseapp_db"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		CourseCacheTTL: time.Duration(getEnvAsInt("COURSE_CACHE_TTL_SECONDS", 60)) * time.Second,

		GenAIBaseURL: getEnv("GENAI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GenAIAPIKey:  getEnv("GENAI_API_KEY", ""),
		GenAIModel:   getEnv("GENAI_MODEL", "gemini-1.5-flash"),

		SendgridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailFromName:  getEnv("EMAIL_FROM_NAME", "CourseApp"),
		EmailFromAddr:  getEnv("EMAIL_FROM_ADDR", "no-reply@courseapp.local"),

		AdminName:     getEnv("ADMIN_NAME", "Super Admin"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "Admin@123"),
	}

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
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
