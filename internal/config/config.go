package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For comma-separated lists

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort     string   // Application port
	DBUser      string   // Database user
	DBPassword  string   // Database password
	DBHost      string   // Database host
	DBPort      string   // Database port
	DBName      string   // Database name
	JWTSecret   string   // JWT secret key
	RedisAddr   string   // Redis server address
	RedisPass   string   // Redis password
	RedisDB     int      // Redis database number
	S3AccessKey string   // Object storage access key
	S3SecretKey string   // Object storage secret key
	S3Region    string   // Object storage region
	S3Bucket    string   // Object storage bucket for resource files
	S3Endpoint  string   // Optional custom endpoint (S3-compatible stores)
	GeminiKey   string   // Gemini API key; empty disables summarization
	GeminiModel string   // Gemini model name
	CORSOrigins []string // Allowed browser origins
	IsProd      bool     // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.5-flash" // Default summarization model
	}
	origins := []string{"http://localhost:5173"} // Default SPA dev origin
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		origins = strings.Split(raw, ",") // Comma-separated origin list
	}
	return &Config{
		AppPort:     os.Getenv("APP_PORT"),          // Application port
		DBUser:      os.Getenv("DB_USER"),           // Database user
		DBPassword:  os.Getenv("DB_PASSWORD"),       // Database password
		DBHost:      os.Getenv("DB_HOST"),           // Database host
		DBPort:      os.Getenv("DB_PORT"),           // Database port
		DBName:      os.Getenv("DB_NAME"),           // Database name
		JWTSecret:   os.Getenv("JWT_SECRET"),        // JWT secret key
		RedisAddr:   os.Getenv("REDIS_ADDR"),        // Redis server address
		RedisPass:   os.Getenv("REDIS_PASS"),        // Redis password
		RedisDB:     redisDB,                        // Redis database number
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),     // Object storage access key
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),     // Object storage secret key
		S3Region:    os.Getenv("S3_REGION"),         // Object storage region
		S3Bucket:    os.Getenv("S3_BUCKET"),         // Object storage bucket
		S3Endpoint:  os.Getenv("S3_ENDPOINT"),       // Optional custom endpoint
		GeminiKey:   os.Getenv("GEMINI_API_KEY"),    // Gemini API key
		GeminiModel: model,                          // Gemini model name
		CORSOrigins: origins,                        // Allowed browser origins
		IsProd:      os.Getenv("IS_PROD") == "true", // Is production environment
	}
}
