package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration, loaded once at startup.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Uploads  UploadConfig
	Auth     AuthConfig
	Realtime RealtimeConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// StoreConfig holds Badger settings.
type StoreConfig struct {
	Path string
}

// UploadConfig holds comment image upload settings.
type UploadConfig struct {
	Dir          string
	MaxFileSize  int64
	MaxPerUpload int
}

// AuthConfig holds session token settings.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// RealtimeConfig holds websocket hub settings.
type RealtimeConfig struct {
	SendBufferSize  int
	WriteWait       time.Duration
	PongWait        time.Duration
	MaxMessageBytes int64
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
}

// Load reads configuration from environment variables or a .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Store: StoreConfig{
			Path: getEnv("STORE_PATH", "data/badger"),
		},
		Uploads: UploadConfig{
			Dir:          getEnv("UPLOAD_DIR", "data/uploads/comments"),
			MaxFileSize:  getEnvAsInt64("UPLOAD_MAX_FILE_SIZE", 5*1024*1024),
			MaxPerUpload: getEnvAsInt("UPLOAD_MAX_FILES", 3),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET_KEY", ""),
			TokenTTL:  getEnvAsDuration("JWT_TOKEN_TTL", 24*time.Hour),
		},
		Realtime: RealtimeConfig{
			SendBufferSize:  getEnvAsInt("WS_SEND_BUFFER", 32),
			WriteWait:       getEnvAsDuration("WS_WRITE_WAIT", 10*time.Second),
			PongWait:        getEnvAsDuration("WS_PONG_WAIT", 60*time.Second),
			MaxMessageBytes: getEnvAsInt64("WS_MAX_MESSAGE_BYTES", 64*1024),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if strings.ToLower(env) == "production" && cfg.Auth.JWTSecret == "" {
		log.Fatal("Missing required production environment variable: JWT_SECRET_KEY")
	}

	return cfg
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}

// getEnvAsInt64 gets an env var as an int64, with a fallback.
func getEnvAsInt64(key string, defaultValue int64) int64 {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.ParseInt(strValue, 10, 64)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}

// getEnvAsDuration gets an env var as a duration, with a fallback.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as duration. Using default value.", key)
		return defaultValue
	}
	return d
}
