package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig collects everything the server needs at startup.
type AppConfig struct {
	ListenAddr    string
	Port          string
	GinMode       string
	SessionSecret string

	// Record store. DatabaseURL selects postgres; when empty the server
	// falls back to a local sqlite file at DatabasePath.
	DatabaseURL  string
	DatabasePath string

	// Blob store. StorageDriver is one of supabase, s3, local.
	StorageDriver     string
	StorageBaseURL    string
	StorageBucket     string
	StorageServiceKey string
	S3Region          string
	S3Endpoint        string
	S3AccessKey       string
	S3SecretKey       string
	S3PublicBaseURL   string
	UploadDir         string
	UploadURLPath     string

	AdminUsername string
	AdminPassword string

	LogLevel  string
	LogPretty bool
}

// Load reads application configuration from environment variables and
// provides safe defaults for missing entries. A .env file in the working
// directory is honored when present.
func Load() AppConfig {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load .env file: %v", err)
	}

	port := getEnv("PORT", "8080")
	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	return AppConfig{
		ListenAddr:    listenAddr,
		Port:          port,
		GinMode:       getEnv("GIN_MODE", "release"),
		SessionSecret: getEnv("SESSION_SECRET", "teamsite-dev-secret"),

		DatabaseURL:  getEnv("DATABASE_URL", ""),
		DatabasePath: getEnv("DATABASE_PATH", "teamsite.db"),

		StorageDriver:     strings.ToLower(getEnv("STORAGE_DRIVER", "supabase")),
		StorageBaseURL:    strings.TrimRight(getEnv("STORAGE_BASE_URL", ""), "/"),
		StorageBucket:     getEnv("STORAGE_BUCKET", "image"),
		StorageServiceKey: getEnv("STORAGE_SERVICE_KEY", ""),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3AccessKey:       getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:       getEnv("S3_SECRET_KEY", ""),
		S3PublicBaseURL:   strings.TrimRight(getEnv("S3_PUBLIC_BASE_URL", ""), "/"),
		UploadDir:         getEnv("UPLOAD_DIR", "web/static/uploads"),
		UploadURLPath:     getEnv("UPLOAD_URL_PATH", "/static/uploads"),

		AdminUsername: getEnv("ADMIN_USERNAME", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: strings.EqualFold(getEnv("LOG_PRETTY", "false"), "true"),
	}
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
