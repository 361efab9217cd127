package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Gallery  GalleryConfig
	Forms    FormsConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	OtelEnabled        bool
}

type DatabaseConfig struct {
	Connection string // empty -> in-memory repositories
}

type AuthConfig struct {
	JwtSecret string
}

type StorageConfig struct {
	Driver        string // "local" or "s3"
	Bucket        string
	LocalRoot     string
	PublicBaseURL string // CDN for s3; local falls back to App.BaseURL
	S3Region      string
	S3Endpoint    string // MinIO / LocalStack
}

type GalleryConfig struct {
	AdminUserId    string
	OwnerId        string // path namespace; defaults to AdminUserId
	UploadStrategy string // "atomic" or "legacy"
	MaxUploadBytes int64
	StateTTL       time.Duration
	EventTopic     string
}

type FormsConfig struct {
	SubmitDelay time.Duration
	ResetAfter  time.Duration
}

const (
	UploadStrategyAtomic = "atomic"
	UploadStrategyLegacy = "legacy"
)

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	adminId := getEnv("GALLERY_ADMIN_USER_ID", "")

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JwtSecret: getEnv("JWT_SECRET", ""),
		},
		Storage: StorageConfig{
			Driver:        getEnv("STORAGE_DRIVER", "local"),
			Bucket:        getEnv("STORAGE_BUCKET", "user_images"),
			LocalRoot:     getEnv("STORAGE_LOCAL_ROOT", "./storage"),
			PublicBaseURL: getEnv("STORAGE_PUBLIC_BASE_URL", ""),
			S3Region:      getEnv("S3_REGION", "us-east-1"),
			S3Endpoint:    getEnv("S3_ENDPOINT", ""),
		},
		Gallery: GalleryConfig{
			AdminUserId:    adminId,
			OwnerId:        getEnv("GALLERY_OWNER_ID", adminId),
			UploadStrategy: getEnv("UPLOAD_STRATEGY", UploadStrategyAtomic),
			MaxUploadBytes: int64(getEnvAsInt("UPLOAD_MAX_BYTES", 10*1024*1024)),
			StateTTL:       getEnvAsDuration("GALLERY_STATE_TTL", 24*time.Hour),
			EventTopic:     getEnv("GALLERY_EVENT_TOPIC", "gallery.slot_replaced"),
		},
		Forms: FormsConfig{
			SubmitDelay: getEnvAsDuration("FORM_SUBMIT_DELAY", 1500*time.Millisecond),
			ResetAfter:  getEnvAsDuration("FORM_RESET_AFTER", 4*time.Second),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("3s") or bare milliseconds ("3000").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}
