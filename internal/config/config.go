package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Session   SessionConfig
	Documents DocumentConfig
	Ai        AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
}

type SessionConfig struct {
	TTLSeconds        int
	MaxHistory        int
	ContextWindowSize int
}

type DocumentConfig struct {
	StorePath     string
	UploadDir     string
	ChunkSize     int
	ChunkOverlap  int
	TopK          int
	MaxUploadSize int
}

type AIConfig struct {
	OpenAIBaseURL   string
	OpenAIAPIKey    string
	OpenAIModel     string
	DeepSeekBaseURL string
	DeepSeekAPIKey  string
	DeepSeekModel   string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Session: SessionConfig{
			TTLSeconds:        getEnvAsInt("SESSION_TTL_SECONDS", 86400),
			MaxHistory:        getEnvAsInt("SESSION_MAX_HISTORY", 20),
			ContextWindowSize: getEnvAsInt("SESSION_CONTEXT_WINDOW", 6),
		},
		Documents: DocumentConfig{
			StorePath:     getEnv("DOCUMENT_STORE_PATH", "document_store"),
			UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
			ChunkSize:     getEnvAsInt("CHUNK_SIZE", 1000),
			ChunkOverlap:  getEnvAsInt("CHUNK_OVERLAP", 200),
			TopK:          getEnvAsInt("SEARCH_TOP_K", 5),
			MaxUploadSize: getEnvAsInt("MAX_UPLOAD_SIZE", 50*1024*1024),
		},
		Ai: AIConfig{
			OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			DeepSeekBaseURL: getEnv("DEEPSEEK_BASE_URL", "https://api.deepseek.com/v1"),
			DeepSeekAPIKey:  getEnv("DEEPSEEK_API_KEY", ""),
			DeepSeekModel:   getEnv("DEEPSEEK_MODEL", "deepseek-chat"),
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
