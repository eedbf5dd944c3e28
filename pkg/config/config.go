package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Firefly  FireflyConfig
	LLM      LLMConfig
	GigaChat GigaChatConfig
	Gemini   GeminiConfig
	Cache    CacheConfig
	Recorder RecorderConfig
	Settings SettingsConfig
	Auth     AuthConfig
	JWT      JWTConfig
	History  HistoryConfig
	Database DatabaseConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FireflyConfig describes the ledger connection and the fixed parts of the
// withdrawal payload.
type FireflyConfig struct {
	URL               string
	APIKey            string
	Timeout           time.Duration
	DefaultCategory   string
	SourceID          string
	SourceName        string
	DestinationID     string
	DestinationName   string
	CurrencyID        string
	BudgetID          int
	TransactionsLimit int
	CategoriesLimit   int
	TagsLimit         int
	AccountsLimit     int
}

type LLMConfig struct {
	Provider    string
	Temperature float64
}

type GigaChatConfig struct {
	APIKey             string
	Scope              string
	Model              string
	InsecureSkipVerify bool
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type CacheConfig struct {
	TTL time.Duration
}

type RecorderConfig struct {
	Concurrency int
}

type SettingsConfig struct {
	Path string
}

type AuthConfig struct {
	Enabled  bool
	Username string
	Password string
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
	RefreshExp time.Duration
}

type HistoryConfig struct {
	Enabled bool
	Limit   int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

const (
	ProviderGigaChat = "gigachat"
	ProviderGemini   = "gemini"
)

func Load() (*Config, error) {
	// .env is optional; plain environment variables work the same way (Docker/K8s)
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout := getEnvInt("SERVER_READ_TIMEOUT", 30)
	writeTimeout := getEnvInt("SERVER_WRITE_TIMEOUT", 100)
	fireflyTimeout := getEnvInt("FIREFLY_TIMEOUT_SECONDS", 30)
	jwtExp := getEnvInt("JWT_EXPIRATION_HOURS", 24)
	refreshExp := getEnvInt("JWT_REFRESH_EXPIRATION_HOURS", 168)
	cacheTTL := getEnvInt("CACHE_TTL_SECONDS", 600)
	temperature, err := strconv.ParseFloat(getEnv("LLM_TEMPERATURE", "0.3"), 64)
	if err != nil {
		temperature = 0.3
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "5001"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Firefly: FireflyConfig{
			URL:               getEnv("FIREFLY_III_URL", "http://localhost:8080"),
			APIKey:            getEnv("FIREFLY_III_API_KEY", ""),
			Timeout:           time.Duration(fireflyTimeout) * time.Second,
			DefaultCategory:   getEnv("FIREFLY_DEFAULT_CATEGORY", "Dining"),
			SourceID:          getEnv("FIREFLY_SOURCE_ID", "1"),
			SourceName:        getEnv("FIREFLY_SOURCE_NAME", ""),
			DestinationID:     getEnv("FIREFLY_DESTINATION_ID", "4"),
			DestinationName:   getEnv("FIREFLY_DESTINATION_NAME", ""),
			CurrencyID:        getEnv("FIREFLY_CURRENCY_ID", "20"),
			BudgetID:          getEnvInt("FIREFLY_BUDGET_ID", 1),
			TransactionsLimit: getEnvInt("FIREFLY_TRANSACTIONS_LIMIT", 100),
			CategoriesLimit:   getEnvInt("FIREFLY_CATEGORIES_LIMIT", 100),
			TagsLimit:         getEnvInt("FIREFLY_TAGS_LIMIT", 500),
			AccountsLimit:     getEnvInt("FIREFLY_ACCOUNTS_LIMIT", 100),
		},
		LLM: LLMConfig{
			Provider:    getEnv("LLM_PROVIDER", ProviderGigaChat),
			Temperature: temperature,
		},
		GigaChat: GigaChatConfig{
			APIKey:             getEnv("GIGACHAT_API_KEY", ""),
			Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			Model:              getEnv("GIGACHAT_MODEL", "GigaChat"),
			InsecureSkipVerify: getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "true") == "true",
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Cache: CacheConfig{
			TTL: time.Duration(cacheTTL) * time.Second,
		},
		Recorder: RecorderConfig{
			Concurrency: getEnvInt("RECORD_CONCURRENCY", 0),
		},
		Settings: SettingsConfig{
			Path: getEnv("USER_CONFIG_PATH", "user_configs.json"),
		},
		Auth: AuthConfig{
			Enabled:  getEnv("AUTH_ENABLED", "false") == "true",
			Username: getEnv("AUTH_USERNAME", "admin"),
			Password: getEnv("AUTH_PASSWORD", ""),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration: time.Duration(jwtExp) * time.Hour,
			RefreshExp: time.Duration(refreshExp) * time.Hour,
		},
		History: HistoryConfig{
			Enabled: getEnv("HISTORY_ENABLED", "false") == "true",
			Limit:   getEnvInt("HISTORY_LIMIT", 20),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "firefly_assistant"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return value
}
