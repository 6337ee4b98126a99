package config

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds the project config values
type Config struct {
	URL                 string
	DatabaseName        string
	BaseURL             string
	Port                string
	StoreBackend        string
	DataFile            string
	GeminiAPIKey        string
	GeminiModel         string
	OfficerEmail        string
	OfficerPasswordHash string
	DigestEmail         string
}

// New sets up all config related services
func New() *Config {

	// a local .env is optional; deployed pods rely on real environment variables
	_ = godotenv.Load()

	//setup zap logger and replace default logger
	logger := zap.NewExample()
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		URL:                 os.Getenv("DB_URI"),
		DatabaseName:        os.Getenv("DB_NAME"),
		BaseURL:             os.Getenv("BASE_URL"),
		Port:                os.Getenv("PORT"),
		StoreBackend:        getEnv("STORE_BACKEND", "file"),
		DataFile:            getEnv("DATA_FILE", "data/incidents.json"),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		GeminiModel:         getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		OfficerEmail:        os.Getenv("OFFICER_EMAIL"),
		OfficerPasswordHash: os.Getenv("OFFICER_PASSWORD_HASH"),
		DigestEmail:         os.Getenv("DIGEST_EMAIL"),
	}

}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"response": "%s, %v"}`, message, err)))
}
