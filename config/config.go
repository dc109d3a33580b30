package config

import (
	"os"
)

// Defaults for the HuggingFace inference endpoint. The model identifiers can
// be overridden per deployment; InLegalBERT is trained on Indian legal text.
const (
	DefaultAPIBaseURL          = "https://api-inference.huggingface.co/models/"
	DefaultClassificationModel = "law-ai/InLegalBERT"
	DefaultQAModel             = "law-ai/InLegalBERT"
)

// Config holds process-wide read-only configuration loaded at startup
type Config struct {
	// HuggingFace inference API
	APIBaseURL          string
	APIToken            string
	ClassificationModel string
	QAModel             string

	// Server
	Port string
	Env  string

	// Optional document archive; the server runs stateless when DatabaseURL
	// is empty
	DatabaseURL string
}

// Load reads configuration from environment variables, applying defaults
func Load() Config {
	return Config{
		APIBaseURL:          getEnv("HF_API_URL", DefaultAPIBaseURL),
		APIToken:            os.Getenv("HF_TOKEN"),
		ClassificationModel: getEnv("HF_CLASSIFICATION_MODEL", DefaultClassificationModel),
		QAModel:             getEnv("HF_QA_MODEL", DefaultQAModel),
		Port:                getEnv("PORT", "8080"),
		Env:                 getEnv("APP_ENV", "production"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
