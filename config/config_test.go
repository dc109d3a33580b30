package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"HF_API_URL", "HF_TOKEN", "HF_CLASSIFICATION_MODEL", "HF_QA_MODEL", "PORT", "APP_ENV", "DATABASE_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Empty(t, cfg.APIToken)
	assert.Equal(t, DefaultClassificationModel, cfg.ClassificationModel)
	assert.Equal(t, DefaultQAModel, cfg.QAModel)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HF_API_URL", "http://localhost:9000/models/")
	t.Setenv("HF_TOKEN", "hf_test")
	t.Setenv("HF_CLASSIFICATION_MODEL", "acme/classifier")
	t.Setenv("HF_QA_MODEL", "acme/qa")
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "development")
	t.Setenv("DATABASE_URL", "postgres://localhost/legal")

	cfg := Load()
	assert.Equal(t, "http://localhost:9000/models/", cfg.APIBaseURL)
	assert.Equal(t, "hf_test", cfg.APIToken)
	assert.Equal(t, "acme/classifier", cfg.ClassificationModel)
	assert.Equal(t, "acme/qa", cfg.QAModel)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "postgres://localhost/legal", cfg.DatabaseURL)
}
