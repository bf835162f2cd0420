package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashok49473/DocuMind-AI/internal/models"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DOCUMIND_STORE", "DOCUMIND_COLLECTION",
		"OPENAI_API_KEY", "OPENAI_BASE_URL",
		"QDRANT_HOST", "QDRANT_PORT", "QDRANT_API_KEY",
		"POSTGRES_DSN",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, StoreQdrant, cfg.Store)
	assert.Equal(t, "documind-ai", cfg.RAG.Collection)
	assert.Equal(t, 1000, cfg.RAG.ChunkSize)
	assert.Equal(t, 200, cfg.RAG.ChunkOverlap)
	assert.Equal(t, 4, cfg.RAG.TopK)
	assert.Equal(t, "text-embedding-ada-002", cfg.OpenAI.EmbeddingModel)
	assert.Equal(t, "gpt-3.5-turbo", cfg.OpenAI.ChatModel)
	assert.Equal(t, 30*time.Second, cfg.RAG.ReadyTimeout())
}

func TestLoadConfig_MissingFileIsFine(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("/nowhere/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, StoreQdrant, cfg.Store)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
store: chromem
rag:
  collection: from-file
  chunk_size: 500
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	// env wins over the file
	t.Setenv("DOCUMIND_COLLECTION", "from-env")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, StoreChromem, cfg.Store)
	assert.Equal(t, "from-env", cfg.RAG.Collection)
	assert.Equal(t, 500, cfg.RAG.ChunkSize)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	// untouched values keep their defaults
	assert.Equal(t, 200, cfg.RAG.ChunkOverlap)
}

func TestValidate_EnumeratesEveryMissingParameter(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOCUMIND_STORE", StoreQdrant)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	cfg.OpenAI.APIKey = ""
	cfg.Qdrant.Host = ""

	err = cfg.Validate()
	require.Error(t, err)

	var cfgErr *models.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Missing, "OPENAI_API_KEY")
	assert.Contains(t, cfgErr.Missing, "QDRANT_HOST")
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestValidate_TLSRequiresAPIKey(t *testing.T) {
	clearEnv(t)

	cfg := Default()
	cfg.OpenAI.APIKey = "sk-test"
	cfg.Qdrant.UseTLS = true

	err := cfg.Validate()
	require.Error(t, err)

	var cfgErr *models.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Missing, "QDRANT_API_KEY")
}

func TestValidate_UnknownStore(t *testing.T) {
	cfg := Default()
	cfg.OpenAI.APIKey = "sk-test"
	cfg.Store = "pinecone"

	err := cfg.Validate()
	require.Error(t, err)
}

func TestValidate_OK(t *testing.T) {
	cfg := Default()
	cfg.OpenAI.APIKey = "sk-test"
	require.NoError(t, cfg.Validate())

	cfg.Store = StoreChromem
	require.NoError(t, cfg.Validate())

	cfg.Store = StorePostgres
	cfg.Postgres.DSN = "postgres://localhost:5432/documind"
	require.NoError(t, cfg.Validate())
}

func TestQdrantPortFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("QDRANT_PORT", "7443")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 7443, cfg.Qdrant.Port)
}
