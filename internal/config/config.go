package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ashok49473/DocuMind-AI/internal/models"
)

// VectorSize is fixed by the embedding model (text-embedding-ada-002).
const VectorSize = 1536

const (
	StoreQdrant   = "qdrant"
	StoreChromem  = "chromem"
	StorePostgres = "postgres"
)

type OpenAIConfig struct {
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	EmbeddingModel string `yaml:"embedding_model"`
	ChatModel      string `yaml:"chat_model"`
}

type QdrantConfig struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	APIKey string `yaml:"api_key"`
	UseTLS bool   `yaml:"use_tls"`
}

type ChromemConfig struct {
	Path     string `yaml:"path"`
	InMemory bool   `yaml:"in_memory"`
}

type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	Password string `yaml:"password"`
	Debug    bool   `yaml:"debug"`
}

type RAGConfig struct {
	Collection      string  `yaml:"collection"`
	ChunkSize       int     `yaml:"chunk_size"`
	ChunkOverlap    int     `yaml:"chunk_overlap"`
	TopK            int     `yaml:"top_k"`
	Temperature     float64 `yaml:"temperature"`
	MaxTokens       int     `yaml:"max_tokens"`
	ReadyTimeoutSec int     `yaml:"ready_timeout_sec"`
}

// ReadyTimeout is the bound on waiting for the collection to accept
// writes after creation.
func (c *RAGConfig) ReadyTimeout() time.Duration {
	return time.Duration(c.ReadyTimeoutSec) * time.Second
}

type Config struct {
	Store    string         `yaml:"store"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Qdrant   QdrantConfig   `yaml:"qdrant"`
	Chromem  ChromemConfig  `yaml:"chromem"`
	Postgres PostgresConfig `yaml:"postgres"`
	RAG      RAGConfig      `yaml:"rag"`
}

// Default returns a config populated with the built-in defaults.
func Default() *Config {
	return &Config{
		Store: StoreQdrant,
		OpenAI: OpenAIConfig{
			EmbeddingModel: "text-embedding-ada-002",
			ChatModel:      "gpt-3.5-turbo",
		},
		Qdrant: QdrantConfig{
			Host: "localhost",
			Port: 6334,
		},
		Chromem: ChromemConfig{
			Path: "./chromemdb",
		},
		RAG: RAGConfig{
			Collection:      "documind-ai",
			ChunkSize:       1000,
			ChunkOverlap:    200,
			TopK:            4,
			Temperature:     0.7,
			MaxTokens:       500,
			ReadyTimeoutSec: 30,
		},
	}
}

// LoadConfig reads the optional yaml file at path, then applies
// environment overrides on top of the defaults. A missing file is not
// an error; secrets are expected to come from the environment.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Store, "DOCUMIND_STORE")
	setString(&c.OpenAI.APIKey, "OPENAI_API_KEY")
	setString(&c.OpenAI.BaseURL, "OPENAI_BASE_URL")
	setString(&c.Qdrant.Host, "QDRANT_HOST")
	setString(&c.Qdrant.APIKey, "QDRANT_API_KEY")
	setString(&c.Postgres.DSN, "POSTGRES_DSN")
	setString(&c.RAG.Collection, "DOCUMIND_COLLECTION")

	if v := os.Getenv("QDRANT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Qdrant.Port = port
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate reports every required parameter that is absent, so the
// user can fix them all in one pass.
func (c *Config) Validate() error {
	var missing []string

	if c.OpenAI.APIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}

	switch c.Store {
	case StoreQdrant:
		if c.Qdrant.Host == "" {
			missing = append(missing, "QDRANT_HOST")
		}
		if c.Qdrant.UseTLS && c.Qdrant.APIKey == "" {
			missing = append(missing, "QDRANT_API_KEY")
		}
	case StorePostgres:
		if c.Postgres.DSN == "" {
			missing = append(missing, "POSTGRES_DSN")
		}
	case StoreChromem:
		if !c.Chromem.InMemory && c.Chromem.Path == "" {
			missing = append(missing, "chromem.path")
		}
	default:
		missing = append(missing, "DOCUMIND_STORE (one of qdrant, chromem, postgres)")
	}

	if len(missing) > 0 {
		return &models.ConfigError{Missing: missing}
	}
	return nil
}
