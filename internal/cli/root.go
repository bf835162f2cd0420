package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/tmc/langchaingo/embeddings"

	"github.com/ashok49473/DocuMind-AI/internal/config"
	"github.com/ashok49473/DocuMind-AI/internal/embedding"
	"github.com/ashok49473/DocuMind-AI/internal/index"
	"github.com/ashok49473/DocuMind-AI/internal/rag"
	"github.com/ashok49473/DocuMind-AI/internal/retriever"
)

var (
	cfgPath string
	debug   bool

	cfg      *config.Config
	embedder embeddings.Embedder
	store    index.Store
)

var rootCmd = &cobra.Command{
	Use:   "documind",
	Short: "Index your documents and ask questions about them",
	Long: `DocuMind indexes document text into a vector collection and answers
free-text questions using the stored chunks as context.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "./configs/config.yaml", "path to the config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func Execute() error {
	return rootCmd.Execute()
}

// initServices loads and validates the configuration and builds the
// pieces every command shares: the embedder and the vector store.
func initServices() error {
	c, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c

	emb, err := embedding.NewEmbedder(&cfg.OpenAI)
	if err != nil {
		return fmt.Errorf("failed to initialize embedder: %w", err)
	}
	embedder = emb

	st, err := index.NewStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize vector store: %w", err)
	}
	store = st
	return nil
}

func closeServices() {
	if store != nil {
		store.Close()
	}
}

func buildRAG() (*rag.RAG, error) {
	llm, err := rag.NewLLM(&cfg.OpenAI)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM: %w", err)
	}
	ret := retriever.New(embedder, store, cfg.RAG.TopK)
	return rag.NewRAG(llm, ret, &cfg.RAG), nil
}
