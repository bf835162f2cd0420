package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ashok49473/DocuMind-AI/internal/helper"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show record count and status of the index",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output stats as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}
	defer closeServices()

	stats, err := store.Stats(context.Background())
	if err != nil {
		return err
	}

	if statsJSON {
		helper.PrettyPrint(stats)
		return nil
	}

	cmd.Printf("Collection: %s\n", cfg.RAG.Collection)
	cmd.Printf("Status:     %s\n", stats.Status)
	cmd.Printf("Records:    %d\n", stats.Records)
	cmd.Printf("Dimension:  %d\n", stats.Dimension)
	return nil
}
