package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete the collection entirely",
	Long: `Deletes the vector collection itself, not just its records. The next
process action recreates it.`,
	Args: cobra.NoArgs,
	RunE: runDrop,
}

func init() {
	rootCmd.AddCommand(dropCmd)
}

func runDrop(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}
	defer closeServices()

	if err := store.Drop(context.Background()); err != nil {
		return err
	}
	cmd.Printf("Deleted collection %s\n", cfg.RAG.Collection)
	return nil
}
