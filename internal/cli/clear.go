package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all records from the index",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}
	defer closeServices()

	removed, err := store.Clear(context.Background())
	if err != nil {
		return err
	}
	if removed == 0 {
		cmd.Println("Index is already empty")
		return nil
	}
	cmd.Printf("Cleared %d records from index\n", removed)
	return nil
}
