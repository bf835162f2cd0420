package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ashok49473/DocuMind-AI/internal/models"
)

const sourcePreviewLen = 200

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the indexed documents",
	Args:  cobra.ExactArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}
	defer closeServices()

	r, err := buildRAG()
	if err != nil {
		return err
	}

	answer := r.Ask(context.Background(), args[0])
	printAnswer(answer)
	return nil
}

func printAnswer(answer models.Answer) {
	color.New(color.FgGreen, color.Bold).Println("Answer:")
	color.White(answer.Text)

	if len(answer.Sources) == 0 {
		return
	}
	color.New(color.FgCyan, color.Bold).Println("\nSources:")
	for i, doc := range answer.Sources {
		preview := doc.Content
		if len(preview) > sourcePreviewLen {
			preview = preview[:sourcePreviewLen] + "..."
		}
		color.Cyan("  [%d] %s (chunk %s)", i+1, doc.Metadata[models.MetaSource], doc.Metadata[models.MetaChunkID])
		color.White("      %s", preview)
	}
}
