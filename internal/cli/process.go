package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ashok49473/DocuMind-AI/internal/ingest"
)

var processFolder bool

var processCmd = &cobra.Command{
	Use:   "process [path]",
	Short: "Extract, chunk, embed and index a document",
	Long: `Replaces the index contents with the chunks of the given document.
With --folder, the path is a directory and every PDF in it is indexed
as one batch.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().BoolVar(&processFolder, "folder", false, "treat path as a folder of PDFs")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}
	defer closeServices()

	ing := ingest.New(embedder, store, cfg.RAG.ChunkSize, cfg.RAG.ChunkOverlap)
	ctx := context.Background()

	var (
		report ingest.Report
		err    error
	)
	if processFolder {
		report, err = ing.ProcessFolder(ctx, args[0])
	} else {
		report, err = ing.Process(ctx, []string{args[0]})
	}
	if err != nil {
		return err
	}

	for _, f := range report.Files {
		if f.Err != nil {
			cmd.Printf("  failed  %s: %v\n", f.Source, f.Err)
			continue
		}
		cmd.Printf("  indexed %s: %d chunks\n", f.Source, f.Chunks)
	}
	cmd.Printf("Created %d document chunks\n", report.Chunks)

	if report.Failed() {
		return fmt.Errorf("no documents were indexed")
	}
	return nil
}
