package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ashok49473/DocuMind-AI/internal/session"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions interactively",
	Long: `Starts an interactive loop against the indexed documents. The chat
history lives only for the duration of the session.

Commands inside the loop: /history, /clear, /exit`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}
	defer closeServices()

	r, err := buildRAG()
	if err != nil {
		return err
	}

	ctx := context.Background()
	sess := session.New()
	scanner := bufio.NewScanner(os.Stdin)
	prompt := color.New(color.FgYellow, color.Bold)

	fmt.Println("Ask questions about your documents. Type /exit to quit.")
	for {
		prompt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}

		switch question {
		case "/exit", "/quit":
			return scanner.Err()
		case "/history":
			for i, entry := range sess.History() {
				fmt.Printf("[%d] %s\n    %s\n", i+1, entry.Question, entry.Answer.Text)
			}
			continue
		case "/clear":
			removed := sess.Clear()
			fmt.Printf("Cleared %d chat entries\n", removed)
			continue
		}

		answer := r.Ask(ctx, question)
		sess.Add(question, answer)
		printAnswer(answer)
		fmt.Println()
	}
	return scanner.Err()
}
