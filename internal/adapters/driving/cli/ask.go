package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
)

var askLimit int

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question grounded in indexed publications",
	Long: `Ask a question answered from the indexed ADEME publications.

The question is matched against the index with hybrid search, the
most relevant passages are handed to the configured LLM, and the
answer cites its sources. Requires a configured LLM provider, see
'carbonscore settings llm'.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askLimit, "limit", "n", 5, "number of passages to retrieve")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	answer, err := assistantService.Ask(context.Background(), args[0], domain.SearchOptions{
		Limit: askLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to answer question: %w", err)
	}

	cmd.Println(answer.Text)

	if len(answer.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i := range answer.Sources {
			doc := answer.Sources[i].Document
			title := doc.Title
			if title == "" {
				title = doc.ID
			}
			cmd.Printf("  [%d] %s\n", i+1, title)
			if doc.URI != "" {
				cmd.Printf("      %s\n", doc.URI)
			}
		}
	}
	return nil
}
