package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ferrule-labs/askdocs/internal/core/domain"
)

var (
	askLimit       int
	askGranularity string
	askJSON        bool
	askNoCitations bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your documents",
	Long: `Retrieves the most relevant passages from your documents and generates
an answer grounded in them, with citations. When nothing relevant is
stored, the answer comes from general knowledge and says so.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

var retrieveCmd = &cobra.Command{
	Use:   "retrieve [question]",
	Short: "Show raw retrieval results without generating an answer",
	Args:  cobra.ExactArgs(1),
	RunE:  runRetrieve,
}

func init() {
	askCmd.Flags().IntVarP(&askLimit, "limit", "n", 0, "maximum passages to retrieve")
	askCmd.Flags().StringVarP(&askGranularity, "granularity", "g", "", "retrieval granularity: passage or document")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	askCmd.Flags().BoolVar(&askNoCitations, "no-citations", false, "suppress the citation list")
	retrieveCmd.Flags().IntVarP(&askLimit, "limit", "n", 0, "maximum passages to retrieve")
	retrieveCmd.Flags().StringVarP(&askGranularity, "granularity", "g", "", "retrieval granularity: passage or document")
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(retrieveCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if askService == nil {
		return errors.New("ask service not configured")
	}

	opts, err := retrievalOpts()
	if err != nil {
		return err
	}

	answer, err := askService.Ask(context.Background(), ownerFlag, args[0], opts)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	warn := color.New(color.FgYellow).SprintFunc()

	cmd.Println(answer.Text)

	if answer.GenerationFailed {
		cmd.Println()
		cmd.Println(warn("Generation failed; showing the fallback message."))
	}
	if !answer.Grounded {
		cmd.Println()
		cmd.Println(dim("Not grounded in your documents."))
	}

	if !askNoCitations && len(answer.Citations) > 0 {
		cmd.Println()
		cmd.Println(bold("Sources:"))
		for i, c := range answer.Citations {
			cmd.Printf("  [%d] %s", i+1, c.Source)
			if c.Page > 0 {
				cmd.Printf(" (p. %d)", c.Page)
			}
			cmd.Println()
			cmd.Printf("      %s\n", dim(c.Excerpt))
		}
	}

	return nil
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	if askService == nil {
		return errors.New("ask service not configured")
	}

	opts, err := retrievalOpts()
	if err != nil {
		return err
	}

	results, err := askService.Retrieve(context.Background(), ownerFlag, args[0], opts)
	if err != nil {
		return fmt.Errorf("retrieve failed: %w", err)
	}

	if len(results) == 0 {
		cmd.Println("No relevant passages found.")
		return nil
	}

	for i, r := range results {
		cmd.Printf("  [%d] %s (%.3f)\n", i+1, r.DocumentTitle, r.Score)
		cmd.Printf("      %s\n\n", r.Passage.Text)
	}
	return nil
}

// retrievalOpts builds RetrievalOptions from the shared flags.
func retrievalOpts() (domain.RetrievalOptions, error) {
	opts := domain.RetrievalOptions{Limit: askLimit}
	switch askGranularity {
	case "":
	case string(domain.GranularityPassage):
		opts.Granularity = domain.GranularityPassage
	case string(domain.GranularityDocument):
		opts.Granularity = domain.GranularityDocument
	default:
		return opts, fmt.Errorf("invalid granularity %q: use passage or document", askGranularity)
	}
	return opts, nil
}
