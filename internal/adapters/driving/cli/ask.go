package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driving"
)

var (
	askCourseID string
	askTopK     int
	askMinScore float64
	askJSON     bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about a course's materials",
	Long: `Answers a question using only the selected course's materials.
The answer cites the chunks it was grounded in and carries a confidence
level based on how well the material matched the question.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askCourseID, "course", "c", "", "course to ask against (required)")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "maximum chunks to ground the answer in (0 = configured default)")
	askCmd.Flags().Float64Var(&askMinScore, "min-score", 0, "relevance threshold (0 = configured default)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if askService == nil {
		return errors.New("ask service not configured")
	}
	if askCourseID == "" {
		return errors.New("--course is required")
	}

	ctx := context.Background()
	req := driving.AskRequest{
		CourseID: askCourseID,
		Question: args[0],
		TopK:     askTopK,
		MinScore: askMinScore,
	}

	answer, err := askService.Ask(ctx, req)
	if errors.Is(err, domain.ErrNoRelevantContent) {
		cmd.Println("No relevant material found for this question in the course.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		return outputAnswerJSON(cmd, answer)
	}
	return outputAnswerText(cmd, answer)
}

func outputAnswerJSON(cmd *cobra.Command, answer *domain.Answer) error {
	data, err := json.MarshalIndent(answer, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAnswerText(cmd *cobra.Command, answer *domain.Answer) error {
	cmd.Println(answer.Text)
	cmd.Println()
	cmd.Printf("Confidence: %s\n", answer.Confidence)

	if len(answer.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i := range answer.Sources {
			cmd.Printf("  [%d] %s (chunk %d, score %.2f)\n",
				i+1,
				answer.Sources[i].Filename,
				answer.Sources[i].SequenceIndex+1,
				answer.Sources[i].Score)
		}
	}

	return nil
}
