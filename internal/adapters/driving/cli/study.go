package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
)

var (
	studyCount    int
	studyList     bool
	studyNoteMode string
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Generate study artifacts from a document",
	Long:  `Generate flashcards, quizzes, and study notes from a processed document.`,
}

var studyFlashcardsCmd = &cobra.Command{
	Use:   "flashcards [document-id]",
	Short: "Generate flashcards from a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runStudyFlashcards,
}

var studyQuizCmd = &cobra.Command{
	Use:   "quiz [document-id]",
	Short: "Generate a multiple-choice quiz from a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runStudyQuiz,
}

var studyNotesCmd = &cobra.Command{
	Use:   "notes [document-id]",
	Short: "Generate a markdown study note from a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runStudyNotes,
}

func init() {
	studyFlashcardsCmd.Flags().IntVarP(&studyCount, "count", "n", 0, "how many cards to generate (0 = default)")
	studyFlashcardsCmd.Flags().BoolVar(&studyList, "list", false, "list previously generated sets instead")
	studyQuizCmd.Flags().IntVarP(&studyCount, "count", "n", 0, "how many questions to generate (0 = default)")
	studyQuizCmd.Flags().BoolVar(&studyList, "list", false, "list previously generated quizzes instead")
	studyNotesCmd.Flags().StringVarP(&studyNoteMode, "mode", "m", "brief", "note depth: brief or thorough")
	studyNotesCmd.Flags().BoolVar(&studyList, "list", false, "list previously generated notes instead")

	studyCmd.AddCommand(studyFlashcardsCmd)
	studyCmd.AddCommand(studyQuizCmd)
	studyCmd.AddCommand(studyNotesCmd)
	rootCmd.AddCommand(studyCmd)
}

func runStudyFlashcards(cmd *cobra.Command, args []string) error {
	if studyService == nil {
		return errors.New("study service not configured")
	}

	docID := args[0]
	ctx := context.Background()

	if studyList {
		sets, err := studyService.ListFlashcardSets(ctx, docID)
		if err != nil {
			return fmt.Errorf("failed to list flashcard sets: %w", err)
		}
		if len(sets) == 0 {
			cmd.Printf("No flashcard sets for document: %s\n", docID)
			return nil
		}
		cmd.Printf("Flashcard sets for document %s:\n\n", docID)
		for i := range sets {
			cmd.Printf("  %s (%d cards, %s)\n",
				sets[i].ID, len(sets[i].Cards), sets[i].CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	}

	cmd.Println("Generating flashcards...")

	set, err := studyService.GenerateFlashcards(ctx, docID, studyCount)
	if err != nil {
		return fmt.Errorf("failed to generate flashcards: %w", err)
	}

	cmd.Printf("Generated %d flashcards (set %s):\n\n", len(set.Cards), set.ID)
	for i, card := range set.Cards {
		cmd.Printf("  %d. Front: %s\n", i+1, card.Front)
		cmd.Printf("     Back:  %s\n", card.Back)
		cmd.Println()
	}

	return nil
}

func runStudyQuiz(cmd *cobra.Command, args []string) error {
	if studyService == nil {
		return errors.New("study service not configured")
	}

	docID := args[0]
	ctx := context.Background()

	if studyList {
		sets, err := studyService.ListQuizSets(ctx, docID)
		if err != nil {
			return fmt.Errorf("failed to list quizzes: %w", err)
		}
		if len(sets) == 0 {
			cmd.Printf("No quizzes for document: %s\n", docID)
			return nil
		}
		cmd.Printf("Quizzes for document %s:\n\n", docID)
		for i := range sets {
			cmd.Printf("  %s (%d questions, %s)\n",
				sets[i].ID, len(sets[i].Questions), sets[i].CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	}

	cmd.Println("Generating quiz...")

	set, err := studyService.GenerateQuiz(ctx, docID, studyCount)
	if err != nil {
		return fmt.Errorf("failed to generate quiz: %w", err)
	}

	cmd.Printf("Generated %d questions (quiz %s):\n\n", len(set.Questions), set.ID)
	for i, q := range set.Questions {
		cmd.Printf("  %d. %s\n", i+1, q.Question)
		for j, opt := range q.Options {
			cmd.Printf("     %c) %s\n", 'a'+j, opt)
		}
		cmd.Println()
	}

	cmd.Println("Answer key:")
	for i, q := range set.Questions {
		cmd.Printf("  %d. %c) %s\n", i+1, 'a'+q.CorrectAnswerIndex, q.Explanation)
	}

	return nil
}

func runStudyNotes(cmd *cobra.Command, args []string) error {
	if studyService == nil {
		return errors.New("study service not configured")
	}

	docID := args[0]
	ctx := context.Background()

	if studyList {
		notes, err := studyService.ListStudyNotes(ctx, docID)
		if err != nil {
			return fmt.Errorf("failed to list notes: %w", err)
		}
		if len(notes) == 0 {
			cmd.Printf("No notes for document: %s\n", docID)
			return nil
		}
		cmd.Printf("Notes for document %s:\n\n", docID)
		for i := range notes {
			cmd.Printf("  %s (%s, %s)\n",
				notes[i].ID, notes[i].Mode, notes[i].CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	}

	mode := domain.NoteMode(studyNoteMode)
	if !mode.IsValid() {
		return fmt.Errorf("invalid note mode %q (use brief or thorough)", studyNoteMode)
	}

	cmd.Println("Generating note...")

	note, err := studyService.GenerateNotes(ctx, docID, mode)
	if err != nil {
		return fmt.Errorf("failed to generate note: %w", err)
	}

	cmd.Println(note.Content)
	return nil
}
