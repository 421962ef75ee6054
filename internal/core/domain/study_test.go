package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuizQuestion() QuizQuestion {
	return QuizQuestion{
		Question:           "What is the powerhouse of the cell?",
		Options:            []string{"Mitochondria", "Nucleus", "Ribosome", "Golgi body"},
		CorrectAnswerIndex: 0,
		Explanation:        "Mitochondria produce ATP through cellular respiration.",
	}
}

func validQuizSet(questions int) QuizSet {
	set := QuizSet{ID: "qs1", DocumentID: "d1"}
	for i := 0; i < questions; i++ {
		set.Questions = append(set.Questions, validQuizQuestion())
	}
	return set
}

// TestQuizQuestion_Validate tests per-question bounds
func TestQuizQuestion_Validate(t *testing.T) {
	t.Run("valid question passes", func(t *testing.T) {
		require.NoError(t, validQuizQuestion().Validate())
	})

	t.Run("answer index out of range is rejected", func(t *testing.T) {
		q := validQuizQuestion()
		q.CorrectAnswerIndex = 4

		err := q.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidAnswerIndex)
	})

	t.Run("negative answer index is rejected", func(t *testing.T) {
		q := validQuizQuestion()
		q.CorrectAnswerIndex = -1

		assert.ErrorIs(t, q.Validate(), ErrInvalidAnswerIndex)
	})

	t.Run("last option index is in range", func(t *testing.T) {
		q := validQuizQuestion()
		q.CorrectAnswerIndex = len(q.Options) - 1

		assert.NoError(t, q.Validate())
	})

	t.Run("too few options is rejected", func(t *testing.T) {
		q := validQuizQuestion()
		q.Options = []string{"only one"}

		assert.ErrorIs(t, q.Validate(), ErrInvalidInput)
	})

	t.Run("short question is rejected", func(t *testing.T) {
		q := validQuizQuestion()
		q.Question = "Why?"

		assert.ErrorIs(t, q.Validate(), ErrInvalidInput)
	})

	t.Run("short explanation is rejected", func(t *testing.T) {
		q := validQuizQuestion()
		q.Explanation = "because"

		assert.ErrorIs(t, q.Validate(), ErrInvalidInput)
	})
}

// TestQuizSet_Validate tests set-level bounds and rejection propagation
func TestQuizSet_Validate(t *testing.T) {
	t.Run("valid set passes", func(t *testing.T) {
		assert.NoError(t, validQuizSet(5).Validate())
	})

	t.Run("too few questions is rejected", func(t *testing.T) {
		assert.ErrorIs(t, validQuizSet(2).Validate(), ErrInvalidInput)
	})

	t.Run("too many questions is rejected", func(t *testing.T) {
		assert.ErrorIs(t, validQuizSet(11).Validate(), ErrInvalidInput)
	})

	t.Run("one bad index rejects the whole set", func(t *testing.T) {
		set := validQuizSet(5)
		set.Questions[3].CorrectAnswerIndex = 99

		err := set.Validate()

		assert.ErrorIs(t, err, ErrInvalidAnswerIndex)
	})
}

// TestFlashcard_Validate tests card field bounds
func TestFlashcard_Validate(t *testing.T) {
	tests := []struct {
		name    string
		card    Flashcard
		wantErr bool
	}{
		{
			name:    "valid card",
			card:    Flashcard{Front: "What is ATP?", Back: "Adenosine triphosphate, the cell's energy currency."},
			wantErr: false,
		},
		{
			name:    "front too short",
			card:    Flashcard{Front: "ok", Back: "A valid back side."},
			wantErr: true,
		},
		{
			name:    "back too short",
			card:    Flashcard{Front: "A valid front", Back: "no"},
			wantErr: true,
		},
		{
			name:    "front too long",
			card:    Flashcard{Front: strings.Repeat("x", 501), Back: "A valid back side."},
			wantErr: true,
		},
		{
			name:    "back too long",
			card:    Flashcard{Front: "A valid front", Back: strings.Repeat("x", 1001)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.card.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestFlashcardSet_Validate tests deck size bounds
func TestFlashcardSet_Validate(t *testing.T) {
	card := Flashcard{Front: "What is ATP?", Back: "The cell's energy currency."}

	t.Run("ten cards pass", func(t *testing.T) {
		set := FlashcardSet{ID: "f1", DocumentID: "d1"}
		for i := 0; i < 10; i++ {
			set.Cards = append(set.Cards, card)
		}
		assert.NoError(t, set.Validate())
	})

	t.Run("four cards fail", func(t *testing.T) {
		set := FlashcardSet{Cards: []Flashcard{card, card, card, card}}
		assert.ErrorIs(t, set.Validate(), ErrInvalidInput)
	})

	t.Run("sixteen cards fail", func(t *testing.T) {
		set := FlashcardSet{}
		for i := 0; i < 16; i++ {
			set.Cards = append(set.Cards, card)
		}
		assert.ErrorIs(t, set.Validate(), ErrInvalidInput)
	})
}

// TestNoteMode_IsValid tests note mode recognition
func TestNoteMode_IsValid(t *testing.T) {
	assert.True(t, NoteModeBrief.IsValid())
	assert.True(t, NoteModeThorough.IsValid())
	assert.False(t, NoteMode("detailed").IsValid())
	assert.False(t, NoteMode("").IsValid())
}
