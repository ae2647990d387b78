package services

import (
	"testing"

	"github.com/mukundpurtutor/server/internal/models"
)

func TestScoreExactMatchOnly(t *testing.T) {
	bank := []models.Question{
		{ID: 1, Text: "q1", Options: []string{"A", "B"}, CorrectAnswer: "A"},
		{ID: 2, Text: "q2", Options: []string{"C", "D"}, CorrectAnswer: "D"},
	}
	scoring := NewScoringService()

	tests := []struct {
		name    string
		answers []AnswerSubmission
		want    int
	}{
		{"all correct", []AnswerSubmission{{ID: 1, Selected: "A"}, {ID: 2, Selected: "D"}}, 2},
		{"one correct one wrong", []AnswerSubmission{{ID: 1, Selected: "A"}, {ID: 2, Selected: "C"}}, 1},
		{"all wrong", []AnswerSubmission{{ID: 1, Selected: "B"}, {ID: 2, Selected: "C"}}, 0},
		{"unknown question id ignored", []AnswerSubmission{{ID: 99, Selected: "A"}, {ID: 1, Selected: "A"}}, 1},
		{"no answers", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoring.Score(tt.answers, bank); got != tt.want {
				t.Fatalf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreEmptyBank(t *testing.T) {
	scoring := NewScoringService()
	answers := []AnswerSubmission{{ID: 1, Selected: "A"}}
	if got := scoring.Score(answers, nil); got != 0 {
		t.Fatalf("Score() against empty bank = %d, want 0", got)
	}
}
