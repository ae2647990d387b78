package services

import "github.com/mukundpurtutor/server/internal/models"

type ScoringService struct{}

func NewScoringService() *ScoringService {
	return &ScoringService{}
}

// AnswerSubmission is one (question, selected option) pair from /submit.
type AnswerSubmission struct {
	ID       uint   `json:"id"`
	Selected string `json:"selected"`
}

// Score counts exact matches against the bank: one point per answer whose
// question exists and whose selected value equals the correct one. Unknown
// question ids and wrong answers contribute zero.
func (s *ScoringService) Score(answers []AnswerSubmission, bank []models.Question) int {
	correct := make(map[uint]string, len(bank))
	for _, q := range bank {
		correct[q.ID] = q.CorrectAnswer
	}

	score := 0
	for _, a := range answers {
		if want, ok := correct[a.ID]; ok && want == a.Selected {
			score++
		}
	}
	return score
}
