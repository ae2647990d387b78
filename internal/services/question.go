package services

import (
	"math/rand"

	"github.com/mukundpurtutor/server/internal/models"

	"gorm.io/gorm"
)

type QuestionService struct {
	db *gorm.DB
}

func NewQuestionService(db *gorm.DB) *QuestionService {
	return &QuestionService{db: db}
}

// QuizQuestion is the client-facing shape of a question. It carries no
// correct-answer field at all, so the answer can never leak into a response.
type QuizQuestion struct {
	ID       uint     `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// ShuffledQuestions returns the whole bank with question order and the
// options of every question independently shuffled for this request.
func (s *QuestionService) ShuffledQuestions() ([]QuizQuestion, error) {
	var bank []models.Question
	if err := s.db.Find(&bank).Error; err != nil {
		return nil, err
	}

	out := make([]QuizQuestion, len(bank))
	for i, q := range bank {
		options := make([]string, len(q.Options))
		copy(options, q.Options)
		rand.Shuffle(len(options), func(a, b int) {
			options[a], options[b] = options[b], options[a]
		})
		out[i] = QuizQuestion{ID: q.ID, Question: q.Text, Options: options}
	}

	rand.Shuffle(len(out), func(a, b int) {
		out[a], out[b] = out[b], out[a]
	})

	return out, nil
}

// Replace installs a new quiz generation: all questions and all attempts
// go away in one transaction, then the new bank is inserted.
func (s *QuestionService) Replace(questions []models.Question) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Attempt{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.Question{}).Error; err != nil {
			return err
		}
		if len(questions) == 0 {
			return nil
		}
		return tx.Create(&questions).Error
	})
}

// Wipe deletes the question bank and every attempt with no replacement.
func (s *QuestionService) Wipe() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Question{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&models.Attempt{}).Error
	})
}
