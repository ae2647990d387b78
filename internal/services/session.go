package services

import (
	"errors"
	"time"

	"github.com/mukundpurtutor/server/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuizTimeLimit is the wall-clock window between /start and /submit.
const QuizTimeLimit = 10 * time.Minute

const LeaderboardSize = 10

var (
	ErrQuizNotStarted    = errors.New("quiz not started")
	ErrAlreadySubmitted  = errors.New("already submitted")
	ErrTimeLimitExceeded = errors.New("time limit exceeded")
)

type SessionService struct {
	db      *gorm.DB
	scoring *ScoringService
}

func NewSessionService(db *gorm.DB, scoring *ScoringService) *SessionService {
	return &SessionService{db: db, scoring: scoring}
}

// StartAttempt issues a fresh session token and records the attempt.
// Tokens are random UUIDs, so concurrent starts never collide.
func (s *SessionService) StartAttempt(name, phone, ip string) (*models.Attempt, error) {
	attempt := models.Attempt{
		StudentID: uuid.NewString(),
		Name:      name,
		Phone:     phone,
		IP:        ip,
		StartTime: time.Now(),
	}
	if err := s.db.Create(&attempt).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

// Submit scores the answers against the current question bank and records
// the result. Preconditions are checked in order: the attempt must exist,
// must not be scored yet, and must be inside the time window.
func (s *SessionService) Submit(studentID string, answers []AnswerSubmission) (int, error) {
	var attempt models.Attempt
	if err := s.db.Where("student_id = ?", studentID).First(&attempt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrQuizNotStarted
		}
		return 0, err
	}

	if attempt.Score != nil {
		return 0, ErrAlreadySubmitted
	}

	if time.Since(attempt.StartTime) > QuizTimeLimit {
		return 0, ErrTimeLimitExceeded
	}

	var bank []models.Question
	if err := s.db.Find(&bank).Error; err != nil {
		return 0, err
	}

	score := s.scoring.Score(answers, bank)

	// Conditional write keeps scoring at-most-once: a concurrent submit
	// that lost the race matches zero rows.
	result := s.db.Model(&models.Attempt{}).
		Where("student_id = ? AND score IS NULL", studentID).
		Update("score", score)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrAlreadySubmitted
	}

	return score, nil
}

// TopAttempts returns the leaderboard: at most ten scored attempts,
// best score first, earlier submission winning ties.
func (s *SessionService) TopAttempts() ([]models.Attempt, error) {
	var attempts []models.Attempt
	err := s.db.Where("score IS NOT NULL").
		Order("score DESC, created_at ASC").
		Limit(LeaderboardSize).
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}
