package services

import (
	"errors"
	"testing"
	"time"

	"github.com/mukundpurtutor/server/internal/models"
)

func TestStartAttemptIssuesUniqueTokens(t *testing.T) {
	db := testDB(t)
	svc := NewSessionService(db, NewScoringService())

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		attempt, err := svc.StartAttempt("Ravi", "9876543210", "127.0.0.1")
		if err != nil {
			t.Fatalf("StartAttempt: %v", err)
		}
		if attempt.StudentID == "" {
			t.Fatal("empty student id")
		}
		if seen[attempt.StudentID] {
			t.Fatalf("duplicate token %s", attempt.StudentID)
		}
		seen[attempt.StudentID] = true
		if attempt.Score != nil {
			t.Fatal("new attempt must have no score")
		}
	}
}

func TestSubmitScoresOnce(t *testing.T) {
	db := testDB(t)
	svc := NewSessionService(db, NewScoringService())
	bank := seedBank(t, db)

	attempt, err := svc.StartAttempt("Ravi", "9876543210", "127.0.0.1")
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}

	answers := []AnswerSubmission{
		{ID: bank[0].ID, Selected: "4"},
		{ID: bank[1].ID, Selected: "Lyon"},
	}

	score, err := svc.Submit(attempt.StudentID, answers)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if score != 1 {
		t.Fatalf("score = %d, want 1 (exact match only, no partial credit)", score)
	}

	// Second submission must fail and leave the stored score untouched.
	if _, err := svc.Submit(attempt.StudentID, answers); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("second Submit err = %v, want ErrAlreadySubmitted", err)
	}

	var stored models.Attempt
	if err := db.Where("student_id = ?", attempt.StudentID).First(&stored).Error; err != nil {
		t.Fatalf("reload attempt: %v", err)
	}
	if stored.Score == nil || *stored.Score != 1 {
		t.Fatalf("stored score = %v, want 1", stored.Score)
	}
}

func TestSubmitUnknownToken(t *testing.T) {
	db := testDB(t)
	svc := NewSessionService(db, NewScoringService())
	seedBank(t, db)

	_, err := svc.Submit("bogus-token", []AnswerSubmission{})
	if !errors.Is(err, ErrQuizNotStarted) {
		t.Fatalf("Submit err = %v, want ErrQuizNotStarted", err)
	}
}

func TestSubmitAfterTimeLimit(t *testing.T) {
	db := testDB(t)
	svc := NewSessionService(db, NewScoringService())
	bank := seedBank(t, db)

	attempt, err := svc.StartAttempt("Ravi", "9876543210", "127.0.0.1")
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}

	// Push the start time past the window.
	expired := time.Now().Add(-QuizTimeLimit - time.Minute)
	if err := db.Model(&models.Attempt{}).
		Where("student_id = ?", attempt.StudentID).
		Update("start_time", expired).Error; err != nil {
		t.Fatalf("backdate attempt: %v", err)
	}

	_, err = svc.Submit(attempt.StudentID, []AnswerSubmission{{ID: bank[0].ID, Selected: "4"}})
	if !errors.Is(err, ErrTimeLimitExceeded) {
		t.Fatalf("Submit err = %v, want ErrTimeLimitExceeded", err)
	}

	var stored models.Attempt
	db.Where("student_id = ?", attempt.StudentID).First(&stored)
	if stored.Score != nil {
		t.Fatalf("expired attempt must not be scored, got %d", *stored.Score)
	}
}

func TestTopAttemptsOrderingAndLimit(t *testing.T) {
	db := testDB(t)
	svc := NewSessionService(db, NewScoringService())

	base := time.Now().Add(-time.Hour)
	score := func(n int) *int { return &n }

	// 12 scored attempts plus one unscored; two share the top score with
	// different creation times.
	for i := 0; i < 12; i++ {
		a := models.Attempt{
			StudentID: "token-" + string(rune('a'+i)),
			Name:      "p",
			Phone:     "9876543210",
			StartTime: base,
			Score:     score(i % 6),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(&a).Error; err != nil {
			t.Fatalf("seed attempt: %v", err)
		}
	}
	unscored := models.Attempt{StudentID: "token-unscored", Name: "p", Phone: "9876543210", StartTime: base}
	if err := db.Create(&unscored).Error; err != nil {
		t.Fatalf("seed unscored: %v", err)
	}

	top, err := svc.TopAttempts()
	if err != nil {
		t.Fatalf("TopAttempts: %v", err)
	}
	if len(top) != LeaderboardSize {
		t.Fatalf("len = %d, want %d", len(top), LeaderboardSize)
	}

	for i := range top {
		if top[i].Score == nil {
			t.Fatal("unscored attempt leaked into leaderboard")
		}
		if i == 0 {
			continue
		}
		prev, cur := *top[i-1].Score, *top[i].Score
		if prev < cur {
			t.Fatalf("not sorted by score desc at %d: %d < %d", i, prev, cur)
		}
		if prev == cur && top[i-1].CreatedAt.After(top[i].CreatedAt) {
			t.Fatalf("tie at %d not broken by earliest creation", i)
		}
	}
}
