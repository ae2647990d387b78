package services

import (
	"sort"
	"testing"

	"github.com/mukundpurtutor/server/internal/models"
)

func TestShuffledQuestionsPreserveContent(t *testing.T) {
	db := testDB(t)
	svc := NewQuestionService(db)
	bank := seedBank(t, db)

	questions, err := svc.ShuffledQuestions()
	if err != nil {
		t.Fatalf("ShuffledQuestions: %v", err)
	}
	if len(questions) != len(bank) {
		t.Fatalf("len = %d, want %d", len(questions), len(bank))
	}

	byID := make(map[uint]models.Question, len(bank))
	for _, q := range bank {
		byID[q.ID] = q
	}

	for _, q := range questions {
		orig, ok := byID[q.ID]
		if !ok {
			t.Fatalf("unknown question id %d", q.ID)
		}
		if q.Question != orig.Text {
			t.Fatalf("question text changed: %q != %q", q.Question, orig.Text)
		}

		// Options may be reordered but never lost or duplicated.
		got := append([]string(nil), q.Options...)
		want := append([]string(nil), orig.Options...)
		sort.Strings(got)
		sort.Strings(want)
		if len(got) != len(want) {
			t.Fatalf("option count changed for question %d", q.ID)
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("options changed for question %d: %v != %v", q.ID, got, want)
			}
		}
	}
}

func TestReplaceWipesOldGeneration(t *testing.T) {
	db := testDB(t)
	svc := NewQuestionService(db)
	seedBank(t, db)

	old := models.Attempt{StudentID: "stale-token", Name: "p", Phone: "9876543210"}
	if err := db.Create(&old).Error; err != nil {
		t.Fatalf("seed attempt: %v", err)
	}

	next := []models.Question{
		{Text: "New question?", Options: []string{"yes", "no"}, CorrectAnswer: "yes"},
	}
	if err := svc.Replace(next); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	var questions []models.Question
	if err := db.Find(&questions).Error; err != nil {
		t.Fatalf("load questions: %v", err)
	}
	if len(questions) != 1 || questions[0].Text != "New question?" {
		t.Fatalf("unexpected bank after replace: %+v", questions)
	}

	var attemptCount int64
	db.Model(&models.Attempt{}).Count(&attemptCount)
	if attemptCount != 0 {
		t.Fatalf("attempts survived replace: %d", attemptCount)
	}
}

func TestWipeClearsEverything(t *testing.T) {
	db := testDB(t)
	svc := NewQuestionService(db)
	seedBank(t, db)
	if err := db.Create(&models.Attempt{StudentID: "t1", Name: "p", Phone: "9876543210"}).Error; err != nil {
		t.Fatalf("seed attempt: %v", err)
	}

	if err := svc.Wipe(); err != nil {
		t.Fatalf("Wipe: %v", err)
	}

	var questionCount, attemptCount int64
	db.Model(&models.Question{}).Count(&questionCount)
	db.Model(&models.Attempt{}).Count(&attemptCount)
	if questionCount != 0 || attemptCount != 0 {
		t.Fatalf("wipe left questions=%d attempts=%d", questionCount, attemptCount)
	}
}
