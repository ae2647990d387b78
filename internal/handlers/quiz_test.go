package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mukundpurtutor/server/internal/models"
	"github.com/mukundpurtutor/server/internal/services"
	"github.com/mukundpurtutor/server/internal/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupQuizRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Question{}, &models.Attempt{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	sessions := services.NewSessionService(db, services.NewScoringService())
	questions := services.NewQuestionService(db)
	quizHandler := NewQuizHandler(sessions, questions, ws.NewHub())
	questionHandler := NewQuestionHandler(questions)

	r := gin.New()
	r.POST("/start", quizHandler.Start)
	r.GET("/quiz", quizHandler.GetQuestions)
	r.POST("/submit", quizHandler.Submit)
	r.GET("/top-users", quizHandler.TopUsers)
	// Auth middleware is exercised separately; admin routes are mounted
	// bare here.
	r.POST("/questions", questionHandler.ReplaceQuestions)
	r.DELETE("/quiz", questionHandler.WipeQuiz)

	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedQuizBank(t *testing.T, db *gorm.DB) []models.Question {
	t.Helper()
	bank := []models.Question{
		{Text: "What is 2 + 2?", Options: []string{"3", "4"}, CorrectAnswer: "4"},
		{Text: "Capital of France?", Options: []string{"Paris", "Lyon"}, CorrectAnswer: "Paris"},
	}
	if err := db.Create(&bank).Error; err != nil {
		t.Fatalf("seed bank: %v", err)
	}
	return bank
}

func TestStartValidation(t *testing.T) {
	r, _ := setupQuizRouter(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing phone", gin.H{"name": "Ravi"}},
		{"missing name", gin.H{"phone": "9876543210"}},
		{"empty body", gin.H{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/start", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestQuizFlow(t *testing.T) {
	r, db := setupQuizRouter(t)
	bank := seedQuizBank(t, db)

	w := doJSON(t, r, http.MethodPost, "/start", gin.H{"name": "Ravi", "phone": "9876543210"})
	if w.Code != http.StatusOK {
		t.Fatalf("/start status = %d, body %s", w.Code, w.Body.String())
	}
	var started StartQuizResponse
	if err := json.Unmarshal(w.Body.Bytes(), &started); err != nil {
		t.Fatalf("decode /start: %v", err)
	}
	if started.StudentID == "" || started.TimeLimitMinutes != 10 {
		t.Fatalf("unexpected /start response: %+v", started)
	}

	// Question delivery never reveals the correct answer.
	req := httptest.NewRequest(http.MethodGet, "/quiz", nil)
	req.Header.Set(StudentIDHeader, started.StudentID)
	qw := httptest.NewRecorder()
	r.ServeHTTP(qw, req)
	if qw.Code != http.StatusOK {
		t.Fatalf("/quiz status = %d", qw.Code)
	}
	if strings.Contains(qw.Body.String(), "correctAnswer") {
		t.Fatal("/quiz response leaks the correct-answer field")
	}
	var delivered QuizQuestionsResponse
	if err := json.Unmarshal(qw.Body.Bytes(), &delivered); err != nil {
		t.Fatalf("decode /quiz: %v", err)
	}
	if delivered.StudentID != started.StudentID {
		t.Fatalf("token not echoed: %q", delivered.StudentID)
	}
	if len(delivered.Questions) != len(bank) {
		t.Fatalf("question count = %d, want %d", len(delivered.Questions), len(bank))
	}

	submitBody := gin.H{
		"studentId": started.StudentID,
		"answers": []gin.H{
			{"id": bank[0].ID, "selected": "4"},
			{"id": bank[1].ID, "selected": "Lyon"},
		},
	}
	sw := doJSON(t, r, http.MethodPost, "/submit", submitBody)
	if sw.Code != http.StatusOK {
		t.Fatalf("/submit status = %d, body %s", sw.Code, sw.Body.String())
	}
	var submitted SubmitResponse
	if err := json.Unmarshal(sw.Body.Bytes(), &submitted); err != nil {
		t.Fatalf("decode /submit: %v", err)
	}
	if submitted.Score != 1 {
		t.Fatalf("score = %d, want 1", submitted.Score)
	}

	// Replay is rejected.
	if w := doJSON(t, r, http.MethodPost, "/submit", submitBody); w.Code != http.StatusForbidden {
		t.Fatalf("replay status = %d, want 403", w.Code)
	}

	// And the leaderboard now carries the attempt.
	tw := doJSON(t, r, http.MethodGet, "/top-users", nil)
	if tw.Code != http.StatusOK {
		t.Fatalf("/top-users status = %d", tw.Code)
	}
	var top []models.Attempt
	if err := json.Unmarshal(tw.Body.Bytes(), &top); err != nil {
		t.Fatalf("decode /top-users: %v", err)
	}
	if len(top) != 1 || top[0].Score == nil || *top[0].Score != 1 {
		t.Fatalf("unexpected leaderboard: %+v", top)
	}
}

func TestSubmitValidation(t *testing.T) {
	r, db := setupQuizRouter(t)
	seedQuizBank(t, db)

	tests := []struct {
		name string
		body gin.H
		want int
	}{
		{"missing token", gin.H{"answers": []gin.H{}}, http.StatusBadRequest},
		{"missing answers", gin.H{"studentId": "t"}, http.StatusBadRequest},
		{"answers not an array", gin.H{"studentId": "t", "answers": "nope"}, http.StatusBadRequest},
		{"unknown token", gin.H{"studentId": "never-started", "answers": []gin.H{}}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/submit", tt.body)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestReplaceQuestionsAcceptsSingleObjectOrArray(t *testing.T) {
	r, db := setupQuizRouter(t)

	single := gin.H{"question": "Only one?", "options": []string{"yes", "no"}, "correctAnswer": "yes"}
	if w := doJSON(t, r, http.MethodPost, "/questions", single); w.Code != http.StatusCreated {
		t.Fatalf("single object status = %d, body %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.Question{}).Count(&count)
	if count != 1 {
		t.Fatalf("bank size after single load = %d, want 1", count)
	}

	array := []gin.H{
		{"question": "First?", "options": []string{"a", "b"}, "correctAnswer": "a"},
		{"question": "Second?", "options": []string{"c", "d"}, "correctAnswer": "d"},
	}
	if w := doJSON(t, r, http.MethodPost, "/questions", array); w.Code != http.StatusCreated {
		t.Fatalf("array status = %d", w.Code)
	}

	db.Model(&models.Question{}).Count(&count)
	if count != 2 {
		t.Fatalf("bank size after array load = %d, want 2 (old bank replaced)", count)
	}
}

func TestWipeQuiz(t *testing.T) {
	r, db := setupQuizRouter(t)
	seedQuizBank(t, db)
	if err := db.Create(&models.Attempt{StudentID: "t1", Name: "p", Phone: "9876543210"}).Error; err != nil {
		t.Fatalf("seed attempt: %v", err)
	}

	if w := doJSON(t, r, http.MethodDelete, "/quiz", nil); w.Code != http.StatusOK {
		t.Fatalf("wipe status = %d", w.Code)
	}

	var questionCount, attemptCount int64
	db.Model(&models.Question{}).Count(&questionCount)
	db.Model(&models.Attempt{}).Count(&attemptCount)
	if questionCount != 0 || attemptCount != 0 {
		t.Fatalf("wipe left questions=%d attempts=%d", questionCount, attemptCount)
	}
}
