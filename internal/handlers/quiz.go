package handlers

import (
	"errors"
	"net/http"

	"github.com/mukundpurtutor/server/internal/services"
	"github.com/mukundpurtutor/server/internal/ws"

	"github.com/gin-gonic/gin"
)

// StudentIDHeader carries the session token on question delivery.
const StudentIDHeader = "X-Student-Id"

type QuizHandler struct {
	sessions  *services.SessionService
	questions *services.QuestionService
	hub       *ws.Hub
}

func NewQuizHandler(sessions *services.SessionService, questions *services.QuestionService, hub *ws.Hub) *QuizHandler {
	return &QuizHandler{sessions: sessions, questions: questions, hub: hub}
}

type StartQuizRequest struct {
	Name  string `json:"name" binding:"required" example:"Ravi Kumar"`
	Phone string `json:"phone" binding:"required" example:"9876543210"`
}

type StartQuizResponse struct {
	StudentID        string `json:"studentId" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	Message          string `json:"message" example:"quiz started"`
	TimeLimitMinutes int    `json:"timeLimitMinutes" example:"10"`
}

type QuizQuestionsResponse struct {
	StudentID        string                  `json:"studentId,omitempty"`
	Questions        []services.QuizQuestion `json:"questions"`
	TimeLimitMinutes int                     `json:"timeLimitMinutes" example:"10"`
}

type SubmitRequest struct {
	StudentID string                      `json:"studentId"`
	Answers   []services.AnswerSubmission `json:"answers"`
}

type SubmitResponse struct {
	Message string `json:"message" example:"submitted successfully"`
	Score   int    `json:"score" example:"7"`
}

func timeLimitMinutes() int {
	return int(services.QuizTimeLimit.Minutes())
}

// Start godoc
// @Summary      Start a quiz session
// @Description  Register a participant and issue a session token
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Param        request body StartQuizRequest true "Participant data"
// @Success      200 {object} StartQuizResponse
// @Failure      400 {object} ErrorResponse
// @Router       /start [post]
func (h *QuizHandler) Start(c *gin.Context) {
	var req StartQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name and phone required"})
		return
	}

	attempt, err := h.sessions.StartAttempt(req.Name, req.Phone, c.ClientIP())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to start quiz"})
		return
	}

	c.JSON(http.StatusOK, StartQuizResponse{
		StudentID:        attempt.StudentID,
		Message:          "quiz started",
		TimeLimitMinutes: timeLimitMinutes(),
	})
}

// GetQuestions godoc
// @Summary      Get quiz questions
// @Description  Return the question bank with question and option order shuffled per request. Tokens are issued only by /start; a supplied X-Student-Id is echoed back.
// @Tags         quiz
// @Produce      json
// @Param        X-Student-Id header string false "Session token"
// @Success      200 {object} QuizQuestionsResponse
// @Failure      500 {object} ErrorResponse
// @Router       /quiz [get]
func (h *QuizHandler) GetQuestions(c *gin.Context) {
	questions, err := h.questions.ShuffledQuestions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "error fetching questions"})
		return
	}

	c.JSON(http.StatusOK, QuizQuestionsResponse{
		StudentID:        c.GetHeader(StudentIDHeader),
		Questions:        questions,
		TimeLimitMinutes: timeLimitMinutes(),
	})
}

// Submit godoc
// @Summary      Submit quiz answers
// @Description  Score the answers for a started, unsubmitted, in-time session
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Param        request body SubmitRequest true "Session token and answers"
// @Success      200 {object} SubmitResponse
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Router       /submit [post]
func (h *QuizHandler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
		return
	}
	// Answers must be an actual array; an absent field binds to nil.
	if req.StudentID == "" || req.Answers == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
		return
	}

	score, err := h.sessions.Submit(req.StudentID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQuizNotStarted),
			errors.Is(err, services.ErrAlreadySubmitted),
			errors.Is(err, services.ErrTimeLimitExceeded):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to submit quiz"})
		}
		return
	}

	if top, err := h.sessions.TopAttempts(); err == nil {
		h.hub.Broadcast(ws.WSMessage{Type: "leaderboard", Data: top})
	}

	c.JSON(http.StatusOK, SubmitResponse{Message: "submitted successfully", Score: score})
}

// TopUsers godoc
// @Summary      Leaderboard
// @Description  Top ten scored attempts, best score first, earliest submission breaking ties
// @Tags         quiz
// @Produce      json
// @Success      200 {array} Attempt
// @Failure      500 {object} ErrorResponse
// @Router       /top-users [get]
func (h *QuizHandler) TopUsers(c *gin.Context) {
	attempts, err := h.sessions.TopAttempts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load leaderboard"})
		return
	}
	c.JSON(http.StatusOK, attempts)
}
