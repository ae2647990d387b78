package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/mukundpurtutor/server/internal/models"
	"github.com/mukundpurtutor/server/internal/services"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questions *services.QuestionService
}

func NewQuestionHandler(questions *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

type QuestionPayload struct {
	Question      string   `json:"question" example:"What is 2 + 2?"`
	Options       []string `json:"options" example:"3,4,5"`
	CorrectAnswer string   `json:"correctAnswer" example:"4"`
}

func (p QuestionPayload) validate() string {
	if p.Question == "" {
		return "question text is required"
	}
	if len(p.Options) < 2 {
		return "at least two options are required"
	}
	if p.CorrectAnswer == "" {
		return "correctAnswer is required"
	}
	return ""
}

// ReplaceQuestions godoc
// @Summary      Replace the question bank
// @Description  Wipe all questions and attempts, then install the supplied question(s). Accepts a single object or an array.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body []QuestionPayload true "New question bank"
// @Success      201 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /questions [post]
func (h *QuestionHandler) ReplaceQuestions(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	// The admin may send one question object or an array of them.
	var payloads []QuestionPayload
	if err := json.Unmarshal(body, &payloads); err != nil {
		var single QuestionPayload
		if err := json.Unmarshal(body, &single); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
			return
		}
		payloads = []QuestionPayload{single}
	}

	questions := make([]models.Question, len(payloads))
	for i, p := range payloads {
		if msg := p.validate(); msg != "" {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
			return
		}
		questions[i] = models.Question{
			Text:          p.Question,
			Options:       p.Options,
			CorrectAnswer: p.CorrectAnswer,
		}
	}

	if err := h.questions.Replace(questions); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "quiz creation failed"})
		return
	}

	c.JSON(http.StatusCreated, MessageResponse{Message: "new quiz created, old data wiped"})
}

// WipeQuiz godoc
// @Summary      Delete the entire quiz
// @Description  Remove all questions and all attempts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} MessageResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /quiz [delete]
func (h *QuestionHandler) WipeQuiz(c *gin.Context) {
	if err := h.questions.Wipe(); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to delete quiz"})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "quiz and all attempts deleted"})
}
