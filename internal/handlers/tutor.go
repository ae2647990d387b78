package handlers

import (
	"net/http"
	"strings"

	"github.com/mukundpurtutor/server/internal/models"
	"github.com/mukundpurtutor/server/internal/services"
	"github.com/mukundpurtutor/server/internal/storage"

	"github.com/gin-gonic/gin"
)

type TutorHandler struct {
	tutors   *services.TutorService
	uploader storage.Uploader
}

func NewTutorHandler(tutors *services.TutorService, uploader storage.Uploader) *TutorHandler {
	return &TutorHandler{tutors: tutors, uploader: uploader}
}

type CreateTutorRequest struct {
	Name       string  `form:"name" binding:"required,max=100"`
	Subjects   string  `form:"subjects" binding:"required"`
	Classes    string  `form:"classes" binding:"required"`
	Rating     float64 `form:"rating" binding:"gte=0,lte=5"`
	Experience string  `form:"experience"`
	Bio        string  `form:"bio"`
	Price      string  `form:"price"`
}

// CreateTutor godoc
// @Summary      Create a tutor profile
// @Description  Create a tutor with a profile image uploaded to the media host. Subjects and classes are comma-separated.
// @Tags         tutors
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name formData string true "Tutor name"
// @Param        subjects formData string true "Comma-separated subjects"
// @Param        classes formData string true "Comma-separated classes"
// @Param        image formData file true "Profile image"
// @Success      201 {object} Tutor
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/tutors [post]
func (h *TutorHandler) CreateTutor(c *gin.Context) {
	var req CreateTutorRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "image file required"})
		return
	}

	data, err := readFormFile(fh)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to read image"})
		return
	}

	url, err := h.uploader.Upload(data, fh.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "image upload failed"})
		return
	}

	tutor := models.Tutor{
		Name:       req.Name,
		Subjects:   splitCSV(req.Subjects),
		Classes:    splitCSV(req.Classes),
		Rating:     req.Rating,
		Experience: req.Experience,
		Bio:        req.Bio,
		Image:      url,
		Price:      req.Price,
	}
	if err := h.tutors.Create(&tutor); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create tutor"})
		return
	}

	c.JSON(http.StatusCreated, tutor)
}

// ListTutors godoc
// @Summary      List tutors
// @Description  List tutors, optionally filtered by subject, class or free-text search
// @Tags         tutors
// @Produce      json
// @Param        subject query string false "Subject filter"
// @Param        class query string false "Class filter"
// @Param        search query string false "Search in name, bio and subjects"
// @Success      200 {array} Tutor
// @Failure      500 {object} ErrorResponse
// @Router       /api/tutors [get]
func (h *TutorHandler) ListTutors(c *gin.Context) {
	tutors, err := h.tutors.List(
		c.Query("subject"),
		c.Query("class"),
		c.Query("search"),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list tutors"})
		return
	}
	c.JSON(http.StatusOK, tutors)
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
