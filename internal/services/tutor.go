package services

import (
	"strings"

	"github.com/mukundpurtutor/server/internal/models"

	"gorm.io/gorm"
)

type TutorService struct {
	db *gorm.DB
}

func NewTutorService(db *gorm.DB) *TutorService {
	return &TutorService{db: db}
}

func (s *TutorService) Create(tutor *models.Tutor) error {
	return s.db.Create(tutor).Error
}

// List filters the directory. Subject and class match list membership
// exactly; search matches name, bio or any subject case-insensitively.
// The directory is small, so filtering on the JSON columns happens here
// rather than in SQL.
func (s *TutorService) List(subject, class, search string) ([]models.Tutor, error) {
	var tutors []models.Tutor
	if err := s.db.Order("rating DESC").Find(&tutors).Error; err != nil {
		return nil, err
	}

	out := make([]models.Tutor, 0, len(tutors))
	for _, t := range tutors {
		if subject != "" && !contains(t.Subjects, subject) {
			continue
		}
		if class != "" && !contains(t.Classes, class) {
			continue
		}
		if search != "" && !matchesSearch(t, search) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}

func matchesSearch(t models.Tutor, search string) bool {
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(t.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Bio), needle) {
		return true
	}
	for _, subj := range t.Subjects {
		if strings.Contains(strings.ToLower(subj), needle) {
			return true
		}
	}
	return false
}
