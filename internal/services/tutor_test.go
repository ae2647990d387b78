package services

import (
	"testing"

	"github.com/mukundpurtutor/server/internal/models"
)

func seedTutors(t *testing.T, svc *TutorService) {
	t.Helper()

	tutors := []models.Tutor{
		{Name: "Anita Sharma", Subjects: []string{"Mathematics", "Physics"}, Classes: []string{"Class 10", "Class 12"}, Bio: "IIT alumna", Rating: 4.8},
		{Name: "Vikram Rao", Subjects: []string{"Chemistry"}, Classes: []string{"Class 12"}, Bio: "Organic chemistry specialist", Rating: 4.5},
		{Name: "Priya Das", Subjects: []string{"English"}, Classes: []string{"Class 8"}, Bio: "Focus on grammar", Rating: 4.1},
	}
	for i := range tutors {
		if err := svc.Create(&tutors[i]); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
}

func TestTutorListFilters(t *testing.T) {
	svc := NewTutorService(testDB(t))
	seedTutors(t, svc)

	tests := []struct {
		name                   string
		subject, class, search string
		want                   int
	}{
		{"no filters", "", "", "", 3},
		{"by subject", "Chemistry", "", "", 1},
		{"by class", "", "Class 12", "", 2},
		{"subject and class", "Mathematics", "Class 12", "", 1},
		{"search name", "", "", "vikram", 1},
		{"search bio", "", "", "grammar", 1},
		{"search subject", "", "", "phys", 1},
		{"no match", "Biology", "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.List(tt.subject, tt.class, tt.search)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}
