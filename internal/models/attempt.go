package models

import "time"

// Attempt is one participant's quiz session. StudentID is the opaque
// session token handed out by /start; Score stays NULL until the
// single allowed submission.
type Attempt struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID string    `gorm:"size:36;uniqueIndex;not null" json:"student_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Phone     string    `gorm:"size:20;not null" json:"phone"`
	IP        string    `gorm:"size:45" json:"ip"`
	Score     *int      `gorm:"index:idx_attempt_rank" json:"score,omitempty"`
	StartTime time.Time `gorm:"not null" json:"start_time"`
	CreatedAt time.Time `gorm:"index:idx_attempt_rank" json:"created_at"`
}
