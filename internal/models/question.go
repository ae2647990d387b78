package models

import "gorm.io/datatypes"

// Question belongs to the current quiz generation. CorrectAnswer is
// server-side only and must never reach a quiz taker.
type Question struct {
	ID            uint                        `gorm:"primaryKey" json:"id"`
	Text          string                      `gorm:"type:text;not null" json:"question"`
	Options       datatypes.JSONSlice[string] `gorm:"not null" json:"options"`
	CorrectAnswer string                      `gorm:"size:500;not null" json:"-"`
}
