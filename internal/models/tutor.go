package models

import (
	"time"

	"gorm.io/datatypes"
)

type Tutor struct {
	ID         uint                        `gorm:"primaryKey" json:"id"`
	Name       string                      `gorm:"size:100;not null" json:"name"`
	Subjects   datatypes.JSONSlice[string] `json:"subjects"`
	Classes    datatypes.JSONSlice[string] `json:"classes"`
	Rating     float64                     `json:"rating"`
	Experience string                      `gorm:"size:100" json:"experience"`
	Bio        string                      `gorm:"type:text" json:"bio"`
	Image      string                      `gorm:"size:500" json:"image"`
	Price      string                      `gorm:"size:50" json:"price"`
	CreatedAt  time.Time                   `json:"created_at"`
}
