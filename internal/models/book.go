package models

import (
	"math"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	BookStatusPending  = "Pending"
	BookStatusApproved = "Approved"
	BookStatusRejected = "Rejected"
	BookStatusSold     = "Sold"
)

type StatusChange struct {
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
}

// Book is a secondhand-book listing. Photos hold media-host URLs;
// StatusHistory starts at Pending and only appends.
type Book struct {
	ID             uint                              `gorm:"primaryKey" json:"id"`
	Title          string                            `gorm:"size:100;not null" json:"title"`
	Description    string                            `gorm:"type:text;not null" json:"description"`
	Subject        string                            `gorm:"size:50;not null;index:idx_books_filter" json:"subject"`
	ClassLevel     string                            `gorm:"size:20;not null;index:idx_books_filter" json:"class_level"`
	Condition      string                            `gorm:"size:20;not null;default:'Good'" json:"condition"`
	Price          float64                           `gorm:"not null;index" json:"price"`
	OriginalPrice  float64                           `gorm:"not null" json:"original_price"`
	Photos         datatypes.JSONSlice[string]       `gorm:"not null" json:"photos"`
	WhatsappNumber string                            `gorm:"size:15;not null" json:"whatsapp_number"`
	Location       string                            `gorm:"size:50;not null;index" json:"location"`
	Views          int64                             `gorm:"not null;default:0" json:"views"`
	StatusHistory  datatypes.JSONSlice[StatusChange] `json:"status_history"`
	Discount       int                               `gorm:"-" json:"discount"`
	CreatedAt      time.Time                         `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time                         `json:"updated_at"`
}

func (b *Book) ComputeDiscount() {
	if b.OriginalPrice <= 0 {
		b.Discount = 0
		return
	}
	b.Discount = int(math.Round((b.OriginalPrice - b.Price) / b.OriginalPrice * 100))
}

func (b *Book) AfterFind(*gorm.DB) error {
	b.ComputeDiscount()
	return nil
}

func (b *Book) Status() string {
	if len(b.StatusHistory) == 0 {
		return BookStatusPending
	}
	return b.StatusHistory[len(b.StatusHistory)-1].Status
}
