package services

import (
	"errors"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/mukundpurtutor/server/internal/models"

	"gorm.io/gorm"
)

var (
	ErrBookNotFound = errors.New("book not found")

	whatsappRe = regexp.MustCompile(`^(\+91|91)?[6-9]\d{9}$`)
)

type BookService struct {
	db *gorm.DB
}

func NewBookService(db *gorm.DB) *BookService {
	return &BookService{db: db}
}

type BookFilters struct {
	Subject    string
	ClassLevel string
	Location   string
	MinPrice   float64
	MaxPrice   float64
	Search     string
	Page       int
	Limit      int
}

type BookPage struct {
	Books       []models.Book `json:"books"`
	Total       int64         `json:"total"`
	Pages       int           `json:"pages"`
	CurrentPage int           `json:"currentPage"`
}

func (s *BookService) Create(book *models.Book) error {
	if err := validateBook(book); err != nil {
		return err
	}

	book.StatusHistory = []models.StatusChange{
		{Status: models.BookStatusPending, ChangedAt: time.Now()},
	}
	if err := s.db.Create(book).Error; err != nil {
		return err
	}
	book.ComputeDiscount()
	return nil
}

func validateBook(book *models.Book) error {
	if book.Price < 0 || book.OriginalPrice < 0 {
		return errors.New("price cannot be negative")
	}
	if book.Price >= book.OriginalPrice {
		return errors.New("selling price must be lower than original price")
	}
	if len(book.Photos) < 1 || len(book.Photos) > 4 {
		return errors.New("1 to 4 photos are required")
	}
	if !whatsappRe.MatchString(book.WhatsappNumber) {
		return errors.New("invalid whatsapp number")
	}
	return nil
}

func (s *BookService) List(f BookFilters) (*BookPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}

	query := s.db.Model(&models.Book{})
	if f.Subject != "" {
		query = query.Where("subject = ?", f.Subject)
	}
	if f.ClassLevel != "" {
		query = query.Where("class_level = ?", f.ClassLevel)
	}
	if f.Location != "" {
		query = query.Where("location = ?", f.Location)
	}
	if f.MinPrice > 0 {
		query = query.Where("price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		query = query.Where("price <= ?", f.MaxPrice)
	}
	if f.Search != "" {
		needle := "%" + strings.ToLower(f.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", needle, needle)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var books []models.Book
	err := query.Order("created_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&books).Error
	if err != nil {
		return nil, err
	}

	return &BookPage{
		Books:       books,
		Total:       total,
		Pages:       int(math.Ceil(float64(total) / float64(f.Limit))),
		CurrentPage: f.Page,
	}, nil
}

// Get returns one listing and counts the view. The increment is a single
// UPDATE so concurrent readers never lose counts.
func (s *BookService) Get(id uint) (*models.Book, error) {
	result := s.db.Model(&models.Book{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrBookNotFound
	}

	var book models.Book
	if err := s.db.First(&book, id).Error; err != nil {
		return nil, ErrBookNotFound
	}
	return &book, nil
}

func (s *BookService) Update(id uint, update *models.Book) (*models.Book, error) {
	var book models.Book
	if err := s.db.First(&book, id).Error; err != nil {
		return nil, ErrBookNotFound
	}

	book.Title = update.Title
	book.Description = update.Description
	book.Subject = update.Subject
	book.ClassLevel = update.ClassLevel
	book.Condition = update.Condition
	book.Price = update.Price
	book.OriginalPrice = update.OriginalPrice
	book.WhatsappNumber = update.WhatsappNumber
	book.Location = update.Location
	if len(update.Photos) > 0 {
		book.Photos = update.Photos
	}

	if err := validateBook(&book); err != nil {
		return nil, err
	}
	if err := s.db.Save(&book).Error; err != nil {
		return nil, err
	}
	book.ComputeDiscount()
	return &book, nil
}

// Delete removes the listing and reports its photo URLs so the caller
// can clean up the media host.
func (s *BookService) Delete(id uint) ([]string, error) {
	var book models.Book
	if err := s.db.First(&book, id).Error; err != nil {
		return nil, ErrBookNotFound
	}
	if err := s.db.Delete(&book).Error; err != nil {
		return nil, err
	}
	return book.Photos, nil
}

func (s *BookService) Approve(id uint) (*models.Book, error) {
	var book models.Book
	if err := s.db.First(&book, id).Error; err != nil {
		return nil, ErrBookNotFound
	}

	book.StatusHistory = append(book.StatusHistory, models.StatusChange{
		Status:    models.BookStatusApproved,
		ChangedAt: time.Now(),
	})
	if err := s.db.Save(&book).Error; err != nil {
		return nil, err
	}
	book.ComputeDiscount()
	return &book, nil
}
