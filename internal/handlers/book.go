package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/mukundpurtutor/server/internal/models"
	"github.com/mukundpurtutor/server/internal/services"
	"github.com/mukundpurtutor/server/internal/storage"

	"github.com/gin-gonic/gin"
)

const maxBookPhotos = 4

type BookHandler struct {
	books    *services.BookService
	uploader storage.Uploader
}

func NewBookHandler(books *services.BookService, uploader storage.Uploader) *BookHandler {
	return &BookHandler{books: books, uploader: uploader}
}

type BookForm struct {
	Title          string  `form:"title" binding:"required,min=3,max=100"`
	Description    string  `form:"description" binding:"required,min=10,max=1000"`
	Subject        string  `form:"subject" binding:"required,oneof=Mathematics Physics Chemistry Biology English History Geography 'Computer Science' Other"`
	ClassLevel     string  `form:"classLevel" binding:"required,oneof='Class 6' 'Class 7' 'Class 8' 'Class 9' 'Class 10' 'Class 11' 'Class 12' JEE NEET College Other"`
	Condition      string  `form:"condition" binding:"omitempty,oneof=New 'Like New' Good Acceptable 'Worn Out'"`
	Price          float64 `form:"price" binding:"required,gte=0"`
	OriginalPrice  float64 `form:"originalPrice" binding:"required,gte=0"`
	WhatsappNumber string  `form:"whatsappNumber" binding:"required"`
	Location       string  `form:"location" binding:"required,oneof=Delhi Mumbai Bangalore Hyderabad Chennai Kolkata Pune Other"`
}

func (f BookForm) toModel() models.Book {
	condition := f.Condition
	if condition == "" {
		condition = "Good"
	}
	return models.Book{
		Title:          f.Title,
		Description:    f.Description,
		Subject:        f.Subject,
		ClassLevel:     f.ClassLevel,
		Condition:      condition,
		Price:          f.Price,
		OriginalPrice:  f.OriginalPrice,
		WhatsappNumber: f.WhatsappNumber,
		Location:       f.Location,
	}
}

func (h *BookHandler) uploadPhotos(c *gin.Context) ([]string, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid multipart form"})
		return nil, false
	}

	files := form.File["photos"]
	if len(files) > maxBookPhotos {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "at most 4 photos allowed"})
		return nil, false
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		data, err := readFormFile(fh)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to read photo"})
			return nil, false
		}
		url, err := h.uploader.Upload(data, fh.Filename)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "photo upload failed"})
			return nil, false
		}
		urls = append(urls, url)
	}
	return urls, true
}

// CreateBook godoc
// @Summary      Create a book listing
// @Description  Create a secondhand-book listing with 1 to 4 photos uploaded to the media host
// @Tags         books
// @Accept       multipart/form-data
// @Produce      json
// @Param        title formData string true "Title"
// @Param        description formData string true "Description"
// @Param        photos formData file true "Photos (1-4)"
// @Success      201 {object} Book
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var form BookForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	photos, ok := h.uploadPhotos(c)
	if !ok {
		return
	}

	book := form.toModel()
	book.Photos = photos
	if err := h.books.Create(&book); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, book)
}

// ListBooks godoc
// @Summary      List book listings
// @Description  Filtered, paginated book listings, newest first
// @Tags         books
// @Produce      json
// @Param        subject query string false "Subject filter"
// @Param        classLevel query string false "Class level filter"
// @Param        location query string false "Location filter"
// @Param        minPrice query number false "Minimum price"
// @Param        maxPrice query number false "Maximum price"
// @Param        search query string false "Search in title and description"
// @Param        page query int false "Page (default 1)"
// @Param        limit query int false "Page size (default 20)"
// @Success      200 {object} services.BookPage
// @Failure      500 {object} ErrorResponse
// @Router       /api/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	minPrice, _ := strconv.ParseFloat(c.Query("minPrice"), 64)
	maxPrice, _ := strconv.ParseFloat(c.Query("maxPrice"), 64)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	pageData, err := h.books.List(services.BookFilters{
		Subject:    c.Query("subject"),
		ClassLevel: c.Query("classLevel"),
		Location:   c.Query("location"),
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		Search:     c.Query("search"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "error fetching books"})
		return
	}
	c.JSON(http.StatusOK, pageData)
}

func bookID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid book id"})
		return 0, false
	}
	return uint(id), true
}

// GetBook godoc
// @Summary      Get a book listing
// @Description  Return one listing and count the view
// @Tags         books
// @Produce      json
// @Param        id path int true "Book ID"
// @Success      200 {object} Book
// @Failure      404 {object} ErrorResponse
// @Router       /api/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	book, err := h.books.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "book not found"})
		return
	}
	c.JSON(http.StatusOK, book)
}

// UpdateBook godoc
// @Summary      Update a book listing
// @Description  Update listing fields; new photos, when supplied, replace the old set
// @Tags         books
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path int true "Book ID"
// @Success      200 {object} Book
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	var form BookForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	photos, ok := h.uploadPhotos(c)
	if !ok {
		return
	}

	update := form.toModel()
	update.Photos = photos

	book, err := h.books.Update(id, &update)
	if err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "book not found"})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, book)
}

// DeleteBook godoc
// @Summary      Delete a book listing
// @Description  Remove the listing and its photos from the media host
// @Tags         books
// @Produce      json
// @Param        id path int true "Book ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	photos, err := h.books.Delete(id)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "book not found"})
		return
	}

	for _, url := range photos {
		if err := h.uploader.Delete(url); err != nil {
			log.Printf("failed to delete photo %s: %v", url, err)
		}
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "book listing removed"})
}

// ApproveBook godoc
// @Summary      Approve a book listing
// @Description  Append an Approved entry to the listing's status history
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Book ID"
// @Success      200 {object} Book
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/books/{id}/approve [patch]
func (h *BookHandler) ApproveBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	book, err := h.books.Approve(id)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "book not found"})
		return
	}
	c.JSON(http.StatusOK, book)
}
