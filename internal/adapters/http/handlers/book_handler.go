package handlers

import (
	"libralend/internal/core/services"
	"libralend/internal/pkg/pagination"
	"libralend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BookHandler handles book catalog and availability endpoints
type BookHandler struct {
	bookService         *services.BookService
	availabilityService *services.AvailabilityService
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService *services.BookService, availabilityService *services.AvailabilityService) *BookHandler {
	return &BookHandler{
		bookService:         bookService,
		availabilityService: availabilityService,
	}
}

// Create creates a new book
// @Summary Create book
// @Description Add a book to the catalog. All copies start available.
// @Tags Books
// @Accept json
// @Produce json
// @Param body body services.CreateBookInput true "Book data"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /books [post]
func (h *BookHandler) Create(c *fiber.Ctx) error {
	var input services.CreateBookInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	book, err := h.bookService.Create(c.Context(), &input)
	if err != nil {
		return domainError(c, err)
	}

	return response.Created(c, "Book created successfully", fiber.Map{
		"book": book,
	})
}

// Get returns a single book
// @Summary Get book
// @Description Get a book by ID
// @Tags Books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [get]
func (h *BookHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	book, err := h.bookService.GetByID(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Book retrieved", fiber.Map{
		"book": book,
	})
}

// GetByISBN returns a book by ISBN
// @Summary Get book by ISBN
// @Description Look up a book by its ISBN
// @Tags Books
// @Produce json
// @Param isbn path string true "ISBN"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/isbn/{isbn} [get]
func (h *BookHandler) GetByISBN(c *fiber.Ctx) error {
	isbn := c.Params("isbn")
	if isbn == "" {
		return response.BadRequest(c, "ISBN is required")
	}

	book, err := h.bookService.GetByISBN(c.Context(), isbn)
	if err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Book retrieved", fiber.Map{
		"book": book,
	})
}

// List lists books
// @Summary List books
// @Description List books with pagination
// @Tags Books
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} pagination.Response
// @Router /books [get]
func (h *BookHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	books, total, err := h.bookService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(pagination.NewResponse(books, params, total))
}

// Update updates a book
// @Summary Update book
// @Description Update catalog fields. Resizing total copies keeps borrowed copies intact.
// @Tags Books
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Param body body services.UpdateBookInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /books/{id} [put]
func (h *BookHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var input services.UpdateBookInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	book, err := h.bookService.Update(c.Context(), id, &input)
	if err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Book updated successfully", fiber.Map{
		"book": book,
	})
}

// Delete soft deletes a book
// @Summary Delete book
// @Description Soft delete a book. It keeps its borrow history.
// @Tags Books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} response.Response
// @Router /books/{id} [delete]
func (h *BookHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.bookService.Delete(c.Context(), id); err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Book deleted successfully", nil)
}

// Availability reports the copy counts for a book
// @Summary Book availability
// @Description Report available, borrowed and total copies for a book
// @Tags Books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id}/availability [get]
func (h *BookHandler) Availability(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	// Confirm the book exists before reporting zeroed counts
	if _, err := h.bookService.GetByID(c.Context(), id); err != nil {
		return domainError(c, err)
	}

	available, err := h.availabilityService.GetAvailableCopies(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	total, err := h.availabilityService.GetTotalCopies(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	borrowed, err := h.availabilityService.GetBorrowedCopies(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Availability retrieved", fiber.Map{
		"book_id":          id,
		"is_available":     available > 0,
		"available_copies": available,
		"borrowed_copies":  borrowed,
		"total_copies":     total,
	})
}

// SetAvailabilityRequest represents an availability correction request
type SetAvailabilityRequest struct {
	AvailableCopies int `json:"available_copies"`
}

// SetAvailability corrects the available copy count
// @Summary Set availability
// @Description Administrative correction of the available copy count
// @Tags Books
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Param body body SetAvailabilityRequest true "New count"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /books/{id}/availability [put]
func (h *BookHandler) SetAvailability(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req SetAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.availabilityService.SetAvailability(c.Context(), id, req.AvailableCopies); err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Availability updated successfully", fiber.Map{
		"book_id":          id,
		"available_copies": req.AvailableCopies,
	})
}
