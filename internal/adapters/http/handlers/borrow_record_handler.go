package handlers

import (
	"strings"

	"libralend/internal/adapters/persistence/models"
	"libralend/internal/core/domain"
	"libralend/internal/core/services"
	"libralend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// BorrowRecordHandler handles borrowing endpoints
type BorrowRecordHandler struct {
	borrowingService *services.BorrowingService
}

// NewBorrowRecordHandler creates a new borrow record handler
func NewBorrowRecordHandler(borrowingService *services.BorrowingService) *BorrowRecordHandler {
	return &BorrowRecordHandler{
		borrowingService: borrowingService,
	}
}

// BorrowRequest represents a borrow request
type BorrowRequest struct {
	MemberID uuid.UUID `json:"member_id"`
	BookID   uuid.UUID `json:"book_id"`
}

// Borrow lends a copy of a book to a member
// @Summary Borrow book
// @Description Lend one copy of a book to a member
// @Tags Borrows
// @Accept json
// @Produce json
// @Param body body BorrowRequest true "Member and book"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /borrows [post]
func (h *BorrowRecordHandler) Borrow(c *fiber.Ctx) error {
	var req BorrowRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.MemberID == uuid.Nil {
		return response.BadRequest(c, "Member ID is required")
	}
	if req.BookID == uuid.Nil {
		return response.BadRequest(c, "Book ID is required")
	}

	record, err := h.borrowingService.Borrow(c.Context(), req.MemberID, req.BookID)
	if err != nil {
		return domainError(c, err)
	}

	return response.Created(c, "Book borrowed successfully", fiber.Map{
		"borrow_record": record.ToResponse(),
	})
}

// CanBorrow checks whether a member could borrow a book right now
// @Summary Check eligibility
// @Description Advisory check whether a member could borrow a book
// @Tags Borrows
// @Produce json
// @Param member_id query string true "Member ID"
// @Param book_id query string true "Book ID"
// @Success 200 {object} response.Response
// @Router /borrows/eligibility [get]
func (h *BorrowRecordHandler) CanBorrow(c *fiber.Ctx) error {
	memberID, err := uuid.Parse(c.Query("member_id"))
	if err != nil {
		return response.BadRequest(c, "Invalid member_id parameter")
	}
	bookID, err := uuid.Parse(c.Query("book_id"))
	if err != nil {
		return response.BadRequest(c, "Invalid book_id parameter")
	}

	ok, err := h.borrowingService.CanBorrow(c.Context(), memberID, bookID)
	if err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Eligibility checked", fiber.Map{
		"member_id":  memberID,
		"book_id":    bookID,
		"can_borrow": ok,
	})
}

// Return accepts a borrowed copy back
// @Summary Return book
// @Description Return a borrowed copy and release it back to the shelf
// @Tags Borrows
// @Produce json
// @Param id path string true "Borrow record ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /borrows/{id}/return [post]
func (h *BorrowRecordHandler) Return(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.borrowingService.Return(c.Context(), id); err != nil {
		return domainError(c, err)
	}

	record, err := h.borrowingService.GetByID(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Book returned successfully", fiber.Map{
		"borrow_record": record.ToResponse(),
	})
}

// Fine computes the current fine for a borrow record
// @Summary Calculate fine
// @Description Compute the fine owed on a borrow record as of now
// @Tags Borrows
// @Produce json
// @Param id path string true "Borrow record ID"
// @Success 200 {object} response.Response
// @Router /borrows/{id}/fine [get]
func (h *BorrowRecordHandler) Fine(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	amount, err := h.borrowingService.CalculateFine(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Fine calculated", fiber.Map{
		"borrow_record_id": id,
		"fine_amount":      amount,
	})
}

// SetStatusRequest represents an administrative status change
type SetStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// SetStatus marks a record lost or damaged
// @Summary Set record status
// @Description Administrative transition to LOST or DAMAGED
// @Tags Borrows
// @Accept json
// @Produce json
// @Param id path string true "Borrow record ID"
// @Param body body SetStatusRequest true "Target status"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /borrows/{id}/status [patch]
func (h *BorrowRecordHandler) SetStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	status := domain.BorrowStatus(strings.ToUpper(req.Status))
	if !status.IsValid() {
		return response.BadRequest(c, "Unknown status: "+req.Status)
	}

	if err := h.borrowingService.SetStatus(c.Context(), id, status, req.Notes); err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Status updated successfully", fiber.Map{
		"borrow_record_id": id,
		"status":           status,
	})
}

// Get returns a single borrow record
// @Summary Get borrow record
// @Description Get a borrow record by ID
// @Tags Borrows
// @Produce json
// @Param id path string true "Borrow record ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /borrows/{id} [get]
func (h *BorrowRecordHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	record, err := h.borrowingService.GetByID(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Borrow record retrieved", fiber.Map{
		"borrow_record": record.ToResponse(),
	})
}

// List lists borrow records, optionally filtered by state
// @Summary List borrow records
// @Description List borrow records. Use ?filter=active or ?filter=overdue to narrow.
// @Tags Borrows
// @Produce json
// @Param filter query string false "active or overdue"
// @Success 200 {object} response.Response
// @Router /borrows [get]
func (h *BorrowRecordHandler) List(c *fiber.Ctx) error {
	var (
		records []*models.BorrowRecord
		err     error
	)

	switch c.Query("filter") {
	case "active":
		records, err = h.borrowingService.GetActive(c.Context())
	case "overdue":
		records, err = h.borrowingService.GetOverdue(c.Context())
	case "":
		records, err = h.borrowingService.GetAll(c.Context())
	default:
		return response.BadRequest(c, "Unknown filter: "+c.Query("filter"))
	}
	if err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Borrow records retrieved", fiber.Map{
		"borrow_records": toResponses(records),
		"count":          len(records),
	})
}

// ListByMember lists a member's borrow records
// @Summary List member borrows
// @Description List all borrow records for a member
// @Tags Borrows
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Response
// @Router /members/{id}/borrows [get]
func (h *BorrowRecordHandler) ListByMember(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	records, err := h.borrowingService.GetByMember(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Borrow records retrieved", fiber.Map{
		"borrow_records": toResponses(records),
		"count":          len(records),
	})
}

// ListByBook lists a book's borrow records
// @Summary List book borrows
// @Description List all borrow records for a book
// @Tags Borrows
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} response.Response
// @Router /books/{id}/borrows [get]
func (h *BorrowRecordHandler) ListByBook(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	records, err := h.borrowingService.GetByBook(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Borrow records retrieved", fiber.Map{
		"borrow_records": toResponses(records),
		"count":          len(records),
	})
}

// Delete soft deletes a borrow record
// @Summary Delete borrow record
// @Description Soft delete a borrow record
// @Tags Borrows
// @Produce json
// @Param id path string true "Borrow record ID"
// @Success 200 {object} response.Response
// @Router /borrows/{id} [delete]
func (h *BorrowRecordHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.borrowingService.Delete(c.Context(), id); err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Borrow record deleted successfully", nil)
}

func toResponses(records []*models.BorrowRecord) []*models.BorrowRecordResponse {
	out := make([]*models.BorrowRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, r.ToResponse())
	}
	return out
}
