package handlers

import (
	"libralend/internal/core/domain"
	"libralend/internal/core/services"
	"libralend/internal/pkg/pagination"
	"libralend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles member endpoints
type MemberHandler struct {
	memberService *services.MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

// Create registers a new member
// @Summary Create member
// @Description Register a new member. Email and phone number are unique.
// @Tags Members
// @Accept json
// @Produce json
// @Param body body services.CreateMemberInput true "Member data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /members [post]
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	var input services.CreateMemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.memberService.Create(c.Context(), &input)
	if err != nil {
		return domainError(c, err)
	}

	return response.Created(c, "Member created successfully", fiber.Map{
		"member": member,
	})
}

// Get returns a single member together with the active loan count
// @Summary Get member
// @Description Get a member by ID
// @Tags Members
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [get]
func (h *MemberHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	member, err := h.memberService.GetByID(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}

	active, err := h.memberService.ActiveBorrowCount(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Member retrieved", fiber.Map{
		"member":       member,
		"active_loans": active,
		"can_borrow":   member.MembershipValid() && active < domain.MaxActiveLoans,
	})
}

// List lists members
// @Summary List members
// @Description List members with pagination
// @Tags Members
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} pagination.Response
// @Router /members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	members, total, err := h.memberService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(pagination.NewResponse(members, params, total))
}

// Update updates a member
// @Summary Update member
// @Description Update member fields, re-checking email/phone uniqueness
// @Tags Members
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param body body services.UpdateMemberInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /members/{id} [put]
func (h *MemberHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var input services.UpdateMemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.memberService.Update(c.Context(), id, &input)
	if err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Member updated successfully", fiber.Map{
		"member": member,
	})
}

// Delete soft deletes a member
// @Summary Delete member
// @Description Soft delete a member
// @Tags Members
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Response
// @Router /members/{id} [delete]
func (h *MemberHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.memberService.Delete(c.Context(), id); err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Member deleted successfully", nil)
}
