package handlers

import (
	"libralend/internal/core/services"
	"libralend/internal/pkg/pagination"
	"libralend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthorHandler handles author endpoints
type AuthorHandler struct {
	authorService *services.AuthorService
}

// NewAuthorHandler creates a new author handler
func NewAuthorHandler(authorService *services.AuthorService) *AuthorHandler {
	return &AuthorHandler{
		authorService: authorService,
	}
}

// Create creates a new author
// @Summary Create author
// @Description Register a new author
// @Tags Authors
// @Accept json
// @Produce json
// @Param body body services.CreateAuthorInput true "Author data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /authors [post]
func (h *AuthorHandler) Create(c *fiber.Ctx) error {
	var input services.CreateAuthorInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	author, err := h.authorService.Create(c.Context(), &input)
	if err != nil {
		return domainError(c, err)
	}

	return response.Created(c, "Author created successfully", fiber.Map{
		"author": author,
	})
}

// Get returns a single author
// @Summary Get author
// @Description Get an author by ID
// @Tags Authors
// @Produce json
// @Param id path string true "Author ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /authors/{id} [get]
func (h *AuthorHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	author, err := h.authorService.GetByID(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Author retrieved", fiber.Map{
		"author": author,
	})
}

// List lists authors
// @Summary List authors
// @Description List authors with pagination
// @Tags Authors
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} pagination.Response
// @Router /authors [get]
func (h *AuthorHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	authors, total, err := h.authorService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(pagination.NewResponse(authors, params, total))
}

// Update updates an author
// @Summary Update author
// @Description Update author fields
// @Tags Authors
// @Accept json
// @Produce json
// @Param id path string true "Author ID"
// @Param body body services.UpdateAuthorInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /authors/{id} [put]
func (h *AuthorHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var input services.UpdateAuthorInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	author, err := h.authorService.Update(c.Context(), id, &input)
	if err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Author updated successfully", fiber.Map{
		"author": author,
	})
}

// Delete soft deletes an author
// @Summary Delete author
// @Description Soft delete an author
// @Tags Authors
// @Produce json
// @Param id path string true "Author ID"
// @Success 200 {object} response.Response
// @Router /authors/{id} [delete]
func (h *AuthorHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.authorService.Delete(c.Context(), id); err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Author deleted successfully", nil)
}
