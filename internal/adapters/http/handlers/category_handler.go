package handlers

import (
	"libralend/internal/core/services"
	"libralend/internal/pkg/pagination"
	"libralend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	categoryService *services.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// Create creates a new category
// @Summary Create category
// @Description Create a new category with a unique name
// @Tags Categories
// @Accept json
// @Produce json
// @Param body body services.CreateCategoryInput true "Category data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var input services.CreateCategoryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	category, err := h.categoryService.Create(c.Context(), &input)
	if err != nil {
		return domainError(c, err)
	}

	return response.Created(c, "Category created successfully", fiber.Map{
		"category": category,
	})
}

// Get returns a single category
// @Summary Get category
// @Description Get a category by ID
// @Tags Categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /categories/{id} [get]
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	category, err := h.categoryService.GetByID(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Category retrieved", fiber.Map{
		"category": category,
	})
}

// List lists categories
// @Summary List categories
// @Description List categories with pagination
// @Tags Categories
// @Produce json
// @Success 200 {object} pagination.Response
// @Router /categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	categories, total, err := h.categoryService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(pagination.NewResponse(categories, params, total))
}

// Update updates a category
// @Summary Update category
// @Description Update category fields
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param body body services.UpdateCategoryInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var input services.UpdateCategoryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	category, err := h.categoryService.Update(c.Context(), id, &input)
	if err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Category updated successfully", fiber.Map{
		"category": category,
	})
}

// Delete soft deletes a category
// @Summary Delete category
// @Description Soft delete a category
// @Tags Categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} response.Response
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.categoryService.Delete(c.Context(), id); err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Category deleted successfully", nil)
}
