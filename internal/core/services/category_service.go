package services

import (
	"context"
	"errors"

	"libralend/internal/adapters/persistence/models"
	"libralend/internal/adapters/persistence/repositories"
	"libralend/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryService handles category reference data
type CategoryService struct {
	categories repositories.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categories repositories.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// CreateCategoryInput represents create category input
type CreateCategoryInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description,omitempty"`
}

// Create adds a category with a unique name
func (s *CategoryService) Create(ctx context.Context, input *CreateCategoryInput) (*models.Category, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	exists, err := s.categories.ExistsByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewDuplicateEntity("Category", "Name", input.Name)
	}

	category := &models.Category{
		Name:        input.Name,
		Description: input.Description,
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetByID gets a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("Category", id.String())
		}
		return nil, err
	}
	return category, nil
}

// GetByName gets a category by its unique name
func (s *CategoryService) GetByName(ctx context.Context, name string) (*models.Category, error) {
	category, err := s.categories.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("Category", name)
		}
		return nil, err
	}
	return category, nil
}

// List lists categories with pagination
func (s *CategoryService) List(ctx context.Context, offset, limit int) ([]*models.Category, int64, error) {
	return s.categories.List(ctx, offset, limit)
}

// UpdateCategoryInput represents update category input; nil fields
// stay unchanged
type UpdateCategoryInput struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty"`
}

// Update edits a category, re-checking the name when it changes
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, input *UpdateCategoryInput) (*models.Category, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("Category", id.String())
		}
		return nil, err
	}

	if input.Name != nil && *input.Name != category.Name {
		exists, err := s.categories.ExistsByName(ctx, *input.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.NewDuplicateEntity("Category", "Name", *input.Name)
		}
		category.Name = *input.Name
	}
	if input.Description != nil {
		category.Description = *input.Description
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete soft deletes a category
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.categories.Delete(ctx, id)
}
