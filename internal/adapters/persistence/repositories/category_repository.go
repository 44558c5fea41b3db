package repositories

import (
	"context"

	"libralend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// categoryRepository implements CategoryRepository
type categoryRepository struct {
	repository[models.Category]
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{repository[models.Category]{db: db}}
}

// GetByName gets a category by its unique name
func (r *categoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		First(&category, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ExistsByName checks the category name uniqueness constraint
func (r *categoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.Exists(ctx, "name = ?", name)
}
