package repositories

import (
	"context"

	"libralend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// authorRepository implements AuthorRepository
type authorRepository struct {
	repository[models.Author]
}

// NewAuthorRepository creates a new author repository
func NewAuthorRepository(db *gorm.DB) AuthorRepository {
	return &authorRepository{repository[models.Author]{db: db}}
}

// ExistsByName checks the (first name, last name) uniqueness constraint
func (r *authorRepository) ExistsByName(ctx context.Context, firstName, lastName string) (bool, error) {
	return r.Exists(ctx, "first_name = ? AND last_name = ?", firstName, lastName)
}
