package services

import (
	"context"
	"errors"
	"time"

	"libralend/internal/adapters/persistence/models"
	"libralend/internal/adapters/persistence/repositories"
	"libralend/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthorService handles author reference data
type AuthorService struct {
	authors repositories.AuthorRepository
}

// NewAuthorService creates a new author service
func NewAuthorService(authors repositories.AuthorRepository) *AuthorService {
	return &AuthorService{authors: authors}
}

// CreateAuthorInput represents create author input
type CreateAuthorInput struct {
	FirstName string     `json:"first_name" validate:"required,max=100"`
	LastName  string     `json:"last_name" validate:"required,max=100"`
	Biography string     `json:"biography,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
}

// Create adds an author. The (first name, last name) pair is unique.
func (s *AuthorService) Create(ctx context.Context, input *CreateAuthorInput) (*models.Author, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	exists, err := s.authors.ExistsByName(ctx, input.FirstName, input.LastName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewDuplicateEntity("Author", "Name", input.FirstName+" "+input.LastName)
	}

	author := &models.Author{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Biography: input.Biography,
		BirthDate: input.BirthDate,
	}

	if err := s.authors.Create(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

// GetByID gets an author by ID
func (s *AuthorService) GetByID(ctx context.Context, id uuid.UUID) (*models.Author, error) {
	author, err := s.authors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("Author", id.String())
		}
		return nil, err
	}
	return author, nil
}

// List lists authors with pagination
func (s *AuthorService) List(ctx context.Context, offset, limit int) ([]*models.Author, int64, error) {
	return s.authors.List(ctx, offset, limit)
}

// UpdateAuthorInput represents update author input; nil fields stay
// unchanged
type UpdateAuthorInput struct {
	FirstName *string    `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName  *string    `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Biography *string    `json:"biography,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
}

// Update edits an author, re-checking the name pair when it changes
func (s *AuthorService) Update(ctx context.Context, id uuid.UUID, input *UpdateAuthorInput) (*models.Author, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	author, err := s.authors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("Author", id.String())
		}
		return nil, err
	}

	firstName := author.FirstName
	lastName := author.LastName
	if input.FirstName != nil {
		firstName = *input.FirstName
	}
	if input.LastName != nil {
		lastName = *input.LastName
	}

	if firstName != author.FirstName || lastName != author.LastName {
		exists, err := s.authors.ExistsByName(ctx, firstName, lastName)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.NewDuplicateEntity("Author", "Name", firstName+" "+lastName)
		}
	}

	author.FirstName = firstName
	author.LastName = lastName
	if input.Biography != nil {
		author.Biography = *input.Biography
	}
	if input.BirthDate != nil {
		author.BirthDate = input.BirthDate
	}

	if err := s.authors.Update(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

// Delete soft deletes an author
func (s *AuthorService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.authors.Delete(ctx, id)
}
