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

// BookService handles catalog maintenance for books. Copy counts are
// initialized and resized here, but lending never goes through this
// service; borrow and return own the available count.
type BookService struct {
	uow *repositories.UnitOfWork
}

// NewBookService creates a new book service
func NewBookService(uow *repositories.UnitOfWork) *BookService {
	return &BookService{uow: uow}
}

// CreateBookInput represents create book input
type CreateBookInput struct {
	Title         string    `json:"title" validate:"required,max=200"`
	ISBN          string    `json:"isbn" validate:"required,max=20"`
	Description   string    `json:"description,omitempty"`
	PageCount     int       `json:"page_count" validate:"gte=0"`
	PublishedDate time.Time `json:"published_date"`
	TotalCopies   int       `json:"total_copies" validate:"required,gt=0"`
	AuthorID      uuid.UUID `json:"author_id" validate:"required"`
	CategoryID    uuid.UUID `json:"category_id" validate:"required"`
}

// Create adds a book to the catalog. All copies start available.
func (s *BookService) Create(ctx context.Context, input *CreateBookInput) (*models.Book, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	exists, err := s.uow.Books().ExistsByISBN(ctx, input.ISBN)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewDuplicateEntity("Book", "ISBN", input.ISBN)
	}

	if _, err := s.uow.Authors().GetByID(ctx, input.AuthorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("Author", input.AuthorID.String())
		}
		return nil, err
	}
	if _, err := s.uow.Categories().GetByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("Category", input.CategoryID.String())
		}
		return nil, err
	}

	book := &models.Book{
		Title:           input.Title,
		ISBN:            input.ISBN,
		Description:     input.Description,
		PageCount:       input.PageCount,
		PublishedDate:   input.PublishedDate,
		TotalCopies:     input.TotalCopies,
		AvailableCopies: input.TotalCopies,
		AuthorID:        input.AuthorID,
		CategoryID:      input.CategoryID,
	}

	if err := s.uow.Books().Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// GetByID gets a book by ID
func (s *BookService) GetByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	book, err := s.uow.Books().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("Book", id.String())
		}
		return nil, err
	}
	return book, nil
}

// GetByISBN gets a book by its catalog identifier
func (s *BookService) GetByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	book, err := s.uow.Books().GetByISBN(ctx, isbn)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("Book", isbn)
		}
		return nil, err
	}
	return book, nil
}

// List lists books with pagination
func (s *BookService) List(ctx context.Context, offset, limit int) ([]*models.Book, int64, error) {
	return s.uow.Books().List(ctx, offset, limit)
}

// UpdateBookInput represents update book input; nil fields are left
// unchanged
type UpdateBookInput struct {
	Title         *string    `json:"title,omitempty" validate:"omitempty,max=200"`
	ISBN          *string    `json:"isbn,omitempty" validate:"omitempty,max=20"`
	Description   *string    `json:"description,omitempty"`
	PageCount     *int       `json:"page_count,omitempty" validate:"omitempty,gte=0"`
	PublishedDate *time.Time `json:"published_date,omitempty"`
	TotalCopies   *int       `json:"total_copies,omitempty" validate:"omitempty,gt=0"`
}

// Update edits catalog fields. Resizing TotalCopies keeps the
// borrowed-copy count intact: the available count moves by the same
// delta, and shrinking below the number of copies currently out is
// rejected.
func (s *BookService) Update(ctx context.Context, id uuid.UUID, input *UpdateBookInput) (*models.Book, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	var updated *models.Book
	err := s.uow.Transaction(ctx, func(tx *repositories.UnitOfWork) error {
		book, err := tx.Books().GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFound("Book", id.String())
			}
			return err
		}

		if input.ISBN != nil && *input.ISBN != book.ISBN {
			exists, err := tx.Books().ExistsByISBN(ctx, *input.ISBN)
			if err != nil {
				return err
			}
			if exists {
				return domain.NewDuplicateEntity("Book", "ISBN", *input.ISBN)
			}
			book.ISBN = *input.ISBN
		}

		if input.Title != nil {
			book.Title = *input.Title
		}
		if input.Description != nil {
			book.Description = *input.Description
		}
		if input.PageCount != nil {
			book.PageCount = *input.PageCount
		}
		if input.PublishedDate != nil {
			book.PublishedDate = *input.PublishedDate
		}

		if input.TotalCopies != nil && *input.TotalCopies != book.TotalCopies {
			borrowed := book.TotalCopies - book.AvailableCopies
			if *input.TotalCopies < borrowed {
				return domain.NewInvalidOperation("update book",
					"total copies cannot drop below the number of copies currently borrowed")
			}
			book.AvailableCopies = *input.TotalCopies - borrowed
			book.TotalCopies = *input.TotalCopies
		}

		if err := tx.Books().Update(ctx, book); err != nil {
			return err
		}
		updated = book
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete soft deletes a book. Borrow records referencing it stay in
// place for audit.
func (s *BookService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.uow.Books().Delete(ctx, id)
}
