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

// MemberService handles member registration and maintenance
type MemberService struct {
	members repositories.MemberRepository
	records repositories.BorrowRecordRepository
}

// NewMemberService creates a new member service
func NewMemberService(members repositories.MemberRepository, records repositories.BorrowRecordRepository) *MemberService {
	return &MemberService{members: members, records: records}
}

// CreateMemberInput represents create member input
type CreateMemberInput struct {
	FirstName      string     `json:"first_name" validate:"required,max=100"`
	LastName       string     `json:"last_name" validate:"required,max=100"`
	Email          string     `json:"email" validate:"required,email,max=255"`
	PhoneNumber    string     `json:"phone_number" validate:"required,max=20"`
	Address        string     `json:"address,omitempty" validate:"max=500"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}

// Create registers a member. Email and phone number are unique across
// non-deleted members.
func (s *MemberService) Create(ctx context.Context, input *CreateMemberInput) (*models.Member, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	exists, err := s.members.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewDuplicateEntity("Member", "Email", input.Email)
	}

	exists, err = s.members.ExistsByPhone(ctx, input.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewDuplicateEntity("Member", "PhoneNumber", input.PhoneNumber)
	}

	now := time.Now()
	member := &models.Member{
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		PhoneNumber:    input.PhoneNumber,
		Address:        input.Address,
		MembershipDate: &now,
		ExpirationDate: input.ExpirationDate,
		IsActive:       true,
	}

	if err := s.members.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// GetByID gets a member by ID
func (s *MemberService) GetByID(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	member, err := s.members.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("Member", id.String())
		}
		return nil, err
	}
	return member, nil
}

// List lists members with pagination
func (s *MemberService) List(ctx context.Context, offset, limit int) ([]*models.Member, int64, error) {
	return s.members.List(ctx, offset, limit)
}

// ActiveBorrowCount returns how many books the member currently has out
func (s *MemberService) ActiveBorrowCount(ctx context.Context, id uuid.UUID) (int, error) {
	count, err := s.records.CountActiveByMember(ctx, id)
	return int(count), err
}

// UpdateMemberInput represents update member input; nil fields stay
// unchanged
type UpdateMemberInput struct {
	FirstName      *string    `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName       *string    `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Email          *string    `json:"email,omitempty" validate:"omitempty,email,max=255"`
	PhoneNumber    *string    `json:"phone_number,omitempty" validate:"omitempty,max=20"`
	Address        *string    `json:"address,omitempty" validate:"omitempty,max=500"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	IsActive       *bool      `json:"is_active,omitempty"`
}

// Update edits a member, re-checking uniqueness for changed email or
// phone number
func (s *MemberService) Update(ctx context.Context, id uuid.UUID, input *UpdateMemberInput) (*models.Member, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	member, err := s.members.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("Member", id.String())
		}
		return nil, err
	}

	if input.Email != nil && *input.Email != member.Email {
		exists, err := s.members.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.NewDuplicateEntity("Member", "Email", *input.Email)
		}
		member.Email = *input.Email
	}

	if input.PhoneNumber != nil && *input.PhoneNumber != member.PhoneNumber {
		exists, err := s.members.ExistsByPhone(ctx, *input.PhoneNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.NewDuplicateEntity("Member", "PhoneNumber", *input.PhoneNumber)
		}
		member.PhoneNumber = *input.PhoneNumber
	}

	if input.FirstName != nil {
		member.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		member.LastName = *input.LastName
	}
	if input.Address != nil {
		member.Address = *input.Address
	}
	if input.ExpirationDate != nil {
		member.ExpirationDate = input.ExpirationDate
	}
	if input.IsActive != nil {
		member.IsActive = *input.IsActive
	}

	if err := s.members.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// Delete soft deletes a member
func (s *MemberService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.members.Delete(ctx, id)
}
