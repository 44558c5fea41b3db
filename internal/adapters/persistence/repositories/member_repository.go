package repositories

import (
	"context"

	"libralend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// memberRepository implements MemberRepository
type memberRepository struct {
	repository[models.Member]
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{repository[models.Member]{db: db}}
}

// GetByEmail gets a member by email
func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).
		First(&member, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// ExistsByEmail checks the email uniqueness constraint
func (r *memberRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.Exists(ctx, "email = ?", email)
}

// ExistsByPhone checks the phone number uniqueness constraint
func (r *memberRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	return r.Exists(ctx, "phone_number = ?", phone)
}
