package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// nowFunc returns the current time; overridable in tests
var nowFunc = time.Now

// repository is the generic base embedded by every entity repository.
// Soft-delete filtering is centralized here: all reads go through the
// gorm.DeletedAt scope, so no call site repeats the predicate. Reads
// order by created_at then id for deterministic listings.
type repository[T any] struct {
	db *gorm.DB
}

// GetByID gets an entity by id, excluding soft-deleted rows
func (r *repository[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// GetAll lists all non-deleted entities in deterministic order
func (r *repository[T]) GetAll(ctx context.Context) ([]*T, error) {
	var entities []*T
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id").
		Find(&entities).Error
	return entities, err
}

// List lists non-deleted entities with pagination
func (r *repository[T]) List(ctx context.Context, offset, limit int) ([]*T, int64, error) {
	var entities []*T
	var total int64

	var model T
	if err := r.db.WithContext(ctx).Model(&model).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC, id").
		Offset(offset).
		Limit(limit).
		Find(&entities).Error

	return entities, total, err
}

// Find lists non-deleted entities matching the condition
func (r *repository[T]) Find(ctx context.Context, query string, args ...interface{}) ([]*T, error) {
	var entities []*T
	err := r.db.WithContext(ctx).
		Where(query, args...).
		Order("created_at DESC, id").
		Find(&entities).Error
	return entities, err
}

// Count counts non-deleted entities matching the condition
func (r *repository[T]) Count(ctx context.Context, query string, args ...interface{}) (int64, error) {
	var count int64
	var model T
	err := r.db.WithContext(ctx).
		Model(&model).
		Where(query, args...).
		Count(&count).Error
	return count, err
}

// Exists reports whether any non-deleted entity matches the condition
func (r *repository[T]) Exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	count, err := r.Count(ctx, query, args...)
	return count > 0, err
}

// Create inserts a new entity
func (r *repository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

// Update persists all fields of the entity
func (r *repository[T]) Update(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

// Delete soft deletes by id. Deleting a missing or already-deleted id
// is an idempotent no-op success: rows are only ever hidden, so a
// repeated delete has nothing left to do.
func (r *repository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	var model T
	return r.db.WithContext(ctx).Delete(&model, "id = ?", id).Error
}
