package repository

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"waste_tracker/internal/domain"
)

// EntryRepository is the entry store. Every query is filtered by the owning user.
type EntryRepository struct {
	db *gorm.DB
}

func NewEntryRepository(db *gorm.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

func (r *EntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return errors.Wrap(err, "repository: CreateEntry")
	}
	return nil
}

// ListByUser returns the user's entries, most recent first
func (r *EntryRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Entry, error) {
	var entries []domain.Entry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp desc").
		Find(&entries).Error
	if err != nil {
		return nil, errors.Wrap(err, "repository: ListByUser")
	}
	return entries, nil
}

// ListByUserBetween returns the user's entries created on dates in [from, to], most recent first
func (r *EntryRepository) ListByUserBetween(ctx context.Context, userID uint, from, to time.Time) ([]domain.Entry, error) {
	var entries []domain.Entry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_on BETWEEN ? AND ?", userID, from.Format(time.DateOnly), to.Format(time.DateOnly)).
		Order("timestamp desc").
		Find(&entries).Error
	if err != nil {
		return nil, errors.Wrap(err, "repository: ListByUserBetween")
	}
	return entries, nil
}

// FindForUser returns nil, nil when the entry does not exist or belongs to someone else
func (r *EntryRepository) FindForUser(ctx context.Context, id, userID uint) (*domain.Entry, error) {
	var entry domain.Entry
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Take(&entry).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "repository: FindForUser")
	}
	return &entry, nil
}

// DeleteForUser removes the entry only if userID owns it and reports whether a row went away
func (r *EntryRepository) DeleteForUser(ctx context.Context, id, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Entry{})
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "repository: DeleteForUser")
	}
	return res.RowsAffected > 0, nil
}
