// Package service holds the application's operations. Every call takes the
// principal it acts for explicitly; nothing reads identity from globals.
package service

import (
	"context"
	"time"

	"waste_tracker/internal/domain"
)

// EntryStore is the persistence the entry and weekly services need
type EntryStore interface {
	Create(ctx context.Context, entry *domain.Entry) error
	ListByUser(ctx context.Context, userID uint) ([]domain.Entry, error)
	ListByUserBetween(ctx context.Context, userID uint, from, to time.Time) ([]domain.Entry, error)
	FindForUser(ctx context.Context, id, userID uint) (*domain.Entry, error)
	DeleteForUser(ctx context.Context, id, userID uint) (bool, error)
}

// UserStore is the persistence the user service needs
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// ReportCache stores computed weekly reports
type ReportCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}
