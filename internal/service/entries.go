package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"waste_tracker/internal/apperror"
	"waste_tracker/internal/cache"
	"waste_tracker/internal/domain"
)

// EntryService is the entry CRUD service
type EntryService struct {
	entries  EntryStore
	cache    ReportCache
	calendar Calendar
}

func NewEntryService(entries EntryStore, reports ReportCache, calendar Calendar) *EntryService {
	return &EntryService{entries: entries, cache: reports, calendar: calendar}
}

// NormalizeItemName trims and upper-cases a raw item name
func NormalizeItemName(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// List returns every entry the principal owns, most recent first
func (s *EntryService) List(ctx context.Context, p domain.Principal) ([]domain.Entry, error) {
	entries, err := s.entries.ListByUser(ctx, p.UserID)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to fetch entries", err)
	}
	return entries, nil
}

// Today returns the principal's entries created today, most recent first
func (s *EntryService) Today(ctx context.Context, p domain.Principal) ([]domain.Entry, error) {
	today := s.calendar.Today()
	entries, err := s.entries.ListByUserBetween(ctx, p.UserID, today, today)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to fetch entries", err)
	}
	return entries, nil
}

// Add records a new entry stamped with the current date and time
func (s *EntryService) Add(ctx context.Context, p domain.Principal, rawName string) (*domain.Entry, error) {
	name := NormalizeItemName(rawName)
	if name == "" {
		return nil, apperror.NewValidationError("Item name is required")
	}
	if utf8.RuneCountInString(name) > 200 {
		return nil, apperror.NewValidationError("Item name must be at most 200 characters")
	}

	now := s.calendar.Now()
	entry := &domain.Entry{
		ItemName:  name,
		CreatedOn: DateOf(now, s.calendar.Location),
		Timestamp: now.UTC().Truncate(time.Millisecond),
		UserID:    p.UserID,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": p.UserID,
			"error":   err.Error(),
		}).Error("Failed to add entry")
		return nil, apperror.NewInternalError("Failed to add entry", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  p.UserID,
		"entry_id": entry.ID,
		"item":     entry.ItemName,
	}).Info("Entry added")
	s.invalidateWeek(ctx, p.UserID, entry.CreatedOn)
	return entry, nil
}

// Delete removes one of the principal's entries. Entries owned by anyone else are reported as not found.
func (s *EntryService) Delete(ctx context.Context, p domain.Principal, entryID uint) error {
	entry, err := s.entries.FindForUser(ctx, entryID, p.UserID)
	if err != nil {
		return apperror.NewInternalError("Failed to delete entry", err)
	}
	if entry == nil {
		return apperror.NewNotFoundError("Entry not found")
	}

	deleted, err := s.entries.DeleteForUser(ctx, entryID, p.UserID)
	if err != nil {
		return apperror.NewInternalError("Failed to delete entry", err)
	}
	if !deleted {
		return apperror.NewNotFoundError("Entry not found")
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  p.UserID,
		"entry_id": entryID,
	}).Info("Entry deleted")
	s.invalidateWeek(ctx, p.UserID, entry.CreatedOn)
	return nil
}

// invalidateWeek drops the cached report for the week containing date.
// The write already succeeded, so a cache failure is only logged.
func (s *EntryService) invalidateWeek(ctx context.Context, userID uint, date time.Time) {
	weekStart, _ := WeekWindow(date, 0)
	if err := s.cache.Delete(ctx, cache.WeeklyKey(userID, weekStart)); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,
			"week_start": weekStart.Format(time.DateOnly),
			"error":      err.Error(),
		}).Warn("Failed to invalidate weekly report cache")
	}
}
