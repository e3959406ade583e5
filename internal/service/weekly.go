package service

import (
	"context"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"waste_tracker/internal/apperror"
	"waste_tracker/internal/cache"
	"waste_tracker/internal/domain"
)

// MaxWeekOffset bounds how far from the current week a report may reach, in either direction
const MaxWeekOffset = 520

// WeeklyService is the weekly aggregation service
type WeeklyService struct {
	entries  EntryStore
	cache    ReportCache
	calendar Calendar
}

func NewWeeklyService(entries EntryStore, reports ReportCache, calendar Calendar) *WeeklyService {
	return &WeeklyService{entries: entries, cache: reports, calendar: calendar}
}

// Weekly groups the principal's entries for the requested week by weekday.
// The second return value reports whether the result came from the cache.
func (s *WeeklyService) Weekly(ctx context.Context, p domain.Principal, weekOffset int) (*domain.WeeklyReport, bool, error) {
	if weekOffset < -MaxWeekOffset || weekOffset > MaxWeekOffset {
		return nil, false, apperror.NewValidationError("week_offset must be between -520 and 520")
	}

	weekStart, weekEnd := WeekWindow(s.calendar.Today(), weekOffset)
	key := cache.WeeklyKey(p.UserID, weekStart)

	var cached domain.WeeklyReport
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Weekly report cache read failed")
	} else if found {
		return &cached, true, nil
	}

	entries, err := s.entries.ListByUserBetween(ctx, p.UserID, weekStart, weekEnd)
	if err != nil {
		return nil, false, apperror.NewInternalError("Failed to fetch weekly entries", err)
	}
	report := GroupByWeekday(weekStart, weekEnd, entries)

	if err := s.cache.Set(ctx, key, report); err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Weekly report cache write failed")
	}
	return report, false, nil
}

// GroupByWeekday builds a report with all seven weekdays present, each day newest first.
// Entries dated outside [weekStart, weekEnd] are ignored.
func GroupByWeekday(weekStart, weekEnd time.Time, entries []domain.Entry) *domain.WeeklyReport {
	days := make(map[string][]domain.Entry, len(domain.Weekdays))
	for _, name := range domain.Weekdays {
		days[name] = []domain.Entry{}
	}
	for _, e := range entries {
		if e.CreatedOn.Before(weekStart) || e.CreatedOn.After(weekEnd) {
			continue
		}
		name := WeekdayName(e.CreatedOn)
		days[name] = append(days[name], e)
	}
	for _, day := range days {
		slices.SortStableFunc(day, func(a, b domain.Entry) int {
			return b.Timestamp.Compare(a.Timestamp)
		})
	}
	return &domain.WeeklyReport{WeekStart: weekStart, WeekEnd: weekEnd, Days: days}
}
