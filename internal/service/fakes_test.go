package service

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"waste_tracker/internal/cache"
	"waste_tracker/internal/domain"
)

type fakeEntryStore struct {
	entries []domain.Entry
	lastID  uint
	listErr error
	queries int
}

func (f *fakeEntryStore) Create(ctx context.Context, entry *domain.Entry) error {
	f.lastID++
	entry.ID = f.lastID
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeEntryStore) ListByUser(ctx context.Context, userID uint) ([]domain.Entry, error) {
	f.queries++
	if f.listErr != nil {
		return nil, f.listErr
	}
	var result []domain.Entry
	for _, e := range f.entries {
		if e.UserID == userID {
			result = append(result, e)
		}
	}
	newestFirst(result)
	return result, nil
}

func (f *fakeEntryStore) ListByUserBetween(ctx context.Context, userID uint, from, to time.Time) ([]domain.Entry, error) {
	f.queries++
	if f.listErr != nil {
		return nil, f.listErr
	}
	var result []domain.Entry
	for _, e := range f.entries {
		if e.UserID == userID && !e.CreatedOn.Before(from) && !e.CreatedOn.After(to) {
			result = append(result, e)
		}
	}
	newestFirst(result)
	return result, nil
}

func (f *fakeEntryStore) FindForUser(ctx context.Context, id, userID uint) (*domain.Entry, error) {
	for _, e := range f.entries {
		if e.ID == id && e.UserID == userID {
			found := e
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeEntryStore) DeleteForUser(ctx context.Context, id, userID uint) (bool, error) {
	for i, e := range f.entries {
		if e.ID == id && e.UserID == userID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeUserStore struct {
	users     map[string]*domain.User
	lastID    uint
	createErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*domain.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.users[user.Username]; ok {
		return gorm.ErrDuplicatedKey
	}
	f.lastID++
	user.ID = f.lastID
	stored := *user
	f.users[user.Username] = &stored
	return nil
}

func (f *fakeUserStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if u, ok := f.users[username]; ok {
		found := *u
		return &found, nil
	}
	return nil, nil
}

// newestFirst orders entries the way the repository's ORDER BY does
func newestFirst(entries []domain.Entry) {
	slices.SortStableFunc(entries, func(a, b domain.Entry) int { return b.Timestamp.Compare(a.Timestamp) })
}

var errStoreDown = errors.New("store is down")

func newTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return cache.New(rdb, time.Minute)
}

// fixedCalendar pins "now" to the given instant
func fixedCalendar(now time.Time) Calendar {
	return Calendar{Location: time.UTC, Now: func() time.Time { return now }}
}

// wednesday is 2026-10-21 14:00 UTC
var wednesday = time.Date(2026, 10, 21, 14, 0, 0, 0, time.UTC)

func entryOn(id, userID uint, name string, ts time.Time) domain.Entry {
	return domain.Entry{ID: id, UserID: userID, ItemName: name, CreatedOn: DateOf(ts, time.UTC), Timestamp: ts}
}
