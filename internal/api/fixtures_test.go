package api

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"waste_tracker/internal/apperror"
	"waste_tracker/internal/cache"
	"waste_tracker/internal/domain"
	"waste_tracker/internal/service"
	"waste_tracker/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memEntryStore keeps entries in memory and orders lists like the MySQL repository
type memEntryStore struct {
	mu      sync.Mutex
	entries []domain.Entry
	lastID  uint
}

func (m *memEntryStore) Create(ctx context.Context, entry *domain.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastID++
	entry.ID = m.lastID
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memEntryStore) ListByUser(ctx context.Context, userID uint) ([]domain.Entry, error) {
	return m.filter(func(e domain.Entry) bool { return e.UserID == userID }), nil
}

func (m *memEntryStore) ListByUserBetween(ctx context.Context, userID uint, from, to time.Time) ([]domain.Entry, error) {
	return m.filter(func(e domain.Entry) bool {
		return e.UserID == userID && !e.CreatedOn.Before(from) && !e.CreatedOn.After(to)
	}), nil
}

func (m *memEntryStore) FindForUser(ctx context.Context, id, userID uint) (*domain.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.ID == id && e.UserID == userID {
			found := e
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memEntryStore) DeleteForUser(ctx context.Context, id, userID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.entries {
		if e.ID == id && e.UserID == userID {
			m.entries = slices.Delete(m.entries, i, i+1)
			return true, nil
		}
	}
	return false, nil
}

func (m *memEntryStore) filter(keep func(domain.Entry) bool) []domain.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Entry
	for _, e := range m.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Entry) int { return b.Timestamp.Compare(a.Timestamp) })
	return out
}

// fakeUsers accepts any password equal to "pw" for known users
type fakeUsers struct {
	users  map[string]*domain.User
	lastID uint
}

func (f *fakeUsers) Register(ctx context.Context, username, password, confirm string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, apperror.NewValidationError("Please fill in all fields")
	}
	if confirm != "" && confirm != password {
		return nil, apperror.NewValidationError("Passwords do not match")
	}
	if _, ok := f.users[username]; ok {
		return nil, apperror.NewConflictError("Username already taken", nil)
	}
	f.lastID++
	u := &domain.User{ID: f.lastID, Username: username}
	f.users[username] = u
	return u, nil
}

func (f *fakeUsers) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	u, ok := f.users[username]
	if !ok || password != "pw" {
		return nil, apperror.NewAuthError("Invalid username or password")
	}
	return u, nil
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(ctx context.Context) error { return p.err }

// wednesday is 2026-10-21 14:00 UTC
var wednesday = time.Date(2026, 10, 21, 14, 0, 0, 0, time.UTC)

type fixture struct {
	router   *gin.Engine
	entries  *memEntryStore
	users    *fakeUsers
	sessions *session.Manager
	redis    *miniredis.Miniredis
	db       *fakePinger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := &memEntryStore{}
	users := &fakeUsers{users: make(map[string]*domain.User)}
	sessions := session.NewManager("test-secret", time.Hour, rdb)
	reports := cache.New(rdb, time.Minute)
	cal := service.Calendar{Location: time.UTC, Now: func() time.Time { return wednesday }}
	db := &fakePinger{}

	router, err := NewRouter(Deps{
		Users:    users,
		Entries:  service.NewEntryService(store, reports, cal),
		Weekly:   service.NewWeeklyService(store, reports, cal),
		Sessions: sessions,
		DB:       db,
		Redis:    rdb,
		Location: time.UTC,
	})
	require.NoError(t, err)

	return &fixture{router: router, entries: store, users: users, sessions: sessions, redis: mr, db: db}
}

// login registers username directly and returns a valid session token for it
func (f *fixture) login(t *testing.T, username string) string {
	t.Helper()
	u, err := f.users.Register(context.Background(), username, "pw", "")
	require.NoError(t, err)
	token, err := f.sessions.Issue(u)
	require.NoError(t, err)
	return token
}
