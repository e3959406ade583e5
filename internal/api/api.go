// Package api holds the gin handlers. Each handler resolves the principal
// placed by the session middleware and hands it to a service explicitly.
package api

import (
	"context"  // Service signatures
	"net/http" // HTTP status codes
	"time"     // Weekly window dates

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library

	"waste_tracker/internal/apperror"   // Error kinds and status codes
	"waste_tracker/internal/domain"     // Domain models
	"waste_tracker/internal/middleware" // Principal lookup
)

// DateLayout is the wire format of calendar dates
const DateLayout = "01/02/2006"

// EntryService is what the waste handlers need from the entry service
type EntryService interface {
	List(ctx context.Context, p domain.Principal) ([]domain.Entry, error)
	Today(ctx context.Context, p domain.Principal) ([]domain.Entry, error)
	Add(ctx context.Context, p domain.Principal, rawName string) (*domain.Entry, error)
	Delete(ctx context.Context, p domain.Principal, entryID uint) error
}

// WeeklyService is what the report handlers need from the weekly service
type WeeklyService interface {
	Weekly(ctx context.Context, p domain.Principal, weekOffset int) (*domain.WeeklyReport, bool, error)
}

// UserService is what the auth handlers need from the user service
type UserService interface {
	Register(ctx context.Context, username, password, confirm string) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}

// EntryResponse is the wire shape of a single entry
type EntryResponse struct {
	ID        uint   `json:"id"`        // Entry ID
	Item      string `json:"item"`      // Upper-cased item name
	Date      string `json:"date"`      // MM/DD/YYYY
	Timestamp int64  `json:"timestamp"` // Epoch milliseconds
}

// WeeklyResponse is the wire shape of a weekly report
type WeeklyResponse struct {
	WeekStart string                     `json:"week_start"` // Monday, MM/DD/YYYY
	WeekEnd   string                     `json:"week_end"`   // Sunday, MM/DD/YYYY
	Days      map[string][]EntryResponse `json:"days"`       // Monday..Sunday, always all seven
	Total     int                        `json:"total"`      // Entries in the window
	Cached    bool                       `json:"cached"`     // Served from Redis
}

func newEntryResponse(e domain.Entry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		Item:      e.ItemName,
		Date:      formatDate(e.CreatedOn),
		Timestamp: e.Timestamp.UnixMilli(),
	}
}

func newEntryResponses(entries []domain.Entry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, newEntryResponse(e))
	}
	return out
}

func newWeeklyResponse(r *domain.WeeklyReport, cached bool) WeeklyResponse {
	days := make(map[string][]EntryResponse, len(domain.Weekdays))
	for _, day := range domain.Weekdays {
		days[day] = newEntryResponses(r.Days[day])
	}
	return WeeklyResponse{
		WeekStart: formatDate(r.WeekStart),
		WeekEnd:   formatDate(r.WeekEnd),
		Days:      days,
		Total:     r.Total(),
		Cached:    cached,
	}
}

// formatDate prints a stored civil date, which is always midnight UTC
func formatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// principal returns the caller, or answers 401 when the gate did not run
func principal(c *gin.Context) (domain.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return p, ok
}

// writeError answers with the error's status and user-facing message
func writeError(c *gin.Context, err error) {
	appErr := apperror.From(err)
	status := appErr.StatusCode()
	if status >= http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"path":  c.Request.URL.Path,
			"error": appErr.Error(),
		}).Error("Request failed")
	}
	c.JSON(status, gin.H{"error": appErr.Message})
}
