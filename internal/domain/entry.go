package domain

import "time" // Time for dates and timestamps

// Entry Model: a single recorded waste item
type Entry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                 // Primary key
	ItemName  string    `gorm:"size:200;not null" json:"item_name"`   // Upper-cased item name
	CreatedOn time.Time `gorm:"type:date;index;not null" json:"date"` // Calendar date, stored without time of day
	Timestamp time.Time `gorm:"not null" json:"timestamp"`            // Creation instant, used for ordering
	UserID    uint      `gorm:"index;not null" json:"user_id"`        // Foreign key to User
}

// TableName keeps the table name stable regardless of the struct name
func (Entry) TableName() string {
	return "waste_entries"
}

// Weekdays lists weekday names in Monday-first order
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WeeklyReport holds a user's entries for one Monday-to-Sunday window
type WeeklyReport struct {
	WeekStart time.Time          `json:"week_start"` // Monday of the window
	WeekEnd   time.Time          `json:"week_end"`   // Sunday of the window
	Days      map[string][]Entry `json:"days"`       // Entries keyed by weekday name, newest first
}

// Total returns the number of entries across all days
func (r *WeeklyReport) Total() int {
	n := 0
	for _, entries := range r.Days {
		n += len(entries)
	}
	return n
}
