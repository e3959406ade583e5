package domain

import "time" // Time for creation timestamps

// User Model
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`                                                      // Primary key
	Username     string    `gorm:"type:varchar(80) COLLATE utf8mb4_bin;uniqueIndex;not null" json:"username"` // Unique, case-sensitive username
	PasswordHash string    `gorm:"size:120;not null" json:"-"`                                                // bcrypt hash, never serialized
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`                                          // Registration time
	Entries      []Entry   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`                    // Owned entries, migration only
}

// Principal is the authenticated user on whose behalf an operation runs
type Principal struct {
	UserID   uint   `json:"id"`       // Authenticated user ID
	Username string `json:"username"` // Authenticated username
}
