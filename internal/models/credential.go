package model

import "time"

// Credential holds the password hash for an administrator sign-in.
type Credential struct {
	Email        string    `gorm:"primaryKey;size:255"`
	PasswordHash string    `gorm:"size:255;not null"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime:false"`
}
