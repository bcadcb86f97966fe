package models

import (
	"time"
)

// PasswordReset stores one recovery token. The raw token handed to the user
// is "<selector>.<verifier>"; only the selector and a SHA-256 of the
// verifier are persisted, so a leaked table cannot redeem anything.
type PasswordReset struct {
	ID           uint   `gorm:"primarykey"`
	Email        string `gorm:"index;not null"`
	Selector     string `gorm:"uniqueIndex;not null"`
	VerifierHash string `gorm:"not null"`
	ExpiresAt    time.Time `gorm:"not null"`
	Used         bool      `gorm:"default:false"`
	CreatedAt    time.Time
}

func (PasswordReset) TableName() string {
	return "password_resets"
}

func (t *PasswordReset) Expirado(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
