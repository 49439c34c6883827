package models

import "time"

// BlacklistedToken records the jti of a refresh token that must no longer be
// accepted. Rows become garbage once ExpiresAt passes; the token would be
// rejected as expired anyway.
type BlacklistedToken struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	JTI           string    `gorm:"column:jti;uniqueIndex;not null" json:"jti"`
	ExpiresAt     time.Time `json:"expires_at"`
	BlacklistedAt time.Time `gorm:"autoCreateTime" json:"blacklisted_at"`
}
