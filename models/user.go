package models

import "time"

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	IsStaff      bool       `gorm:"default:false" json:"is_staff"`
	Cart         Cart       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"` // one cart per user, created at registration
	Orders       []Order    `gorm:"foreignKey:UserID" json:"-"`
	LastLogin    *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"-"`
}
