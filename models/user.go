package models

import (
	"time"
)

// User is an account holder. Events belong to exactly one user and are
// removed with the account.
type User struct {
	ID           string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(100);uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255)" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
