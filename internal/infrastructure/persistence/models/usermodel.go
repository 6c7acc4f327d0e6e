package models

import (
	"time"
)

// UserModel represents the database persistence model for users.
// This is the anti-corruption layer between domain and database.
type UserModel struct {
	ID           uint   `gorm:"primarykey"`
	Username     string `gorm:"uniqueIndex;not null;size:150"`
	PasswordHash string `gorm:"not null;size:255"`
	EmployeeID   string `gorm:"uniqueIndex;not null;size:20"`
	Department   string `gorm:"not null;size:100;default:Engineering"`
	Position     string `gorm:"not null;size:50;default:Member"`
	Bio          string `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}
