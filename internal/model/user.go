package model

import "time"

// Roles
const (
	RoleAdmin    = "admin"
	RoleSupplier = "supplier"
)

// User stores login credentials. Role: "admin" | "supplier"
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"type:varchar(64);uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password;not null"`
	Role         string `gorm:"type:varchar(16);not null;default:'supplier'"`
	CreatedAt    time.Time
}

func (User) TableName() string { return "users" }
