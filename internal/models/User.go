package models

import "gorm.io/gorm"

// User is the legacy account table kept for drivers registered before the
// portal got its own drivers table. Profile lookups fall back to it when the
// drivers table has no matching row.
type User struct {
	gorm.Model
	Name  string `json:"name"`
	Email string `json:"email" gorm:"uniqueIndex"`
	Phone string `json:"phone"`
}
