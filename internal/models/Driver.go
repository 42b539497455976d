// internal/models/driver.go
package models

import (
	"gorm.io/gorm"
)

// DriverStatus enumerates the account states a driver can be in.
type DriverStatus string

const (
	DriverActive    DriverStatus = "active"
	DriverSuspended DriverStatus = "suspended"
)

// Driver is the primary account record for the portal. Balance is kept in
// whole rupiah (no minor units), signed so overdrafts show as negatives.
type Driver struct {
	gorm.Model
	Name     string       `json:"name"`
	Email    string       `json:"email" gorm:"uniqueIndex"`
	Password string       `json:"-"` // bcrypt hash, never serialized
	Phone    string       `json:"phone"`
	Balance  int64        `json:"balance"`
	Status   DriverStatus `json:"status" gorm:"default:active"`
}
