// internal/models/transfer.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// TransferStatus is the lifecycle state of an airport transfer.
// pending ──accept──▶ confirmed ──complete──▶ completed
// pending ──decline─▶ canceled
type TransferStatus string

const (
	TransferPending   TransferStatus = "pending"
	TransferConfirmed TransferStatus = "confirmed"
	TransferCompleted TransferStatus = "completed"
	TransferCanceled  TransferStatus = "canceled"
)

// Transfer is an airport-transfer job offered to drivers. Rows are created by
// the back office; this service only lists them and moves their status.
// A confirmed or completed transfer always carries a non-nil DriverID.
type Transfer struct {
	gorm.Model
	BookingCode  string         `json:"booking_code" gorm:"index"`
	CustomerName string         `json:"customer_name"`
	Pickup       string         `json:"pickup"`
	Dropoff      string         `json:"dropoff"`
	PickupDate   time.Time      `json:"pickup_date" gorm:"type:date"`
	PickupTime   string         `json:"pickup_time"` // "HH:MM", kept as text like the booking sheet
	Status       TransferStatus `json:"status" gorm:"index;default:pending"`
	DriverID     *uint          `json:"driver_id" gorm:"index"`
	Driver       *Driver        `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
	Price        int64          `json:"price"`
}
