package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking is a rental booking owned by a driver. This service never writes
// bookings; it only reads them to derive overdue-payment reminders.
type Booking struct {
	gorm.Model
	BookingCode       string     `json:"booking_code" gorm:"index"`
	EndDate           *time.Time `json:"end_date" gorm:"type:date"`
	RemainingPayments int64      `json:"remaining_payments"`
	DriverID          uint       `json:"driver_id" gorm:"index"`
}
