// Package reminders derives overdue-payment messages from booking records.
// The derivation is pure: messages are rebuilt from scratch on every fetch
// and never persisted.
package reminders

import (
	"fmt"
	"math"
	"time"

	"github.com/travelintrips/driver-portal/internal/models"
)

// OverdueMessage is a derived reminder. It exists only for the current view
// session; the read flag lives in ReadState and resets on reload.
type OverdueMessage struct {
	ID          string    `json:"id"`
	BookingCode string    `json:"booking_code"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"` // = booking end date
	Amount      int64     `json:"amount"`
	DaysOverdue int       `json:"days_overdue"`
	Read        bool      `json:"read"`
}

// Derive builds reminders for every booking whose rental has ended with
// payments still outstanding. Days overdue is the ceiling of (now − end date)
// in whole days and must be strictly positive for a message to surface.
// Bookings without an end date are silently skipped.
func Derive(bookings []models.Booking, now time.Time) []OverdueMessage {
	var messages []OverdueMessage
	for _, b := range bookings {
		if b.RemainingPayments <= 0 || b.EndDate == nil {
			continue
		}

		days := int(math.Ceil(now.Sub(*b.EndDate).Hours() / 24))
		if days <= 0 {
			continue
		}

		messages = append(messages, OverdueMessage{
			ID:          fmt.Sprintf("overdue-%d", b.ID),
			BookingCode: b.BookingCode,
			Message: fmt.Sprintf(
				"Payment for booking %s is %d day(s) overdue. Outstanding amount: Rp %d.",
				b.BookingCode, days, b.RemainingPayments,
			),
			CreatedAt:   *b.EndDate,
			Amount:      b.RemainingPayments,
			DaysOverdue: days,
		})
	}
	return messages
}
