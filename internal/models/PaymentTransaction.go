// internal/models/payment_transaction.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentType classifies a ledger entry.
type PaymentType string

const (
	PaymentTopup          PaymentType = "topup"
	PaymentPayment        PaymentType = "payment"
	PaymentOpeningBalance PaymentType = "opening_balance"
	PaymentClosingBalance PaymentType = "closing_balance"
)

// PaymentStatus is the settlement state of a ledger entry.
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentPending   PaymentStatus = "pending"
	PaymentFailed    PaymentStatus = "failed"
)

// PaymentTransaction is an immutable ledger row written by the upstream
// billing system. The upstream guarantees BalanceAfter = BalanceBefore + Amount;
// this service lists the rows and never validates or mutates them.
type PaymentTransaction struct {
	gorm.Model
	DriverID      uint          `json:"driver_id" gorm:"index"`
	Type          PaymentType   `json:"type"`
	Amount        int64         `json:"amount"` // signed; payments are negative
	BalanceBefore int64         `json:"balance_before"`
	BalanceAfter  int64         `json:"balance_after"`
	Status        PaymentStatus `json:"status"`
	Reference     string        `json:"reference,omitempty"`
	BookingID     *uint         `json:"booking_id,omitempty"`
	Timestamp     time.Time     `json:"timestamp" gorm:"index"`
}
