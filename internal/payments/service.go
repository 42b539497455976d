// Package payments lists a driver's immutable ledger entries. Filtering,
// sorting and pagination run in-process after the driver-scoped fetch,
// mirroring how the portal always handled its transaction history.
package payments

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/travelintrips/driver-portal/internal/apperrors"
	"github.com/travelintrips/driver-portal/internal/models"
)

// Store fetches a driver's full ledger.
type Store interface {
	ListByDriver(ctx context.Context, driverID uint) ([]models.PaymentTransaction, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) ListByDriver(ctx context.Context, driverID uint) ([]models.PaymentTransaction, error) {
	var txs []models.PaymentTransaction
	if err := s.db.WithContext(ctx).Where("driver_id = ?", driverID).Find(&txs).Error; err != nil {
		return nil, apperrors.Persistence(err)
	}
	return txs, nil
}

// ListOptions narrows and orders the history view. Zero values mean "all".
type ListOptions struct {
	Type    models.PaymentType
	Status  models.PaymentStatus
	SortBy  string // "timestamp" (default) or "amount"
	Order   string // "desc" (default) or "asc"
	Page    int    // 1-based
	PerPage int
}

// Service wraps the store with the view-side list handling.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns one page of the driver's history plus the total count after
// filtering (for the pager).
func (s *Service) List(ctx context.Context, driverID uint, opts ListOptions) ([]models.PaymentTransaction, int, error) {
	txs, err := s.store.ListByDriver(ctx, driverID)
	if err != nil {
		return nil, 0, err
	}

	filtered := txs[:0:0]
	for _, tx := range txs {
		if opts.Type != "" && tx.Type != opts.Type {
			continue
		}
		if opts.Status != "" && tx.Status != opts.Status {
			continue
		}
		filtered = append(filtered, tx)
	}

	asc := opts.Order == "asc"
	switch opts.SortBy {
	case "amount":
		sort.SliceStable(filtered, func(i, j int) bool {
			if asc {
				return filtered[i].Amount < filtered[j].Amount
			}
			return filtered[i].Amount > filtered[j].Amount
		})
	default:
		sort.SliceStable(filtered, func(i, j int) bool {
			if asc {
				return filtered[i].Timestamp.Before(filtered[j].Timestamp)
			}
			return filtered[i].Timestamp.After(filtered[j].Timestamp)
		})
	}

	total := len(filtered)
	page, perPage := opts.Page, opts.PerPage
	if perPage <= 0 {
		return filtered, total, nil
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * perPage
	if start >= total {
		return []models.PaymentTransaction{}, total, nil
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return filtered[start:end], total, nil
}

// Summary is the balance header for the profile page.
type Summary struct {
	Balance      int64                       `json:"balance"`
	TotalsByType map[models.PaymentType]int64 `json:"totals_by_type"`
	Count        int                         `json:"count"`
}

// Summarize computes the current balance (latest completed entry's
// balance-after) and per-type totals over the whole ledger.
func (s *Service) Summarize(ctx context.Context, driverID uint) (*Summary, error) {
	txs, err := s.store.ListByDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}

	summary := &Summary{TotalsByType: make(map[models.PaymentType]int64), Count: len(txs)}
	var latest *models.PaymentTransaction
	for i := range txs {
		tx := &txs[i]
		summary.TotalsByType[tx.Type] += tx.Amount
		if tx.Status != models.PaymentCompleted {
			continue
		}
		if latest == nil || tx.Timestamp.After(latest.Timestamp) {
			latest = tx
		}
	}
	if latest != nil {
		summary.Balance = latest.BalanceAfter
	}
	return summary, nil
}
