// Package transfers implements the airport-transfer acceptance workflow:
// listing transfer offers per driver and moving their status through
// pending → confirmed → completed/canceled.
package transfers

import (
	"context"

	"gorm.io/gorm"

	"github.com/travelintrips/driver-portal/internal/apperrors"
	"github.com/travelintrips/driver-portal/internal/models"
)

// StatusGroup selects which slice of the lifecycle a listing returns.
type StatusGroup string

const (
	// GroupActive covers transfers still in play: pending offers and the
	// driver's confirmed jobs.
	GroupActive StatusGroup = "active"
	// GroupHistory covers terminal transfers: completed and canceled.
	GroupHistory StatusGroup = "history"
)

// Statuses returns the transfer statuses a group matches.
func (g StatusGroup) Statuses() []models.TransferStatus {
	if g == GroupHistory {
		return []models.TransferStatus{models.TransferCompleted, models.TransferCanceled}
	}
	return []models.TransferStatus{models.TransferPending, models.TransferConfirmed}
}

// Repository reads and writes transfer rows. It owns no workflow logic beyond
// query construction.
type Repository interface {
	// List returns the driver's transfers in the given status group.
	// An empty result is not an error. No ordering is promised.
	List(ctx context.Context, driverID uint, group StatusGroup) ([]models.Transfer, error)
	// UpdateStatus performs a single-row conditional update and returns the
	// updated row. driverID, when non-nil, is written as the new assignee.
	UpdateStatus(ctx context.Context, transferID uint, status models.TransferStatus, driverID *uint) (*models.Transfer, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository builds the GORM-backed repository over the shared handle.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) List(ctx context.Context, driverID uint, group StatusGroup) ([]models.Transfer, error) {
	q := r.db.WithContext(ctx).Where("status IN ?", group.Statuses())
	if group == GroupActive {
		// Unassigned pending transfers are offers visible to every driver.
		q = q.Where("driver_id IS NULL OR driver_id = ?", driverID)
	} else {
		q = q.Where("driver_id = ?", driverID)
	}

	var transfers []models.Transfer
	if err := q.Find(&transfers).Error; err != nil {
		return nil, apperrors.Persistence(err)
	}
	return transfers, nil
}

func (r *gormRepository) UpdateStatus(ctx context.Context, transferID uint, status models.TransferStatus, driverID *uint) (*models.Transfer, error) {
	updates := map[string]interface{}{"status": status}
	if driverID != nil {
		updates["driver_id"] = *driverID
	}

	// Single-statement update so the storage layer resolves concurrent
	// writers; no additional locking here.
	res := r.db.WithContext(ctx).
		Model(&models.Transfer{}).
		Where("id = ?", transferID).
		Updates(updates)
	if res.Error != nil {
		return nil, apperrors.Persistence(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrNotFound
	}

	var transfer models.Transfer
	if err := r.db.WithContext(ctx).First(&transfer, transferID).Error; err != nil {
		return nil, apperrors.Persistence(err)
	}
	return &transfer, nil
}
