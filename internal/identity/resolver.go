// Package identity resolves which driver a request is acting as.
package identity

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/travelintrips/driver-portal/internal/apperrors"
	"github.com/travelintrips/driver-portal/internal/models"
)

// Resolver maps sessions and external identifiers to driver records.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// Resolve returns the driver identifier a request acts as. An explicitly
// supplied identifier wins; otherwise the authenticated session's identifier
// is used. With neither present the request is unauthenticated.
func (r *Resolver) Resolve(explicitID, sessionID uint) (uint, error) {
	if explicitID != 0 {
		return explicitID, nil
	}
	if sessionID != 0 {
		return sessionID, nil
	}
	return 0, apperrors.ErrAuthentication
}

// ResolveByEmail finds the driver record matching the session email,
// case-insensitively. Drivers registered before the portal got its own table
// only exist in the legacy users table, so a miss falls back there.
func (r *Resolver) ResolveByEmail(ctx context.Context, email string) (*models.Driver, error) {
	if email == "" {
		return nil, apperrors.ErrAuthentication
	}

	var driver models.Driver
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&driver).Error
	if err == nil {
		return &driver, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Persistence(err)
	}

	var user models.User
	err = r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(err)
		}
		return nil, apperrors.Persistence(err)
	}

	return legacyDriver(user), nil
}

// Profile fetches a driver's profile by identifier, falling back to the
// legacy users table the same way ResolveByEmail does.
func (r *Resolver) Profile(ctx context.Context, driverID uint) (*models.Driver, error) {
	var driver models.Driver
	err := r.db.WithContext(ctx).First(&driver, driverID).Error
	if err == nil {
		return &driver, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Persistence(err)
	}

	var user models.User
	err = r.db.WithContext(ctx).First(&user, driverID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(err)
		}
		return nil, apperrors.Persistence(err)
	}

	return legacyDriver(user), nil
}

// legacyDriver adapts a legacy user row to the driver shape. Legacy accounts
// have no balance ledger, so balance reads as zero.
func legacyDriver(user models.User) *models.Driver {
	return &models.Driver{
		Model:  user.Model,
		Name:   user.Name,
		Email:  user.Email,
		Phone:  user.Phone,
		Status: models.DriverActive,
	}
}
