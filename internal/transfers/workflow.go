package transfers

import (
	"context"
	"sync"

	logrus "github.com/sirupsen/logrus"

	"github.com/travelintrips/driver-portal/internal/apperrors"
	"github.com/travelintrips/driver-portal/internal/models"
)

// IdentityResolver is the slice of the identity service the workflow needs.
type IdentityResolver interface {
	Resolve(explicitID, sessionID uint) (uint, error)
}

// Caller identifies who is driving an operation: an externally supplied
// driver identifier (wins when non-zero) and the authenticated session's.
type Caller struct {
	ExplicitID uint
	SessionID  uint
}

// Result is what a workflow mutation hands back: the persisted row and the
// re-fetched authoritative active list for the caller.
type Result struct {
	Transfer *models.Transfer  `json:"transfer"`
	Active   []models.Transfer `json:"active"`
}

// Workflow drives transfer status transitions. Each mutation follows the same
// sequence: resolve identity where required, single-row update, optimistic
// reconcile of the cached list, then a full re-fetch to resync with whatever
// actually won at the storage layer. Concurrent accepts by two drivers are
// resolved by the database's single-row update; the loser sees the winner's
// state on the refetch, never their own stale patch.
type Workflow struct {
	repo     Repository
	resolver IdentityResolver

	mu   sync.Mutex
	view map[uint][]models.Transfer // last fetched active list per driver
}

func NewWorkflow(repo Repository, resolver IdentityResolver) *Workflow {
	return &Workflow{
		repo:     repo,
		resolver: resolver,
		view:     make(map[uint][]models.Transfer),
	}
}

// List fetches the driver's transfers for a status group. Active lists are
// snapshotted so mutations can reconcile them optimistically.
func (w *Workflow) List(ctx context.Context, driverID uint, group StatusGroup) ([]models.Transfer, error) {
	transfers, err := w.repo.List(ctx, driverID, group)
	if err != nil {
		return nil, err
	}
	if group == GroupActive {
		// Snapshot a private copy: reconcile patches the cached entries in
		// place, and slices already handed to callers must never change
		// under a concurrent mutation.
		w.mu.Lock()
		w.view[driverID] = append([]models.Transfer(nil), transfers...)
		w.mu.Unlock()
	}
	return transfers, nil
}

// Snapshot returns the last fetched active list for a driver without touching
// the store. Used by views between refreshes.
func (w *Workflow) Snapshot(driverID uint) []models.Transfer {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]models.Transfer(nil), w.view[driverID]...)
}

// Accept confirms a pending transfer for the calling driver. Identity must
// resolve first; on authentication failure nothing is mutated.
func (w *Workflow) Accept(ctx context.Context, caller Caller, transferID uint) (*Result, error) {
	driverID, err := w.resolver.Resolve(caller.ExplicitID, caller.SessionID)
	if err != nil {
		return nil, apperrors.Authentication(err)
	}

	updated, err := w.repo.UpdateStatus(ctx, transferID, models.TransferConfirmed, &driverID)
	if err != nil {
		logrus.WithError(err).WithField("transfer_id", transferID).Error("accept transfer failed")
		return nil, err
	}

	w.reconcile(driverID, transferID, models.TransferConfirmed, &driverID)
	return w.resync(ctx, driverID, updated)
}

// Decline cancels a transfer. Deliberately unconditional: no source-status
// guard and no check against the current assignee, matching product behavior.
func (w *Workflow) Decline(ctx context.Context, caller Caller, transferID uint) (*Result, error) {
	updated, err := w.repo.UpdateStatus(ctx, transferID, models.TransferCanceled, nil)
	if err != nil {
		logrus.WithError(err).WithField("transfer_id", transferID).Error("decline transfer failed")
		return nil, err
	}

	driverID, rerr := w.resolver.Resolve(caller.ExplicitID, caller.SessionID)
	if rerr != nil {
		// Mutation already persisted; without an identity there is no list
		// to resync, so hand back just the row.
		return &Result{Transfer: updated}, nil
	}

	w.reconcile(driverID, transferID, models.TransferCanceled, nil)
	return w.resync(ctx, driverID, updated)
}

// Complete marks a transfer completed. Valid from any source status; a repeat
// completion re-persists the same value and is harmless.
func (w *Workflow) Complete(ctx context.Context, caller Caller, transferID uint) (*Result, error) {
	updated, err := w.repo.UpdateStatus(ctx, transferID, models.TransferCompleted, nil)
	if err != nil {
		logrus.WithError(err).WithField("transfer_id", transferID).Error("complete transfer failed")
		return nil, err
	}

	driverID, rerr := w.resolver.Resolve(caller.ExplicitID, caller.SessionID)
	if rerr != nil {
		return &Result{Transfer: updated}, nil
	}

	w.reconcile(driverID, transferID, models.TransferCompleted, nil)
	return w.resync(ctx, driverID, updated)
}

// reconcile patches the cached active list in place so the view reflects the
// mutation before the authoritative refetch lands.
func (w *Workflow) reconcile(driverID, transferID uint, status models.TransferStatus, assignee *uint) {
	w.mu.Lock()
	defer w.mu.Unlock()
	list := w.view[driverID]
	for i := range list {
		if list[i].ID == transferID {
			list[i].Status = status
			if assignee != nil {
				id := *assignee
				list[i].DriverID = &id
			}
			break
		}
	}
}

// resync replaces the optimistic snapshot with the store's answer.
func (w *Workflow) resync(ctx context.Context, driverID uint, updated *models.Transfer) (*Result, error) {
	active, err := w.List(ctx, driverID, GroupActive)
	if err != nil {
		// The mutation itself succeeded; surface the stale snapshot rather
		// than failing the whole operation.
		logrus.WithError(err).WithField("driver_id", driverID).Warn("refetch after transfer update failed")
		return &Result{Transfer: updated, Active: w.Snapshot(driverID)}, nil
	}
	return &Result{Transfer: updated, Active: active}, nil
}
