package transfers_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelintrips/driver-portal/internal/apperrors"
	"github.com/travelintrips/driver-portal/internal/identity"
	"github.com/travelintrips/driver-portal/internal/models"
	"github.com/travelintrips/driver-portal/internal/transfers"
)

// fakeRepo mimics the single-row update semantics of the real store: last
// writer wins, no guards beyond row existence.
type fakeRepo struct {
	mu        sync.Mutex
	rows      map[uint]models.Transfer
	updateErr error // when set, UpdateStatus fails without touching rows
}

func newFakeRepo(rows ...models.Transfer) *fakeRepo {
	m := make(map[uint]models.Transfer, len(rows))
	for _, r := range rows {
		m[r.ID] = r
	}
	return &fakeRepo{rows: m}
}

func (f *fakeRepo) List(_ context.Context, driverID uint, group transfers.StatusGroup) ([]models.Transfer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	wanted := make(map[models.TransferStatus]bool)
	for _, s := range group.Statuses() {
		wanted[s] = true
	}

	var out []models.Transfer
	for _, row := range f.rows {
		if !wanted[row.Status] {
			continue
		}
		if group == transfers.GroupActive {
			if row.DriverID != nil && *row.DriverID != driverID {
				continue
			}
		} else if row.DriverID == nil || *row.DriverID != driverID {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, transferID uint, status models.TransferStatus, driverID *uint) (*models.Transfer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateErr != nil {
		return nil, f.updateErr
	}

	row, ok := f.rows[transferID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	row.Status = status
	if driverID != nil {
		id := *driverID
		row.DriverID = &id
	}
	f.rows[transferID] = row
	updated := row
	return &updated, nil
}

func (f *fakeRepo) get(id uint) models.Transfer {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[id]
}

func pending(id uint) models.Transfer {
	t := models.Transfer{Status: models.TransferPending, BookingCode: "BK-1001"}
	t.ID = id
	return t
}

// resolver without a database still resolves explicit and session IDs.
func newResolver() *identity.Resolver {
	return identity.NewResolver(nil)
}

func TestWorkflow_Accept(t *testing.T) {
	repo := newFakeRepo(pending(1))
	w := transfers.NewWorkflow(repo, newResolver())

	result, err := w.Accept(context.Background(), transfers.Caller{SessionID: 7}, 1)
	require.NoError(t, err)

	require.NotNil(t, result.Transfer.DriverID)
	assert.Equal(t, models.TransferConfirmed, result.Transfer.Status)
	assert.Equal(t, uint(7), *result.Transfer.DriverID)

	// The refetched active list carries the authoritative row.
	require.Len(t, result.Active, 1)
	assert.Equal(t, models.TransferConfirmed, result.Active[0].Status)
}

func TestWorkflow_AcceptUnauthenticated(t *testing.T) {
	repo := newFakeRepo(pending(1))
	w := transfers.NewWorkflow(repo, newResolver())

	_, err := w.Accept(context.Background(), transfers.Caller{}, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAuthentication)

	// No mutation happened.
	assert.Equal(t, models.TransferPending, repo.get(1).Status)
}

func TestWorkflow_Decline(t *testing.T) {
	tests := []struct {
		name   string
		caller transfers.Caller
	}{
		{name: "WithSession", caller: transfers.Caller{SessionID: 7}},
		{name: "WithoutSession", caller: transfers.Caller{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo(pending(1))
			w := transfers.NewWorkflow(repo, newResolver())

			result, err := w.Decline(context.Background(), tt.caller, 1)
			require.NoError(t, err)
			assert.Equal(t, models.TransferCanceled, result.Transfer.Status)
			assert.Nil(t, result.Transfer.DriverID)
		})
	}
}

func TestWorkflow_Complete(t *testing.T) {
	driverID := uint(7)
	row := pending(1)
	row.Status = models.TransferConfirmed
	row.DriverID = &driverID

	repo := newFakeRepo(row)
	w := transfers.NewWorkflow(repo, newResolver())

	result, err := w.Complete(context.Background(), transfers.Caller{SessionID: driverID}, 1)
	require.NoError(t, err)
	assert.Equal(t, models.TransferCompleted, result.Transfer.Status)
	// The assignee survives completion.
	require.NotNil(t, result.Transfer.DriverID)
	assert.Equal(t, driverID, *result.Transfer.DriverID)

	// Completing again re-persists the same value with no error.
	again, err := w.Complete(context.Background(), transfers.Caller{SessionID: driverID}, 1)
	require.NoError(t, err)
	assert.Equal(t, models.TransferCompleted, again.Transfer.Status)
}

func TestWorkflow_CompleteUnknownTransfer(t *testing.T) {
	w := transfers.NewWorkflow(newFakeRepo(), newResolver())

	_, err := w.Complete(context.Background(), transfers.Caller{SessionID: 7}, 99)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWorkflow_ListGroupExclusivity(t *testing.T) {
	driverID := uint(7)
	confirmed := pending(2)
	confirmed.Status = models.TransferConfirmed
	confirmed.DriverID = &driverID
	completed := pending(3)
	completed.Status = models.TransferCompleted
	completed.DriverID = &driverID
	canceled := pending(4)
	canceled.Status = models.TransferCanceled
	canceled.DriverID = &driverID

	repo := newFakeRepo(pending(1), confirmed, completed, canceled)
	w := transfers.NewWorkflow(repo, newResolver())

	active, err := w.List(context.Background(), driverID, transfers.GroupActive)
	require.NoError(t, err)
	for _, tr := range active {
		assert.NotEqual(t, models.TransferCompleted, tr.Status)
		assert.NotEqual(t, models.TransferCanceled, tr.Status)
	}
	assert.Len(t, active, 2)

	history, err := w.List(context.Background(), driverID, transfers.GroupHistory)
	require.NoError(t, err)
	for _, tr := range history {
		assert.NotEqual(t, models.TransferPending, tr.Status)
		assert.NotEqual(t, models.TransferConfirmed, tr.Status)
	}
	assert.Len(t, history, 2)
}

// A failed persistence call must leave the cached view untouched: the caller
// sees the error and their next refresh still shows the old state.
func TestWorkflow_AcceptPersistenceFailureLeavesViewUnchanged(t *testing.T) {
	repo := newFakeRepo(pending(1))
	w := transfers.NewWorkflow(repo, newResolver())

	before, err := w.List(context.Background(), 7, transfers.GroupActive)
	require.NoError(t, err)
	require.Len(t, before, 1)

	repo.updateErr = apperrors.ErrPersistence
	_, err = w.Accept(context.Background(), transfers.Caller{SessionID: 7}, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPersistence)

	// Neither the store nor the cached snapshot moved.
	assert.Equal(t, models.TransferPending, repo.get(1).Status)
	snapshot := w.Snapshot(7)
	require.Len(t, snapshot, 1)
	assert.Equal(t, models.TransferPending, snapshot[0].Status)
	assert.Nil(t, snapshot[0].DriverID)
}

// Lists handed to callers are snapshots: a concurrent mutation reconciling the
// cached view must never write into a slice a reader already holds. Run under
// the race detector this doubles as the data-race regression.
func TestWorkflow_ReturnedListIsolatedFromReconcile(t *testing.T) {
	repo := newFakeRepo(pending(1))
	w := transfers.NewWorkflow(repo, newResolver())

	list, err := w.List(context.Background(), 7, transfers.GroupActive)
	require.NoError(t, err)
	require.Len(t, list, 1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Reader serializing the response while the mutation lands.
		for i := 0; i < 1000; i++ {
			_ = list[0].Status
			_ = list[0].DriverID
		}
	}()

	_, err = w.Accept(context.Background(), transfers.Caller{SessionID: 7}, 1)
	require.NoError(t, err)
	<-done

	// The reader's slice still shows the pre-mutation state; only a fresh
	// List reflects the accept.
	assert.Equal(t, models.TransferPending, list[0].Status)
	assert.Nil(t, list[0].DriverID)

	fresh, err := w.List(context.Background(), 7, transfers.GroupActive)
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, models.TransferConfirmed, fresh[0].Status)
}

// Two drivers race to accept the same pending transfer. The store resolves a
// single winner and both drivers' refetches agree on it; the loser never keeps
// their stale optimistic view.
func TestWorkflow_ConcurrentAccept(t *testing.T) {
	repo := newFakeRepo(pending(1))
	w := transfers.NewWorkflow(repo, newResolver())

	var wg sync.WaitGroup
	for _, driverID := range []uint{7, 8} {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			_, err := w.Accept(context.Background(), transfers.Caller{SessionID: id}, 1)
			assert.NoError(t, err)
		}(driverID)
	}
	wg.Wait()

	final := repo.get(1)
	require.NotNil(t, final.DriverID)
	winner := *final.DriverID
	assert.Contains(t, []uint{7, 8}, winner)
	assert.Equal(t, models.TransferConfirmed, final.Status)

	// Both drivers' next refresh reflects the persisted winner.
	for _, driverID := range []uint{7, 8} {
		list, err := w.List(context.Background(), driverID, transfers.GroupActive)
		require.NoError(t, err)
		for _, tr := range list {
			if tr.ID == 1 {
				require.NotNil(t, tr.DriverID)
				assert.Equal(t, winner, *tr.DriverID)
			}
		}
	}
}
