package reservation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository mirrors the storage semantics in memory: the insert re-checks
// availability against pending and confirmed reservations with inclusive bounds.
type fakeRepository struct {
	reservations map[string]*Reservation
	parkings     map[string]bool
	nextID       int
}

func newFakeRepository(parkingIDs ...string) *fakeRepository {
	r := &fakeRepository{
		reservations: map[string]*Reservation{},
		parkings:     map[string]bool{},
	}
	for _, id := range parkingIDs {
		r.parkings[id] = true
	}
	return r
}

func (r *fakeRepository) Create(ctx context.Context, res *Reservation) error {
	if !r.parkings[res.ParkingID] {
		return ErrParkingNotFound
	}
	for _, other := range r.reservations {
		if other.ParkingID != res.ParkingID {
			continue
		}
		if other.Status != StatusPending && other.Status != StatusConfirmed {
			continue
		}
		if !other.StartDate.After(res.EndDate) && !other.EndDate.Before(res.StartDate) {
			return ErrDateConflict
		}
	}
	r.nextID++
	res.ID = fmt.Sprintf("res-%d", r.nextID)
	res.CreatedAt = time.Now()
	cp := *res
	r.reservations[res.ID] = &cp
	return nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id string) (*Reservation, error) {
	res, ok := r.reservations[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *res
	return &cp, nil
}

func (r *fakeRepository) ListByEmail(ctx context.Context, email string) ([]*Reservation, error) {
	var out []*Reservation
	for _, res := range r.reservations {
		if res.Email == email {
			cp := *res
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRepository) List(ctx context.Context) ([]*Reservation, error) {
	var out []*Reservation
	for _, res := range r.reservations {
		cp := *res
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeRepository) ListByStatus(ctx context.Context, status Status) ([]*Reservation, error) {
	var out []*Reservation
	for _, res := range r.reservations {
		if res.Status == status {
			cp := *res
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	res, ok := r.reservations[id]
	if !ok {
		return ErrNotFound
	}
	res.Status = status
	return nil
}

func (r *fakeRepository) Delete(ctx context.Context, id string) error {
	if _, ok := r.reservations[id]; !ok {
		return ErrNotFound
	}
	delete(r.reservations, id)
	return nil
}

// fakeNotifier records dispatches and can be told to fail.
type fakeNotifier struct {
	confirmations int
	cancellations int
	err           error
}

func (n *fakeNotifier) SendConfirmation(ctx context.Context, r *Reservation) error {
	n.confirmations++
	return n.err
}

func (n *fakeNotifier) SendCancellation(ctx context.Context, r *Reservation) error {
	n.cancellations++
	return n.err
}

const testParkingID = "parking-1"

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 10, 0, 0, 0, time.UTC)
}

func createReservation(t *testing.T, svc Service, start, end time.Time) *Reservation {
	t.Helper()
	res, err := svc.Create(context.Background(), CreateRequest{
		ParkingID:    testParkingID,
		Name:         "Jean Dupont",
		Email:        "jean@example.com",
		Phone:        "0601020304",
		VehiclePlate: "AB-123-CD",
		VehicleModel: "Clio",
		StartDate:    start,
		EndDate:      end,
		Duration:     48,
		TotalPrice:   120,
	})
	require.NoError(t, err)
	return res
}

func newTestService() (Service, *fakeRepository, *fakeNotifier) {
	repo := newFakeRepository(testParkingID)
	notifier := &fakeNotifier{}
	return NewService(repo, notifier), repo, notifier
}

func TestCreateReservation(t *testing.T) {
	svc, _, _ := newTestService()

	res := createReservation(t, svc, day(1), day(3))

	assert.Equal(t, StatusPending, res.Status)
	// Price and duration are taken as supplied, never recomputed.
	assert.Equal(t, 120.0, res.TotalPrice)
	assert.Equal(t, 48.0, res.Duration)
}

func TestCreateReservationPriceNotRecomputed(t *testing.T) {
	svc, _, _ := newTestService()

	res, err := svc.Create(context.Background(), CreateRequest{
		ParkingID:  testParkingID,
		Name:       "Jean Dupont",
		Email:      "jean@example.com",
		StartDate:  day(1),
		EndDate:    day(2),
		Duration:   1,
		TotalPrice: 999,
	})
	require.NoError(t, err)
	assert.Equal(t, 999.0, res.TotalPrice)
}

func TestCreateReservationInvalidDateRange(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{ParkingID: testParkingID, StartDate: day(3), EndDate: day(1)})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	// Equal start and end is rejected too.
	_, err = svc.Create(ctx, CreateRequest{ParkingID: testParkingID, StartDate: day(1), EndDate: day(1)})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestCreateReservationUnknownParking(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateRequest{
		ParkingID: "missing",
		StartDate: day(1),
		EndDate:   day(2),
	})
	assert.ErrorIs(t, err, ErrParkingNotFound)
}

func TestCreateReservationDateConflict(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	createReservation(t, svc, day(5), day(10))

	t.Run("overlapping interval rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{
			ParkingID: testParkingID,
			StartDate: day(8),
			EndDate:   day(12),
		})
		assert.ErrorIs(t, err, ErrDateConflict)
	})

	t.Run("touching endpoints rejected", func(t *testing.T) {
		// Bounds are inclusive: a stay starting exactly when the other ends
		// still conflicts.
		_, err := svc.Create(ctx, CreateRequest{
			ParkingID: testParkingID,
			StartDate: day(10),
			EndDate:   day(12),
		})
		assert.ErrorIs(t, err, ErrDateConflict)
	})

	t.Run("disjoint interval accepted", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{
			ParkingID: testParkingID,
			Email:     "other@example.com",
			StartDate: day(11),
			EndDate:   day(12),
		})
		assert.NoError(t, err)
	})
}

func TestCancelledReservationFreesDates(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	res := createReservation(t, svc, day(5), day(10))

	_, err := svc.Cancel(ctx, res.ID, "jean@example.com")
	require.NoError(t, err)

	// The cancelled reservation no longer blocks the window.
	_, err = svc.Create(ctx, CreateRequest{
		ParkingID: testParkingID,
		Email:     "other@example.com",
		StartDate: day(6),
		EndDate:   day(8),
	})
	assert.NoError(t, err)
}

func TestCancelReservation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	res := createReservation(t, svc, day(1), day(3))

	t.Run("email mismatch forbidden", func(t *testing.T) {
		_, err := svc.Cancel(ctx, res.ID, "intruder@example.com")
		assert.ErrorIs(t, err, ErrEmailMismatch)
	})

	t.Run("matching email cancels", func(t *testing.T) {
		cancelled, err := svc.Cancel(ctx, res.ID, "jean@example.com")
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, cancelled.Status)
	})

	t.Run("second cancel rejected", func(t *testing.T) {
		_, err := svc.Cancel(ctx, res.ID, "jean@example.com")
		assert.ErrorIs(t, err, ErrAlreadyCancelled)
	})
}

func TestConfirmReservation(t *testing.T) {
	svc, _, notifier := newTestService()
	ctx := context.Background()

	res := createReservation(t, svc, day(1), day(3))

	confirmed, err := svc.Confirm(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, confirmed.Status)
	assert.Equal(t, 1, notifier.confirmations)

	// Only pending reservations can be confirmed.
	_, err = svc.Confirm(ctx, res.ID)
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestConfirmSurvivesNotifierFailure(t *testing.T) {
	svc, repo, notifier := newTestService()
	notifier.err = errors.New("smtp down")

	res := createReservation(t, svc, day(1), day(3))

	confirmed, err := svc.Confirm(context.Background(), res.ID)
	require.NoError(t, err, "a failed email must not fail the confirmation")
	assert.Equal(t, StatusConfirmed, confirmed.Status)

	stored, err := repo.GetByID(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, stored.Status)
}

func TestRejectReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("pending can be rejected", func(t *testing.T) {
		svc, _, notifier := newTestService()
		res := createReservation(t, svc, day(1), day(3))

		rejected, err := svc.Reject(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, rejected.Status)
		assert.Equal(t, 1, notifier.cancellations)
	})

	t.Run("confirmed can still be rejected", func(t *testing.T) {
		svc, _, _ := newTestService()
		res := createReservation(t, svc, day(1), day(3))

		_, err := svc.Confirm(ctx, res.ID)
		require.NoError(t, err)

		rejected, err := svc.Reject(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, rejected.Status)
	})

	t.Run("cancelled cannot be rejected again", func(t *testing.T) {
		svc, _, _ := newTestService()
		res := createReservation(t, svc, day(1), day(3))

		_, err := svc.Reject(ctx, res.ID)
		require.NoError(t, err)

		_, err = svc.Reject(ctx, res.ID)
		assert.ErrorIs(t, err, ErrAlreadyCancelled)
	})
}

func TestDeleteReservationRequiresCancelled(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	res := createReservation(t, svc, day(1), day(3))

	assert.ErrorIs(t, svc.Delete(ctx, res.ID), ErrNotCancelled)

	_, err := svc.Reject(ctx, res.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, res.ID))

	_, err = svc.GetByID(ctx, res.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByEmail(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	createReservation(t, svc, day(1), day(2))

	_, err := svc.ListByEmail(ctx, "  ")
	assert.ErrorIs(t, err, ErrEmailRequired)

	found, err := svc.ListByEmail(ctx, "jean@example.com")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	none, err := svc.ListByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListPending(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	first := createReservation(t, svc, day(1), day(2))
	createReservation(t, svc, day(3), day(4))

	_, err := svc.Confirm(ctx, first.ID)
	require.NoError(t, err)

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, StatusPending, pending[0].Status)
}
