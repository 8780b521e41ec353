package parking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository keeps parkings in memory so the service can be exercised
// without a database.
type fakeRepository struct {
	parkings map[string]*Parking
	nextID   int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{parkings: map[string]*Parking{}}
}

func (r *fakeRepository) Create(ctx context.Context, p *Parking) error {
	r.nextID++
	p.ID = string(rune('a' + r.nextID))
	cp := *p
	r.parkings[p.ID] = &cp
	return nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id string) (*Parking, error) {
	p, ok := r.parkings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepository) List(ctx context.Context) ([]*Parking, error) {
	var out []*Parking
	for _, p := range r.parkings {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeRepository) Update(ctx context.Context, p *Parking) error {
	if _, ok := r.parkings[p.ID]; !ok {
		return ErrNotFound
	}
	cp := *p
	r.parkings[p.ID] = &cp
	return nil
}

func (r *fakeRepository) Delete(ctx context.Context, id string) error {
	if _, ok := r.parkings[id]; !ok {
		return ErrNotFound
	}
	delete(r.parkings, id)
	return nil
}

func createParking(t *testing.T, svc Service, totalSpots int) *Parking {
	t.Helper()
	p, err := svc.Create(context.Background(), CreateRequest{
		Name:         "Central Parking",
		Address:      "1 Main Street",
		TotalSpots:   totalSpots,
		PricePerHour: 2.5,
	})
	require.NoError(t, err)
	return p
}

func TestCreateParkingDefaults(t *testing.T) {
	svc := NewService(newFakeRepository())

	p := createParking(t, svc, 10)

	assert.Equal(t, 10, p.TotalSpots)
	assert.Equal(t, 10, p.AvailableSpots, "a new parking starts fully available")
	assert.True(t, p.IsActive)
	assert.Equal(t, DefaultOpeningHours, p.OpeningHours)
}

func TestCreateParkingValidation(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Address: "1 Main Street", TotalSpots: 10, PricePerHour: 2})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.Create(ctx, CreateRequest{Name: "P", Address: "A", TotalSpots: -3, PricePerHour: 2})
	assert.ErrorIs(t, err, ErrInvalidSpots)

	_, err = svc.Create(ctx, CreateRequest{Name: "P", Address: "A", TotalSpots: 5, PricePerHour: -1})
	assert.ErrorIs(t, err, ErrNegativePrice)
}

func TestUpdateTotalSpotsShiftsAvailability(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	t.Run("growing capacity adds spots", func(t *testing.T) {
		p := createParking(t, svc, 10)

		spots := 12
		updated, err := svc.Update(ctx, p.ID, UpdateRequest{TotalSpots: &spots})
		require.NoError(t, err)

		assert.Equal(t, 12, updated.TotalSpots)
		assert.Equal(t, 12, updated.AvailableSpots)
	})

	t.Run("shrinking capacity clamps availability", func(t *testing.T) {
		p := createParking(t, svc, 10)

		spots := 5
		updated, err := svc.Update(ctx, p.ID, UpdateRequest{TotalSpots: &spots})
		require.NoError(t, err)

		assert.Equal(t, 5, updated.TotalSpots)
		assert.Equal(t, 5, updated.AvailableSpots, "availability can never exceed capacity")
	})

	t.Run("zero spots rejected", func(t *testing.T) {
		p := createParking(t, svc, 10)

		spots := 0
		_, err := svc.Update(ctx, p.ID, UpdateRequest{TotalSpots: &spots})
		assert.ErrorIs(t, err, ErrInvalidSpots)
	})
}

func TestUpdateParkingPartial(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	p := createParking(t, svc, 10)

	name := "Renamed Parking"
	updated, err := svc.Update(ctx, p.ID, UpdateRequest{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Renamed Parking", updated.Name)
	// Untouched fields survive the partial update.
	assert.Equal(t, p.Address, updated.Address)
	assert.Equal(t, p.TotalSpots, updated.TotalSpots)
}

func TestUpdateParkingNotFound(t *testing.T) {
	svc := NewService(newFakeRepository())

	name := "x"
	_, err := svc.Update(context.Background(), "missing", UpdateRequest{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteParking(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	p := createParking(t, svc, 10)

	require.NoError(t, svc.Delete(ctx, p.ID))

	_, err := svc.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, p.ID), ErrNotFound)
}

func TestCleanServices(t *testing.T) {
	svc := NewService(newFakeRepository())

	p, err := svc.Create(context.Background(), CreateRequest{
		Name:         "P",
		Address:      "A",
		TotalSpots:   4,
		PricePerHour: 1,
		Services:     []string{" security ", "", "ev charging", "   "},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"security", "ev charging"}, p.Services)
}
