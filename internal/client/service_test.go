package client

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository keeps clients in memory and enforces the unique email
// constraint the way the database index does.
type fakeRepository struct {
	clients      map[string]*Client
	reservations map[string]int64 // client ID -> linked reservation count
	nextID       int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		clients:      map[string]*Client{},
		reservations: map[string]int64{},
	}
}

func (r *fakeRepository) Create(ctx context.Context, c *Client) error {
	for _, other := range r.clients {
		if other.Email == c.Email {
			return ErrEmailAlreadyUsed
		}
	}
	r.nextID++
	c.ID = fmt.Sprintf("client-%d", r.nextID)
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id string) (*Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeRepository) List(ctx context.Context) ([]*Client, error) {
	var out []*Client
	for _, c := range r.clients {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeRepository) Update(ctx context.Context, c *Client) error {
	if _, ok := r.clients[c.ID]; !ok {
		return ErrNotFound
	}
	for id, other := range r.clients {
		if id != c.ID && other.Email == c.Email {
			return ErrEmailAlreadyUsed
		}
	}
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *fakeRepository) DeleteWithReservations(ctx context.Context, id string) (int64, error) {
	if _, ok := r.clients[id]; !ok {
		return 0, ErrNotFound
	}
	removed := r.reservations[id]
	delete(r.reservations, id)
	delete(r.clients, id)
	return removed, nil
}

func createClient(t *testing.T, svc Service, email string) *Client {
	t.Helper()
	c, err := svc.Create(context.Background(), CreateRequest{
		Name:  "Jean Dupont",
		Email: email,
		Phone: "0601020304",
	})
	require.NoError(t, err)
	return c
}

func TestCreateClient(t *testing.T) {
	svc := NewService(newFakeRepository())

	c := createClient(t, svc, "jean@example.com")

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "jean@example.com", c.Email)
}

func TestCreateClientMissingFields(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Email: "a@b.com", Phone: "06"})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.Create(ctx, CreateRequest{Name: "Jean", Phone: "06"})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.Create(ctx, CreateRequest{Name: "Jean", Email: "a@b.com"})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestCreateClientEmailUniqueness(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	createClient(t, svc, "jean@example.com")

	_, err := svc.Create(ctx, CreateRequest{
		Name:  "Other",
		Email: "jean@example.com",
		Phone: "06",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)

	// Email comparison is case-insensitive: the address is lower-cased on
	// the way in.
	_, err = svc.Create(ctx, CreateRequest{
		Name:  "Other",
		Email: "  JEAN@Example.COM ",
		Phone: "06",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestUpdateClientPartial(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	c := createClient(t, svc, "jean@example.com")

	phone := "0707070707"
	updated, err := svc.Update(ctx, c.ID, UpdateRequest{Phone: &phone})
	require.NoError(t, err)

	assert.Equal(t, "0707070707", updated.Phone)
	assert.Equal(t, c.Name, updated.Name)
	assert.Equal(t, c.Email, updated.Email)
}

func TestUpdateClientNormalizesEmail(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	c := createClient(t, svc, "jean@example.com")

	email := "Jean.NEW@Example.com"
	updated, err := svc.Update(ctx, c.ID, UpdateRequest{Email: &email})
	require.NoError(t, err)

	assert.Equal(t, "jean.new@example.com", updated.Email)
}

func TestUpdateClientNotFound(t *testing.T) {
	svc := NewService(newFakeRepository())

	name := "x"
	_, err := svc.Update(context.Background(), "missing", UpdateRequest{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteClientCascades(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	ctx := context.Background()

	c := createClient(t, svc, "jean@example.com")
	repo.reservations[c.ID] = 3

	removed, err := svc.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed, "linked reservations go with the client")

	_, err = svc.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteClientWithoutReservations(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	c := createClient(t, svc, "jean@example.com")

	removed, err := svc.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.Zero(t, removed)

	_, err = svc.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteClientNotFound(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
