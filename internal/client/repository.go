package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing client data from storage.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, id string) (*Client, error)
	List(ctx context.Context) ([]*Client, error)
	Update(ctx context.Context, c *Client) error

	// DeleteWithReservations removes the client and every reservation linked
	// to it in one transaction. It returns how many reservations went with it.
	DeleteWithReservations(ctx context.Context, id string) (int64, error)
}

type pgxClientRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxClientRepository{
		pool: pool,
	}
}

// We use correlated subqueries to fetch the linked parking and reservations
// as JSON documents, keeping list and get queries to a single round trip.
const clientSelect = `
	SELECT
		c.id,
		c.name,
		c.email,
		c.phone,
		c.vehicle_plate,
		c.vehicle_model,
		c.parking_id,
		c.start_date,
		c.end_date,
		c.duration,
		c.total_price,
		c.created_at,
		c.updated_at,
		(
			SELECT json_build_object('id', p.id, 'name', p.name, 'address', p.address)
			FROM public.parkings p
			WHERE p.id = c.parking_id
		) AS parking,
		COALESCE(
			(
				SELECT json_agg(json_build_object(
					'id', r.id,
					'startDate', r.start_date,
					'endDate', r.end_date,
					'status', r.status,
					'totalPrice', r.total_price
				) ORDER BY r.created_at DESC)
				FROM public.reservations r
				WHERE r.client_id = c.id
			),
			'[]'::json
		) AS reservations
	FROM public.clients c
`

func scanClient(row pgx.Row) (*Client, error) {
	var c Client
	var parkingJSON, reservationsJSON []byte

	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.VehiclePlate,
		&c.VehicleModel,
		&c.ParkingID,
		&c.StartDate,
		&c.EndDate,
		&c.Duration,
		&c.TotalPrice,
		&c.CreatedAt,
		&c.UpdatedAt,
		&parkingJSON,
		&reservationsJSON,
	); err != nil {
		return nil, err
	}

	if len(parkingJSON) > 0 {
		if err := json.Unmarshal(parkingJSON, &c.Parking); err != nil {
			log.Printf("warning: failed to unmarshal parking for client %s: %v", c.ID, err)
		}
	}
	if len(reservationsJSON) > 0 {
		if err := json.Unmarshal(reservationsJSON, &c.Reservations); err != nil {
			log.Printf("warning: failed to unmarshal reservations for client %s: %v", c.ID, err)
		}
	}

	return &c, nil
}

func (r *pgxClientRepository) Create(ctx context.Context, c *Client) error {
	const query = `
		INSERT INTO public.clients
			(name, email, phone, vehicle_plate, vehicle_model, parking_id,
			 start_date, end_date, duration, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		c.Name, c.Email, c.Phone, c.VehiclePlate, c.VehicleModel, c.ParkingID,
		c.StartDate, c.EndDate, c.Duration, c.TotalPrice,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("create client failed: %w", err)
	}
	return nil
}

func (r *pgxClientRepository) GetByID(ctx context.Context, id string) (*Client, error) {
	query := clientSelect + ` WHERE c.id = $1`

	c, err := scanClient(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get client failed: %w", err)
	}
	return c, nil
}

func (r *pgxClientRepository) List(ctx context.Context) ([]*Client, error) {
	query := clientSelect + ` ORDER BY c.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list clients failed: %w", err)
	}
	defer rows.Close()

	var clients []*Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client failed: %w", err)
		}
		clients = append(clients, c)
	}

	return clients, rows.Err()
}

func (r *pgxClientRepository) Update(ctx context.Context, c *Client) error {
	const query = `
		UPDATE public.clients
		SET name = $1, email = $2, phone = $3, vehicle_plate = $4,
			vehicle_model = $5, parking_id = $6, start_date = $7, end_date = $8,
			duration = $9, total_price = $10, updated_at = now()
		WHERE id = $11
	`

	ct, err := r.pool.Exec(ctx, query,
		c.Name, c.Email, c.Phone, c.VehiclePlate, c.VehicleModel, c.ParkingID,
		c.StartDate, c.EndDate, c.Duration, c.TotalPrice, c.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("update client failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxClientRepository) DeleteWithReservations(ctx context.Context, id string) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin delete client tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx, `DELETE FROM public.reservations WHERE client_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete client reservations failed: %w", err)
	}
	removed := ct.RowsAffected()

	ct, err = tx.Exec(ctx, `DELETE FROM public.clients WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete client failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return 0, ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit delete client tx failed: %w", err)
	}
	return removed, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
