package reservation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/greenpark/parking-reservation-backend/internal/parking"
)

type Repository interface {
	// Create inserts the reservation after re-checking availability inside a
	// single transaction that locks the parking row, so two concurrent
	// requests for the same facility cannot both pass the overlap check.
	Create(ctx context.Context, r *Reservation) error

	GetByID(ctx context.Context, id string) (*Reservation, error)
	ListByEmail(ctx context.Context, email string) ([]*Reservation, error)
	List(ctx context.Context) ([]*Reservation, error)
	ListByStatus(ctx context.Context, status Status) ([]*Reservation, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// parkingDoc decodes the embedded facility built with json_build_object.
type parkingDoc struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	TotalSpots     int       `json:"totalSpots"`
	AvailableSpots int       `json:"availableSpots"`
	PricePerHour   float64   `json:"pricePerHour"`
	Image          *string   `json:"image"`
	IsActive       bool      `json:"isActive"`
	Description    string    `json:"description"`
	Services       []string  `json:"services"`
	OpeningHours   string    `json:"openingHours"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (d *parkingDoc) toModel() *parking.Parking {
	return &parking.Parking{
		ID:             d.ID,
		Name:           d.Name,
		Address:        d.Address,
		TotalSpots:     d.TotalSpots,
		AvailableSpots: d.AvailableSpots,
		PricePerHour:   d.PricePerHour,
		Image:          d.Image,
		IsActive:       d.IsActive,
		Description:    d.Description,
		Services:       d.Services,
		OpeningHours:   d.OpeningHours,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// parkingJSONColumn resolves the referenced facility as a JSON document.
// A deleted facility yields NULL (no cascade guards against dangling refs).
const parkingJSONColumn = `(
	SELECT json_build_object(
		'id', p.id, 'name', p.name, 'address', p.address,
		'totalSpots', p.total_spots, 'availableSpots', p.available_spots,
		'pricePerHour', p.price_per_hour, 'image', p.image,
		'isActive', p.is_active, 'description', p.description,
		'services', p.services, 'openingHours', p.opening_hours,
		'createdAt', p.created_at, 'updatedAt', p.updated_at
	)
	FROM public.parkings p WHERE p.id = r.parking_id
) AS parking`

var reservationColumns = []string{
	"r.id", "r.client_id", "r.name", "r.email", "r.phone",
	"r.vehicle_plate", "r.vehicle_model", "r.parking_id",
	"r.start_date", "r.end_date", "r.duration", "r.total_price",
	"r.status", "r.created_at", parkingJSONColumn,
}

func scanReservation(row pgx.Row) (*Reservation, error) {
	var res Reservation
	var parkingJSON []byte

	if err := row.Scan(
		&res.ID, &res.ClientID, &res.Name, &res.Email, &res.Phone,
		&res.VehiclePlate, &res.VehicleModel, &res.ParkingID,
		&res.StartDate, &res.EndDate, &res.Duration, &res.TotalPrice,
		&res.Status, &res.CreatedAt, &parkingJSON,
	); err != nil {
		return nil, err
	}

	if len(parkingJSON) > 0 {
		var doc parkingDoc
		if err := json.Unmarshal(parkingJSON, &doc); err != nil {
			log.Printf("warning: failed to unmarshal parking for reservation %s: %v", res.ID, err)
		} else {
			res.Parking = doc.toModel()
		}
	}

	return &res, nil
}

func (r *pgxRepository) Create(ctx context.Context, res *Reservation) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create reservation tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the facility row so concurrent creates for the same parking
	// serialize on the overlap check below.
	var parkingID string
	err = tx.QueryRow(ctx, `SELECT id FROM public.parkings WHERE id = $1 FOR UPDATE`, res.ParkingID).
		Scan(&parkingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrParkingNotFound
		}
		return fmt.Errorf("lock parking failed: %w", err)
	}

	// Inclusive-bound interval intersection over non-cancelled reservations:
	// existing.start <= requested.end AND existing.end >= requested.start.
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery, subArgs, err := psql.Select("1").
		From("public.reservations").
		Where(squirrel.Eq{"parking_id": res.ParkingID}).
		Where(squirrel.Eq{"status": []Status{StatusPending, StatusConfirmed}}).
		Where(squirrel.LtOrEq{"start_date": res.EndDate}).
		Where(squirrel.GtOrEq{"end_date": res.StartDate}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build overlap query failed: %w", err)
	}

	var overlaps bool
	if err := tx.QueryRow(ctx, "SELECT EXISTS ("+subQuery+")", subArgs...).Scan(&overlaps); err != nil {
		return fmt.Errorf("check overlap failed: %w", err)
	}
	if overlaps {
		return ErrDateConflict
	}

	insert, args, err := psql.Insert("public.reservations").
		Columns(
			"client_id", "name", "email", "phone", "vehicle_plate", "vehicle_model",
			"parking_id", "start_date", "end_date", "duration", "total_price", "status",
		).
		Values(
			res.ClientID, res.Name, res.Email, res.Phone, res.VehiclePlate, res.VehicleModel,
			res.ParkingID, res.StartDate, res.EndDate, res.Duration, res.TotalPrice, res.Status,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create reservation query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, insert, args...).Scan(&res.ID, &res.CreatedAt); err != nil {
		return fmt.Errorf("create reservation failed: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Reservation, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(reservationColumns...).
		From("public.reservations r").
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get reservation query failed: %w", err)
	}

	res, err := scanReservation(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get reservation failed: %w", err)
	}
	return res, nil
}

func (r *pgxRepository) ListByEmail(ctx context.Context, email string) ([]*Reservation, error) {
	return r.list(ctx, squirrel.Eq{"r.email": email})
}

func (r *pgxRepository) List(ctx context.Context) ([]*Reservation, error) {
	return r.list(ctx, nil)
}

func (r *pgxRepository) ListByStatus(ctx context.Context, status Status) ([]*Reservation, error) {
	return r.list(ctx, squirrel.Eq{"r.status": status})
}

func (r *pgxRepository) list(ctx context.Context, where any) ([]*Reservation, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(reservationColumns...).
		From("public.reservations r").
		OrderBy("r.created_at DESC")
	if where != nil {
		query = query.Where(where)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list reservations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list reservations failed: %w", err)
	}
	defer rows.Close()

	var reservations []*Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation failed: %w", err)
		}
		reservations = append(reservations, res)
	}

	return reservations, rows.Err()
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.reservations").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update reservation status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update reservation status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete reservation query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete reservation failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
