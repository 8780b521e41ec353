package parking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, p *Parking) error
	GetByID(ctx context.Context, id string) (*Parking, error)
	List(ctx context.Context) ([]*Parking, error)
	Update(ctx context.Context, p *Parking) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var parkingColumns = []string{
	"id", "name", "address", "total_spots", "available_spots", "price_per_hour",
	"image", "is_active", "description", "services", "opening_hours",
	"created_at", "updated_at",
}

func scanParking(row pgx.Row) (*Parking, error) {
	var p Parking
	err := row.Scan(
		&p.ID, &p.Name, &p.Address, &p.TotalSpots, &p.AvailableSpots, &p.PricePerHour,
		&p.Image, &p.IsActive, &p.Description, &p.Services, &p.OpeningHours,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pgxRepository) Create(ctx context.Context, p *Parking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.parkings").
		Columns(
			"name", "address", "total_spots", "available_spots", "price_per_hour",
			"image", "is_active", "description", "services", "opening_hours",
		).
		Values(
			p.Name, p.Address, p.TotalSpots, p.AvailableSpots, p.PricePerHour,
			p.Image, p.IsActive, p.Description, p.Services, p.OpeningHours,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create parking query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Parking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(parkingColumns...).
		From("public.parkings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get parking query failed: %w", err)
	}

	p, err := scanParking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get parking failed: %w", err)
	}
	return p, nil
}

func (r *pgxRepository) List(ctx context.Context) ([]*Parking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(parkingColumns...).
		From("public.parkings").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list parkings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list parkings failed: %w", err)
	}
	defer rows.Close()

	var parkings []*Parking
	for rows.Next() {
		p, err := scanParking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan parking failed: %w", err)
		}
		parkings = append(parkings, p)
	}

	return parkings, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, p *Parking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.parkings").
		Set("name", p.Name).
		Set("address", p.Address).
		Set("total_spots", p.TotalSpots).
		Set("available_spots", p.AvailableSpots).
		Set("price_per_hour", p.PricePerHour).
		Set("image", p.Image).
		Set("is_active", p.IsActive).
		Set("description", p.Description).
		Set("services", p.Services).
		Set("opening_hours", p.OpeningHours).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update parking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update parking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.parkings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete parking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete parking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
