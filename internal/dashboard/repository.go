package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Activity is a recent reservation summarized for the dashboard feed.
type Activity struct {
	ID     string
	Title  string
	Date   time.Time
	Status string
}

// Stats aggregates the counters shown on the admin dashboard.
type Stats struct {
	Clients      int64
	Parkings     int64
	Reservations int64
	Revenue      float64
	Pending      int64
	Confirmed    int64
	Cancelled    int64
	Recent       []Activity
}

// Repository computes dashboard aggregates from storage.
type Repository interface {
	Stats(ctx context.Context) (*Stats, error)
}

type pgxDashboardRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxDashboardRepository{pool: pool}
}

func (r *pgxDashboardRepository) Stats(ctx context.Context) (*Stats, error) {
	// One round trip for all counters. Revenue only counts confirmed
	// reservations.
	const countsQuery = `
		SELECT
			(SELECT count(*) FROM public.clients),
			(SELECT count(*) FROM public.parkings),
			count(*),
			COALESCE(sum(total_price) FILTER (WHERE status = 'confirmed'), 0),
			count(*) FILTER (WHERE status = 'pending'),
			count(*) FILTER (WHERE status = 'confirmed'),
			count(*) FILTER (WHERE status = 'cancelled')
		FROM public.reservations
	`

	var s Stats
	if err := r.pool.QueryRow(ctx, countsQuery).Scan(
		&s.Clients,
		&s.Parkings,
		&s.Reservations,
		&s.Revenue,
		&s.Pending,
		&s.Confirmed,
		&s.Cancelled,
	); err != nil {
		return nil, fmt.Errorf("dashboard counts query failed: %w", err)
	}

	const recentQuery = `
		SELECT r.id, COALESCE(p.name, ''), r.created_at, r.status
		FROM public.reservations r
		LEFT JOIN public.parkings p ON p.id = r.parking_id
		ORDER BY r.created_at DESC
		LIMIT 5
	`

	rows, err := r.pool.Query(ctx, recentQuery)
	if err != nil {
		return nil, fmt.Errorf("dashboard recent query failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a Activity
		var parkingName string
		if err := rows.Scan(&a.ID, &parkingName, &a.Date, &a.Status); err != nil {
			return nil, fmt.Errorf("scan recent activity failed: %w", err)
		}
		a.Title = activityTitle(a.ID, parkingName)
		s.Recent = append(s.Recent, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dashboard recent rows failed: %w", err)
	}

	return &s, nil
}

// activityTitle renders the feed line, e.g. "Reservation #a1b2c3d4 - Central Parking".
func activityTitle(id, parkingName string) string {
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	if parkingName == "" {
		return fmt.Sprintf("Reservation #%s", short)
	}
	return fmt.Sprintf("Reservation #%s - %s", short, parkingName)
}
