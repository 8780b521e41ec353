package http

import (
	"time"

	"github.com/greenpark/parking-reservation-backend/internal/dashboard"
)

type ActivityResponse struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Date   time.Time `json:"date"`
	Status string    `json:"status"`
}

type StatsResponse struct {
	Clients          int64              `json:"clients"`
	Parkings         int64              `json:"parkings"`
	Reservations     int64              `json:"reservations"`
	Revenue          float64            `json:"revenue"`
	Pending          int64              `json:"pending"`
	Confirmed        int64              `json:"confirmed"`
	Cancelled        int64              `json:"cancelled"`
	RecentActivities []ActivityResponse `json:"recentActivities"`
}

func NewStatsResponse(s *dashboard.Stats) StatsResponse {
	recent := make([]ActivityResponse, 0, len(s.Recent))
	for _, a := range s.Recent {
		recent = append(recent, ActivityResponse{
			ID:     a.ID,
			Title:  a.Title,
			Date:   a.Date,
			Status: a.Status,
		})
	}

	return StatsResponse{
		Clients:          s.Clients,
		Parkings:         s.Parkings,
		Reservations:     s.Reservations,
		Revenue:          s.Revenue,
		Pending:          s.Pending,
		Confirmed:        s.Confirmed,
		Cancelled:        s.Cancelled,
		RecentActivities: recent,
	}
}
