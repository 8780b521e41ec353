package notify

import (
	"context"
	"log"

	"github.com/greenpark/parking-reservation-backend/internal/reservation"
)

// LogNotifier is used when no SendGrid key is configured; it records what
// would have been sent instead of delivering anything.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) SendConfirmation(ctx context.Context, r *reservation.Reservation) error {
	log.Printf("notify: confirmation email skipped (no provider configured), reservation=%s to=%s", r.ID, r.Email)
	return nil
}

func (n *LogNotifier) SendCancellation(ctx context.Context, r *reservation.Reservation) error {
	log.Printf("notify: cancellation email skipped (no provider configured), reservation=%s to=%s", r.ID, r.Email)
	return nil
}
