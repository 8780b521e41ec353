package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/greenpark/parking-reservation-backend/internal/reservation"
)

// SendGridNotifier delivers reservation lifecycle emails through SendGrid.
type SendGridNotifier struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

// NewSendGridNotifier creates a notifier using the given SendGrid credentials.
func NewSendGridNotifier(apiKey, fromEmail, fromName string) *SendGridNotifier {
	return &SendGridNotifier{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (n *SendGridNotifier) SendConfirmation(ctx context.Context, r *reservation.Reservation) error {
	subject := "Your parking reservation is confirmed"
	intro := "Your parking reservation has been confirmed."
	return n.send(r, subject, intro)
}

func (n *SendGridNotifier) SendCancellation(ctx context.Context, r *reservation.Reservation) error {
	subject := "Your parking reservation has been cancelled"
	intro := "Your parking reservation has been cancelled."
	return n.send(r, subject, intro)
}

func (n *SendGridNotifier) send(r *reservation.Reservation, subject, intro string) error {
	from := mail.NewEmail(n.fromName, n.fromEmail)
	to := mail.NewEmail(r.Name, r.Email)

	plain := buildPlainBody(r, intro)
	html := buildHTMLBody(r, intro)

	message := mail.NewSingleEmail(from, subject, to, plain, html)

	resp, err := n.client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func buildPlainBody(r *reservation.Reservation, intro string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n%s\n\n", r.Name, intro)
	b.WriteString("Reservation details:\n")
	if r.Parking != nil {
		fmt.Fprintf(&b, "Parking: %s\nAddress: %s\n", r.Parking.Name, r.Parking.Address)
	}
	fmt.Fprintf(&b, "Vehicle: %s (%s)\n", r.VehicleModel, r.VehiclePlate)
	fmt.Fprintf(&b, "From: %s\n", r.StartDate.Format("02 Jan 2006 15:04 MST"))
	fmt.Fprintf(&b, "To: %s\n", r.EndDate.Format("02 Jan 2006 15:04 MST"))
	fmt.Fprintf(&b, "Duration: %g hours\n", r.Duration)
	fmt.Fprintf(&b, "Total: %.2f\n\nThank you for choosing us.\n", r.TotalPrice)
	return b.String()
}

func buildHTMLBody(r *reservation.Reservation, intro string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hello %s,</p><p>%s</p><h2>Reservation details</h2><ul>", r.Name, intro)
	if r.Parking != nil {
		fmt.Fprintf(&b, "<li>Parking: %s</li><li>Address: %s</li>", r.Parking.Name, r.Parking.Address)
	}
	fmt.Fprintf(&b, "<li>Vehicle: %s (%s)</li>", r.VehicleModel, r.VehiclePlate)
	fmt.Fprintf(&b, "<li>From: %s</li>", r.StartDate.Format("02 Jan 2006 15:04 MST"))
	fmt.Fprintf(&b, "<li>To: %s</li>", r.EndDate.Format("02 Jan 2006 15:04 MST"))
	fmt.Fprintf(&b, "<li>Duration: %g hours</li>", r.Duration)
	fmt.Fprintf(&b, "<li>Total: %.2f</li></ul><p>Thank you for choosing us.</p>", r.TotalPrice)
	return b.String()
}
