// Package mail sends the booking confirmation email over SMTP.  Delivery
// is strictly best-effort: callers log failures and never let them fail
// the booking that triggered the email.
package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/omarKhan56/MuseBot/internal/model"
)

// Config holds SMTP connection settings.  An empty Host disables the
// mailer entirely.
type Config struct {
	Host     string // SMTP server, e.g. smtp.gmail.com or localhost (mailhog)
	Port     string // 25, 587, 1025...
	Username string // empty for unauthenticated relays
	Password string
	From     string // sender address
}

// Mailer composes and sends confirmation messages.
type Mailer struct {
	cfg Config
}

// New returns a Mailer for the given configuration.
func New(cfg Config) *Mailer { return &Mailer{cfg: cfg} }

// Enabled reports whether an SMTP host is configured.
func (m *Mailer) Enabled() bool { return m != nil && m.cfg.Host != "" }

// SendBookingConfirmation emails the booking details together with the
// first issued ticket's QR code.
func (m *Mailer) SendBookingConfirmation(to string, b *model.Booking, qrDataURL string) error {
	if !m.Enabled() {
		return fmt.Errorf("smtp not configured")
	}
	if !strings.Contains(to, "@") {
		return fmt.Errorf("malformed recipient address %q", to)
	}

	subject := "Your Museum Ticket - Booking Confirmed"
	body := confirmationBody(b, qrDataURL)

	var msg strings.Builder
	msg.WriteString("From: " + m.cfg.From + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := m.cfg.Host + ":" + m.cfg.Port
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg.String()))
}

// confirmationBody renders the HTML message: the booking details block,
// the scannable QR code and the arrival instructions.
func confirmationBody(b *model.Booking, qrDataURL string) string {
	var sb strings.Builder
	sb.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	sb.WriteString(`<h1 style="color: #0284c7;">Booking Confirmed!</h1>`)
	sb.WriteString(fmt.Sprintf("<p>Dear %s,</p>", b.VisitorName))
	sb.WriteString(`<p>Thank you for booking tickets with us. Here are your booking details:</p>`)
	sb.WriteString(`<div style="background: #f0f9ff; padding: 20px; border-radius: 8px; margin: 20px 0;">`)
	sb.WriteString(`<h2 style="color: #0369a1; margin-top: 0;">Booking Details</h2>`)
	sb.WriteString(fmt.Sprintf("<p><strong>Booking ID:</strong> %s</p>", b.ID))
	sb.WriteString(fmt.Sprintf("<p><strong>Visit Date:</strong> %s</p>", b.VisitDate))
	sb.WriteString(fmt.Sprintf("<p><strong>Ticket Type:</strong> %s</p>", b.TicketCategory))
	sb.WriteString(fmt.Sprintf("<p><strong>Quantity:</strong> %d</p>", b.Quantity))
	sb.WriteString(fmt.Sprintf("<p><strong>Total Amount:</strong> ₹%d</p>", b.TotalAmount))
	sb.WriteString(`</div>`)
	if qrDataURL != "" {
		sb.WriteString(`<div style="text-align: center; margin: 30px 0;">`)
		sb.WriteString(fmt.Sprintf(`<img src="%s" alt="QR Code" style="max-width: 200px;" />`, qrDataURL))
		sb.WriteString(`<p style="color: #64748b; font-size: 14px;">Show this QR code at the museum entrance</p>`)
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`<div style="background: #fef3c7; padding: 15px; border-radius: 8px;">`)
	sb.WriteString(`<p style="margin: 0;"><strong>Important:</strong></p>`)
	sb.WriteString(`<ul style="margin: 10px 0;">`)
	sb.WriteString(`<li>Please arrive 15 minutes before your visit time</li>`)
	sb.WriteString(`<li>Carry a valid ID proof</li>`)
	sb.WriteString(`<li>Museum timings: 9 AM - 6 PM (Closed Mondays)</li>`)
	sb.WriteString(`</ul></div></div>`)
	return sb.String()
}
