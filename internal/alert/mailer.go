// Package alert sends fraud alert emails to the cardholder.
package alert

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"

	"github.com/fraudguard/fraudguard/internal/domain"
)

// Mailer sends fraud alerts over SMTP. With no sender configured it runs
// in simulation mode: the alert is logged instead of sent, so the scoring
// pipeline works out of the box.
type Mailer struct {
	host     string
	port     int
	sender   string
	password string
	to       string
	log      zerolog.Logger
}

// NewMailer creates a mailer. Empty sender means simulation mode.
func NewMailer(host string, port int, sender, password, to string, log zerolog.Logger) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		sender:   sender,
		password: password,
		to:       to,
		log:      log.With().Str("component", "alert").Logger(),
	}
}

// SendFraudAlert notifies the cardholder that a transaction was blocked.
func (m *Mailer) SendFraudAlert(entry domain.HistoryEntry) error {
	if m.sender == "" || m.to == "" {
		m.log.Info().
			Str("id", entry.ID).
			Str("merchant", entry.Merchant).
			Float64("amt", entry.Amt).
			Msg("SIMULATION: fraud alert email (no SMTP sender configured)")
		return nil
	}

	subject := fmt.Sprintf("URGENT: Fraud Detected - Transaction %s", entry.ID)
	body := fmt.Sprintf(
		"Dear User,\r\n\r\n"+
			"A high-risk transaction has been detected on your card.\r\n\r\n"+
			"Details:\r\n"+
			"- Date: %s\r\n"+
			"- Merchant: %s\r\n"+
			"- Amount: $%.2f\r\n"+
			"- Risk Score: %.2f%%\r\n\r\n"+
			"Action Taken: CARD BLOCKED TEMPORARILY.\r\n\r\n"+
			"Please contact support if this was you.\r\n",
		entry.TransDateTransTime, entry.Merchant, entry.Amt, entry.RiskScore*100,
	)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		m.sender, m.to, subject, body,
	))

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.sender, m.password, m.host)
	if err := smtp.SendMail(addr, auth, m.sender, []string{m.to}, msg); err != nil {
		return fmt.Errorf("failed to send fraud alert: %w", err)
	}

	m.log.Info().Str("id", entry.ID).Str("to", m.to).Msg("Fraud alert email sent")
	return nil
}
