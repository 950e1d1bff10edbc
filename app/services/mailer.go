package services

import "github.com/rs/zerolog"

// Mailer delivers notification email. Outbound delivery is an external
// collaborator; this interface is its boundary.
type Mailer interface {
	Send(userID int, subject, body string) error
}

// LogMailer is a Mailer that only records the send. Used until a real
// SMTP sender is configured.
type LogMailer struct {
	Log zerolog.Logger
}

func (m LogMailer) Send(userID int, subject, body string) error {
	m.Log.Info().Int("user", userID).Str("subject", subject).Msg("mail (log only)")
	return nil
}
