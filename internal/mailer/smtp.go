package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/MKhiriev/go-sql-trainer/internal/config"
	"github.com/MKhiriev/go-sql-trainer/internal/logger"
)

// dialer is the part of *gomail.Dialer used by [SMTPSender].
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender sends messages through an authenticated SMTP relay.
// STARTTLS is negotiated by gomail when the server offers it.
type SMTPSender struct {
	dialer dialer
	from   string
	logger *logger.Logger
}

// NewSMTPSender builds a sender from the mail section of the configuration.
func NewSMTPSender(cfg config.Mail, log *logger.Logger) *SMTPSender {
	log.Info().Str("smtp", cfg.Address()).Str("from", cfg.From).Msg("smtp sender created")
	return newSMTPSenderWithDialer(gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password), cfg.From, log)
}

func newSMTPSenderWithDialer(d dialer, from string, log *logger.Logger) *SMTPSender {
	return &SMTPSender{dialer: d, from: from, logger: log}
}

// Send implements [Sender]. gomail has no context support, so ctx is only
// checked before dialing.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Err(err).Str("to", msg.To).Str("subject", msg.Subject).Msg("smtp delivery failed")
		return fmt.Errorf("%w: %w", ErrSendingMail, err)
	}

	s.logger.Debug().Str("to", msg.To).Str("subject", msg.Subject).Msg("mail sent")
	return nil
}
