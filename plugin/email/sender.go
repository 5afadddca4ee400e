// Package email provides the mail delivery backends for the assistant.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/pkg/errors"
)

// Sender delivers a message to a single recipient.
// Two interchangeable backends exist: SMTPSender for real delivery and
// LogSender, a simulated backend that logs and always succeeds.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPSender sends mail through a configured SMTP server.
type SMTPSender struct {
	config *Config
}

// NewSMTPSender creates a sender for the given SMTP configuration.
func NewSMTPSender(config *Config) (*SMTPSender, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid SMTP configuration")
	}
	return &SMTPSender{config: config}, nil
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return errors.New("recipient address is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if s.config.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)
	}

	from := s.config.FromEmail
	if s.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	if err := smtp.SendMail(s.config.GetServerAddress(), auth, s.config.FromEmail, []string{to}, []byte(msg.String())); err != nil {
		return errors.Wrapf(err, "failed to send mail to %s", to)
	}

	slog.Info("email sent", "to", to, "subject", subject)
	return nil
}

// LogSender is the simulated delivery backend used in development and demo
// modes. It records the message in the log and always reports success.
type LogSender struct{}

// NewLogSender creates the simulated sender.
func NewLogSender() *LogSender {
	return &LogSender{}
}

func (*LogSender) Send(_ context.Context, to, subject, body string) error {
	if to == "" {
		return errors.New("recipient address is required")
	}

	preview := body
	if len(preview) > 100 {
		preview = preview[:100] + "..."
	}
	slog.Info("[simulated email]", "to", to, "subject", subject, "body", preview)
	return nil
}
