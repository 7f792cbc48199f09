// Package mailer delivers one-time confirmation codes. Delivery transport
// is behind an interface so the auth service stays testable and the
// service can run without an SMTP relay in development.
package mailer

import (
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/perenos/yamdb-final/internal/config"
)

type Mailer interface {
	SendConfirmationCode(to, username, code string) error
}

// New returns an SMTP mailer when SMTP_HOST is configured, otherwise a
// log-only mailer that writes the code to the application log.
func New(cfg *config.Config, logger *slog.Logger) Mailer {
	if cfg.SMTPHost == "" {
		logger.Warn("SMTP_HOST not set, confirmation codes will be logged instead of emailed")
		return &logMailer{logger: logger}
	}
	return &smtpMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SMTPFrom,
		password: cfg.SMTPPassword,
	}
}

type smtpMailer struct {
	host     string
	port     int
	from     string
	password string
}

func (m *smtpMailer) SendConfirmationCode(to, username, code string) error {
	auth := smtp.PlainAuth("", m.from, m.password, m.host)

	subject := "YaMDb confirmation code"
	body := fmt.Sprintf("Hello %s!\n\nYour confirmation code is: %s\n", username, code)

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, message); err != nil {
		return fmt.Errorf("send confirmation mail: %w", err)
	}
	return nil
}

type logMailer struct {
	logger *slog.Logger
}

func (m *logMailer) SendConfirmationCode(to, username, code string) error {
	m.logger.Info("confirmation_code_issued",
		"email", to,
		"username", username,
		"code", code,
	)
	return nil
}
