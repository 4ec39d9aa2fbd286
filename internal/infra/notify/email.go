package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// EmailSender delivers alert mail over SMTP.
type EmailSender struct {
	addr     string
	host     string
	username string
	password string
	from     string
	logger   *zap.Logger
}

func NewEmailSender(host string, port int, username, password, from string, logger *zap.Logger) *EmailSender {
	return &EmailSender{
		addr:     fmt.Sprintf("%s:%d", host, port),
		host:     host,
		username: username,
		password: password,
		from:     from,
		logger:   logger,
	}
}

func (s *EmailSender) SendEmail(ctx context.Context, address, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", address)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	s.logger.Info("email send start", zap.String("to", address), zap.String("subject", subject))
	if err := smtp.SendMail(s.addr, auth, s.from, []string{address}, []byte(msg.String())); err != nil {
		s.logger.Warn("email send failed", zap.String("to", address), zap.Error(err))
		return err
	}
	return nil
}
