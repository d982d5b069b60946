package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/Priiiyaa/Gratify/internal/config"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// EmailSender delivers notification mail. Sending is best-effort from the
// caller's point of view; delivery failures never fail the request.
type EmailSender interface {
	Send(ctx context.Context, to []string, subject, bodyHTML, bodyText string) error
}

type smtpSender struct {
	cfg config.SMTPConfig
	log *zap.Logger
	d   *gomail.Dialer
}

func NewSMTPSender(cfg config.SMTPConfig, log *zap.Logger) (EmailSender, error) {
	if cfg.Host == "" || cfg.Port == 0 || cfg.SenderEmail == "" {
		return nil, fmt.Errorf("SMTP host, port, and sender email must be configured")
	}

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	switch strings.ToLower(cfg.Encryption) {
	case "ssl":
		dialer.SSL = true
		dialer.TLSConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
	case "tls", "starttls":
		dialer.TLSConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
	}

	return &smtpSender{cfg: cfg, log: log, d: dialer}, nil
}

func (s *smtpSender) Send(ctx context.Context, to []string, subject, bodyHTML, bodyText string) error {
	if len(to) == 0 {
		return fmt.Errorf("no recipients provided for email")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.SenderEmail)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)

	switch {
	case bodyHTML != "":
		m.SetBody("text/html", bodyHTML)
		if bodyText != "" {
			m.AddAlternative("text/plain", bodyText)
		}
	case bodyText != "":
		m.SetBody("text/plain", bodyText)
	default:
		return fmt.Errorf("email body (HTML or Text) must be provided")
	}

	done := make(chan error, 1)
	go func() { done <- s.d.DialAndSend(m) }()

	select {
	case err := <-done:
		if err != nil {
			s.log.Error("Failed to send email", zap.Strings("to", to), zap.String("subject", subject), zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
