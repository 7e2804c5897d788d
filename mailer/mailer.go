package mailer

import (
	"context"
	"fmt"

	"gym-management-api/config"
	"gym-management-api/logger"

	"gopkg.in/gomail.v2"
)

// Mailer delivers the account verification code.
type Mailer interface {
	SendVerificationCode(ctx context.Context, to, name, code string) error
}

// New returns an SMTP mailer when a host is configured and a log-only one otherwise.
func New(cfg config.SMTPConfig) Mailer {
	if cfg.Host == "" {
		return LogMailer{}
	}
	return &SMTPMailer{cfg: cfg}
}

type SMTPMailer struct {
	cfg config.SMTPConfig
}

func (m *SMTPMailer) SendVerificationCode(ctx context.Context, to, name, code string) error {
	msg := verificationMessage(m.cfg.From, to, name, code)
	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send verification mail to %s: %w", to, err)
	}
	logger.FromContext(ctx).Info("verification mail sent", "to", to)
	return nil
}

func verificationMessage(from, to, name, code string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Verify your gym account")
	m.SetBody("text/plain", fmt.Sprintf("Hello %s,\n\nYour verification code is %s.\n", name, code))
	return m
}

// LogMailer writes the delivery to the log instead of sending it.
type LogMailer struct{}

func (LogMailer) SendVerificationCode(ctx context.Context, to, _, _ string) error {
	logger.FromContext(ctx).Info("verification mail not sent, SMTP is not configured", "to", to)
	return nil
}
