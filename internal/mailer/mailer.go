package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"github.com/bharatmovers/booking-service/internal/config"
)

// Mailer is the outbound mail collaborator. Delivery is best-effort: a
// failed Send never fails the operation that triggered it.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// New returns an SMTP mailer when a host is configured, otherwise a
// log-only mailer.
func New(cfg config.MailConfig, logger *zap.Logger) Mailer {
	if cfg.SMTPHost == "" {
		return &logMailer{logger: logger}
	}
	return &smtpMailer{cfg: cfg}
}

type smtpMailer struct {
	cfg config.MailConfig
}

func (m *smtpMailer) Send(_ context.Context, to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.cfg.From, to, subject, body)
	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort
	return smtp.SendMail(addr, nil, m.cfg.From, []string{to}, []byte(msg))
}

type logMailer struct {
	logger *zap.Logger
}

func (m *logMailer) Send(_ context.Context, to, subject, _ string) error {
	m.logger.Debug("mail delivery disabled; dropping message",
		zap.String("to", to),
		zap.String("subject", subject))
	return nil
}
