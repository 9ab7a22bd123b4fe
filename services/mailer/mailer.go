package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/piresc/payrecon/internal/pkg/logger"
	"github.com/piresc/payrecon/internal/pkg/models"
	nrpkg "github.com/piresc/payrecon/internal/pkg/newrelic"
	nsqpkg "github.com/piresc/payrecon/internal/pkg/nsq"
	"github.com/piresc/payrecon/internal/utils"
	"gopkg.in/gomail.v2"
)

// Sender delivers composed messages, *gomail.Dialer satisfies it
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer renders notification jobs and sends them over SMTP
type Mailer struct {
	sender   Sender
	from     string
	claimURL string
	logger   *logger.ZapLogger
}

// NewMailer creates a mailer for the given SMTP settings
func NewMailer(sender Sender, cfg models.SMTPConfig, l *logger.ZapLogger) (*Mailer, error) {
	if sender == nil {
		return nil, errors.New("sender is required")
	}
	if cfg.FromEmail == "" {
		return nil, errors.New("from address is required")
	}
	if l == nil {
		l = logger.GetGlobalLogger()
	}
	return &Mailer{
		sender:   sender,
		from:     cfg.FromEmail,
		claimURL: cfg.GiftClaimURL,
		logger:   l,
	}, nil
}

// NewDialer builds the SMTP dialer from config
func NewDialer(cfg models.SMTPConfig) *gomail.Dialer {
	return gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
}

// Handle processes one notification job. Malformed or unaddressed jobs are
// dropped; a send error is returned so NSQ requeues the message.
func (m *Mailer) Handle(ctx context.Context, body []byte) error {
	var job models.NotificationJob
	if err := nsqpkg.UnmarshalMessage(body, &job); err != nil {
		m.logger.Warn("Dropping malformed notification job", logger.Err(err))
		return nil
	}
	if job.To == "" {
		m.logger.Info("Notification job has no recipient, skipping",
			logger.String("kind", string(job.Kind)),
			logger.UUID("transaction_id", job.TransactionID))
		return nil
	}

	subject, html, err := render(job.Kind, m.templateData(job))
	if err != nil {
		m.logger.Warn("Dropping notification job",
			logger.UUID("transaction_id", job.TransactionID),
			logger.Err(err))
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", job.To)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	err = nrpkg.WithSegment(ctx, "smtp.send", func() error {
		return m.sender.DialAndSend(msg)
	})
	if err != nil {
		return fmt.Errorf("failed to send %s email: %w", job.Kind, err)
	}

	m.logger.Info("Notification email sent",
		logger.String("kind", string(job.Kind)),
		logger.String("to", utils.MaskEmail(job.To)),
		logger.UUID("transaction_id", job.TransactionID))
	return nil
}

func (m *Mailer) templateData(job models.NotificationJob) templateData {
	data := templateData{
		Job:    job,
		Amount: job.Amount.StringFixed(2),
	}
	if job.GiftToken != "" && m.claimURL != "" {
		data.ClaimURL = m.claimURL + "?token=" + url.QueryEscape(job.GiftToken)
	}
	if job.GiftExpiresAt != nil {
		data.ExpiresOn = job.GiftExpiresAt.UTC().Format("2 January 2006")
	}
	return data
}
