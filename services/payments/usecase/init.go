package usecase

import (
	"crypto/rand"
	"errors"
	"io"
	"time"

	"github.com/piresc/payrecon/internal/pkg/logger"
	"github.com/piresc/payrecon/internal/pkg/models"
	"github.com/piresc/payrecon/services/payments"
)

const (
	defaultGuardTTL    = 10 * time.Minute
	inFlightGuardTTL   = 30 * time.Second
	guardSettleTimeout = 2 * time.Second
	postCommitTimeout  = 10 * time.Second
)

// paymentUC implements the payments.PaymentUC interface
type paymentUC struct {
	cfg      *models.Config
	repo     payments.PaymentRepo
	guard    payments.DeliveryGuard
	gateway  payments.PaymentGW
	notifier payments.NotificationGW
	events   payments.EventGW
	logger   *logger.ZapLogger

	now    func() time.Time
	random io.Reader
	spawn  func(func())
}

// NewPaymentUC creates the payment use case. guard and events are optional.
func NewPaymentUC(
	cfg *models.Config,
	repo payments.PaymentRepo,
	guard payments.DeliveryGuard,
	gateway payments.PaymentGW,
	notifier payments.NotificationGW,
	events payments.EventGW,
	zapLogger *logger.ZapLogger,
) (payments.PaymentUC, error) {
	if cfg == nil || repo == nil || gateway == nil || notifier == nil {
		return nil, errors.New("payment usecase requires config, repository, gateway and notifier")
	}
	if zapLogger == nil {
		zapLogger = logger.GetGlobalLogger()
	}
	return &paymentUC{
		cfg:      cfg,
		repo:     repo,
		guard:    guard,
		gateway:  gateway,
		notifier: notifier,
		events:   events,
		logger:   zapLogger,
		now:      time.Now,
		random:   rand.Reader,
		spawn:    func(fn func()) { go fn() },
	}, nil
}

func (uc *paymentUC) guardTTL() time.Duration {
	if uc.cfg.Webhook.GuardTTL > 0 {
		return uc.cfg.Webhook.GuardTTL
	}
	return defaultGuardTTL
}
