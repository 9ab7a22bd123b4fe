package usecase

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/piresc/payrecon/internal/pkg/logger"
	"github.com/piresc/payrecon/internal/pkg/models"
	"github.com/piresc/payrecon/services/payments"
	"github.com/piresc/payrecon/services/payments/mocks"
	"github.com/shopspring/decimal"
)

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func testConfig() *models.Config {
	return &models.Config{
		Gateway: models.GatewayConfig{
			Provider:    "billplz",
			CallbackURL: "https://api.example.com/api/v1/payments/webhook",
			RedirectURL: "https://app.example.com/billing",
		},
		Webhook: models.WebhookConfig{GuardTTL: time.Minute},
		Pricing: models.PricingConfig{
			Currency:               "MYR",
			AICreditUnitPrice:      decimal.RequireFromString("0.50"),
			RecruiterCVCreditPrice: decimal.RequireFromString("2.00"),
			PlanMonthlyPrices: map[models.Plan]decimal.Decimal{
				models.PlanStarter: decimal.RequireFromString("19.00"),
				models.PlanPro:     decimal.RequireFromString("39.00"),
				models.PlanGrowth:  decimal.RequireFromString("99.00"),
			},
			YearlyDiscountMonths:   2,
			GrowthBundleCredits:    20,
			GrowthBundleCreditKind: models.CreditKindRecruiterCV,
		},
	}
}

type testDeps struct {
	repo     *mocks.MockPaymentRepo
	tx       *mocks.MockLedgerTx
	guard    *mocks.MockDeliveryGuard
	gateway  *mocks.MockPaymentGW
	notifier *mocks.MockNotificationGW
	events   *mocks.MockEventGW
}

// newTestUC wires a use case whose post-commit work runs inline
func newTestUC(t *testing.T) (*paymentUC, *testDeps) {
	ctrl := gomock.NewController(t)
	d := &testDeps{
		repo:     mocks.NewMockPaymentRepo(ctrl),
		tx:       mocks.NewMockLedgerTx(ctrl),
		guard:    mocks.NewMockDeliveryGuard(ctrl),
		gateway:  mocks.NewMockPaymentGW(ctrl),
		notifier: mocks.NewMockNotificationGW(ctrl),
		events:   mocks.NewMockEventGW(ctrl),
	}
	uc, err := NewPaymentUC(testConfig(), d.repo, d.guard, d.gateway, d.notifier, d.events, logger.NewNopLogger())
	if err != nil {
		t.Fatal(err)
	}
	impl := uc.(*paymentUC)
	impl.now = func() time.Time { return fixedNow }
	impl.random = bytes.NewReader(bytes.Repeat([]byte{0xab}, 1024))
	impl.spawn = func(fn func()) { fn() }
	return impl, d
}

// expectTx makes WithinTx run its callback against the mocked LedgerTx
func (d *testDeps) expectTx() *gomock.Call {
	return d.repo.EXPECT().WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(payments.LedgerTx) error) error {
			return fn(d.tx)
		})
}

func strPtr(s string) *string { return &s }

func pendingTxn(purpose models.Purpose) *models.PaymentTransaction {
	txn := &models.PaymentTransaction{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		Provider:       "billplz",
		ProviderBillID: strPtr("bill_1"),
		Purpose:        purpose,
		Amount:         decimal.RequireFromString("19.00"),
		Currency:       "MYR",
		Status:         models.PaymentPending,
		PayerEmail:     strPtr("payer@example.com"),
		Metadata:       models.NewAuditMetadata(),
		CreatedAt:      fixedNow.Add(-time.Hour),
	}
	switch purpose {
	case models.PurposeSubscription, models.PurposeGift:
		plan, interval := models.PlanStarter, models.IntervalMonthly
		txn.Plan, txn.Interval = &plan, &interval
	case models.PurposeAICredits, models.PurposeRecruiterCVCredits:
		credits := 38
		txn.Credits = &credits
	}
	return txn
}

// memLedger is an in-memory PaymentRepo whose transactions are serialized,
// standing in for row locks and unique constraints
type memLedger struct {
	mu sync.Mutex

	txns          map[uuid.UUID]*models.PaymentTransaction
	subscriptions map[uuid.UUID]*models.Subscription
	references    map[string]bool
	balances      map[uuid.UUID]int
	gifts         map[uuid.UUID]*models.GiftSubscription
}

func newMemLedger(txns ...*models.PaymentTransaction) *memLedger {
	l := &memLedger{
		txns:          make(map[uuid.UUID]*models.PaymentTransaction),
		subscriptions: make(map[uuid.UUID]*models.Subscription),
		references:    make(map[string]bool),
		balances:      make(map[uuid.UUID]int),
		gifts:         make(map[uuid.UUID]*models.GiftSubscription),
	}
	for _, txn := range txns {
		c := *txn
		l.txns[txn.ID] = &c
	}
	return l
}

func (l *memLedger) get(id uuid.UUID) *models.PaymentTransaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	c := *l.txns[id]
	return &c
}

func (l *memLedger) CreatePending(_ context.Context, txn *models.PaymentTransaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	c := *txn
	c.Status = models.PaymentPending
	l.txns[txn.ID] = &c
	return nil
}

func (l *memLedger) GetByID(_ context.Context, id uuid.UUID) (*models.PaymentTransaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	txn, ok := l.txns[id]
	if !ok {
		return nil, models.ErrTransactionNotFound
	}
	c := *txn
	return &c, nil
}

func (l *memLedger) FindByProviderRef(_ context.Context, billID, transactionID string) (*models.PaymentTransaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, txn := range l.txns {
		if (billID != "" && txn.BillID() == billID) || (transactionID != "" && txn.TransactionRef() == transactionID) {
			c := *txn
			return &c, nil
		}
	}
	return nil, models.ErrTransactionNotFound
}

func (l *memLedger) FindLatestPending(_ context.Context, userID uuid.UUID) (*models.PaymentTransaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var latest *models.PaymentTransaction
	for _, txn := range l.txns {
		if txn.UserID != userID || txn.Status != models.PaymentPending {
			continue
		}
		if latest == nil || txn.CreatedAt.After(latest.CreatedAt) {
			latest = txn
		}
	}
	if latest == nil {
		return nil, models.ErrNoPendingPayment
	}
	c := *latest
	return &c, nil
}

func (l *memLedger) AttachProviderTransactionID(_ context.Context, id uuid.UUID, ref string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.attach(id, ref), nil
}

func (l *memLedger) attach(id uuid.UUID, ref string) bool {
	txn, ok := l.txns[id]
	if !ok || ref == "" || txn.ProviderTransactionID != nil {
		return false
	}
	for _, other := range l.txns {
		if other.TransactionRef() == ref {
			return false
		}
	}
	txn.ProviderTransactionID = &ref
	return true
}

func (l *memLedger) TryFinalize(ctx context.Context, id uuid.UUID, status models.PaymentStatus, paidAt *time.Time, patch models.AuditMetadata) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.finalize(id, status, paidAt, patch), nil
}

func (l *memLedger) finalize(id uuid.UUID, status models.PaymentStatus, paidAt *time.Time, patch models.AuditMetadata) bool {
	txn, ok := l.txns[id]
	if !ok || txn.Status != models.PaymentPending {
		return false
	}
	l.attach(id, patch.Extra[models.MetadataKeyProviderTransactionID])
	txn.Status = status
	txn.PaidAt = paidAt
	txn.Metadata = patch
	return true
}

// WithinTx holds the ledger lock for the whole callback and restores the
// previous state when it fails
func (l *memLedger) WithinTx(_ context.Context, fn func(tx payments.LedgerTx) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	snapshot := l.clone()
	if err := fn(memTx{l}); err != nil {
		l.txns, l.subscriptions, l.references, l.balances, l.gifts =
			snapshot.txns, snapshot.subscriptions, snapshot.references, snapshot.balances, snapshot.gifts
		return err
	}
	return nil
}

func (l *memLedger) clone() *memLedger {
	c := newMemLedger()
	for k, v := range l.txns {
		t := *v
		c.txns[k] = &t
	}
	for k, v := range l.subscriptions {
		s := *v
		c.subscriptions[k] = &s
	}
	for k, v := range l.references {
		c.references[k] = v
	}
	for k, v := range l.balances {
		c.balances[k] = v
	}
	for k, v := range l.gifts {
		g := *v
		c.gifts[k] = &g
	}
	return c
}

func (l *memLedger) balance(userID uuid.UUID) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[userID]
}

func (l *memLedger) giftCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.gifts)
}

func (l *memLedger) subscription(userID uuid.UUID) *models.Subscription {
	l.mu.Lock()
	defer l.mu.Unlock()
	sub, ok := l.subscriptions[userID]
	if !ok {
		return nil
	}
	c := *sub
	return &c
}

// memTx runs with memLedger.mu already held
type memTx struct{ l *memLedger }

func (t memTx) TryFinalize(_ context.Context, id uuid.UUID, status models.PaymentStatus, paidAt *time.Time, patch models.AuditMetadata) (bool, error) {
	return t.l.finalize(id, status, paidAt, patch), nil
}

func (t memTx) GetSubscriptionForUpdate(_ context.Context, userID uuid.UUID) (*models.Subscription, error) {
	sub, ok := t.l.subscriptions[userID]
	if !ok {
		return nil, nil
	}
	c := *sub
	return &c, nil
}

func (t memTx) UpsertSubscription(_ context.Context, sub *models.Subscription) (*models.Subscription, error) {
	c := *sub
	if existing, ok := t.l.subscriptions[sub.UserID]; ok {
		c.ID = existing.ID
		if existing.CurrentPeriodEnd.After(c.CurrentPeriodEnd) {
			c.CurrentPeriodEnd = existing.CurrentPeriodEnd
		}
	} else if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	t.l.subscriptions[sub.UserID] = &c
	out := c
	return &out, nil
}

func (t memTx) RecordTopup(_ context.Context, topup models.CreditTopup) (bool, error) {
	if t.l.references[topup.Reference] {
		return false, nil
	}
	t.l.references[topup.Reference] = true
	t.l.balances[topup.UserID] += topup.Amount
	return true, nil
}

func (t memTx) CreateGift(_ context.Context, gift *models.GiftSubscription) (bool, error) {
	for _, g := range t.l.gifts {
		if g.SourceTransactionID == gift.SourceTransactionID {
			return false, nil
		}
	}
	c := *gift
	t.l.gifts[gift.ID] = &c
	return true, nil
}

func (t memTx) LinkGift(_ context.Context, transactionID, giftID uuid.UUID) (bool, error) {
	txn, ok := t.l.txns[transactionID]
	if !ok || txn.GiftID != nil {
		return false, nil
	}
	txn.GiftID = &giftID
	return true, nil
}
