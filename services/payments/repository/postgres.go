package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/payrecon/internal/pkg/logger"
	"github.com/piresc/payrecon/internal/pkg/models"
	"github.com/piresc/payrecon/services/payments"
)

const transactionColumns = `
	id, user_id, provider, provider_bill_id, provider_transaction_id,
	purpose, plan, billing_interval, credits, recipient_email, message, payer_email,
	amount, currency, status, gift_id, metadata, created_at, updated_at, paid_at`

// PaymentRepo is the Postgres transaction ledger
type PaymentRepo struct {
	cfg *models.Config
	db  *sqlx.DB
	now func() time.Time
}

// NewPaymentRepository creates a ledger backed by db
func NewPaymentRepository(cfg *models.Config, db *sqlx.DB) *PaymentRepo {
	return &PaymentRepo{
		cfg: cfg,
		db:  db,
		now: time.Now,
	}
}

// CreatePending inserts txn as a PENDING transaction
func (r *PaymentRepo) CreatePending(ctx context.Context, txn *models.PaymentTransaction) error {
	if txn.ProviderBillID == nil && txn.ProviderTransactionID == nil {
		return fmt.Errorf("transaction %s has no provider reference", txn.ID)
	}
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	if txn.Metadata.Version == 0 {
		txn.Metadata.Version = models.AuditMetadataVersion
	}
	now := r.now().UTC()
	txn.Status = models.PaymentPending
	txn.CreatedAt = now
	txn.UpdatedAt = now

	query := `
		INSERT INTO payment_transactions (
			id, user_id, provider, provider_bill_id, provider_transaction_id,
			purpose, plan, billing_interval, credits, recipient_email, message, payer_email,
			amount, currency, status, metadata, created_at, updated_at
		) VALUES (
			:id, :user_id, :provider, :provider_bill_id, :provider_transaction_id,
			:purpose, :plan, :billing_interval, :credits, :recipient_email, :message, :payer_email,
			:amount, :currency, :status, :metadata, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, txn); err != nil {
		return fmt.Errorf("failed to create pending transaction: %w", err)
	}
	return nil
}

// GetByID loads one transaction
func (r *PaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.PaymentTransaction, error) {
	return r.getOne(ctx, `SELECT `+transactionColumns+` FROM payment_transactions WHERE id = $1`, id)
}

// FindByProviderRef resolves a gateway reference, bill id first
func (r *PaymentRepo) FindByProviderRef(ctx context.Context, billID, transactionID string) (*models.PaymentTransaction, error) {
	if billID != "" {
		txn, err := r.getOne(ctx,
			`SELECT `+transactionColumns+` FROM payment_transactions WHERE provider_bill_id = $1`, billID)
		if err == nil || !errors.Is(err, models.ErrTransactionNotFound) {
			return txn, err
		}
	}
	if transactionID != "" {
		return r.getOne(ctx,
			`SELECT `+transactionColumns+` FROM payment_transactions WHERE provider_transaction_id = $1`, transactionID)
	}
	return nil, models.ErrTransactionNotFound
}

// FindLatestPending returns the most recent PENDING transaction of userID
func (r *PaymentRepo) FindLatestPending(ctx context.Context, userID uuid.UUID) (*models.PaymentTransaction, error) {
	txn, err := r.getOne(ctx, `
		SELECT `+transactionColumns+`
		FROM payment_transactions
		WHERE user_id = $1 AND status = 'PENDING'
		ORDER BY created_at DESC
		LIMIT 1`, userID)
	if errors.Is(err, models.ErrTransactionNotFound) {
		return nil, models.ErrNoPendingPayment
	}
	return txn, err
}

// AttachProviderTransactionID records the gateway transaction id on a row
// that does not have one yet. It reports false when the row already carries
// an id or another row owns this one.
func (r *PaymentRepo) AttachProviderTransactionID(ctx context.Context, id uuid.UUID, providerTransactionID string) (bool, error) {
	if providerTransactionID == "" {
		return false, nil
	}
	result, err := r.db.ExecContext(ctx, `
		UPDATE payment_transactions
		SET provider_transaction_id = $2, updated_at = $3
		WHERE id = $1
			AND provider_transaction_id IS NULL
			AND NOT EXISTS (
				SELECT 1 FROM payment_transactions WHERE provider_transaction_id = $2
			)`, id, providerTransactionID, r.now().UTC())
	if err != nil {
		return false, fmt.Errorf("failed to attach provider transaction id: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read attach result: %w", err)
	}
	return rows == 1, nil
}

// TryFinalize runs the finalization outside of a dispatch transaction
func (r *PaymentRepo) TryFinalize(ctx context.Context, id uuid.UUID, status models.PaymentStatus, paidAt *time.Time, patch models.AuditMetadata) (bool, error) {
	return tryFinalize(ctx, r.db, r.now(), id, status, paidAt, patch)
}

// WithinTx runs fn in one SQL transaction, committing only if fn succeeds
func (r *PaymentRepo) WithinTx(ctx context.Context, fn func(tx payments.LedgerTx) error) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logger.Error("Failed to roll back ledger transaction", logger.Err(rbErr))
			}
		}
	}()

	if err = fn(&ledgerTx{tx: tx, now: r.now}); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *PaymentRepo) getOne(ctx context.Context, query string, args ...interface{}) (*models.PaymentTransaction, error) {
	var txn models.PaymentTransaction
	if err := r.db.GetContext(ctx, &txn, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}
	return &txn, nil
}
