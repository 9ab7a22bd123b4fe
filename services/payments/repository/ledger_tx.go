package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/payrecon/internal/pkg/models"
)

// finalizeQuery flips a PENDING row to a terminal status. Top-level metadata
// keys of the patch replace stored ones; the extra maps are merged. A gateway
// transaction id is recorded when the row has none and no other row owns it.
const finalizeQuery = `
	UPDATE payment_transactions
	SET status = $2,
		paid_at = COALESCE($3, paid_at),
		provider_transaction_id = COALESCE(provider_transaction_id, (
			SELECT NULLIF($6::text, '')
			WHERE NOT EXISTS (
				SELECT 1 FROM payment_transactions WHERE provider_transaction_id = NULLIF($6::text, '')
			))),
		metadata = (COALESCE(metadata, '{}'::jsonb) || ($4::jsonb - 'extra'))
			|| jsonb_build_object('extra',
				COALESCE(metadata->'extra', '{}'::jsonb) || COALESCE($4::jsonb->'extra', '{}'::jsonb)),
		updated_at = $5
	WHERE id = $1 AND status = 'PENDING'`

func tryFinalize(ctx context.Context, db sqlx.ExecerContext, now time.Time, id uuid.UUID, status models.PaymentStatus, paidAt *time.Time, patch models.AuditMetadata) (bool, error) {
	if !status.IsTerminal() {
		return false, fmt.Errorf("cannot finalize transaction %s to %s", id, status)
	}
	providerTxnID := patch.Extra[models.MetadataKeyProviderTransactionID]
	result, err := db.ExecContext(ctx, finalizeQuery, id, status, paidAt, patch, now.UTC(), providerTxnID)
	if err != nil {
		return false, fmt.Errorf("failed to finalize transaction: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read finalize result: %w", err)
	}
	return rows == 1, nil
}

type ledgerTx struct {
	tx  *sqlx.Tx
	now func() time.Time
}

// TryFinalize is the compare-and-set on the transaction status
func (l *ledgerTx) TryFinalize(ctx context.Context, id uuid.UUID, status models.PaymentStatus, paidAt *time.Time, patch models.AuditMetadata) (bool, error) {
	return tryFinalize(ctx, l.tx, l.now(), id, status, paidAt, patch)
}

// GetSubscriptionForUpdate locks the user's subscription slot and returns the
// current subscription, nil if the user has none
func (l *ledgerTx) GetSubscriptionForUpdate(ctx context.Context, userID uuid.UUID) (*models.Subscription, error) {
	// serializes first-time subscribers, who have no row to lock yet
	if _, err := l.tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, userID.String()); err != nil {
		return nil, fmt.Errorf("failed to lock subscription: %w", err)
	}

	var sub models.Subscription
	err := l.tx.GetContext(ctx, &sub, `
		SELECT id, user_id, plan, status, current_period_start, current_period_end,
			cancel_at_period_end, created_at, updated_at
		FROM subscriptions
		WHERE user_id = $1
		FOR UPDATE`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	return &sub, nil
}

// UpsertSubscription writes the user's subscription. The stored period end
// never moves backward.
func (l *ledgerTx) UpsertSubscription(ctx context.Context, sub *models.Subscription) (*models.Subscription, error) {
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	now := l.now().UTC()

	var saved models.Subscription
	err := l.tx.GetContext(ctx, &saved, `
		INSERT INTO subscriptions (
			id, user_id, plan, status, current_period_start, current_period_end,
			cancel_at_period_end, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			plan = EXCLUDED.plan,
			status = EXCLUDED.status,
			current_period_start = EXCLUDED.current_period_start,
			current_period_end = GREATEST(subscriptions.current_period_end, EXCLUDED.current_period_end),
			cancel_at_period_end = EXCLUDED.cancel_at_period_end,
			updated_at = EXCLUDED.updated_at
		RETURNING id, user_id, plan, status, current_period_start, current_period_end,
			cancel_at_period_end, created_at, updated_at`,
		sub.ID, sub.UserID, sub.Plan, sub.Status, sub.CurrentPeriodStart, sub.CurrentPeriodEnd,
		sub.CancelAtPeriodEnd, now)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert subscription: %w", err)
	}
	return &saved, nil
}

// RecordTopup writes a credit ledger entry and bumps the balance. A second
// entry with the same reference is ignored and reported as false.
func (l *ledgerTx) RecordTopup(ctx context.Context, topup models.CreditTopup) (bool, error) {
	if topup.Amount <= 0 {
		return false, fmt.Errorf("invalid credit amount %d for %s", topup.Amount, topup.Reference)
	}
	now := l.now().UTC()

	result, err := l.tx.ExecContext(ctx, `
		INSERT INTO credit_ledger (id, user_id, kind, amount, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (reference) DO NOTHING`,
		uuid.New(), topup.UserID, topup.Kind, topup.Amount, topup.Reference, now)
	if err != nil {
		return false, fmt.Errorf("failed to record credit topup: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read topup result: %w", err)
	}
	if rows == 0 {
		return false, nil
	}

	_, err = l.tx.ExecContext(ctx, `
		INSERT INTO credit_balances (user_id, kind, balance, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, kind) DO UPDATE SET
			balance = credit_balances.balance + EXCLUDED.balance,
			updated_at = EXCLUDED.updated_at`,
		topup.UserID, topup.Kind, topup.Amount, now)
	if err != nil {
		return false, fmt.Errorf("failed to update credit balance: %w", err)
	}
	return true, nil
}

// CreateGift inserts a gift. At most one gift exists per source transaction;
// a second insert is ignored and reported as false.
func (l *ledgerTx) CreateGift(ctx context.Context, gift *models.GiftSubscription) (bool, error) {
	result, err := l.tx.NamedExecContext(ctx, `
		INSERT INTO gift_subscriptions (
			id, token, source_transaction_id, created_by_user_id, recipient_email, message,
			plan, billing_interval, amount, status, expires_at, created_at
		) VALUES (
			:id, :token, :source_transaction_id, :created_by_user_id, :recipient_email, :message,
			:plan, :billing_interval, :amount, :status, :expires_at, :created_at
		)
		ON CONFLICT (source_transaction_id) DO NOTHING`, gift)
	if err != nil {
		return false, fmt.Errorf("failed to create gift: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read gift result: %w", err)
	}
	return rows == 1, nil
}

// LinkGift sets the gift back-reference once
func (l *ledgerTx) LinkGift(ctx context.Context, transactionID, giftID uuid.UUID) (bool, error) {
	result, err := l.tx.ExecContext(ctx, `
		UPDATE payment_transactions
		SET gift_id = $2, updated_at = $3
		WHERE id = $1 AND gift_id IS NULL`,
		transactionID, giftID, l.now().UTC())
	if err != nil {
		return false, fmt.Errorf("failed to link gift: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read link result: %w", err)
	}
	return rows == 1, nil
}
