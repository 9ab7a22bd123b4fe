package models

import "errors"

var (
	ErrTransactionNotFound = errors.New("payment transaction not found")
	ErrNoPendingPayment    = errors.New("no pending payment transaction")
	ErrAlreadyFinalized    = errors.New("payment transaction already finalized")
	ErrUnknownPurpose      = errors.New("unknown payment purpose")
	ErrInvalidEntitlement  = errors.New("invalid entitlement")
	ErrInvalidCheckout     = errors.New("invalid checkout request")
	ErrGatewayUnavailable  = errors.New("payment gateway unavailable")
	ErrGatewayRejected     = errors.New("payment gateway rejected request")
	ErrGiftAlreadyIssued   = errors.New("gift already issued for transaction")
)
