package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"
)

// AuditMetadataVersion is the current layout of AuditMetadata
const AuditMetadataVersion = 1

// Bounds on the free-form part of the audit document
const (
	MaxMetadataExtraKeys   = 16
	MaxMetadataKeyLength   = 64
	MaxMetadataValueLength = 256
)

// MetadataKeyProviderTransactionID is the extra key holding the gateway
// transaction id seen by the confirmation path
const MetadataKeyProviderTransactionID = "provider_transaction_id"

// ResolutionSource names the confirmation path that finalized a transaction
type ResolutionSource string

const (
	ResolvedByWebhook ResolutionSource = "webhook"
	ResolvedByPoll    ResolutionSource = "poll"
)

// AuditMetadata is the audit document stored next to a payment transaction.
// Known facts get fixed fields; anything else goes into the bounded Extra map.
type AuditMetadata struct {
	Version        int               `json:"version"`
	ResolvedBy     ResolutionSource  `json:"resolved_by,omitempty"`
	ProviderStatus string            `json:"provider_status,omitempty"`
	ProviderPaidAt *time.Time        `json:"provider_paid_at,omitempty"`
	FailureReason  string            `json:"failure_reason,omitempty"`
	CheckoutURL    string            `json:"checkout_url,omitempty"`
	Extra          map[string]string `json:"extra,omitempty"`
}

// NewAuditMetadata returns an empty document of the current version
func NewAuditMetadata() AuditMetadata {
	return AuditMetadata{Version: AuditMetadataVersion}
}

// SetExtra stores a key in the extension map. Values are truncated to the
// length bound; keys beyond the key count or length bound are rejected.
func (m *AuditMetadata) SetExtra(key, value string) bool {
	if key == "" || len(key) > MaxMetadataKeyLength {
		return false
	}
	if m.Extra == nil {
		m.Extra = make(map[string]string)
	}
	if _, exists := m.Extra[key]; !exists && len(m.Extra) >= MaxMetadataExtraKeys {
		return false
	}
	m.Extra[key] = truncateUTF8(value, MaxMetadataValueLength)
	return true
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// Value implements driver.Valuer
func (m AuditMetadata) Value() (driver.Value, error) {
	if m.Version == 0 {
		m.Version = AuditMetadataVersion
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal audit metadata: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (m *AuditMetadata) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*m = NewAuditMetadata()
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported audit metadata type %T", src)
	}
	if len(raw) == 0 {
		*m = NewAuditMetadata()
		return nil
	}
	if err := json.Unmarshal(raw, m); err != nil {
		return fmt.Errorf("failed to unmarshal audit metadata: %w", err)
	}
	return nil
}
