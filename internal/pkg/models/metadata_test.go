package models

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditMetadata_SetExtra(t *testing.T) {
	t.Run("bounds", func(t *testing.T) {
		m := NewAuditMetadata()

		assert.False(t, m.SetExtra("", "v"))
		assert.False(t, m.SetExtra(strings.Repeat("k", MaxMetadataKeyLength+1), "v"))

		assert.True(t, m.SetExtra("long", strings.Repeat("v", MaxMetadataValueLength+10)))
		assert.Len(t, m.Extra["long"], MaxMetadataValueLength)
	})

	t.Run("multi-byte values are cut on a rune boundary", func(t *testing.T) {
		m := NewAuditMetadata()
		value := "a" + strings.Repeat("é", MaxMetadataValueLength)

		require.True(t, m.SetExtra("reason", value))

		got := m.Extra["reason"]
		assert.True(t, utf8.ValidString(got))
		assert.Len(t, got, MaxMetadataValueLength-1)
		assert.True(t, strings.HasPrefix(value, got))
	})

	t.Run("key count", func(t *testing.T) {
		m := NewAuditMetadata()
		for i := 0; i < MaxMetadataExtraKeys; i++ {
			require.True(t, m.SetExtra(fmt.Sprintf("k%d", i), "v"))
		}

		assert.False(t, m.SetExtra("one_more", "v"))
		assert.True(t, m.SetExtra("k0", "updated"))
		assert.Equal(t, "updated", m.Extra["k0"])
	})
}

func TestAuditMetadata_ValueAndScan(t *testing.T) {
	m := AuditMetadata{ResolvedBy: ResolvedByPoll, ProviderStatus: "PAID"}
	m.SetExtra("source", "verify")

	v, err := m.Value()
	require.NoError(t, err)
	assert.Contains(t, v.(string), `"version":1`)

	var scanned AuditMetadata
	require.NoError(t, scanned.Scan([]byte(v.(string))))
	assert.Equal(t, ResolvedByPoll, scanned.ResolvedBy)
	assert.Equal(t, "verify", scanned.Extra["source"])

	var empty AuditMetadata
	require.NoError(t, empty.Scan(nil))
	assert.Equal(t, AuditMetadataVersion, empty.Version)

	assert.Error(t, empty.Scan(42))
	assert.Error(t, empty.Scan("{"))
}
