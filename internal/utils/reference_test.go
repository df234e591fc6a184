package utils_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/nvcfn/swiftgate/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMessageReference_Format(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

	ref, err := utils.GenerateMessageReference("SBLC", now)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^SBLC20250115[A-Z0-9]{6}$`), ref)

	ref, err = utils.GenerateMessageReference("TRF", now)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^TRF20250115[A-Z0-9]{6}$`), ref)
}

func TestGenerateMessageReference_FitsStorageBound(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

	// SBLC is the longest prefix in use: 4 + 8 + 6 = 18 characters. Every
	// generated reference must fit the transaction-log column.
	for _, prefix := range []string{"SBLC", "TRF", "FM"} {
		ref, err := utils.GenerateMessageReference(prefix, now)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(ref), utils.MaxReferenceLength,
			"reference %s overflows the storage bound", ref)
	}
}

func TestGenerateMessageReference_Uniqueness(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref, err := utils.GenerateMessageReference("FM", now)
		require.NoError(t, err)
		assert.False(t, seen[ref], "generated duplicate reference %s", ref)
		seen[ref] = true
	}
}
