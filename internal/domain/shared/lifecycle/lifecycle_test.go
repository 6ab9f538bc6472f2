package lifecycle

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, s := range []string{"order", "proposal", "plan", "subscription", "payment", "audit_log"} {
		t.Run(s, func(t *testing.T) {
			k, err := ParseKind(s)
			require.NoError(t, err)
			assert.Equal(t, Kind(s), k)
		})
	}

	for _, s := range []string{"", "Order", "orders", "user"} {
		t.Run("invalid "+s, func(t *testing.T) {
			_, err := ParseKind(s)
			assert.Error(t, err)
		})
	}
}

func TestIsProtectedReference(t *testing.T) {
	err := &ProtectedReferenceError{Kind: KindSubscription, ID: 3, Relation: "payment"}
	assert.True(t, IsProtectedReference(err))
	assert.True(t, IsProtectedReference(fmt.Errorf("purge failed: %w", err)))
	assert.False(t, IsProtectedReference(errors.New("other")))
	assert.False(t, IsProtectedReference(nil))

	assert.Contains(t, err.Error(), "subscription 3")
	assert.Contains(t, err.Error(), "payment")
}
