package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimit_Allows(t *testing.T) {
	bounded := NewBoundedLimit(3)
	assert.True(t, bounded.Allows(0))
	assert.True(t, bounded.Allows(2))
	assert.False(t, bounded.Allows(3))
	assert.False(t, bounded.Allows(10))

	unbounded := UnboundedLimit()
	assert.True(t, unbounded.Allows(0))
	assert.True(t, unbounded.Allows(1_000_000))
}

func TestLimit_StoredRoundTrip(t *testing.T) {
	// zero in storage means unlimited
	assert.True(t, LimitFromStored(0).IsUnbounded())
	assert.Equal(t, uint(0), UnboundedLimit().Stored())

	l := LimitFromStored(5)
	assert.False(t, l.IsUnbounded())
	assert.Equal(t, uint(5), l.Value())
	assert.Equal(t, uint(5), l.Stored())
}

func TestLimit_String(t *testing.T) {
	assert.Equal(t, "unlimited", UnboundedLimit().String())
	assert.Equal(t, "42", NewBoundedLimit(42).String())
}
