package valueobjects

import "fmt"

// Limit is a plan quota ceiling: either bounded to a count or unbounded.
// Modeling it as a tagged value instead of a magic number keeps comparisons
// against usage counters from silently overflowing.
type Limit struct {
	unbounded bool
	value     uint
}

// NewBoundedLimit creates a limit capped at n.
func NewBoundedLimit(n uint) Limit {
	return Limit{value: n}
}

// UnboundedLimit creates a limit that always allows.
func UnboundedLimit() Limit {
	return Limit{unbounded: true}
}

// LimitFromStored converts the persisted representation, where zero means
// unlimited, into a Limit.
func LimitFromStored(n uint) Limit {
	if n == 0 {
		return UnboundedLimit()
	}
	return NewBoundedLimit(n)
}

// Stored returns the persisted representation (zero means unlimited).
func (l Limit) Stored() uint {
	if l.unbounded {
		return 0
	}
	return l.value
}

// IsUnbounded reports whether the limit always allows.
func (l Limit) IsUnbounded() bool {
	return l.unbounded
}

// Value returns the cap for bounded limits. Meaningless when unbounded.
func (l Limit) Value() uint {
	return l.value
}

// Allows reports whether one more resource may be created given the current
// count.
func (l Limit) Allows(current uint) bool {
	if l.unbounded {
		return true
	}
	return current < l.value
}

func (l Limit) String() string {
	if l.unbounded {
		return "unlimited"
	}
	return fmt.Sprintf("%d", l.value)
}
