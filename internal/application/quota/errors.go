package quota

import (
	"errors"
	"fmt"
)

// ResourceKind names a metered resource.
type ResourceKind string

const (
	ResourceOrder    ResourceKind = "ORDER"
	ResourceProposal ResourceKind = "PROPOSAL"
)

// ExceededError is the terminal, user-visible quota denial. It is never
// retried; the caller either upgrades the plan or waits for the next period.
type ExceededError struct {
	Kind    ResourceKind
	Current uint
	Limit   uint
}

func (e *ExceededError) Error() string {
	return fmt.Sprintf("quota exceeded for %s: %d of %d used", e.Kind, e.Current, e.Limit)
}

// NewExceededError builds the denial carrying the observed usage and ceiling.
func NewExceededError(kind ResourceKind, current, limit uint) *ExceededError {
	return &ExceededError{Kind: kind, Current: current, Limit: limit}
}

// IsExceeded reports whether err is a quota denial.
func IsExceeded(err error) bool {
	var exceeded *ExceededError
	return errors.As(err, &exceeded)
}
