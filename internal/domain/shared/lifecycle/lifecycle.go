// Package lifecycle defines the logical-delete contract shared by every
// entity kind the engine manages. Storage backends implement Store; the
// relation policy between kinds lives with the implementation.
package lifecycle

import (
	"context"
	stderrors "errors"
	"fmt"
)

// Kind identifies an entity class registered with the store.
type Kind string

const (
	KindOrder        Kind = "order"
	KindProposal     Kind = "proposal"
	KindPlan         Kind = "plan"
	KindSubscription Kind = "subscription"
	KindPayment      Kind = "payment"
	KindAuditLog     Kind = "audit_log"
)

var knownKinds = map[Kind]bool{
	KindOrder:        true,
	KindProposal:     true,
	KindPlan:         true,
	KindSubscription: true,
	KindPayment:      true,
	KindAuditLog:     true,
}

// ParseKind validates an externally supplied kind string.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !knownKinds[k] {
		return "", fmt.Errorf("unknown entity kind: %s", s)
	}
	return k, nil
}

var (
	ErrRecordNotFound = stderrors.New("record not found")
	// ErrAlreadyDeleted rejects a logical delete of a record whose
	// deletion timestamp is already set.
	ErrAlreadyDeleted = stderrors.New("record is already deleted")
	// ErrNotDeleted rejects a restore of a record that is still active.
	ErrNotDeleted = stderrors.New("record is not deleted")
	// ErrImmutableRecord rejects physical deletion of payment and
	// audit-log records.
	ErrImmutableRecord = stderrors.New("record kind is immutable and cannot be hard-deleted")
)

// ProtectedReferenceError aborts a physical delete that would orphan a
// protected dependent.
type ProtectedReferenceError struct {
	Kind     Kind
	ID       uint
	Relation string
}

func (e *ProtectedReferenceError) Error() string {
	return fmt.Sprintf("cannot hard-delete %s %d: protected %s records reference it", e.Kind, e.ID, e.Relation)
}

// IsProtectedReference reports whether err is a protected-reference abort.
func IsProtectedReference(err error) bool {
	var protected *ProtectedReferenceError
	return stderrors.As(err, &protected)
}

// Store manages the logical-delete lifecycle of registered entity kinds.
// SoftDelete and Restore touch only the target row; HardDelete applies the
// declared relation policy, all-or-nothing inside one transaction.
type Store interface {
	SoftDelete(ctx context.Context, kind Kind, id uint) error
	Restore(ctx context.Context, kind Kind, id uint) error
	HardDelete(ctx context.Context, kind Kind, id uint) error
}
