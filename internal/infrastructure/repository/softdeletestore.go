package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/servly-inc/servly/internal/domain/marketplace"
	mvo "github.com/servly-inc/servly/internal/domain/marketplace/valueobjects"
	"github.com/servly-inc/servly/internal/domain/shared/lifecycle"
	"github.com/servly-inc/servly/internal/infrastructure/persistence/models"
	"github.com/servly-inc/servly/internal/shared/biztime"
	"github.com/servly-inc/servly/internal/shared/db"
	"github.com/servly-inc/servly/internal/shared/logger"
)

type relationPolicy int

const (
	policyNone relationPolicy = iota
	policyCascade
	policyProtect
)

// relation declares how a dependent kind reacts to a parent's hard delete.
type relation struct {
	kind       lifecycle.Kind
	foreignKey string
	policy     relationPolicy
}

// softDeleteRule forbids logical deletion based on the row's status column.
type softDeleteRule struct {
	statusColumn string
	allowed      string
	err          error
}

// cleanup names a dependent table removed together with the parent row but
// not itself a registered kind.
type cleanup struct {
	table      string
	foreignKey string
}

type kindSpec struct {
	table     string
	immutable bool
	relations []relation
	cleanups  []cleanup
	rule      *softDeleteRule
}

// kindSpecs is the single relation-policy table. Both delete paths consult
// it: soft delete for the state rule, hard delete for cascade and protect.
var kindSpecs = map[lifecycle.Kind]kindSpec{
	lifecycle.KindOrder: {
		table: models.TableOrders,
		relations: []relation{
			{kind: lifecycle.KindProposal, foreignKey: "order_id", policy: policyCascade},
		},
		rule: &softDeleteRule{
			statusColumn: "status",
			allowed:      mvo.OrderStatusPending.String(),
			err:          marketplace.ErrOrderNotDeletable,
		},
	},
	lifecycle.KindProposal: {
		table: models.TableProposals,
		rule: &softDeleteRule{
			statusColumn: "status",
			allowed:      mvo.ProposalStatusPending.String(),
			err:          marketplace.ErrProposalNotDeletable,
		},
	},
	lifecycle.KindPlan: {
		table: models.TablePlans,
		relations: []relation{
			{kind: lifecycle.KindSubscription, foreignKey: "plan_id", policy: policyProtect},
		},
	},
	lifecycle.KindSubscription: {
		table: models.TableSubscriptions,
		relations: []relation{
			{kind: lifecycle.KindPayment, foreignKey: "subscription_id", policy: policyProtect},
		},
		cleanups: []cleanup{
			{table: models.TableUsageCounters, foreignKey: "subscription_id"},
		},
	},
	lifecycle.KindPayment: {
		table:     models.TableSubscriptionPayments,
		immutable: true,
	},
	lifecycle.KindAuditLog: {
		table:     models.TableAuditLogs,
		immutable: true,
	},
}

// SoftDeleteStore implements lifecycle.Store over the GORM schema. One
// instance serves every registered kind.
type SoftDeleteStore struct {
	db     *gorm.DB
	txMgr  db.TxManager
	logger logger.Interface
	now    func() time.Time
}

func NewSoftDeleteStore(gdb *gorm.DB, txMgr db.TxManager, log logger.Interface) *SoftDeleteStore {
	return &SoftDeleteStore{
		db:     gdb,
		txMgr:  txMgr,
		logger: log,
		now:    biztime.NowUTC,
	}
}

// WithNow overrides the clock source. For tests.
func (s *SoftDeleteStore) WithNow(now func() time.Time) *SoftDeleteStore {
	s.now = now
	return s
}

// Active scopes a query to non-deleted rows of the kind. All and DeletedOnly
// are the other two read views.
func (s *SoftDeleteStore) Active(ctx context.Context, kind lifecycle.Kind) *gorm.DB {
	return s.view(ctx, kind).Where("deleted_at IS NULL")
}

func (s *SoftDeleteStore) All(ctx context.Context, kind lifecycle.Kind) *gorm.DB {
	return s.view(ctx, kind)
}

func (s *SoftDeleteStore) DeletedOnly(ctx context.Context, kind lifecycle.Kind) *gorm.DB {
	return s.view(ctx, kind).Where("deleted_at IS NOT NULL")
}

func (s *SoftDeleteStore) view(ctx context.Context, kind lifecycle.Kind) *gorm.DB {
	return db.GetTxFromContext(ctx, s.db).Table(kindSpecs[kind].table)
}

type lifecycleRow struct {
	ID        uint
	Status    sql.NullString
	DeletedAt *time.Time
}

// SoftDelete stamps deleted_at on the one row. It never touches dependents:
// logical deletion does not cascade.
func (s *SoftDeleteStore) SoftDelete(ctx context.Context, kind lifecycle.Kind, id uint) error {
	spec, ok := kindSpecs[kind]
	if !ok {
		return fmt.Errorf("unknown entity kind: %s", kind)
	}

	return s.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		row, err := s.fetch(txCtx, spec, id)
		if err != nil {
			return err
		}
		if row.DeletedAt != nil {
			return lifecycle.ErrAlreadyDeleted
		}
		if spec.rule != nil && row.Status.Valid && row.Status.String != spec.rule.allowed {
			return spec.rule.err
		}

		return s.view(txCtx, kind).
			Where("id = ?", id).
			Update("deleted_at", s.now()).Error
	})
}

// Restore clears deleted_at on a logically deleted row.
func (s *SoftDeleteStore) Restore(ctx context.Context, kind lifecycle.Kind, id uint) error {
	spec, ok := kindSpecs[kind]
	if !ok {
		return fmt.Errorf("unknown entity kind: %s", kind)
	}

	return s.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		row, err := s.fetch(txCtx, spec, id)
		if err != nil {
			return err
		}
		if row.DeletedAt == nil {
			return lifecycle.ErrNotDeleted
		}

		return s.view(txCtx, kind).
			Where("id = ?", id).
			Update("deleted_at", nil).Error
	})
}

// HardDelete physically removes the row and applies the relation policy:
// CASCADE dependents are removed recursively, any live PROTECT dependent
// aborts the whole operation. All-or-nothing in one transaction.
func (s *SoftDeleteStore) HardDelete(ctx context.Context, kind lifecycle.Kind, id uint) error {
	spec, ok := kindSpecs[kind]
	if !ok {
		return fmt.Errorf("unknown entity kind: %s", kind)
	}
	if spec.immutable {
		return lifecycle.ErrImmutableRecord
	}

	err := s.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.fetch(txCtx, spec, id); err != nil {
			return err
		}
		return s.hardDelete(txCtx, kind, spec, id)
	})
	if err != nil {
		return err
	}

	s.logger.Infow("record hard-deleted with dependents", "kind", kind, "id", id)
	return nil
}

func (s *SoftDeleteStore) hardDelete(ctx context.Context, kind lifecycle.Kind, spec kindSpec, id uint) error {
	for _, rel := range spec.relations {
		depSpec := kindSpecs[rel.kind]

		switch rel.policy {
		case policyProtect:
			var live int64
			err := s.view(ctx, rel.kind).
				Where(rel.foreignKey+" = ? AND deleted_at IS NULL", id).
				Count(&live).Error
			if err != nil {
				return fmt.Errorf("failed to count %s dependents: %w", rel.kind, err)
			}
			if live > 0 {
				return &lifecycle.ProtectedReferenceError{Kind: kind, ID: id, Relation: string(rel.kind)}
			}

		case policyCascade:
			// Cascade removes soft-deleted dependents too; a physical
			// delete leaves nothing behind.
			var depIDs []uint
			err := s.view(ctx, rel.kind).
				Where(rel.foreignKey+" = ?", id).
				Pluck("id", &depIDs).Error
			if err != nil {
				return fmt.Errorf("failed to list %s dependents: %w", rel.kind, err)
			}
			for _, depID := range depIDs {
				if depSpec.immutable {
					return lifecycle.ErrImmutableRecord
				}
				if err := s.hardDelete(ctx, rel.kind, depSpec, depID); err != nil {
					return err
				}
			}
		}
	}

	for _, c := range spec.cleanups {
		err := db.GetTxFromContext(ctx, s.db).
			Table(c.table).
			Where(c.foreignKey+" = ?", id).
			Delete(nil).Error
		if err != nil {
			return fmt.Errorf("failed to clean up %s: %w", c.table, err)
		}
	}

	if err := s.view(ctx, kind).Where("id = ?", id).Delete(nil).Error; err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", kind, id, err)
	}
	return nil
}

func (s *SoftDeleteStore) fetch(ctx context.Context, spec kindSpec, id uint) (*lifecycleRow, error) {
	columns := []string{"id", "deleted_at"}
	if spec.rule != nil {
		columns = append(columns, spec.rule.statusColumn)
	}

	var row lifecycleRow
	err := db.GetTxFromContext(ctx, s.db).
		Table(spec.table).
		Select(columns).
		Where("id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lifecycle.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to fetch %s %d: %w", spec.table, id, err)
	}
	return &row, nil
}
