package migration

import (
	"github.com/servly-inc/servly/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.PlanModel{},
		&models.SubscriptionModel{},
		&models.UsageCounterModel{},
		&models.OrderModel{},
		&models.ProposalModel{},
		&models.SubscriptionPaymentModel{},
		&models.AuditLogModel{},
	}
}
