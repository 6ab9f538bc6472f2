package models

// Table names. Kept in one place so models, migrations and raw queries agree.
const (
	TablePlans                = "plans"
	TableSubscriptions        = "subscriptions"
	TableUsageCounters        = "usage_counters"
	TableOrders               = "orders"
	TableProposals            = "proposals"
	TableSubscriptionPayments = "subscription_payments"
	TableAuditLogs            = "audit_logs"
)
