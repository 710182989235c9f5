package services

// ServiceContainer holds instances of all the application services.
// Handlers receive it from main and pick the facade they need.
type ServiceContainer struct {
	Transaction  TransactionSvcFacade
	Budget       BudgetSvcFacade
	Subscription SubscriptionSvcFacade
	Analysis     AnalysisSvc
}
