package services

// ServiceContainer bundles the core services for handler wiring.
type ServiceContainer struct {
	Registry  AccountRegistrySvc
	Ledger    JournalLedgerSvc
	Balance   BalanceCalculatorSvc
	Statement StatementGeneratorSvc
}
