package services

import (
	"time"

	portsrepo "github.com/graceway/travel_accounting/internal/core/ports/repositories"
	portssvc "github.com/graceway/travel_accounting/internal/core/ports/services"
)

// RepositoryProvider supplies the repositories the services are built on.
type RepositoryProvider interface {
	AccountRepo() portsrepo.AccountRepository
	JournalRepo() portsrepo.JournalRepository
	ReportingRepo() portsrepo.ReportingRepository
}

// NewServiceContainer wires every service with its dependencies.
func NewServiceContainer(repos RepositoryProvider, chartCacheTTL time.Duration) *portssvc.ServiceContainer {
	registry := NewRegistryService(repos.AccountRepo(), chartCacheTTL)
	balance := NewBalanceService(repos.ReportingRepo(), registry)

	return &portssvc.ServiceContainer{
		Registry:  registry,
		Ledger:    NewJournalService(repos.JournalRepo(), registry),
		Balance:   balance,
		Statement: NewStatementService(repos.ReportingRepo(), registry, balance),
	}
}
