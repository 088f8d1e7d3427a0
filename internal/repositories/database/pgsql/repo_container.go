package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/graceway/travel_accounting/internal/core/ports/repositories"
)

// RepositoryContainer bundles the concrete repositories behind their ports.
type RepositoryContainer struct {
	accountRepo   portsrepo.AccountRepository
	journalRepo   portsrepo.JournalRepository
	reportingRepo portsrepo.ReportingRepository
}

func NewRepositoryContainer(dbPool *pgxpool.Pool) *RepositoryContainer {
	return &RepositoryContainer{
		accountRepo:   newPgxAccountRepository(dbPool),
		journalRepo:   newPgxJournalRepository(dbPool),
		reportingRepo: newReportingRepository(dbPool),
	}
}

func (c *RepositoryContainer) AccountRepo() portsrepo.AccountRepository     { return c.accountRepo }
func (c *RepositoryContainer) JournalRepo() portsrepo.JournalRepository     { return c.journalRepo }
func (c *RepositoryContainer) ReportingRepo() portsrepo.ReportingRepository { return c.reportingRepo }
