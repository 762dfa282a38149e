package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/ratbook/ratbook_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	productRepo := newPgxProductRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, productRepo)
	reportingRepo := newReportingRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:     accountRepo,
		ProductRepo:     productRepo,
		TransactionRepo: transactionRepo,
		ReportingRepo:   reportingRepo,
		UserRepo:        userRepo,
	}
}
