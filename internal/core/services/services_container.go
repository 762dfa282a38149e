package services

import (
	portsrepo "github.com/ratbook/ratbook_backend/internal/core/ports/repositories"
	portssvc "github.com/ratbook/ratbook_backend/internal/core/ports/services"
	"github.com/ratbook/ratbook_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Product = NewProductService(repos.ProductRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.AccountRepo, repos.ProductRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)

	return container
}
