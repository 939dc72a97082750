package services

import (
	portsrepo "github.com/paylinear/payroll_backend/internal/core/ports/repositories"
	portssvc "github.com/paylinear/payroll_backend/internal/core/ports/services"
	"github.com/paylinear/payroll_backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo)

	// Rate service first: payroll, expense and costing all draw their rate
	// table snapshots from it.
	rateService := NewRateService(repos.ExchangeRateRepo, repos.CurrencyRepo, cfg.SettlementCurrency, cfg.CryptoCurrencies)
	container.Rate = rateService

	container.Employee = NewEmployeeService(repos.EmployeeRepo)
	container.Payroll = NewPayrollService(repos.PayrollRunRepo, repos.EmployeeRepo, rateService)
	container.Expense = NewExpenseService(repos.ExpenseBatchRepo, repos.EmployeeRepo, rateService)
	container.Costing = NewCostingService(rateService)

	return container
}

// Compile-time interface implementation checks
var (
	_ portssvc.CurrencySvcFacade = (*currencyService)(nil)
	_ portssvc.RateSvcFacade     = (*rateService)(nil)
	_ portssvc.EmployeeSvcFacade = (*employeeService)(nil)
	_ portssvc.PayrollSvcFacade  = (*payrollService)(nil)
	_ portssvc.ExpenseSvcFacade  = (*expenseService)(nil)
	_ portssvc.CostingSvcFacade  = (*costingService)(nil)
)
