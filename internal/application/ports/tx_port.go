package ports

import (
	"context"

	"github.com/jhoicas/freshbreeze-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Companies repository.CompanyRepository
	Users     repository.UserRepository
	Products  repository.ProductRepository
	Orders    repository.OrderRepository
	Invoices  repository.InvoiceRepository
	Payments  repository.PaymentRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD: Commit si fn devuelve nil, Rollback si no.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx TxRepos) error) error
}
