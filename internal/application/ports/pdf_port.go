package ports

import (
	"context"

	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
)

// InvoicePDFGenerator genera la representación gráfica de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, inv *entity.Invoice, company *entity.Company, order *entity.Order) ([]byte, error)
}
