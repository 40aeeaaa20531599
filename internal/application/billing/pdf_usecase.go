package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/freshbreeze-api/internal/application/ports"
	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
	"github.com/jhoicas/freshbreeze-api/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) de una factura.
// Las facturas anuladas no se descargan.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	companyRepo repository.CompanyRepository
	orderRepo   repository.OrderRepository
	generator   ports.InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	orderRepo repository.OrderRepository,
	generator ports.InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo: invoiceRepo,
		companyRepo: companyRepo,
		orderRepo:   orderRepo,
		generator:   generator,
	}
}

// DownloadInvoicePDF recupera factura, empresa y pedido y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe en la empresa.
//   - domain.ErrConflict         si la factura está anulada.
func (uc *PDFUseCase) DownloadInvoicePDF(
	ctx context.Context,
	companyID, invoiceID string,
) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar factura ─────────────────────────────────────────────────────
	inv, err := uc.invoiceRepo.GetByID(ctx, companyID, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	if inv.Status == entity.InvoiceStatusVoid {
		return nil, "", fmt.Errorf("%w: la factura %s está anulada", domain.ErrConflict, inv.Number)
	}

	// ── 2. Cargar empresa ─────────────────────────────────────────────────────
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 3. Cargar pedido con sus líneas ───────────────────────────────────────
	order, err := uc.orderRepo.GetByID(ctx, companyID, inv.OrderID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener pedido: %w", err)
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 4. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, inv, company, order)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("factura_%s.pdf", inv.Number)
	return pdfBytes, filename, nil
}
