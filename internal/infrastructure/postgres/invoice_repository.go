package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
	"github.com/jhoicas/freshbreeze-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, company_id, order_id, number, status, subtotal, tax, total, issued_at, created_at, updated_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	if err := row.Scan(&inv.ID, &inv.CompanyID, &inv.OrderID, &inv.Number, &inv.Status,
		&inv.Subtotal, &inv.Tax, &inv.Total, &inv.IssuedAt, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return nil, err
	}
	return &inv, nil
}

// Create toma el siguiente consecutivo de la empresa (bloquea la fila de companies hasta el commit)
// y persiste la factura con Number = INV-000001, INV-000002...
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	var seq int64
	err := r.q.QueryRow(ctx,
		`UPDATE companies SET invoice_seq = invoice_seq + 1 WHERE id = $1 RETURNING invoice_seq`,
		inv.CompanyID).Scan(&seq)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("next invoice number: %w", err)
	}
	inv.Number = fmt.Sprintf("INV-%06d", seq)

	_, err = r.q.Exec(ctx, `INSERT INTO invoices (`+invoiceColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		inv.ID, inv.CompanyID, inv.OrderID, inv.Number, inv.Status, inv.Subtotal, inv.Tax, inv.Total,
		inv.IssuedAt, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("el pedido ya tiene factura: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Invoice, error) {
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 AND company_id = $2`, id, companyID)
}

func (r *InvoiceRepo) GetByOrder(ctx context.Context, companyID, orderID string) (*entity.Invoice, error) {
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE order_id = $1 AND company_id = $2`, orderID, companyID)
}

func (r *InvoiceRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

func (r *InvoiceRepo) List(ctx context.Context, companyID string, limit, offset int) ([]*entity.Invoice, error) {
	limit, offset = page(limit, offset)
	rows, err := r.q.Query(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE company_id = $1 ORDER BY issued_at DESC LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

func (r *InvoiceRepo) UpdateStatus(ctx context.Context, companyID, id, status string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE invoices SET status = $3, updated_at = now() WHERE id = $1 AND company_id = $2`,
		id, companyID, status)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
