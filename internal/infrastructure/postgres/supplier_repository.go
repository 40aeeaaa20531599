package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
	"github.com/jhoicas/freshbreeze-api/internal/domain/repository"
)

var (
	_ repository.SupplierRepository        = (*SupplierRepo)(nil)
	_ repository.SupplierPaymentRepository = (*SupplierPaymentRepo)(nil)
)

// SupplierRepo proveedores.
type SupplierRepo struct {
	q Querier
}

func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, company_id, name, contact_name, email, phone, address, created_at, updated_at`

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	_, err := r.q.Exec(ctx, `INSERT INTO suppliers (`+supplierColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.CompanyID, s.Name, s.ContactName, s.Email, s.Phone, s.Address, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1 AND company_id = $2`, id, companyID).
		Scan(&s.ID, &s.CompanyID, &s.Name, &s.ContactName, &s.Email, &s.Phone, &s.Address, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE suppliers SET name = $3, contact_name = $4, email = $5, phone = $6, address = $7, updated_at = $8
		WHERE id = $1 AND company_id = $2`,
		s.ID, s.CompanyID, s.Name, s.ContactName, s.Email, s.Phone, s.Address, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra el proveedor y, en cascada, sus pagos.
func (r *SupplierRepo) Delete(ctx context.Context, companyID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM suppliers WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SupplierRepo) List(ctx context.Context, companyID string, limit, offset int) ([]*entity.Supplier, error) {
	limit, offset = page(limit, offset)
	rows, err := r.q.Query(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Name, &s.ContactName, &s.Email, &s.Phone, &s.Address, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// SupplierPaymentRepo pagos a proveedores.
type SupplierPaymentRepo struct {
	q Querier
}

func NewSupplierPaymentRepository(q Querier) *SupplierPaymentRepo {
	return &SupplierPaymentRepo{q: q}
}

func (r *SupplierPaymentRepo) Create(ctx context.Context, p *entity.SupplierPayment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO supplier_payments (id, company_id, supplier_id, amount, method, reference, notes, paid_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.CompanyID, p.SupplierID, p.Amount, p.Method, p.Reference, p.Notes, p.PaidAt, p.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Invalid("supplier_id", "no existe")
		}
		return fmt.Errorf("insert supplier payment: %w", err)
	}
	return nil
}

// List supplierID vacío lista los pagos de todos los proveedores.
func (r *SupplierPaymentRepo) List(ctx context.Context, companyID, supplierID string, limit, offset int) ([]*entity.SupplierPayment, error) {
	limit, offset = page(limit, offset)
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, supplier_id, amount, method, reference, notes, paid_at, created_at
		  FROM supplier_payments
		 WHERE company_id = $1 AND ($2 = '' OR supplier_id::text = $2)
		 ORDER BY paid_at DESC LIMIT $3 OFFSET $4`,
		companyID, supplierID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list supplier payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.SupplierPayment
	for rows.Next() {
		var p entity.SupplierPayment
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.SupplierID, &p.Amount, &p.Method, &p.Reference, &p.Notes, &p.PaidAt, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
