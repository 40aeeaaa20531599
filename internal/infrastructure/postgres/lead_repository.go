package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
	"github.com/jhoicas/freshbreeze-api/internal/domain/repository"
)

var _ repository.LeadRepository = (*LeadRepo)(nil)

// LeadRepo prospectos de venta.
type LeadRepo struct {
	q Querier
}

func NewLeadRepository(q Querier) *LeadRepo {
	return &LeadRepo{q: q}
}

const leadColumns = `id, company_id, name, email, phone, source, status, notes, assigned_to, created_at, updated_at`

func scanLead(row pgx.Row) (*entity.Lead, error) {
	var l entity.Lead
	var assigned *string
	if err := row.Scan(&l.ID, &l.CompanyID, &l.Name, &l.Email, &l.Phone, &l.Source, &l.Status, &l.Notes,
		&assigned, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	l.AssignedTo = deref(assigned)
	return &l, nil
}

func (r *LeadRepo) Create(ctx context.Context, l *entity.Lead) error {
	_, err := r.q.Exec(ctx, `INSERT INTO leads (`+leadColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		l.ID, l.CompanyID, l.Name, l.Email, l.Phone, l.Source, l.Status, l.Notes, nullIfEmpty(l.AssignedTo),
		l.CreatedAt, l.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Invalid("assigned_to", "usuario inexistente")
		}
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

func (r *LeadRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Lead, error) {
	l, err := scanLead(r.q.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1 AND company_id = $2`, id, companyID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return l, nil
}

func (r *LeadRepo) Update(ctx context.Context, l *entity.Lead) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE leads SET name = $3, email = $4, phone = $5, source = $6, status = $7, notes = $8,
		       assigned_to = $9, updated_at = $10
		WHERE id = $1 AND company_id = $2`,
		l.ID, l.CompanyID, l.Name, l.Email, l.Phone, l.Source, l.Status, l.Notes, nullIfEmpty(l.AssignedTo), l.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Invalid("assigned_to", "usuario inexistente")
		}
		return fmt.Errorf("update lead: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LeadRepo) Delete(ctx context.Context, companyID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM leads WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List status vacío = todos.
func (r *LeadRepo) List(ctx context.Context, companyID, status string, limit, offset int) ([]*entity.Lead, error) {
	limit, offset = page(limit, offset)
	rows, err := r.q.Query(ctx, `
		SELECT `+leadColumns+` FROM leads
		 WHERE company_id = $1 AND ($2 = '' OR status = $2)
		 ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		companyID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()
	var list []*entity.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// CountOpen leads que no están ganados ni perdidos.
func (r *LeadRepo) CountOpen(ctx context.Context, companyID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM leads WHERE company_id = $1 AND status NOT IN ('won', 'lost')`, companyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count open leads: %w", err)
	}
	return n, nil
}
