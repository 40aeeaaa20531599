package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
	"github.com/jhoicas/freshbreeze-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, company_id, category_id, sku, name, description, price, stock_quantity,
	unit, image_url, is_active, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var categoryID *string
	err := row.Scan(&p.ID, &p.CompanyID, &categoryID, &p.SKU, &p.Name, &p.Description, &p.Price,
		&p.StockQuantity, &p.Unit, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.CategoryID = deref(categoryID)
	return &p, nil
}

// Create persiste un nuevo producto. SKU repetido en la empresa → domain.ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, nullIfEmpty(p.CategoryID), p.SKU, p.Name, p.Description, p.Price,
		p.StockQuantity, p.Unit, p.ImageURL, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("sku %q: %w", p.SKU, domain.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return domain.Invalid("category_id", "no existe")
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto de la empresa; nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 AND company_id = $2`, id, companyID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza un producto existente. El stock solo cambia vía UpdateStock/DecrementQuantity.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET category_id = $3, sku = $4, name = $5, description = $6, price = $7,
		       unit = $8, image_url = $9, is_active = $10, updated_at = $11
		WHERE id = $1 AND company_id = $2`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, nullIfEmpty(p.CategoryID), p.SKU, p.Name, p.Description, p.Price,
		p.Unit, p.ImageURL, p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("sku %q: %w", p.SKU, domain.ErrDuplicate)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto. Si tiene pedidos asociados devuelve domain.ErrConflict.
func (r *ProductRepo) Delete(ctx context.Context, companyID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("producto con pedidos: %w", domain.ErrConflict)
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos de la empresa con filtros opcionales.
func (r *ProductRepo) List(ctx context.Context, companyID string, f repository.ProductFilter) ([]*entity.Product, error) {
	where := []string{"company_id = $1"}
	args := []any{companyID}
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if f.CategoryID != "" {
		where = append(where, "category_id = "+arg(f.CategoryID))
	}
	if f.OnlyActive {
		where = append(where, "is_active")
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		p := arg("%" + s + "%")
		where = append(where, "(name ILIKE "+p+" OR sku ILIKE "+p+")")
	}
	limit, offset := page(f.Limit, f.Offset)
	query := `SELECT ` + productColumns + ` FROM products WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY name LIMIT ` + arg(limit) + ` OFFSET ` + arg(offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// UpdateStock suma delta al stock con update_stock. NULL = producto ausente o stock negativo.
func (r *ProductRepo) UpdateStock(ctx context.Context, companyID, productID string, delta decimal.Decimal) error {
	var qty *decimal.Decimal
	if err := r.q.QueryRow(ctx, `SELECT update_stock($1, $2, $3)`, productID, companyID, delta).Scan(&qty); err != nil {
		return fmt.Errorf("update_stock: %w", err)
	}
	if qty == nil {
		return fmt.Errorf("producto %s: %w", productID, domain.ErrInsufficientStock)
	}
	return nil
}

// DecrementQuantity descuenta qty con decrement_quantity.
func (r *ProductRepo) DecrementQuantity(ctx context.Context, companyID, productID string, qty decimal.Decimal) error {
	var ok bool
	if err := r.q.QueryRow(ctx, `SELECT decrement_quantity($1, $2, $3)`, productID, companyID, qty).Scan(&ok); err != nil {
		return fmt.Errorf("decrement_quantity: %w", err)
	}
	if !ok {
		return fmt.Errorf("producto %s: %w", productID, domain.ErrInsufficientStock)
	}
	return nil
}

// CountLowStock productos activos con stock <= threshold.
func (r *ProductRepo) CountLowStock(ctx context.Context, companyID string, threshold decimal.Decimal) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM products WHERE company_id = $1 AND is_active AND stock_quantity <= $2`,
		companyID, threshold).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return n, nil
}
