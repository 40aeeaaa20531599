package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
	"github.com/jhoicas/freshbreeze-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos (cabecera + líneas). Usable con pool o tx.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, company_id, user_id, status, payment_status, payment_intent_id, total,
	shipping_name, shipping_address, shipping_city, shipping_phone, notes, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(&o.ID, &o.CompanyID, &o.UserID, &o.Status, &o.PaymentStatus, &o.PaymentIntentID,
		&o.Total, &o.ShippingName, &o.ShippingAddress, &o.ShippingCity, &o.ShippingPhone, &o.Notes,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserta la cabecera y sus líneas. Debe ejecutarse dentro de una transacción.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CompanyID, o.UserID, o.Status, o.PaymentStatus, o.PaymentIntentID, o.Total,
		o.ShippingName, o.ShippingAddress, o.ShippingCity, o.ShippingPhone, o.Notes,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, name, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, it.OrderID, it.ProductID, it.Name, it.Quantity, it.UnitPrice)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el pedido con sus líneas; nil si no existe en la empresa.
func (r *OrderRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1 AND company_id = $2`, id, companyID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.attachItems(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// List pedidos de la empresa, más recientes primero, con sus líneas.
func (r *OrderRepo) List(ctx context.Context, companyID string, f repository.OrderFilter) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE company_id = $1`
	args := []any{companyID}
	if f.UserID != "" {
		args = append(args, f.UserID)
		query += ` AND user_id = $` + strconv.Itoa(len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	limit, offset := page(f.Limit, f.Offset)
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *OrderRepo) attachItems(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	byID := make(map[string]*entity.Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, name, quantity, unit_price
		FROM order_items WHERE order_id = ANY($1::uuid[]) ORDER BY order_id, name`, ids)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Name, &it.Quantity, &it.UnitPrice); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if o := byID[it.OrderID]; o != nil {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, companyID, id, status string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE orders SET status = $3, updated_at = now() WHERE id = $1 AND company_id = $2`,
		id, companyID, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePayment intentID vacío conserva el actual.
func (r *OrderRepo) UpdatePayment(ctx context.Context, companyID, id, paymentStatus, intentID string) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE orders
		   SET payment_status = $3,
		       payment_intent_id = COALESCE(NULLIF($4, ''), payment_intent_id),
		       updated_at = now()
		 WHERE id = $1 AND company_id = $2`,
		id, companyID, paymentStatus, intentID)
	if err != nil {
		return fmt.Errorf("update order payment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SalesSince total vendido y número de pedidos no cancelados desde from.
func (r *OrderRepo) SalesSince(ctx context.Context, companyID string, from time.Time) (decimal.Decimal, int, error) {
	var total decimal.Decimal
	var count int
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(total), 0), count(*)
		  FROM orders
		 WHERE company_id = $1 AND created_at >= $2 AND status <> 'cancelled'`,
		companyID, from).Scan(&total, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("sales since: %w", err)
	}
	return total, count, nil
}

func (r *OrderRepo) CountByStatus(ctx context.Context, companyID string) (map[string]int, error) {
	rows, err := r.q.Query(ctx,
		`SELECT status, count(*) FROM orders WHERE company_id = $1 GROUP BY status`, companyID)
	if err != nil {
		return nil, fmt.Errorf("count orders by status: %w", err)
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan order count: %w", err)
		}
		out[status] = n
	}
	return out, rows.Err()
}
