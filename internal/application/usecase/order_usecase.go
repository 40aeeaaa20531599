package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
	"github.com/jhoicas/freshbreeze-api/internal/application/inventory"
	"github.com/jhoicas/freshbreeze-api/internal/application/ports"
	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
	"github.com/jhoicas/freshbreeze-api/internal/domain/repository"
)

// OrderUseCase checkout y ciclo de vida de pedidos. Las operaciones que tocan stock
// corren en la misma transacción que la escritura del pedido.
type OrderUseCase struct {
	orders repository.OrderRepository
	tx     ports.TxRunner
	log    zerolog.Logger
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(orders repository.OrderRepository, tx ports.TxRunner, log zerolog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, tx: tx, log: log}
}

// Checkout crea el pedido del carrito y descuenta stock. Precios y nombres se congelan
// desde el catálogo; el cliente solo envía producto y cantidad.
func (uc *OrderUseCase) Checkout(ctx context.Context, companyID, userID string, in dto.CheckoutRequest) (*dto.OrderResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	lines := make([]inventory.Line, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, inventory.Line{ProductID: strings.TrimSpace(it.ProductID), Quantity: it.Quantity})
	}
	lines = inventory.Merge(lines)

	now := time.Now()
	order := &entity.Order{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		UserID:          userID,
		Status:          entity.OrderStatusPending,
		PaymentStatus:   entity.PaymentStatusUnpaid,
		ShippingName:    in.ShippingName,
		ShippingAddress: in.ShippingAddress,
		ShippingCity:    in.ShippingCity,
		ShippingPhone:   in.ShippingPhone,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := uc.tx.Run(ctx, func(tx ports.TxRepos) error {
		order.Items = order.Items[:0]
		total := decimal.Zero
		for _, l := range lines {
			p, err := tx.Products.GetByID(ctx, companyID, l.ProductID)
			if err != nil {
				return err
			}
			if p == nil || !p.IsActive {
				return domain.Invalid("items.product_id", "producto no disponible: "+l.ProductID)
			}
			item := entity.OrderItem{
				ID:        uuid.New().String(),
				ProductID: p.ID,
				Name:      p.Name,
				Quantity:  l.Quantity,
				UnitPrice: p.Price,
			}
			total = total.Add(item.Subtotal())
			order.Items = append(order.Items, item)
		}
		order.Total = total.Round(2)
		if err := inventory.Reserve(ctx, tx.Products, companyID, lines); err != nil {
			return err
		}
		return tx.Orders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("company_id", companyID).Str("order_id", order.ID).Str("total", order.Total.String()).Msg("pedido creado")
	return dto.ToOrderResponse(order), nil
}

// Get pedido de la empresa. Con ownerID no vacío solo lo devuelve si pertenece a ese usuario.
func (uc *OrderUseCase) Get(ctx context.Context, companyID, id, ownerID string) (*dto.OrderResponse, error) {
	o, err := uc.orders.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if o == nil || (ownerID != "" && o.UserID != ownerID) {
		return nil, domain.ErrNotFound
	}
	return dto.ToOrderResponse(o), nil
}

// List pedidos de la empresa; ownerID no vacío limita a los del usuario (área de cliente).
func (uc *OrderUseCase) List(ctx context.Context, companyID, ownerID string, q dto.OrderQuery) (*dto.OrderListResponse, error) {
	q.DefaultPage()
	if q.Status != "" && !entity.IsOrderStatus(q.Status) {
		return nil, domain.Invalid("status", "estado desconocido")
	}
	list, err := uc.orders.List(ctx, companyID, repository.OrderFilter{
		UserID: ownerID,
		Status: q.Status,
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *dto.ToOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	}, nil
}

// UpdateStatus cambia el estado respetando las transiciones permitidas. Pasar a cancelled
// devuelve el stock en la misma transacción.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, companyID, id string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	status := strings.ToLower(strings.TrimSpace(in.Status))
	if !entity.IsOrderStatus(status) {
		return nil, domain.Invalid("status", "estado desconocido")
	}
	return uc.transition(ctx, companyID, id, status, func(*entity.Order) error { return nil })
}

// Cancel cancela un pedido. Un cliente solo puede cancelar los suyos y mientras estén pending;
// staff sigue las transiciones normales.
func (uc *OrderUseCase) Cancel(ctx context.Context, companyID, userID, id string, staff bool) (*dto.OrderResponse, error) {
	return uc.transition(ctx, companyID, id, entity.OrderStatusCancelled, func(o *entity.Order) error {
		if staff {
			return nil
		}
		if o.UserID != userID {
			return domain.ErrNotFound
		}
		if o.Status != entity.OrderStatusPending {
			return fmt.Errorf("%w: solo se pueden cancelar pedidos pendientes", domain.ErrInvalidTransition)
		}
		return nil
	})
}

func (uc *OrderUseCase) transition(ctx context.Context, companyID, id, to string, check func(*entity.Order) error) (*dto.OrderResponse, error) {
	var out *entity.Order
	err := uc.tx.Run(ctx, func(tx ports.TxRepos) error {
		o, err := tx.Orders.GetByID(ctx, companyID, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if err := check(o); err != nil {
			return err
		}
		if !entity.CanTransition(o.Status, to) {
			return fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, o.Status, to)
		}
		if err := tx.Orders.UpdateStatus(ctx, companyID, id, to); err != nil {
			return err
		}
		if to == entity.OrderStatusCancelled {
			lines := make([]inventory.Line, 0, len(o.Items))
			for _, it := range o.Items {
				lines = append(lines, inventory.Line{ProductID: it.ProductID, Quantity: it.Quantity})
			}
			if err := inventory.Release(ctx, tx.Products, companyID, inventory.Merge(lines)); err != nil {
				return err
			}
		}
		o.Status = to
		o.UpdatedAt = time.Now()
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("company_id", companyID).Str("order_id", id).Str("status", to).Msg("estado de pedido actualizado")
	return dto.ToOrderResponse(out), nil
}
