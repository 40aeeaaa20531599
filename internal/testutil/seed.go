package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
)

// SeedCompany inserta una empresa activa con todos los módulos por defecto.
func (s *Store) SeedCompany(slug string) *entity.Company {
	now := time.Now()
	c := entity.Company{
		ID:        uuid.New().String(),
		Name:      slug,
		Slug:      slug,
		Email:     "info@" + slug + ".test",
		Status:    entity.CompanyStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.mu.Lock()
	s.d.companies[c.ID] = c
	s.d.modules[c.ID] = append([]string{}, entity.DefaultModules...)
	s.mu.Unlock()
	return &c
}

// SeedUser inserta un usuario activo con la contraseña dada (bcrypt MinCost).
func (s *Store) SeedUser(companyID, email, password string, roles ...string) *entity.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	now := time.Now()
	u := entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         email,
		Roles:        roles,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.mu.Lock()
	s.d.users[u.ID] = u
	s.mu.Unlock()
	return &u
}

// SeedProduct inserta un producto activo.
func (s *Store) SeedProduct(companyID, sku string, price, stock int64) *entity.Product {
	now := time.Now()
	p := entity.Product{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		SKU:           sku,
		Name:          sku,
		Price:         decimal.NewFromInt(price),
		StockQuantity: decimal.NewFromInt(stock),
		Unit:          "unit",
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.mu.Lock()
	s.d.products[p.ID] = p
	s.mu.Unlock()
	return &p
}

// Stock cantidad actual de un producto (cero si no existe).
func (s *Store) Stock(productID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.d.products[productID].StockQuantity
}

// SeedOrder inserta un pedido pendiente con las líneas dadas; el total es la suma de subtotales.
func (s *Store) SeedOrder(companyID, userID string, items ...entity.OrderItem) *entity.Order {
	now := time.Now()
	o := entity.Order{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		UserID:        userID,
		Status:        entity.OrderStatusPending,
		PaymentStatus: entity.PaymentStatusUnpaid,
		Total:         decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, it := range items {
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.OrderID = o.ID
		o.Items = append(o.Items, it)
		o.Total = o.Total.Add(it.Subtotal())
	}
	o.Total = o.Total.Round(2)
	s.mu.Lock()
	s.d.orders[o.ID] = o
	s.mu.Unlock()
	return &o
}

// Item línea de pedido de prueba.
func Item(productID, name string, qty int64, unitPrice string) entity.OrderItem {
	return entity.OrderItem{
		ProductID: productID,
		Name:      name,
		Quantity:  decimal.NewFromInt(qty),
		UnitPrice: decimal.RequireFromString(unitPrice),
	}
}
