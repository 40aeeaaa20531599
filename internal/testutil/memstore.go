// Package testutil repositorios en memoria para tests de casos de uso y handlers.
// Implementan los mismos contratos que internal/infrastructure/postgres, incluido
// el scoping por company_id y el rollback de TxRunner.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/freshbreeze-api/internal/application/ports"
	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
	"github.com/jhoicas/freshbreeze-api/internal/domain/repository"
)

type data struct {
	companies  map[string]entity.Company
	modules    map[string][]string
	users      map[string]entity.User
	products   map[string]entity.Product
	categories map[string]entity.Category
	orders     map[string]entity.Order
	invoices   map[string]entity.Invoice
	invoiceSeq map[string]int
	payments   map[string]entity.Payment
	suppliers  map[string]entity.Supplier
	supPays    map[string]entity.SupplierPayment
	leads      map[string]entity.Lead
	warehouses map[string]entity.Warehouse
	managers   map[string]entity.WarehouseManager
	perms      map[string][]string
	userMods   map[string][]string
}

func newData() data {
	return data{
		companies:  map[string]entity.Company{},
		modules:    map[string][]string{},
		users:      map[string]entity.User{},
		products:   map[string]entity.Product{},
		categories: map[string]entity.Category{},
		orders:     map[string]entity.Order{},
		invoices:   map[string]entity.Invoice{},
		invoiceSeq: map[string]int{},
		payments:   map[string]entity.Payment{},
		suppliers:  map[string]entity.Supplier{},
		supPays:    map[string]entity.SupplierPayment{},
		leads:      map[string]entity.Lead{},
		warehouses: map[string]entity.Warehouse{},
		managers:   map[string]entity.WarehouseManager{},
		perms:      map[string][]string{},
		userMods:   map[string][]string{},
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (d data) clone() data {
	return data{
		companies:  cloneMap(d.companies),
		modules:    cloneMap(d.modules),
		users:      cloneMap(d.users),
		products:   cloneMap(d.products),
		categories: cloneMap(d.categories),
		orders:     cloneMap(d.orders),
		invoices:   cloneMap(d.invoices),
		invoiceSeq: cloneMap(d.invoiceSeq),
		payments:   cloneMap(d.payments),
		suppliers:  cloneMap(d.suppliers),
		supPays:    cloneMap(d.supPays),
		leads:      cloneMap(d.leads),
		warehouses: cloneMap(d.warehouses),
		managers:   cloneMap(d.managers),
		perms:      cloneMap(d.perms),
		userMods:   cloneMap(d.userMods),
	}
}

// Store base de datos en memoria. Seguro para uso concurrente.
type Store struct {
	mu sync.Mutex
	d  data

	// FailPermissions hace fallar las consultas de permisos (simula RPC caída).
	FailPermissions bool
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{d: newData()}
}

func permKey(userID, companyID string) string { return userID + "|" + companyID }

// GrantPermissions fija lo que devuelven get_user_permissions / get_user_accessible_modules.
func (s *Store) GrantPermissions(userID, companyID string, perms, modules []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.d.perms[permKey(userID, companyID)] = perms
	s.d.userMods[permKey(userID, companyID)] = modules
}

// Repos repositorios fuera de transacción.
func (s *Store) Repos() ports.TxRepos {
	return ports.TxRepos{
		Companies: s.Companies(),
		Users:     s.Users(),
		Products:  s.Products(),
		Orders:    s.Orders(),
		Invoices:  s.Invoices(),
		Payments:  s.Payments(),
	}
}

// Run implementa ports.TxRunner: si fn devuelve error se restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(tx ports.TxRepos) error) error {
	s.mu.Lock()
	snapshot := s.d.clone()
	s.mu.Unlock()
	if err := fn(s.Repos()); err != nil {
		s.mu.Lock()
		s.d = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

var _ ports.TxRunner = (*Store)(nil)

// ─── Companies ───────────────────────────────────────────────────────────────

type companyRepo struct{ s *Store }

// Companies repositorio de empresas.
func (s *Store) Companies() repository.CompanyRepository { return companyRepo{s} }

func (r companyRepo) Create(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.d.companies {
		if e.Slug == c.Slug {
			return domain.ErrDuplicate
		}
	}
	r.s.d.companies[c.ID] = *c
	return nil
}

func (r companyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.d.companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r companyRepo) GetBySlug(_ context.Context, slug string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.d.companies {
		if c.Slug == slug {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r companyRepo) Update(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.companies[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.d.companies[c.ID] = *c
	return nil
}

func (r companyRepo) EnableModules(_ context.Context, companyID string, modules []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current := r.s.d.modules[companyID]
	for _, m := range modules {
		if !contains(current, m) {
			current = append(current, m)
		}
	}
	r.s.d.modules[companyID] = current
	return nil
}

func (r companyRepo) ListModules(_ context.Context, companyID string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]string{}, r.s.d.modules[companyID]...), nil
}

func (r companyRepo) HasActiveModule(_ context.Context, companyID, module string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return contains(r.s.d.modules[companyID], module), nil
}

// ─── Users ───────────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

// Users repositorio de usuarios.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.d.users {
		if e.CompanyID == u.CompanyID && strings.EqualFold(e.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	cp.Roles = append([]string{}, u.Roles...)
	r.s.d.users[u.ID] = cp
	return nil
}

func (r userRepo) GetByID(_ context.Context, companyID, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.d.users[id]
	if !ok || u.CompanyID != companyID {
		return nil, nil
	}
	return &u, nil
}

func (r userRepo) GetByEmailAndCompany(_ context.Context, email, companyID string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.d.users {
		if u.CompanyID == companyID && strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r userRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.d.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r userRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.d.users[u.ID]
	if !ok || cur.CompanyID != u.CompanyID {
		return domain.ErrUserNotFound
	}
	roles := cur.Roles
	cur = *u
	cur.Roles = roles
	r.s.d.users[u.ID] = cur
	return nil
}

func (r userRepo) UpdateRoles(_ context.Context, companyID, id string, roles []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.d.users[id]
	if !ok || u.CompanyID != companyID {
		return domain.ErrUserNotFound
	}
	u.Roles = append([]string{}, roles...)
	r.s.d.users[id] = u
	return nil
}

func (r userRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.User
	for _, u := range r.s.d.users {
		if u.CompanyID == companyID {
			u := u
			out = append(out, &u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return paginate(out, limit, offset), nil
}

// ─── Permissions ─────────────────────────────────────────────────────────────

type permissionRepo struct{ s *Store }

// Permissions repositorio de permisos (procedimientos almacenados).
func (s *Store) Permissions() repository.PermissionRepository { return permissionRepo{s} }

func (r permissionRepo) UserPermissions(_ context.Context, userID, companyID string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailPermissions {
		return nil, fmt.Errorf("get_user_permissions: conexión rechazada")
	}
	return append([]string{}, r.s.d.perms[permKey(userID, companyID)]...), nil
}

func (r permissionRepo) UserModules(_ context.Context, userID, companyID string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailPermissions {
		return nil, fmt.Errorf("get_user_accessible_modules: conexión rechazada")
	}
	return append([]string{}, r.s.d.userMods[permKey(userID, companyID)]...), nil
}

// ─── Catalog ─────────────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

// Products repositorio de productos.
func (s *Store) Products() repository.ProductRepository { return productRepo{s} }

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.d.products {
		if e.CompanyID == p.CompanyID && e.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	r.s.d.products[p.ID] = *p
	return nil
}

func (r productRepo) GetByID(_ context.Context, companyID, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.d.products[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	return &p, nil
}

func (r productRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.d.products[p.ID]
	if !ok || cur.CompanyID != p.CompanyID {
		return domain.ErrNotFound
	}
	cp := *p
	cp.StockQuantity = cur.StockQuantity
	r.s.d.products[p.ID] = cp
	return nil
}

func (r productRepo) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.d.products[id]
	if !ok || p.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.s.d.products, id)
	return nil
}

func (r productRepo) List(_ context.Context, companyID string, f repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.d.products {
		if p.CompanyID != companyID {
			continue
		}
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		if f.OnlyActive && !p.IsActive {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
			continue
		}
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, f.Limit, f.Offset), nil
}

func (r productRepo) UpdateStock(_ context.Context, companyID, productID string, delta decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.d.products[productID]
	if !ok || p.CompanyID != companyID {
		return domain.ErrInsufficientStock
	}
	next := p.StockQuantity.Add(delta)
	if next.IsNegative() {
		return domain.ErrInsufficientStock
	}
	p.StockQuantity = next
	r.s.d.products[productID] = p
	return nil
}

func (r productRepo) DecrementQuantity(_ context.Context, companyID, productID string, qty decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.d.products[productID]
	if !ok || p.CompanyID != companyID || p.StockQuantity.LessThan(qty) {
		return domain.ErrInsufficientStock
	}
	p.StockQuantity = p.StockQuantity.Sub(qty)
	r.s.d.products[productID] = p
	return nil
}

func (r productRepo) CountLowStock(_ context.Context, companyID string, threshold decimal.Decimal) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, p := range r.s.d.products {
		if p.CompanyID == companyID && p.IsActive && p.StockQuantity.LessThanOrEqual(threshold) {
			n++
		}
	}
	return n, nil
}

type categoryRepo struct{ s *Store }

// Categories repositorio de categorías.
func (s *Store) Categories() repository.CategoryRepository { return categoryRepo{s} }

func (r categoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.d.categories {
		if e.CompanyID == c.CompanyID && e.Slug == c.Slug {
			return domain.ErrDuplicate
		}
	}
	r.s.d.categories[c.ID] = *c
	return nil
}

func (r categoryRepo) GetByID(_ context.Context, companyID, id string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.d.categories[id]
	if !ok || c.CompanyID != companyID {
		return nil, nil
	}
	return &c, nil
}

func (r categoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.d.categories[c.ID]
	if !ok || cur.CompanyID != c.CompanyID {
		return domain.ErrNotFound
	}
	r.s.d.categories[c.ID] = *c
	return nil
}

func (r categoryRepo) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.d.categories[id]
	if !ok || c.CompanyID != companyID {
		return domain.ErrNotFound
	}
	for _, p := range r.s.d.products {
		if p.CategoryID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.d.categories, id)
	return nil
}

func (r categoryRepo) List(_ context.Context, companyID string) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Category
	for _, c := range r.s.d.categories {
		if c.CompanyID == companyID {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ─── Orders ──────────────────────────────────────────────────────────────────

type orderRepo struct{ s *Store }

// Orders repositorio de pedidos.
func (s *Store) Orders() repository.OrderRepository { return orderRepo{s} }

func cloneOrder(o entity.Order) *entity.Order {
	o.Items = append([]entity.OrderItem{}, o.Items...)
	return &o
}

func (r orderRepo) Create(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}
	r.s.d.orders[o.ID] = *cloneOrder(*o)
	return nil
}

func (r orderRepo) GetByID(_ context.Context, companyID, id string) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.d.orders[id]
	if !ok || o.CompanyID != companyID {
		return nil, nil
	}
	return cloneOrder(o), nil
}

func (r orderRepo) List(_ context.Context, companyID string, f repository.OrderFilter) ([]*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Order
	for _, o := range r.s.d.orders {
		if o.CompanyID != companyID {
			continue
		}
		if f.UserID != "" && o.UserID != f.UserID {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, f.Limit, f.Offset), nil
}

func (r orderRepo) UpdateStatus(_ context.Context, companyID, id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.d.orders[id]
	if !ok || o.CompanyID != companyID {
		return domain.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	r.s.d.orders[id] = o
	return nil
}

func (r orderRepo) UpdatePayment(_ context.Context, companyID, id, paymentStatus, intentID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.d.orders[id]
	if !ok || o.CompanyID != companyID {
		return domain.ErrNotFound
	}
	o.PaymentStatus = paymentStatus
	if intentID != "" {
		o.PaymentIntentID = intentID
	}
	r.s.d.orders[id] = o
	return nil
}

func (r orderRepo) SalesSince(_ context.Context, companyID string, from time.Time) (decimal.Decimal, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total, n := decimal.Zero, 0
	for _, o := range r.s.d.orders {
		if o.CompanyID == companyID && !o.CreatedAt.Before(from) && o.Status != entity.OrderStatusCancelled {
			total = total.Add(o.Total)
			n++
		}
	}
	return total, n, nil
}

func (r orderRepo) CountByStatus(_ context.Context, companyID string) (map[string]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]int{}
	for _, o := range r.s.d.orders {
		if o.CompanyID == companyID {
			out[o.Status]++
		}
	}
	return out, nil
}

// ─── Billing ─────────────────────────────────────────────────────────────────

type invoiceRepo struct{ s *Store }

// Invoices repositorio de facturas.
func (s *Store) Invoices() repository.InvoiceRepository { return invoiceRepo{s} }

func (r invoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.companies[inv.CompanyID]; !ok {
		return domain.ErrNotFound
	}
	for _, e := range r.s.d.invoices {
		if e.CompanyID == inv.CompanyID && e.OrderID == inv.OrderID {
			return domain.ErrDuplicate
		}
	}
	r.s.d.invoiceSeq[inv.CompanyID]++
	inv.Number = fmt.Sprintf("INV-%06d", r.s.d.invoiceSeq[inv.CompanyID])
	r.s.d.invoices[inv.ID] = *inv
	return nil
}

func (r invoiceRepo) GetByID(_ context.Context, companyID, id string) (*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.d.invoices[id]
	if !ok || inv.CompanyID != companyID {
		return nil, nil
	}
	return &inv, nil
}

func (r invoiceRepo) GetByOrder(_ context.Context, companyID, orderID string) (*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, inv := range r.s.d.invoices {
		if inv.CompanyID == companyID && inv.OrderID == orderID {
			inv := inv
			return &inv, nil
		}
	}
	return nil, nil
}

func (r invoiceRepo) List(_ context.Context, companyID string, limit, offset int) ([]*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Invoice
	for _, inv := range r.s.d.invoices {
		if inv.CompanyID == companyID {
			inv := inv
			out = append(out, &inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number > out[j].Number })
	return paginate(out, limit, offset), nil
}

func (r invoiceRepo) UpdateStatus(_ context.Context, companyID, id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.d.invoices[id]
	if !ok || inv.CompanyID != companyID {
		return domain.ErrNotFound
	}
	inv.Status = status
	r.s.d.invoices[id] = inv
	return nil
}

type paymentRepo struct{ s *Store }

// Payments repositorio de pagos.
func (s *Store) Payments() repository.PaymentRepository { return paymentRepo{s} }

func (r paymentRepo) Create(_ context.Context, p *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.d.payments {
		if e.ProviderID == p.ProviderID {
			return domain.ErrDuplicate
		}
	}
	r.s.d.payments[p.ID] = *p
	return nil
}

func (r paymentRepo) GetByProviderID(_ context.Context, providerID string) (*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.d.payments {
		if p.ProviderID == providerID {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r paymentRepo) ListByOrder(_ context.Context, companyID, orderID string) ([]*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Payment
	for _, p := range r.s.d.payments {
		if p.CompanyID == companyID && p.OrderID == orderID {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r paymentRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.d.payments[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = status
	r.s.d.payments[id] = p
	return nil
}

// ─── Procurement ─────────────────────────────────────────────────────────────

type supplierRepo struct{ s *Store }

// Suppliers repositorio de proveedores.
func (s *Store) Suppliers() repository.SupplierRepository { return supplierRepo{s} }

func (r supplierRepo) Create(_ context.Context, sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.suppliers[sp.ID] = *sp
	return nil
}

func (r supplierRepo) GetByID(_ context.Context, companyID, id string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.d.suppliers[id]
	if !ok || sp.CompanyID != companyID {
		return nil, nil
	}
	return &sp, nil
}

func (r supplierRepo) Update(_ context.Context, sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.d.suppliers[sp.ID]
	if !ok || cur.CompanyID != sp.CompanyID {
		return domain.ErrNotFound
	}
	r.s.d.suppliers[sp.ID] = *sp
	return nil
}

func (r supplierRepo) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.d.suppliers[id]
	if !ok || sp.CompanyID != companyID {
		return domain.ErrNotFound
	}
	for _, p := range r.s.d.supPays {
		if p.SupplierID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.d.suppliers, id)
	return nil
}

func (r supplierRepo) List(_ context.Context, companyID string, limit, offset int) ([]*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Supplier
	for _, sp := range r.s.d.suppliers {
		if sp.CompanyID == companyID {
			sp := sp
			out = append(out, &sp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

type supplierPaymentRepo struct{ s *Store }

// SupplierPayments repositorio de pagos a proveedores.
func (s *Store) SupplierPayments() repository.SupplierPaymentRepository {
	return supplierPaymentRepo{s}
}

func (r supplierPaymentRepo) Create(_ context.Context, p *entity.SupplierPayment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.d.suppliers[p.SupplierID]
	if !ok || sp.CompanyID != p.CompanyID {
		return domain.ErrNotFound
	}
	r.s.d.supPays[p.ID] = *p
	return nil
}

func (r supplierPaymentRepo) List(_ context.Context, companyID, supplierID string, limit, offset int) ([]*entity.SupplierPayment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.SupplierPayment
	for _, p := range r.s.d.supPays {
		if p.CompanyID == companyID && (supplierID == "" || p.SupplierID == supplierID) {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaidAt.After(out[j].PaidAt) })
	return paginate(out, limit, offset), nil
}

// ─── Leads ───────────────────────────────────────────────────────────────────

type leadRepo struct{ s *Store }

// Leads repositorio de leads.
func (s *Store) Leads() repository.LeadRepository { return leadRepo{s} }

func (r leadRepo) Create(_ context.Context, l *entity.Lead) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.leads[l.ID] = *l
	return nil
}

func (r leadRepo) GetByID(_ context.Context, companyID, id string) (*entity.Lead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.d.leads[id]
	if !ok || l.CompanyID != companyID {
		return nil, nil
	}
	return &l, nil
}

func (r leadRepo) Update(_ context.Context, l *entity.Lead) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.d.leads[l.ID]
	if !ok || cur.CompanyID != l.CompanyID {
		return domain.ErrNotFound
	}
	r.s.d.leads[l.ID] = *l
	return nil
}

func (r leadRepo) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.d.leads[id]
	if !ok || l.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.s.d.leads, id)
	return nil
}

func (r leadRepo) List(_ context.Context, companyID, status string, limit, offset int) ([]*entity.Lead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Lead
	for _, l := range r.s.d.leads {
		if l.CompanyID == companyID && (status == "" || l.Status == status) {
			l := l
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

func (r leadRepo) CountOpen(_ context.Context, companyID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, l := range r.s.d.leads {
		if l.CompanyID == companyID && l.Status != entity.LeadStatusLost && l.Status != entity.LeadStatusWon {
			n++
		}
	}
	return n, nil
}

// ─── Warehouses ──────────────────────────────────────────────────────────────

type warehouseRepo struct{ s *Store }

// Warehouses repositorio de bodegas.
func (s *Store) Warehouses() repository.WarehouseRepository { return warehouseRepo{s} }

func (r warehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.warehouses[w.ID] = *w
	return nil
}

func (r warehouseRepo) GetByID(_ context.Context, companyID, id string) (*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.d.warehouses[id]
	if !ok || w.CompanyID != companyID {
		return nil, nil
	}
	return &w, nil
}

func (r warehouseRepo) List(_ context.Context, companyID string) ([]*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Warehouse
	for _, w := range r.s.d.warehouses {
		if w.CompanyID == companyID {
			w := w
			out = append(out, &w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type managerRepo struct{ s *Store }

// WarehouseManagers repositorio de asignaciones de responsables.
func (s *Store) WarehouseManagers() repository.WarehouseManagerRepository { return managerRepo{s} }

func (r managerRepo) Create(_ context.Context, m *entity.WarehouseManager) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.d.managers {
		if e.CompanyID == m.CompanyID && e.UserID == m.UserID && e.WarehouseID == m.WarehouseID {
			return domain.ErrDuplicate
		}
	}
	r.s.d.managers[m.ID] = *m
	return nil
}

func (r managerRepo) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.d.managers[id]
	if !ok || m.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.s.d.managers, id)
	return nil
}

func (r managerRepo) List(_ context.Context, companyID string) ([]*entity.WarehouseManager, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.WarehouseManager
	for _, m := range r.s.d.managers {
		if m.CompanyID == companyID {
			m := m
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AssignedAt.Before(out[j].AssignedAt) })
	return out, nil
}

func (r managerRepo) Exists(_ context.Context, companyID, userID, warehouseID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.d.managers {
		if m.CompanyID == companyID && m.UserID == userID && m.WarehouseID == warehouseID {
			return true, nil
		}
	}
	return false, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
