// Package guard decide si un usuario puede entrar a una ruta protegida del dashboard.
package guard

import (
	"sort"
	"strings"

	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
)

// State resultado de evaluar una ruta.
type State string

const (
	StateLoading         State = "loading"
	StateUnauthenticated State = "unauthenticated"
	StateUnauthorized    State = "unauthorized"
	StateAuthorized      State = "authorized"
)

// Rutas de redirección.
const (
	LoginPath   = "/login"
	DefaultPath = "/"
)

// Identity usuario autenticado tal como lo ve el guard.
type Identity struct {
	UserID string
	Roles  []string
}

// Input entrada del guard. User nil significa sin sesión.
type Input struct {
	Loading  bool
	User     *Identity
	Required []string
}

// Decision estado resultante y, si aplica, a dónde redirigir.
type Decision struct {
	State    State  `json:"state"`
	Redirect string `json:"redirect,omitempty"`
}

// Evaluate aplica las reglas en orden: cargando, sin sesión, sin rol requerido, autorizado.
// Sin roles requeridos basta con estar autenticado; admin pasa siempre.
func Evaluate(in Input) Decision {
	switch {
	case in.Loading:
		return Decision{State: StateLoading}
	case in.User == nil:
		return Decision{State: StateUnauthenticated, Redirect: LoginPath}
	}
	roles := entity.Roles(in.User.Roles)
	if len(in.Required) == 0 || roles.IsAdmin() || roles.HasAny(in.Required...) {
		return Decision{State: StateAuthorized}
	}
	return Decision{State: StateUnauthorized, Redirect: DefaultPath}
}

// Route ruta protegida y los roles que admite.
type Route struct {
	Prefix string   `json:"prefix"`
	Roles  []string `json:"roles"`
}

// Table rutas protegidas; Match elige el prefijo más largo.
type Table struct {
	routes []Route
}

// NewTable construye la tabla ordenando por longitud de prefijo descendente.
func NewTable(routes ...Route) *Table {
	rs := append([]Route{}, routes...)
	sort.SliceStable(rs, func(i, j int) bool { return len(rs[i].Prefix) > len(rs[j].Prefix) })
	return &Table{routes: rs}
}

// Match devuelve la ruta que cubre path. ok=false si la ruta no está protegida.
func (t *Table) Match(path string) (Route, bool) {
	path = normalize(path)
	for _, r := range t.routes {
		p := normalize(r.Prefix)
		if path == p || strings.HasPrefix(path, p+"/") || p == "/" {
			return r, true
		}
	}
	return Route{}, false
}

// Check evalúa path para user. Las rutas fuera de la tabla son públicas.
func (t *Table) Check(path string, loading bool, user *Identity) Decision {
	r, ok := t.Match(path)
	if !ok {
		return Decision{State: StateAuthorized}
	}
	return Evaluate(Input{Loading: loading, User: user, Required: r.Roles})
}

func normalize(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}

// DefaultRoutes páginas del dashboard y los roles que las abren. Coincide con menu.Default.
func DefaultRoutes() *Table {
	const (
		admin     = entity.RoleAdmin
		sales     = entity.RoleSales
		accounts  = entity.RoleAccounts
		warehouse = entity.RoleWarehouseManager
		user      = entity.RoleUser
	)
	return NewTable(
		Route{Prefix: "/dashboard", Roles: []string{admin, sales, accounts, warehouse}},
		Route{Prefix: "/dashboard/products", Roles: []string{admin, warehouse}},
		Route{Prefix: "/dashboard/categories", Roles: []string{admin}},
		Route{Prefix: "/dashboard/inventory", Roles: []string{admin, warehouse}},
		Route{Prefix: "/dashboard/orders", Roles: []string{admin, sales, warehouse}},
		Route{Prefix: "/dashboard/leads", Roles: []string{admin, sales}},
		Route{Prefix: "/dashboard/invoices", Roles: []string{admin, sales, accounts}},
		Route{Prefix: "/dashboard/suppliers", Roles: []string{admin, accounts}},
		Route{Prefix: "/dashboard/supplier-payments", Roles: []string{admin, accounts}},
		Route{Prefix: "/dashboard/warehouses", Roles: []string{admin, warehouse}},
		Route{Prefix: "/dashboard/warehouse-managers", Roles: []string{admin}},
		Route{Prefix: "/dashboard/users", Roles: []string{admin}},
		Route{Prefix: "/dashboard/stats", Roles: []string{admin}},
		Route{Prefix: "/account", Roles: []string{admin, sales, accounts, warehouse, user}},
		Route{Prefix: "/checkout"},
	)
}
