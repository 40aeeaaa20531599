// Package access obtiene los permisos y módulos accesibles de un usuario dentro de una empresa.
package access

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// fetchTimeout límite de una consulta compartida, independiente del contexto de cada llamador.
const fetchTimeout = 10 * time.Second

// Source procedimientos de permisos. Lo implementa repository.PermissionRepository.
type Source interface {
	UserPermissions(ctx context.Context, userID, companyID string) ([]string, error)
	UserModules(ctx context.Context, userID, companyID string) ([]string, error)
}

// Grants permisos y módulos concedidos a un usuario en una empresa.
type Grants struct {
	Permissions []string `json:"permissions"`
	Modules     []string `json:"modules"`
}

// Empty grants vacíos (fail-closed).
func Empty() Grants {
	return Grants{Permissions: []string{}, Modules: []string{}}
}

// HasPermission informa si code está concedido.
func (g Grants) HasPermission(code string) bool {
	return contains(g.Permissions, code)
}

// HasModule informa si el módulo es accesible.
func (g Grants) HasModule(module string) bool {
	return contains(g.Modules, module)
}

func (g Grants) clone() Grants {
	return Grants{
		Permissions: append([]string{}, g.Permissions...),
		Modules:     append([]string{}, g.Modules...),
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// Fetcher consulta los permisos de (usuario, empresa). Las consultas simultáneas para la misma
// clave se unifican y el resultado se cachea por un tiempo corto.
type Fetcher struct {
	src   Source
	group singleflight.Group
	cache *gocache.Cache
	log   zerolog.Logger
}

// NewFetcher construye el fetcher. ttl <= 0 desactiva la caché.
func NewFetcher(src Source, ttl time.Duration, log zerolog.Logger) *Fetcher {
	f := &Fetcher{src: src, log: log}
	if ttl > 0 {
		f.cache = gocache.New(ttl, 2*ttl)
	}
	return f
}

func key(userID, companyID string) string {
	return userID + "|" + companyID
}

// Fetch devuelve los grants del usuario. Nunca falla: ante error registra y devuelve vacío.
// complete=false indica que la consulta no terminó (error o contexto cancelado) y el
// resultado vacío vale solo para esta llamada.
func (f *Fetcher) Fetch(ctx context.Context, userID, companyID string) (g Grants, complete bool) {
	if userID == "" || companyID == "" {
		return Empty(), true
	}
	k := key(userID, companyID)
	if f.cache != nil {
		if v, ok := f.cache.Get(k); ok {
			return v.(Grants).clone(), true
		}
	}

	ch := f.group.DoChan(k, func() (interface{}, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()
		return f.load(fctx, userID, companyID)
	})

	select {
	case <-ctx.Done():
		return Empty(), false
	case res := <-ch:
		if res.Err != nil {
			f.log.Error().Err(res.Err).
				Str("user_id", userID).Str("company_id", companyID).
				Msg("access: consulta de permisos")
			return Empty(), false
		}
		g := res.Val.(Grants)
		if f.cache != nil {
			f.cache.SetDefault(k, g)
		}
		return g.clone(), true
	}
}

func (f *Fetcher) load(ctx context.Context, userID, companyID string) (Grants, error) {
	perms, err := f.src.UserPermissions(ctx, userID, companyID)
	if err != nil {
		return Grants{}, err
	}
	modules, err := f.src.UserModules(ctx, userID, companyID)
	if err != nil {
		return Grants{}, err
	}
	g := Empty()
	g.Permissions = append(g.Permissions, perms...)
	g.Modules = append(g.Modules, modules...)
	return g, nil
}

// Invalidate descarta los grants cacheados de (usuario, empresa).
func (f *Fetcher) Invalidate(userID, companyID string) {
	if f.cache != nil {
		f.cache.Delete(key(userID, companyID))
	}
}
