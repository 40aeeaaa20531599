// Package session mantiene el contexto explícito de cada token emitido: la empresa resuelta
// y el estado de permisos. Reemplaza el estado global del cliente y se invalida en logout.
package session

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jhoicas/freshbreeze-api/internal/access"
	"github.com/jhoicas/freshbreeze-api/internal/tenant"
)

// Revocations lista de tokens revocados (jti). Implementaciones en memoria y en Redis.
type Revocations interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Invalidator descarta permisos cacheados de (usuario, empresa).
type Invalidator interface {
	Invalidate(userID, companyID string)
}

// Entry contexto de una sesión.
type Entry struct {
	TokenID   string
	UserID    string
	CompanyID string
	Tenant    *tenant.Session
	Access    *access.Loader
}

// Store sesiones activas indexadas por jti.
type Store struct {
	entries     *gocache.Cache
	revoked     Revocations
	getter      access.Getter
	invalidator Invalidator
	ttl         time.Duration
}

// NewStore construye el store. ttl es la vida máxima de una sesión sin uso (normalmente la del JWT).
// invalidator puede ser nil.
func NewStore(getter access.Getter, invalidator Invalidator, revoked Revocations, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Store{
		entries:     gocache.New(ttl, ttl/2),
		revoked:     revoked,
		getter:      getter,
		invalidator: invalidator,
		ttl:         ttl,
	}
}

// Open devuelve la sesión del token, creándola si no existe. La empresa del token queda
// cacheada en la sesión de tenant, así que no se vuelve a resolver por host.
func (s *Store) Open(tokenID, userID, companyID string) *Entry {
	if v, ok := s.entries.Get(tokenID); ok {
		e := v.(*Entry)
		if e.UserID == userID && e.CompanyID == companyID {
			return e
		}
	}
	e := &Entry{
		TokenID:   tokenID,
		UserID:    userID,
		CompanyID: companyID,
		Tenant:    tenant.NewSession(companyID),
		Access:    access.NewLoader(s.getter),
	}
	s.entries.SetDefault(tokenID, e)
	return e
}

// Permissions carga (o reutiliza) el estado de permisos de la sesión.
func (e *Entry) Permissions(ctx context.Context) access.State {
	return e.Access.Ensure(ctx, e.UserID, e.Tenant.CompanyID())
}

// IsRevoked informa si el token fue cerrado con Close.
func (s *Store) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if s.revoked == nil || tokenID == "" {
		return false, nil
	}
	return s.revoked.IsRevoked(ctx, tokenID)
}

// Close cierra la sesión: revoca el token por el tiempo que le quede, invalida la empresa
// cacheada y vacía los permisos.
func (s *Store) Close(ctx context.Context, tokenID, userID, companyID string, remaining time.Duration) error {
	if v, ok := s.entries.Get(tokenID); ok {
		e := v.(*Entry)
		e.Tenant.Invalidate()
		e.Access.Reset()
		s.entries.Delete(tokenID)
	}
	s.Forget(userID, companyID)
	if s.revoked == nil || remaining <= 0 {
		return nil
	}
	return s.revoked.Revoke(ctx, tokenID, remaining)
}

// Forget descarta los permisos cacheados de un usuario (ej. tras cambiar sus roles), tanto en
// el fetcher como en las sesiones abiertas de ese usuario en la empresa.
func (s *Store) Forget(userID, companyID string) {
	if s.invalidator != nil {
		s.invalidator.Invalidate(userID, companyID)
	}
	for _, item := range s.entries.Items() {
		e, ok := item.Object.(*Entry)
		if ok && e.UserID == userID && e.CompanyID == companyID {
			e.Access.Reset()
		}
	}
}

// Count sesiones abiertas en este proceso.
func (s *Store) Count() int {
	return s.entries.ItemCount()
}
