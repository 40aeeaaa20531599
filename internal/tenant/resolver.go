// Package tenant resuelve la empresa (tenant) de una petición a partir del subdominio,
// de un override en desarrollo o de la empresa ya cacheada en la sesión.
package tenant

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
)

// Lookup resuelve un slug a empresa. Lo implementa repository.CompanyRepository.
type Lookup interface {
	GetBySlug(ctx context.Context, slug string) (*entity.Company, error)
}

// Cache caché compartida slug → company id (Redis o memoria).
type Cache interface {
	Get(ctx context.Context, slug string) (companyID string, ok bool, err error)
	Set(ctx context.Context, slug, companyID string) error
}

// Config parámetros de resolución.
type Config struct {
	RootDomain  string
	DefaultSlug string
}

// Resolver deriva el company id de una petición.
type Resolver struct {
	lookup Lookup
	cache  Cache
	cfg    Config
	log    zerolog.Logger
}

// NewResolver construye el resolver. cache puede ser nil.
func NewResolver(lookup Lookup, cache Cache, cfg Config, log zerolog.Logger) *Resolver {
	if cfg.DefaultSlug == "" {
		cfg.DefaultSlug = "default"
	}
	return &Resolver{lookup: lookup, cache: cache, cfg: cfg, log: log}
}

// Resolve devuelve el company id o "" si no hay empresa. Nunca devuelve error:
// los fallos de lookup se registran y se tratan como "sin empresa, sin permisos".
// Si la sesión ya tiene empresa no se consulta nada.
func (r *Resolver) Resolve(ctx context.Context, sess *Session, in Input) string {
	if id := sess.CompanyID(); id != "" {
		return id
	}

	sub := r.Subdomain(in)

	if r.cache != nil {
		id, ok, err := r.cache.Get(ctx, sub)
		if err != nil {
			r.log.Warn().Err(err).Str("subdomain", sub).Msg("tenant: lectura de caché")
		} else if ok {
			sess.set(id, sub)
			return id
		}
	}

	company, err := r.lookup.GetBySlug(ctx, sub)
	if err != nil {
		r.log.Warn().Err(err).Str("subdomain", sub).Msg("tenant: lookup de empresa")
		return ""
	}
	if company == nil {
		r.log.Debug().Str("subdomain", sub).Msg("tenant: subdominio sin empresa")
		return ""
	}
	if company.Status != entity.CompanyStatusActive {
		r.log.Info().Str("subdomain", sub).Str("status", company.Status).Msg("tenant: empresa no activa")
		return ""
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, sub, company.ID); err != nil {
			r.log.Warn().Err(err).Str("subdomain", sub).Msg("tenant: escritura de caché")
		}
	}
	sess.set(company.ID, sub)
	return company.ID
}
