package tenant

import "sync"

// Session guarda la empresa resuelta para un cliente. Se pasa explícitamente por la cadena
// de llamadas y se invalida en logout. Seguro para uso concurrente.
type Session struct {
	mu        sync.RWMutex
	companyID string
	subdomain string
}

// NewSession crea una sesión, opcionalmente ya asociada a una empresa (ej. company_id del JWT).
func NewSession(companyID string) *Session {
	return &Session{companyID: companyID}
}

// CompanyID empresa cacheada; vacío si aún no se resolvió.
func (s *Session) CompanyID() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.companyID
}

// Subdomain slug con el que se resolvió la empresa (vacío si vino del token).
func (s *Session) Subdomain() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subdomain
}

func (s *Session) set(companyID, subdomain string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.companyID = companyID
	s.subdomain = subdomain
	s.mu.Unlock()
}

// Invalidate borra la empresa cacheada; la próxima resolución vuelve a consultar.
func (s *Session) Invalidate() {
	s.set("", "")
}
