package access

import (
	"context"
	"sync"
)

// State estado observable de la carga de permisos.
type State struct {
	Loading     bool     `json:"loading"`
	Permissions []string `json:"permissions"`
	Modules     []string `json:"modules"`
	UserID      string   `json:"-"`
	CompanyID   string   `json:"-"`
}

// Getter lo que Loader necesita de Fetcher. complete=false: resultado vacío no cacheable.
type Getter interface {
	Fetch(ctx context.Context, userID, companyID string) (g Grants, complete bool)
}

// Loader mantiene el estado de permisos de una sesión. Cada Load cancela la carga anterior
// y sus resultados se descartan si llegan tarde: gana siempre la última carga iniciada.
// Ensure en cambio se une a una carga en curso para la misma identidad.
type Loader struct {
	getter Getter

	mu     sync.Mutex
	state  State
	gen    uint64
	loaded bool
	cancel context.CancelFunc
	done   chan struct{} // se cierra al terminar la carga en curso
}

// NewLoader construye un loader vacío.
func NewLoader(g Getter) *Loader {
	return &Loader{getter: g, state: State{Permissions: []string{}, Modules: []string{}}}
}

// Load consulta los permisos de (userID, companyID) y devuelve el estado final.
// Si la consulta no termina el estado queda vacío y sin marcar como cargado, así que la
// próxima llamada vuelve a consultar.
func (l *Loader) Load(ctx context.Context, userID, companyID string) State {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	if l.done != nil {
		close(l.done)
	}
	l.gen++
	gen := l.gen
	lctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	l.cancel = cancel
	l.done = done
	l.loaded = false
	l.state.Loading = true
	l.state.UserID = userID
	l.state.CompanyID = companyID
	l.mu.Unlock()

	g, complete := l.getter.Fetch(lctx, userID, companyID)

	l.mu.Lock()
	defer l.mu.Unlock()
	cancel()
	if gen != l.gen {
		// superada por una carga posterior
		return l.snapshotLocked()
	}
	l.cancel = nil
	l.done = nil
	close(done)
	l.loaded = complete
	l.state.Loading = false
	l.state.Permissions = g.Permissions
	l.state.Modules = g.Modules
	return l.snapshotLocked()
}

// Ensure carga solo si cambió la identidad o la empresa, o si nunca se cargó. Con una carga
// en curso para la misma identidad espera su resultado en lugar de cancelarla.
func (l *Loader) Ensure(ctx context.Context, userID, companyID string) State {
	for {
		l.mu.Lock()
		same := l.state.UserID == userID && l.state.CompanyID == companyID
		if same && l.loaded && !l.state.Loading {
			s := l.snapshotLocked()
			l.mu.Unlock()
			return s
		}
		if !same || !l.state.Loading {
			l.mu.Unlock()
			return l.Load(ctx, userID, companyID)
		}
		done := l.done
		l.mu.Unlock()

		select {
		case <-done:
			// la carga terminó (o fue reemplazada): se vuelve a evaluar
		case <-ctx.Done():
			return State{Permissions: []string{}, Modules: []string{}, UserID: userID, CompanyID: companyID}
		}
	}
}

// Snapshot copia del estado actual.
func (l *Loader) Snapshot() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// Reset cancela cualquier carga en curso y vacía el estado (logout, cambio de roles).
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	if l.done != nil {
		close(l.done)
		l.done = nil
	}
	l.gen++
	l.loaded = false
	l.state = State{Permissions: []string{}, Modules: []string{}}
}

func (l *Loader) snapshotLocked() State {
	s := l.state
	s.Permissions = append([]string{}, l.state.Permissions...)
	s.Modules = append([]string{}, l.state.Modules...)
	return s
}
