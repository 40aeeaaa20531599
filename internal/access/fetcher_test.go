package access_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freshbreeze-api/internal/access"
)

type fakeSource struct {
	perms   []string
	modules []string
	err     error
	calls   atomic.Int32
	gate    chan struct{} // si no es nil, bloquea hasta cerrarse
	entered chan struct{}
	once    sync.Once
}

func (s *fakeSource) UserPermissions(ctx context.Context, _, _ string) ([]string, error) {
	s.calls.Add(1)
	if s.gate != nil {
		s.once.Do(func() { close(s.entered) })
		select {
		case <-s.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.perms, nil
}

func (s *fakeSource) UserModules(_ context.Context, _, _ string) ([]string, error) {
	return s.modules, nil
}

func TestFetch_DevuelvePermisosYModulos(t *testing.T) {
	src := &fakeSource{perms: []string{"orders.view", "orders.manage"}, modules: []string{"sales"}}
	f := access.NewFetcher(src, 0, zerolog.Nop())

	g, complete := f.Fetch(context.Background(), "u-1", "c-1")
	assert.True(t, complete)
	assert.Equal(t, []string{"orders.view", "orders.manage"}, g.Permissions)
	assert.Equal(t, []string{"sales"}, g.Modules)
	assert.True(t, g.HasPermission("orders.manage"))
	assert.True(t, g.HasModule("sales"))
	assert.False(t, g.HasModule("procurement"))
}

func TestFetch_ErrorDevuelveVacioSinPanico(t *testing.T) {
	src := &fakeSource{err: errors.New("rpc rechazada")}
	f := access.NewFetcher(src, time.Minute, zerolog.Nop())

	g, complete := f.Fetch(context.Background(), "u-1", "c-1")
	assert.False(t, complete, "un error no es un resultado definitivo")
	require.NotNil(t, g.Permissions)
	assert.Empty(t, g.Permissions)
	assert.Empty(t, g.Modules)

	// el error no se cachea: el siguiente intento vuelve a consultar
	f.Fetch(context.Background(), "u-1", "c-1")
	assert.EqualValues(t, 2, src.calls.Load())
}

func TestFetch_SinUsuarioOEmpresaNoConsulta(t *testing.T) {
	src := &fakeSource{perms: []string{"x"}}
	f := access.NewFetcher(src, 0, zerolog.Nop())

	g, complete := f.Fetch(context.Background(), "", "c-1")
	assert.True(t, complete)
	assert.Empty(t, g.Permissions)
	g, _ = f.Fetch(context.Background(), "u-1", "")
	assert.Empty(t, g.Permissions)
	assert.Zero(t, src.calls.Load())
}

func TestFetch_CacheEInvalidate(t *testing.T) {
	src := &fakeSource{perms: []string{"products.view"}}
	f := access.NewFetcher(src, time.Minute, zerolog.Nop())

	f.Fetch(context.Background(), "u-1", "c-1")
	f.Fetch(context.Background(), "u-1", "c-1")
	assert.EqualValues(t, 1, src.calls.Load(), "la segunda consulta sale de caché")

	f.Invalidate("u-1", "c-1")
	f.Fetch(context.Background(), "u-1", "c-1")
	assert.EqualValues(t, 2, src.calls.Load())
}

func TestFetch_DeduplicaConsultasSimultaneas(t *testing.T) {
	src := &fakeSource{
		perms:   []string{"orders.view"},
		gate:    make(chan struct{}),
		entered: make(chan struct{}),
	}
	f := access.NewFetcher(src, 0, zerolog.Nop())

	var wg sync.WaitGroup
	results := make([]access.Grants, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _ = f.Fetch(context.Background(), "u-1", "c-1")
	}()
	<-src.entered

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[1], _ = f.Fetch(context.Background(), "u-1", "c-1")
	}()
	time.Sleep(20 * time.Millisecond)
	close(src.gate)
	wg.Wait()

	assert.EqualValues(t, 1, src.calls.Load(), "misma clave en vuelo: una sola consulta")
	assert.Equal(t, []string{"orders.view"}, results[0].Permissions)
	assert.Equal(t, []string{"orders.view"}, results[1].Permissions)
}

func TestFetch_ContextoCanceladoDevuelveVacioIncompleto(t *testing.T) {
	src := &fakeSource{
		perms:   []string{"orders.view"},
		gate:    make(chan struct{}),
		entered: make(chan struct{}),
	}
	f := access.NewFetcher(src, 0, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	type result struct {
		g        access.Grants
		complete bool
	}
	done := make(chan result)
	go func() {
		g, complete := f.Fetch(ctx, "u-1", "c-1")
		done <- result{g, complete}
	}()
	<-src.entered
	cancel()

	r := <-done
	assert.Empty(t, r.g.Permissions)
	assert.False(t, r.complete)
	close(src.gate)
}
