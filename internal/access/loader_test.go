package access_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freshbreeze-api/internal/access"
)

// scriptedGetter responde según la empresa; "slow" bloquea hasta release.
type scriptedGetter struct {
	mu      sync.Mutex
	calls   int
	entered chan struct{}
	release chan struct{}
}

func (g *scriptedGetter) Fetch(ctx context.Context, _, companyID string) (access.Grants, bool) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	if companyID == "slow" {
		close(g.entered)
		<-g.release
		if ctx.Err() != nil {
			return access.Empty(), false
		}
		return access.Grants{Permissions: []string{"stale"}, Modules: []string{}}, true
	}
	return access.Grants{Permissions: []string{"fresh." + companyID}, Modules: []string{"sales"}}, true
}

func TestLoader_RPCFallidaDejaVacioYLoadingFalse(t *testing.T) {
	src := &fakeSource{err: errors.New("rpc rechazada")}
	l := access.NewLoader(access.NewFetcher(src, 0, zerolog.Nop()))

	assert.NotPanics(t, func() {
		st := l.Load(context.Background(), "u-1", "c-1")
		assert.False(t, st.Loading)
		assert.NotNil(t, st.Permissions)
		assert.Empty(t, st.Permissions)
		assert.Empty(t, st.Modules)
	})
}

func TestLoader_UltimaCargaGana(t *testing.T) {
	g := &scriptedGetter{entered: make(chan struct{}), release: make(chan struct{})}
	l := access.NewLoader(g)

	done := make(chan access.State)
	go func() { done <- l.Load(context.Background(), "u-1", "slow") }()
	<-g.entered

	// mientras la primera está en vuelo, se inicia otra
	assert.True(t, l.Snapshot().Loading)
	st := l.Load(context.Background(), "u-1", "c-2")
	assert.False(t, st.Loading)
	assert.Equal(t, []string{"fresh.c-2"}, st.Permissions)

	close(g.release)
	<-done

	final := l.Snapshot()
	assert.False(t, final.Loading)
	assert.Equal(t, []string{"fresh.c-2"}, final.Permissions, "la respuesta tardía se descarta")
}

func TestLoader_EnsureSoloRecargaAlCambiarIdentidad(t *testing.T) {
	g := &scriptedGetter{}
	l := access.NewLoader(g)

	l.Ensure(context.Background(), "u-1", "c-1")
	l.Ensure(context.Background(), "u-1", "c-1")
	assert.Equal(t, 1, g.calls)

	st := l.Ensure(context.Background(), "u-1", "c-9")
	assert.Equal(t, 2, g.calls)
	assert.Equal(t, []string{"fresh.c-9"}, st.Permissions)

	l.Ensure(context.Background(), "u-2", "c-9")
	assert.Equal(t, 3, g.calls)
}

func TestLoader_ResetVaciaEstado(t *testing.T) {
	l := access.NewLoader(&scriptedGetter{})
	l.Load(context.Background(), "u-1", "c-1")
	l.Reset()

	st := l.Snapshot()
	assert.False(t, st.Loading)
	assert.Empty(t, st.Permissions)
	assert.Empty(t, st.Modules)
}

// gatedGetter bloquea cada consulta hasta release o hasta que se cancele el contexto.
type gatedGetter struct {
	mu      sync.Mutex
	calls   int
	entered chan struct{}
	release chan struct{}
}

func newGatedGetter() *gatedGetter {
	return &gatedGetter{entered: make(chan struct{}, 8), release: make(chan struct{})}
}

func (g *gatedGetter) Fetch(ctx context.Context, _, _ string) (access.Grants, bool) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	g.entered <- struct{}{}
	select {
	case <-g.release:
		return access.Grants{Permissions: []string{"orders.view"}, Modules: []string{"sales"}}, true
	case <-ctx.Done():
		return access.Empty(), false
	}
}

func (g *gatedGetter) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func TestLoader_ContextoCanceladoNoQuedaCacheado(t *testing.T) {
	g := newGatedGetter()
	close(g.release)
	l := access.NewLoader(g)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// con el contexto ya cancelado la consulta puede o no completarse; si no se completa
	// el vacío vale solo para esta llamada
	first := l.Ensure(ctx, "u-1", "c-1")
	assert.False(t, first.Loading)

	st := l.Ensure(context.Background(), "u-1", "c-1")
	assert.False(t, st.Loading)
	assert.Equal(t, []string{"orders.view"}, st.Permissions)
	assert.Equal(t, []string{"sales"}, st.Modules)
}

func TestLoader_CargaInterrumpidaSeReintenta(t *testing.T) {
	g := newGatedGetter()
	l := access.NewLoader(g)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan access.State)
	go func() { done <- l.Ensure(ctx, "u-1", "c-1") }()
	<-g.entered
	cancel()

	st := <-done
	assert.False(t, st.Loading)
	assert.Empty(t, st.Permissions)

	close(g.release)
	st = l.Ensure(context.Background(), "u-1", "c-1")
	assert.Equal(t, []string{"orders.view"}, st.Permissions)
	assert.Equal(t, 2, g.Calls(), "el vacío de la carga cancelada no se reutiliza")
}

func TestLoader_EnsureConcurrenteEsperaLaCargaEnCurso(t *testing.T) {
	g := newGatedGetter()
	l := access.NewLoader(g)

	results := make(chan access.State, 2)
	go func() { results <- l.Ensure(context.Background(), "u-1", "c-1") }()
	<-g.entered
	go func() { results <- l.Ensure(context.Background(), "u-1", "c-1") }()
	time.Sleep(20 * time.Millisecond)
	close(g.release)

	for i := 0; i < 2; i++ {
		st := <-results
		assert.False(t, st.Loading)
		assert.Equal(t, []string{"orders.view"}, st.Permissions)
		assert.Equal(t, []string{"sales"}, st.Modules)
	}
	assert.Equal(t, 1, g.Calls(), "la segunda llamada se une a la carga en curso")
}

func TestLoader_EsperaCanceladaNoInterrumpeLaCarga(t *testing.T) {
	g := newGatedGetter()
	l := access.NewLoader(g)

	first := make(chan access.State, 1)
	go func() { first <- l.Ensure(context.Background(), "u-1", "c-1") }()
	<-g.entered

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	waiter := l.Ensure(ctx, "u-1", "c-1")
	assert.False(t, waiter.Loading)
	assert.Empty(t, waiter.Permissions)

	close(g.release)
	st := <-first
	assert.Equal(t, []string{"orders.view"}, st.Permissions)
	assert.Equal(t, 1, g.Calls())
}

func TestLoader_CargaEnCursoFuePrimeroCanceladaElQueEsperaReintenta(t *testing.T) {
	g := newGatedGetter()
	l := access.NewLoader(g)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan access.State, 1)
	go func() { first <- l.Ensure(ctx, "u-1", "c-1") }()
	<-g.entered

	second := make(chan access.State, 1)
	go func() { second <- l.Ensure(context.Background(), "u-1", "c-1") }()
	time.Sleep(20 * time.Millisecond)
	cancel()
	<-first

	// el que esperaba inicia su propia carga
	<-g.entered
	close(g.release)
	st := <-second
	require.False(t, st.Loading)
	assert.Equal(t, []string{"orders.view"}, st.Permissions)
	assert.Equal(t, 2, g.Calls())
}
