package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freshbreeze-api/internal/application/auth"
	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
	"github.com/jhoicas/freshbreeze-api/internal/testutil"
	"github.com/jhoicas/freshbreeze-api/pkg/jwt"
)

const testSecret = "test-secret"

type closeCall struct {
	tokenID, userID, companyID string
	remaining                  time.Duration
}

type fakeSessions struct{ calls []closeCall }

func (f *fakeSessions) Close(_ context.Context, tokenID, userID, companyID string, remaining time.Duration) error {
	f.calls = append(f.calls, closeCall{tokenID, userID, companyID, remaining})
	return nil
}

func newUseCase(store *testutil.Store) (*auth.AuthUseCase, *fakeSessions) {
	sess := &fakeSessions{}
	uc := auth.NewAuthUseCase(store.Users(), store.Companies(), sess,
		auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"}, zerolog.Nop())
	return uc, sess
}

// ─── Register ─────────────────────────────────────────────────────────────────

func TestRegister_CreaClienteConRolUser(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	uc, _ := newUseCase(store)

	out, err := uc.Register(context.Background(), acme.ID, dto.RegisterRequest{
		Email: " Ana@Acme.test ", Password: "secreto123", Name: "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@acme.test", out.Email)
	assert.Equal(t, []string{entity.RoleUser}, out.Roles)
	assert.Equal(t, acme.ID, out.CompanyID)
}

func TestRegister_EmailDuplicadoEnLaEmpresa(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	store.SeedUser(acme.ID, "ana@acme.test", "secreto123", entity.RoleUser)
	uc, _ := newUseCase(store)

	_, err := uc.Register(context.Background(), acme.ID, dto.RegisterRequest{
		Email: "ana@acme.test", Password: "secreto123",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_SinEmpresaResuelta(t *testing.T) {
	uc, _ := newUseCase(testutil.NewStore())
	_, err := uc.Register(context.Background(), "", dto.RegisterRequest{Email: "a@b.c", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrNoTenant)
}

func TestRegister_PasswordCortaEsInvalida(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	uc, _ := newUseCase(store)

	_, err := uc.Register(context.Background(), acme.ID, dto.RegisterRequest{Email: "a@b.c", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── Login / Logout ───────────────────────────────────────────────────────────

func TestLogin_TokenIncluyeRolesYEmpresa(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	u := store.SeedUser(acme.ID, "ventas@acme.test", "secreto123", entity.RoleSales)
	uc, _ := newUseCase(store)

	out, err := uc.Login(context.Background(), acme.ID, dto.LoginRequest{Email: "VENTAS@acme.test", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, 3600, out.ExpiresIn)

	claims, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, acme.ID, claims.CompanyID)
	assert.Equal(t, []string{entity.RoleSales}, claims.Roles)
	assert.NotEmpty(t, claims.ID)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	store.SeedUser(acme.ID, "ana@acme.test", "secreto123", entity.RoleUser)
	uc, _ := newUseCase(store)

	_, err := uc.Login(context.Background(), acme.ID, dto.LoginRequest{Email: "ana@acme.test", Password: "otra-cosa"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioDeOtraEmpresaNoEntra(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	globex := store.SeedCompany("globex")
	store.SeedUser(acme.ID, "ana@acme.test", "secreto123", entity.RoleUser)
	uc, _ := newUseCase(store)

	_, err := uc.Login(context.Background(), globex.ID, dto.LoginRequest{Email: "ana@acme.test", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Sin subdominio se busca en cualquier empresa.
	out, err := uc.Login(context.Background(), "", dto.LoginRequest{Email: "ana@acme.test", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, acme.ID, out.User.CompanyID)
}

func TestLogout_CierraSesionConTiempoRestante(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	store.SeedUser(acme.ID, "ana@acme.test", "secreto123", entity.RoleUser)
	uc, sess := newUseCase(store)

	out, err := uc.Login(context.Background(), acme.ID, dto.LoginRequest{Email: "ana@acme.test", Password: "secreto123"})
	require.NoError(t, err)
	claims, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)

	require.NoError(t, uc.Logout(context.Background(), claims))
	require.Len(t, sess.calls, 1)
	assert.Equal(t, claims.ID, sess.calls[0].tokenID)
	assert.Equal(t, acme.ID, sess.calls[0].companyID)
	assert.Greater(t, sess.calls[0].remaining, 59*time.Minute)
}

// ─── Perfil ───────────────────────────────────────────────────────────────────

func TestUpdateProfile_CambiaPasswordSinTocarRoles(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	u := store.SeedUser(acme.ID, "ana@acme.test", "secreto123", entity.RoleSales)
	uc, _ := newUseCase(store)

	name, pass := "Ana María", "nueva-clave-1"
	out, err := uc.UpdateProfile(context.Background(), acme.ID, u.ID, dto.UpdateProfileRequest{Name: &name, Password: &pass})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", out.Name)
	assert.Equal(t, []string{entity.RoleSales}, out.Roles)

	_, err = uc.Login(context.Background(), acme.ID, dto.LoginRequest{Email: "ana@acme.test", Password: "nueva-clave-1"})
	assert.NoError(t, err)
}

func TestMe_UsuarioInexistente(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	uc, _ := newUseCase(store)

	_, err := uc.Me(context.Background(), acme.ID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
