package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
	"github.com/jhoicas/freshbreeze-api/internal/domain/repository"
	"github.com/jhoicas/freshbreeze-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Sessions cierre de sesiones en logout (session.Store).
type Sessions interface {
	Close(ctx context.Context, tokenID, userID, companyID string, remaining time.Duration) error
}

// AuthUseCase casos de uso de autenticación: registro, login, logout y perfil propio.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	sessions    Sessions
	jwtCfg      JWTConfig
	log         zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, sessions Sessions, jwtCfg JWTConfig, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, companyRepo: companyRepo, sessions: sessions, jwtCfg: jwtCfg, log: log}
}

// Register crea un cliente (rol user) en la empresa resuelta por subdominio.
// Devuelve ErrEmailAlreadyExists si el email ya existe en esa empresa.
func (uc *AuthUseCase) Register(ctx context.Context, companyID string, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if companyID == "" {
		return nil, domain.ErrNoTenant
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil || company.Status != entity.CompanyStatusActive {
		return nil, domain.ErrNoTenant
	}
	existing, err := uc.userRepo.GetByEmailAndCompany(ctx, in.Email, companyID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Phone:        in.Phone,
		Roles:        []string{entity.RoleUser},
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Con companyID vacío (sin subdominio) busca el email en cualquier empresa.
func (uc *AuthUseCase) Login(ctx context.Context, companyID string, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var (
		user *entity.User
		err  error
	)
	if companyID != "" {
		user, err = uc.userRepo.GetByEmailAndCompany(ctx, in.Email, companyID)
	} else {
		user, err = uc.userRepo.FindByEmail(ctx, in.Email)
	}
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	return uc.issue(user)
}

// IssueToken emite un JWT para un usuario ya autenticado (ej. tras registrar la empresa).
func (uc *AuthUseCase) IssueToken(user *entity.User) (*dto.LoginResponse, error) {
	return uc.issue(user)
}

func (uc *AuthUseCase) issue(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Roles, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		User:      *dto.ToUserResponse(user),
	}, nil
}

// Logout revoca el token por el tiempo que le queda y descarta la sesión.
func (uc *AuthUseCase) Logout(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil {
		return domain.ErrUnauthorized
	}
	if err := uc.sessions.Close(ctx, claims.ID, claims.UserID, claims.CompanyID, claims.ExpiresIn()); err != nil {
		uc.log.Error().Err(err).Str("user_id", claims.UserID).Msg("no se pudo revocar el token")
		return err
	}
	return nil
}

// Me perfil del usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, companyID, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.ToUserResponse(user), nil
}

// UpdateProfile edita nombre, teléfono y/o contraseña del propio usuario. Los roles no se tocan.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, companyID, userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.Required("name")
		}
		user.Name = *in.Name
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Password != nil {
		if len(*in.Password) < 8 {
			return nil, domain.Invalid("password", "mínimo 8 caracteres")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}
