// Package auth implementa el registro y la autenticación de usuarios.
package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/cotizaperu/cotiza-api/internal/application/dto"
	"github.com/cotizaperu/cotiza-api/internal/domain"
	"github.com/cotizaperu/cotiza-api/internal/domain/entity"
	"github.com/cotizaperu/cotiza-api/internal/domain/repository"
	"github.com/cotizaperu/cotiza-api/pkg/jwt"
	"github.com/cotizaperu/cotiza-api/pkg/logger"
)

// UseCase casos de uso de autenticación.
type UseCase struct {
	users      repository.UserRepository
	jwtOpts    jwt.Options
	adminEmail string // correo que recibe rol admin al registrarse
	log        *logger.Logger
}

// New crea el caso de uso.
func New(users repository.UserRepository, jwtOpts jwt.Options, adminEmail string, log *logger.Logger) *UseCase {
	return &UseCase{users: users, jwtOpts: jwtOpts, adminEmail: strings.ToLower(adminEmail), log: log}
}

// Register crea una cuenta nueva. El rol se decide una sola vez aquí: si el
// correo coincide con ADMIN_EMAIL queda como admin, si no como user.
func (uc *UseCase) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if existing, err := uc.users.GetByEmail(ctx, email); err != nil {
		return nil, fmt.Errorf("auth: consultando email: %w", err)
	} else if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: generando hash: %w", err)
	}

	role := entity.RoleUser
	if uc.adminEmail != "" && email == uc.adminEmail {
		role = entity.RoleAdmin
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("auth: creando usuario: %w", err)
	}

	uc.log.Info().Str("user_id", user.ID).Str("role", role).Msg("usuario registrado")

	return &dto.UserResponse{ID: user.ID, Email: user.Email, Role: user.Role, IsActive: user.IsActive}, nil
}

// Login valida credenciales y emite el token. Una cuenta desactivada no puede
// entrar; el mensaje incluye el motivo si el administrador dejó uno.
func (uc *UseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("auth: consultando email: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		if user.DeactivationReason != "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountDisabled, user.DeactivationReason)
		}
		return nil, domain.ErrAccountDisabled
	}

	token, err := jwt.Generate(uc.jwtOpts, user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("auth: firmando token: %w", err)
	}

	uc.log.Info().Str("user_id", user.ID).Msg("login correcto")

	return &dto.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}
