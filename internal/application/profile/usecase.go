// Package profile gestiona el perfil del negocio: datos del emisor, identidad
// visual del PDF, cuentas bancarias, logo y credenciales del proveedor.
package profile

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cotizaperu/cotiza-api/internal/application/dto"
	"github.com/cotizaperu/cotiza-api/internal/domain"
	"github.com/cotizaperu/cotiza-api/internal/domain/entity"
	"github.com/cotizaperu/cotiza-api/internal/domain/repository"
	"github.com/cotizaperu/cotiza-api/pkg/logger"
	"github.com/cotizaperu/cotiza-api/pkg/secrets"
)

// LogoStore puerto de almacenamiento de logos.
type LogoStore interface {
	// Save guarda el logo del usuario y devuelve el nombre de archivo final.
	// Reemplaza el anterior si existe.
	Save(userID, ext string, data []byte) (string, error)
}

// Extensiones de imagen aceptadas para el logo.
var allowedLogoExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

// UseCase casos de uso del perfil.
type UseCase struct {
	users repository.UserRepository
	box   *secrets.Box
	logos LogoStore
	log   *logger.Logger
}

// New crea el caso de uso.
func New(users repository.UserRepository, box *secrets.Box, logos LogoStore, log *logger.Logger) *UseCase {
	return &UseCase{users: users, box: box, logos: logos, log: log}
}

// Get devuelve el perfil del usuario autenticado.
func (uc *UseCase) Get(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("profile: consultando usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := dto.NewProfileResponse(user)
	return &resp, nil
}

// Update aplica una actualización parcial del perfil. La contraseña del
// proveedor llega en claro y se guarda cifrada; nunca se devuelve.
func (uc *UseCase) Update(ctx context.Context, userID string, req dto.ProfileUpdateRequest) (*dto.ProfileResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("profile: consultando usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	applyString(&user.BusinessName, req.BusinessName)
	applyString(&user.BusinessAddress, req.BusinessAddress)
	applyString(&user.BusinessRUC, req.BusinessRUC)
	applyString(&user.BusinessPhone, req.BusinessPhone)
	applyString(&user.PrimaryColor, req.PrimaryColor)
	applyString(&user.PDFNote1, req.PDFNote1)
	applyString(&user.PDFNote1Color, req.PDFNote1Color)
	applyString(&user.PDFNote2, req.PDFNote2)
	applyString(&user.ApisPeruUser, req.ApisPeruUser)

	if req.BankAccounts != nil {
		accounts := make([]entity.BankAccount, 0, len(req.BankAccounts))
		for _, a := range req.BankAccounts {
			accounts = append(accounts, entity.BankAccount{
				Banco:      a.Banco,
				TipoCuenta: a.TipoCuenta,
				Moneda:     a.Moneda,
				Cuenta:     a.Cuenta,
				CCI:        a.CCI,
			})
		}
		user.BankAccounts = accounts
	}

	if req.ApisPeruPassword != nil && *req.ApisPeruPassword != "" {
		cipher, err := uc.box.Encrypt(*req.ApisPeruPassword)
		if err != nil {
			return nil, fmt.Errorf("profile: cifrando credenciales: %w", err)
		}
		user.ApisPeruPassword = cipher
		// Credenciales nuevas invalidan el token cacheado.
		user.ApisPeruToken = ""
	}

	if err := uc.users.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("profile: actualizando perfil: %w", err)
	}
	uc.log.Info().Str("user_id", userID).Msg("perfil actualizado")

	resp := dto.NewProfileResponse(user)
	return &resp, nil
}

// UploadLogo guarda el logo del negocio y registra el nombre en el perfil.
func (uc *UseCase) UploadLogo(ctx context.Context, userID, originalName string, data []byte) (*dto.ProfileResponse, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedLogoExts[ext] {
		return nil, fmt.Errorf("%w: extensión de logo no permitida %q", domain.ErrInvalidInput, ext)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: archivo de logo vacío", domain.ErrInvalidInput)
	}

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("profile: consultando usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	filename, err := uc.logos.Save(userID, ext, data)
	if err != nil {
		return nil, fmt.Errorf("profile: guardando logo: %w", err)
	}
	if err := uc.users.UpdateLogo(ctx, userID, filename); err != nil {
		return nil, fmt.Errorf("profile: registrando logo: %w", err)
	}
	user.LogoFilename = filename

	uc.log.Info().Str("user_id", userID).Str("logo", filename).Msg("logo actualizado")

	resp := dto.NewProfileResponse(user)
	return &resp, nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
