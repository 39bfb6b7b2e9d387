// Package admin implementa el panel de administración: métricas, listado de
// usuarios, activación/desactivación y borrado de cuentas.
package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/cotizaperu/cotiza-api/internal/application/dto"
	"github.com/cotizaperu/cotiza-api/internal/domain"
	"github.com/cotizaperu/cotiza-api/internal/domain/repository"
	"github.com/cotizaperu/cotiza-api/pkg/logger"
)

// UseCase casos de uso de administración. Todas las operaciones asumen que el
// middleware ya verificó el rol admin.
type UseCase struct {
	users  repository.UserRepository
	quotes repository.CotizacionRepository
	stats  repository.StatsRepository
	log    *logger.Logger
}

// New crea el caso de uso.
func New(users repository.UserRepository, quotes repository.CotizacionRepository, stats repository.StatsRepository, log *logger.Logger) *UseCase {
	return &UseCase{users: users, quotes: quotes, stats: stats, log: log}
}

// DashboardStats métricas agregadas (usuarios nuevos = últimos 30 días).
func (uc *UseCase) DashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	since := time.Now().AddDate(0, 0, -30)
	s, err := uc.stats.GetDashboardStats(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("admin: consultando métricas: %w", err)
	}
	resp := dto.NewDashboardStatsResponse(s)
	return &resp, nil
}

// ListUsers lista todos los usuarios con su conteo de cotizaciones.
func (uc *UseCase) ListUsers(ctx context.Context) ([]dto.AdminUserResponse, error) {
	users, counts, err := uc.users.ListWithQuoteCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin: listando usuarios: %w", err)
	}
	out := make([]dto.AdminUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.AdminUserResponse{
			ID:                 u.ID,
			Email:              u.Email,
			Role:               u.Role,
			IsActive:           u.IsActive,
			DeactivationReason: u.DeactivationReason,
			BusinessName:       u.BusinessName,
			QuoteCount:         counts[u.ID],
			CreatedAt:          u.CreatedAt,
		})
	}
	return out, nil
}

// GetUser devuelve el perfil completo de un usuario.
func (uc *UseCase) GetUser(ctx context.Context, targetID string) (*dto.ProfileResponse, error) {
	target, err := uc.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("admin: consultando usuario: %w", err)
	}
	if target == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := dto.NewProfileResponse(target)
	return &resp, nil
}

// ListUserQuotes lista las cotizaciones de un usuario concreto.
func (uc *UseCase) ListUserQuotes(ctx context.Context, targetID string) ([]dto.CotizacionResponse, error) {
	target, err := uc.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("admin: consultando usuario: %w", err)
	}
	if target == nil {
		return nil, domain.ErrUserNotFound
	}
	list, err := uc.quotes.ListByOwner(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("admin: listando cotizaciones del usuario: %w", err)
	}
	out := make([]dto.CotizacionResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.NewCotizacionResponse(c))
	}
	return out, nil
}

// SetUserStatus activa o desactiva una cuenta. La cuenta admin no se puede
// desactivar a sí misma ni ser desactivada por otro admin.
func (uc *UseCase) SetUserStatus(ctx context.Context, targetID string, req dto.UserStatusRequest) error {
	target, err := uc.users.GetByID(ctx, targetID)
	if err != nil {
		return fmt.Errorf("admin: consultando usuario: %w", err)
	}
	if target == nil {
		return domain.ErrUserNotFound
	}
	if target.IsAdmin() && !req.IsActive {
		return fmt.Errorf("%w: la cuenta de administrador no se puede desactivar", domain.ErrForbidden)
	}

	reason := req.Reason
	if req.IsActive {
		reason = "" // al reactivar se limpia el motivo
	}
	if err := uc.users.UpdateStatus(ctx, targetID, req.IsActive, reason); err != nil {
		return fmt.Errorf("admin: actualizando estado: %w", err)
	}

	uc.log.Info().
		Str("target_id", targetID).
		Bool("is_active", req.IsActive).
		Msg("estado de cuenta actualizado")
	return nil
}

// DeleteUser borra una cuenta y todos sus datos (cascada). La cuenta admin
// está protegida.
func (uc *UseCase) DeleteUser(ctx context.Context, targetID string) error {
	target, err := uc.users.GetByID(ctx, targetID)
	if err != nil {
		return fmt.Errorf("admin: consultando usuario: %w", err)
	}
	if target == nil {
		return domain.ErrUserNotFound
	}
	if target.IsAdmin() {
		return fmt.Errorf("%w: la cuenta de administrador no se puede borrar", domain.ErrForbidden)
	}

	if err := uc.users.Delete(ctx, targetID); err != nil {
		return fmt.Errorf("admin: borrando usuario: %w", err)
	}
	uc.log.Warn().Str("target_id", targetID).Msg("cuenta borrada con todos sus datos")
	return nil
}
