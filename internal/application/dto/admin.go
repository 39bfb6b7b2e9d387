package dto

import (
	"time"

	"github.com/cotizaperu/cotiza-api/internal/domain/repository"
)

// AdminUserResponse fila del listado de usuarios del panel de administración.
type AdminUserResponse struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Role               string    `json:"role"`
	IsActive           bool      `json:"is_active"`
	DeactivationReason string    `json:"deactivation_reason,omitempty"`
	BusinessName       string    `json:"business_name,omitempty"`
	QuoteCount         int       `json:"quote_count"`
	CreatedAt          time.Time `json:"created_at"`
}

// UserStatusRequest activación o desactivación de una cuenta.
type UserStatusRequest struct {
	IsActive bool   `json:"is_active"`
	Reason   string `json:"reason"`
}

// DashboardStatsResponse métricas del panel de administración.
type DashboardStatsResponse struct {
	TotalUsers        int `json:"total_users"`
	ActiveUsers       int `json:"active_users"`
	TotalCotizaciones int `json:"total_cotizaciones"`
	NewUsersLast30    int `json:"new_users_last_30_days"`
}

// NewDashboardStatsResponse arma la respuesta a partir del agregado del repositorio.
func NewDashboardStatsResponse(s *repository.DashboardStats) DashboardStatsResponse {
	return DashboardStatsResponse{
		TotalUsers:        s.TotalUsers,
		ActiveUsers:       s.ActiveUsers,
		TotalCotizaciones: s.TotalCotizaciones,
		NewUsersLast30:    s.NewUsersLast30Days,
	}
}
