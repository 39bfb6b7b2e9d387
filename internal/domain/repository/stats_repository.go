package repository

import (
	"context"
	"time"
)

// DashboardStats agregados para el panel de administración.
type DashboardStats struct {
	TotalUsers         int
	ActiveUsers        int
	TotalCotizaciones  int
	NewUsersLast30Days int
}

// StatsRepository consultas de solo lectura para el panel de administración.
type StatsRepository interface {
	GetDashboardStats(ctx context.Context, since time.Time) (*DashboardStats, error)
}
