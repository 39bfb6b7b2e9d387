package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cotizaperu/cotiza-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas de solo lectura para el panel de administración.
type StatsRepo struct {
	q Querier
}

// NewStatsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

// GetDashboardStats agrega las métricas del panel en una sola consulta.
func (r *StatsRepo) GetDashboardStats(ctx context.Context, since time.Time) (*repository.DashboardStats, error) {
	var s repository.DashboardStats
	err := r.q.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE is_active),
			(SELECT COUNT(*) FROM cotizaciones),
			(SELECT COUNT(*) FROM users WHERE created_at >= $1)`,
		since,
	).Scan(&s.TotalUsers, &s.ActiveUsers, &s.TotalCotizaciones, &s.NewUsersLast30Days)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &s, nil
}
