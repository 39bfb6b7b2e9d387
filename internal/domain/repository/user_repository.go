package repository

import (
	"context"
	"time"

	"github.com/cotizaperu/cotiza-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// UpdateProfile persiste solo los campos del perfil de negocio y las
	// credenciales Apis Perú (no toca email, hash ni estado).
	UpdateProfile(ctx context.Context, user *entity.User) error
	UpdateLogo(ctx context.Context, id, logoFilename string) error
	// UpdateProviderToken cachea el token de Apis Perú y su expiración en la fila.
	UpdateProviderToken(ctx context.Context, id, token string, expires time.Time) error
	// UpdateStatus activa o desactiva la cuenta; reason se limpia al reactivar.
	UpdateStatus(ctx context.Context, id string, isActive bool, reason string) error
	// Delete borra el usuario y, por cascada, sus cotizaciones, comprobantes y guías.
	Delete(ctx context.Context, id string) error
	// ListWithQuoteCount devuelve todos los usuarios con su conteo de cotizaciones.
	ListWithQuoteCount(ctx context.Context) ([]*entity.User, map[string]int, error)
}
