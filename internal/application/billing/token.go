package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/cotizaperu/cotiza-api/internal/domain"
	"github.com/cotizaperu/cotiza-api/internal/domain/entity"
)

// El token del proveedor dura 24h; se cachea un poco menos para no usar
// nunca uno a punto de expirar en pleno envío.
const tokenTTL = 23*time.Hour + 50*time.Minute

// providerToken devuelve un token vigente del proveedor para el usuario:
// el cacheado en la fila si aún no expira, o uno nuevo tras login (y lo
// cachea). La contraseña se descifra solo aquí y nunca sale del proceso.
func (uc *UseCase) providerToken(ctx context.Context, user *entity.User) (string, error) {
	if user.ApisPeruUser == "" || user.ApisPeruPassword == "" {
		return "", domain.ErrMissingProviderCredentials
	}
	now := uc.now()
	if user.ApisPeruToken != "" && user.ApisPeruTokenExpires.After(now) {
		return user.ApisPeruToken, nil
	}

	password, err := uc.box.Decrypt(user.ApisPeruPassword)
	if err != nil {
		return "", fmt.Errorf("billing: descifrando credenciales: %w", err)
	}
	token, err := uc.gateway.Login(ctx, user.ApisPeruUser, password)
	if err != nil {
		return "", fmt.Errorf("billing: login en el proveedor: %w", err)
	}

	expires := now.Add(tokenTTL)
	if err := uc.users.UpdateProviderToken(ctx, user.ID, token, expires); err != nil {
		// El token sirve igual aunque el cacheo falle; solo se pierde la reutilización.
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("no se pudo cachear el token del proveedor")
	}
	user.ApisPeruToken = token
	user.ApisPeruTokenExpires = expires
	return token, nil
}
