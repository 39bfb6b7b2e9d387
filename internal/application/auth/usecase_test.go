package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cotizaperu/cotiza-api/internal/application/auth"
	"github.com/cotizaperu/cotiza-api/internal/application/dto"
	"github.com/cotizaperu/cotiza-api/internal/domain"
	"github.com/cotizaperu/cotiza-api/internal/domain/entity"
	"github.com/cotizaperu/cotiza-api/pkg/jwt"
	"github.com/cotizaperu/cotiza-api/pkg/logger"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*entity.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	u.ID = string(rune('a' + r.nextID))
	r.nextID++
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}
func (r *fakeUserRepo) GetByID(context.Context, string) (*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if u, ok := r.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}
func (r *fakeUserRepo) UpdateProfile(context.Context, *entity.User) error { return nil }
func (r *fakeUserRepo) UpdateLogo(context.Context, string, string) error  { return nil }
func (r *fakeUserRepo) UpdateProviderToken(context.Context, string, string, time.Time) error {
	return nil
}
func (r *fakeUserRepo) UpdateStatus(context.Context, string, bool, string) error { return nil }
func (r *fakeUserRepo) Delete(context.Context, string) error                     { return nil }
func (r *fakeUserRepo) ListWithQuoteCount(context.Context) ([]*entity.User, map[string]int, error) {
	return nil, nil, nil
}

func newUseCase(repo *fakeUserRepo, adminEmail string) *auth.UseCase {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	opts := jwt.Options{Secret: "test-secret", Issuer: "cotiza-api", Expiration: 60}
	return auth.New(repo, opts, adminEmail, log)
}

func TestRegister_RolPorDefecto(t *testing.T) {
	uc := newUseCase(newFakeUserRepo(), "admin@acme.pe")

	resp, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "demo@acme.pe", Password: "secreto1",
	})
	require.NoError(t, err)
	assert.Equal(t, "user", resp.Role)
	assert.True(t, resp.IsActive)
}

func TestRegister_AdminEmailRecibeRolAdmin(t *testing.T) {
	uc := newUseCase(newFakeUserRepo(), "admin@acme.pe")

	resp, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "Admin@ACME.pe", Password: "secreto1",
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Role)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUseCase(repo, "")

	_, err := uc.Register(context.Background(), dto.RegisterRequest{Email: "demo@acme.pe", Password: "secreto1"})
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), dto.RegisterRequest{Email: "demo@acme.pe", Password: "otraclave"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_PasswordCorta(t *testing.T) {
	uc := newUseCase(newFakeUserRepo(), "")

	_, err := uc.Register(context.Background(), dto.RegisterRequest{Email: "demo@acme.pe", Password: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUseCase(repo, "")

	_, err := uc.Register(context.Background(), dto.RegisterRequest{Email: "demo@acme.pe", Password: "secreto1"})
	require.NoError(t, err)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Email: "demo@acme.pe", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUseCase(repo, "")

	_, err := uc.Register(context.Background(), dto.RegisterRequest{Email: "demo@acme.pe", Password: "secreto1"})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "demo@acme.pe", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CuentaDesactivadaConMotivo(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUseCase(repo, "")

	_, err := uc.Register(context.Background(), dto.RegisterRequest{Email: "demo@acme.pe", Password: "secreto1"})
	require.NoError(t, err)
	repo.byEmail["demo@acme.pe"].IsActive = false
	repo.byEmail["demo@acme.pe"].DeactivationReason = "falta de pago"

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "demo@acme.pe", Password: "secreto1"})
	require.ErrorIs(t, err, domain.ErrAccountDisabled)
	assert.Contains(t, err.Error(), "falta de pago")
}
