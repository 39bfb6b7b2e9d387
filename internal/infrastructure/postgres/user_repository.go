package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cotizaperu/cotiza-api/internal/domain"
	"github.com/cotizaperu/cotiza-api/internal/domain/entity"
	"github.com/cotizaperu/cotiza-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `
	id, email, password_hash, role, is_active, deactivation_reason,
	business_name, business_address, business_ruc, business_phone,
	logo_filename, primary_color, pdf_note1, pdf_note1_color, pdf_note2,
	bank_accounts, apisperu_user, apisperu_password, apisperu_token,
	apisperu_token_expires, created_at, updated_at`

type pgxScanner interface {
	Scan(dest ...any) error
}

// scanUser lee las columnas de userColumns más cualquier columna extra al final.
func scanUser(s pgxScanner, extra ...any) (*entity.User, error) {
	var u entity.User
	var reason, bName, bAddress, bRUC, bPhone *string
	var logo, color, note1, note1Color, note2 *string
	var apUser, apPass, apToken *string
	var apExpires *time.Time
	var accountsJSON []byte

	dest := []any{
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &reason,
		&bName, &bAddress, &bRUC, &bPhone,
		&logo, &color, &note1, &note1Color, &note2,
		&accountsJSON, &apUser, &apPass, &apToken,
		&apExpires, &u.CreatedAt, &u.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}

	u.DeactivationReason = derefStr(reason)
	u.BusinessName = derefStr(bName)
	u.BusinessAddress = derefStr(bAddress)
	u.BusinessRUC = derefStr(bRUC)
	u.BusinessPhone = derefStr(bPhone)
	u.LogoFilename = derefStr(logo)
	u.PrimaryColor = derefStr(color)
	u.PDFNote1 = derefStr(note1)
	u.PDFNote1Color = derefStr(note1Color)
	u.PDFNote2 = derefStr(note2)
	u.ApisPeruUser = derefStr(apUser)
	u.ApisPeruPassword = derefStr(apPass)
	u.ApisPeruToken = derefStr(apToken)
	if apExpires != nil {
		u.ApisPeruTokenExpires = *apExpires
	}
	if len(accountsJSON) > 0 {
		if err := json.Unmarshal(accountsJSON, &u.BankAccounts); err != nil {
			return nil, fmt.Errorf("bank_accounts corrupto: %w", err)
		}
	}
	return &u, nil
}

// Create persiste un usuario nuevo.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (id, email, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Role, user.IsActive,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID; nil si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getBy(ctx, "id = $1", id)
}

// GetByEmail obtiene un usuario por email; nil si no existe.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, "email = $1", email)
}

func (r *UserRepo) getBy(ctx context.Context, cond string, arg any) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + cond
	user, err := scanUser(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// UpdateProfile persiste los campos del perfil de negocio y las credenciales
// del proveedor (no toca email, hash ni estado).
func (r *UserRepo) UpdateProfile(ctx context.Context, user *entity.User) error {
	accountsJSON, err := json.Marshal(user.BankAccounts)
	if err != nil {
		return fmt.Errorf("serializando bank_accounts: %w", err)
	}
	query := `
		UPDATE users
		SET business_name     = $2,
		    business_address  = $3,
		    business_ruc      = $4,
		    business_phone    = $5,
		    primary_color     = $6,
		    pdf_note1         = $7,
		    pdf_note1_color   = $8,
		    pdf_note2         = $9,
		    bank_accounts     = $10,
		    apisperu_user     = $11,
		    apisperu_password = $12,
		    apisperu_token    = $13,
		    updated_at        = NOW()
		WHERE id = $1`
	_, err = r.q.Exec(ctx, query,
		user.ID,
		nullIfEmpty(user.BusinessName), nullIfEmpty(user.BusinessAddress),
		nullIfEmpty(user.BusinessRUC), nullIfEmpty(user.BusinessPhone),
		nullIfEmpty(user.PrimaryColor), nullIfEmpty(user.PDFNote1),
		nullIfEmpty(user.PDFNote1Color), nullIfEmpty(user.PDFNote2),
		accountsJSON,
		nullIfEmpty(user.ApisPeruUser), nullIfEmpty(user.ApisPeruPassword),
		nullIfEmpty(user.ApisPeruToken),
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// UpdateLogo registra el nombre de archivo del logo.
func (r *UserRepo) UpdateLogo(ctx context.Context, id, logoFilename string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE users SET logo_filename = $2, updated_at = NOW() WHERE id = $1`,
		id, logoFilename)
	if err != nil {
		return fmt.Errorf("update logo: %w", err)
	}
	return nil
}

// UpdateProviderToken cachea el token del proveedor y su expiración.
func (r *UserRepo) UpdateProviderToken(ctx context.Context, id, token string, expires time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE users SET apisperu_token = $2, apisperu_token_expires = $3, updated_at = NOW() WHERE id = $1`,
		id, token, expires)
	if err != nil {
		return fmt.Errorf("update provider token: %w", err)
	}
	return nil
}

// UpdateStatus activa o desactiva la cuenta.
func (r *UserRepo) UpdateStatus(ctx context.Context, id string, isActive bool, reason string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE users SET is_active = $2, deactivation_reason = $3, updated_at = NOW() WHERE id = $1`,
		id, isActive, nullIfEmpty(reason))
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete borra el usuario; las tablas hijas tienen ON DELETE CASCADE.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ListWithQuoteCount devuelve todos los usuarios con su conteo de cotizaciones.
func (r *UserRepo) ListWithQuoteCount(ctx context.Context) ([]*entity.User, map[string]int, error) {
	query := `
		SELECT ` + userColumns + `, COALESCE(c.total, 0)
		FROM users
		LEFT JOIN (
			SELECT owner_id, COUNT(*) AS total
			FROM cotizaciones
			GROUP BY owner_id
		) c ON c.owner_id = users.id
		ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	counts := map[string]int{}
	for rows.Next() {
		var count int
		u, err := scanUser(rows, &count)
		if err != nil {
			return nil, nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
		counts[u.ID] = count
	}
	return users, counts, rows.Err()
}
