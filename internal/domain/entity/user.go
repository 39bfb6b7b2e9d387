package entity

import "time"

// Roles válidos para User. El rol se fija al crear la cuenta (ADMIN_EMAIL
// solo decide el rol inicial, no se recalcula en cada lectura).
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// BankAccount cuenta bancaria mostrada en el pie del PDF.
// Se persiste como JSONB dentro de users.bank_accounts.
type BankAccount struct {
	Banco      string `json:"banco"`
	TipoCuenta string `json:"tipo_cuenta,omitempty"`
	Moneda     string `json:"moneda,omitempty"`
	Cuenta     string `json:"cuenta"`
	CCI        string `json:"cci"`
}

// User representa un negocio registrado (tenant). Es dueño de sus
// cotizaciones, comprobantes y guías de remisión (borrado en cascada).
type User struct {
	ID                 string
	Email              string
	PasswordHash       string // bcrypt, nunca plano después de persistir
	Role               string // admin, user
	IsActive           bool
	DeactivationReason string // motivo libre cuando IsActive es false

	// Perfil del negocio (datos del emisor).
	BusinessName    string
	BusinessAddress string
	BusinessRUC     string
	BusinessPhone   string
	LogoFilename    string
	PrimaryColor    string
	PDFNote1        string
	PDFNote1Color   string
	PDFNote2        string
	BankAccounts    []BankAccount

	// Credenciales Apis Perú. La contraseña se guarda cifrada (secretbox)
	// y el token se cachea en la fila con su expiración.
	ApisPeruUser         string
	ApisPeruPassword     string // cifrada, base64
	ApisPeruToken        string
	ApisPeruTokenExpires time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasCompleteBusinessProfile reporta si el perfil tiene los campos mínimos
// para emitir comprobantes (RUC, razón social y dirección).
func (u *User) HasCompleteBusinessProfile() bool {
	return u.BusinessRUC != "" && u.BusinessName != "" && u.BusinessAddress != ""
}

// IsAdmin reporta si el usuario tiene rol de administrador.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
