package dto

import "github.com/cotizaperu/cotiza-api/internal/domain/entity"

// BankAccountDTO cuenta bancaria del pie del PDF.
type BankAccountDTO struct {
	Banco      string `json:"banco" validate:"required"`
	TipoCuenta string `json:"tipo_cuenta"`
	Moneda     string `json:"moneda"`
	Cuenta     string `json:"cuenta" validate:"required"`
	CCI        string `json:"cci"`
}

// ProfileUpdateRequest actualización del perfil del negocio. Todos los campos
// son opcionales; solo se persisten los enviados no vacíos. La contraseña de
// Apis Perú llega en claro y se cifra antes de guardar.
type ProfileUpdateRequest struct {
	BusinessName    *string          `json:"business_name"`
	BusinessAddress *string          `json:"business_address"`
	BusinessRUC     *string          `json:"business_ruc" validate:"omitempty,len=11,numeric"`
	BusinessPhone   *string          `json:"business_phone"`
	PrimaryColor    *string          `json:"primary_color" validate:"omitempty,hexcolor"`
	PDFNote1        *string          `json:"pdf_note1"`
	PDFNote1Color   *string          `json:"pdf_note1_color" validate:"omitempty,hexcolor"`
	PDFNote2        *string          `json:"pdf_note2"`
	BankAccounts    []BankAccountDTO `json:"bank_accounts" validate:"omitempty,dive"`

	ApisPeruUser     *string `json:"apisperu_user"`
	ApisPeruPassword *string `json:"apisperu_password"`
}

// ProfileResponse vista del perfil del negocio. Nunca expone la contraseña
// del proveedor, ni siquiera cifrada; solo indica si está configurada.
type ProfileResponse struct {
	ID              string           `json:"id"`
	Email           string           `json:"email"`
	Role            string           `json:"role"`
	BusinessName    string           `json:"business_name"`
	BusinessAddress string           `json:"business_address"`
	BusinessRUC     string           `json:"business_ruc"`
	BusinessPhone   string           `json:"business_phone"`
	LogoFilename    string           `json:"logo_filename,omitempty"`
	PrimaryColor    string           `json:"primary_color,omitempty"`
	PDFNote1        string           `json:"pdf_note1,omitempty"`
	PDFNote1Color   string           `json:"pdf_note1_color,omitempty"`
	PDFNote2        string           `json:"pdf_note2,omitempty"`
	BankAccounts    []BankAccountDTO `json:"bank_accounts,omitempty"`
	ApisPeruUser    string           `json:"apisperu_user,omitempty"`
	HasApisPeruPass bool             `json:"has_apisperu_password"`
	ProfileComplete bool             `json:"profile_complete"`
}

// NewProfileResponse arma la respuesta a partir de la entidad.
func NewProfileResponse(u *entity.User) ProfileResponse {
	accounts := make([]BankAccountDTO, 0, len(u.BankAccounts))
	for _, a := range u.BankAccounts {
		accounts = append(accounts, BankAccountDTO{
			Banco:      a.Banco,
			TipoCuenta: a.TipoCuenta,
			Moneda:     a.Moneda,
			Cuenta:     a.Cuenta,
			CCI:        a.CCI,
		})
	}
	return ProfileResponse{
		ID:              u.ID,
		Email:           u.Email,
		Role:            u.Role,
		BusinessName:    u.BusinessName,
		BusinessAddress: u.BusinessAddress,
		BusinessRUC:     u.BusinessRUC,
		BusinessPhone:   u.BusinessPhone,
		LogoFilename:    u.LogoFilename,
		PrimaryColor:    u.PrimaryColor,
		PDFNote1:        u.PDFNote1,
		PDFNote1Color:   u.PDFNote1Color,
		PDFNote2:        u.PDFNote2,
		BankAccounts:    accounts,
		ApisPeruUser:    u.ApisPeruUser,
		HasApisPeruPass: u.ApisPeruPassword != "",
		ProfileComplete: u.HasCompleteBusinessProfile(),
	}
}
