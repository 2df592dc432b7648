package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

type RegisterRequest struct {
	Email       string  `json:"email"        validate:"required,email"`
	Password    string  `json:"password"     validate:"required,min=8"`
	Nombre      string  `json:"nombre"       validate:"required,min=2,max=100"`
	Empresa     string  `json:"empresa"      validate:"required,min=2,max=150"`
	TipoNegocio *string `json:"tipo_negocio"`
	Telefono    *string `json:"telefono"`
	Direccion   *string `json:"direccion"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	Nombre      string  `json:"nombre"`
	Empresa     string  `json:"empresa"`
	TipoNegocio *string `json:"tipo_negocio"`
	Telefono    *string `json:"telefono"`
	Direccion   *string `json:"direccion"`
	Rol         string  `json:"rol"`
	Activo      bool    `json:"activo"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"` // seconds
	User         UsuarioResponse `json:"user"`
}
