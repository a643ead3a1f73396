package dto

import (
	"strings"
	"time"

	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
)

// MinPasswordLength longitud mínima de contraseña al crear usuarios.
const MinPasswordLength = 6

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Name     string     `json:"name"`
	Surname  string     `json:"surname"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Phone    FlexString `json:"phone"`
	Role     string     `json:"role"`
	Center   string     `json:"center"`
	Site     string     `json:"site"`
	Status   string     `json:"status"`
}

// ToRecord valida y construye el usuario sin hash; el use case asigna PasswordHash.
func (r CreateUserRequest) ToRecord() (*entity.User, error) {
	u := &entity.User{
		Name:    strings.TrimSpace(r.Name),
		Surname: strings.TrimSpace(r.Surname),
		Email:   strings.ToLower(strings.TrimSpace(r.Email)),
		Phone:   r.Phone.String(),
		Role:    r.Role,
		Center:  r.Center,
		Site:    r.Site,
	}
	if err := required("name", u.Name); err != nil {
		return nil, err
	}
	if err := validateEmail(u.Email); err != nil {
		return nil, err
	}
	if len(r.Password) < MinPasswordLength {
		return nil, invalid("la contraseña debe tener al menos %d caracteres", MinPasswordLength)
	}
	if u.Role == "" {
		u.Role = entity.RoleGuest
	}
	if !entity.IsValidRole(u.Role) {
		return nil, invalid("rol %q no válido", u.Role)
	}
	status, err := catalogStatus(r.Status)
	if err != nil {
		return nil, err
	}
	u.Status = status
	return u, nil
}

// UpdateUserRequest actualización parcial; Password se convierte en password_hash en el use case.
type UpdateUserRequest struct {
	Name     *string     `json:"name,omitempty"`
	Surname  *string     `json:"surname,omitempty"`
	Email    *string     `json:"email,omitempty"`
	Password *string     `json:"password,omitempty"`
	Phone    *FlexString `json:"phone,omitempty"`
	Role     *string     `json:"role,omitempty"`
	Center   *string     `json:"center,omitempty"`
	Site     *string     `json:"site,omitempty"`
	Status   *string     `json:"status,omitempty"`
}

func (r UpdateUserRequest) ToPatch() (map[string]any, error) {
	if r.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*r.Email))
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		r.Email = &email
	}
	if r.Password != nil && len(*r.Password) < MinPasswordLength {
		return nil, invalid("la contraseña debe tener al menos %d caracteres", MinPasswordLength)
	}
	if r.Role != nil && !entity.IsValidRole(*r.Role) {
		return nil, invalid("rol %q no válido", *r.Role)
	}
	patch, err := namedPatch(r, r.Name, r.Status)
	if err != nil {
		return nil, err
	}
	delete(patch, "password")
	delete(patch, "password_hash")
	return patch, nil
}

func validateEmail(email string) error {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t") {
		return invalid("email %q no válido", email)
	}
	return nil
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Surname    string     `json:"surname"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Role       string     `json:"role"`
	Center     string     `json:"center"`
	Site       string     `json:"site"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	LastAccess *time.Time `json:"last_access,omitempty"`
}

// ToUserResponse mapea la entidad a la respuesta pública.
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Surname:    u.Surname,
		Email:      u.Email,
		Phone:      u.Phone,
		Role:       u.Role,
		Center:     u.Center,
		Site:       u.Site,
		Status:     u.Status,
		CreatedAt:  u.CreatedAt,
		LastAccess: u.LastAccess,
	}
}

// LoginRequest credenciales más el rol elegido en el formulario.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate exige los tres campos.
func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" || r.Role == "" {
		return invalid("email, password y role son obligatorios")
	}
	return nil
}

// SessionResponse salida de login y de GET /api/auth/me.
type SessionResponse struct {
	Token           string        `json:"token,omitempty"`
	User            *UserResponse `json:"user"`
	IsAuthenticated bool          `json:"is_authenticated"`
	ExpiresAt       *time.Time    `json:"expires_at,omitempty"`
}

// ToSessionResponse mapea una sesión; includeToken controla si el bearer viaja en la respuesta.
func ToSessionResponse(s *entity.Session, includeToken bool) *SessionResponse {
	if s == nil {
		return &SessionResponse{IsAuthenticated: false}
	}
	u := s.User
	resp := &SessionResponse{User: ToUserResponse(&u), IsAuthenticated: s.IsAuthenticated}
	if includeToken {
		resp.Token = s.Token
		exp := s.ExpiresAt
		resp.ExpiresAt = &exp
	}
	return resp
}
