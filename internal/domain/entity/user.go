package entity

import "time"

// Roles válidos para User (enum cerrado).
const (
	RoleAdmin      = "administrador"
	RoleSupervisor = "supervisor"
	RoleOperator   = "operador"
	RoleGuest      = "invitado"
	RoleInstructor = "instructor"
)

// Roles lista el enum de roles en orden de privilegio.
var Roles = []string{RoleAdmin, RoleSupervisor, RoleOperator, RoleInstructor, RoleGuest}

// IsValidRole indica si role pertenece al enum.
func IsValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// User representa un usuario de la consola. El email es la llave de login.
type User struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Surname      string     `json:"surname"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Role         string     `json:"role"`
	Center       string     `json:"center"`
	Site         string     `json:"site"`
	Status       string     `json:"status"` // activo, inactivo
	PasswordHash string     `json:"password_hash,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	LastAccess   *time.Time `json:"last_access,omitempty"`
}

func (u *User) GetID() int64   { return u.ID }
func (u *User) SetID(id int64) { u.ID = id }

func (u *User) SearchFields() []string {
	return []string{u.Name, u.Surname, u.Email, u.Role, u.Center, u.Site}
}

// FilterField filtra usuarios por rol.
func (u *User) FilterField() string { return u.Role }

// RecordDate fecha de creación truncada al día (UTC), igual que la columna DATE de PostgreSQL.
func (u *User) RecordDate() *time.Time {
	if u.CreatedAt.IsZero() {
		return nil
	}
	t := NewDate(u.CreatedAt.UTC()).Time
	return &t
}

// IsActive indica si el usuario puede autenticarse.
func (u *User) IsActive() bool { return u.Status == StatusActive }

// FullName nombre y apellido.
func (u *User) FullName() string {
	if u.Surname == "" {
		return u.Name
	}
	return u.Name + " " + u.Surname
}
