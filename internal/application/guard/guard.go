// Package guard decide el acceso a las pantallas de la consola según la sesión y el rol.
package guard

import (
	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
)

// Decision resultado de evaluar una sesión contra un conjunto de roles.
type Decision int

const (
	// Allow la pantalla puede mostrarse.
	Allow Decision = iota
	// RedirectLogin no hay sesión autenticada.
	RedirectLogin
	// RedirectHome hay sesión pero el rol no está en el conjunto permitido.
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	}
	return "unknown"
}

// DefaultRoles conjunto usado cuando una ruta no declara roles.
var DefaultRoles = []string{entity.RoleAdmin}

// Decide evalúa session contra allowed (pertenencia al conjunto, no igualdad con un único rol).
// Un allowed vacío equivale a DefaultRoles.
func Decide(session *entity.Session, allowed []string) Decision {
	if session == nil || !session.IsAuthenticated {
		return RedirectLogin
	}
	if len(allowed) == 0 {
		allowed = DefaultRoles
	}
	if HasRole(session.User.Role, allowed) {
		return Allow
	}
	return RedirectHome
}

// HasRole indica si role pertenece a allowed.
func HasRole(role string, allowed []string) bool {
	if role == "" {
		return false
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

var (
	allRoles   = []string{entity.RoleAdmin, entity.RoleSupervisor, entity.RoleOperator, entity.RoleInstructor, entity.RoleGuest}
	staffRoles = []string{entity.RoleAdmin, entity.RoleSupervisor, entity.RoleOperator}
	leadRoles  = []string{entity.RoleAdmin, entity.RoleSupervisor}
	adminRoles = []string{entity.RoleAdmin}
)

// Screens pantallas de la consola y los roles que pueden verlas.
var Screens = map[string][]string{
	"dashboard":      allRoles,
	"users":          adminRoles,
	"roles":          adminRoles,
	"products":       allRoles,
	"categories":     allRoles,
	"entries":        staffRoles,
	"exits":          staffRoles,
	"sites":          allRoles,
	"centers":        allRoles,
	"areas":          allRoles,
	"municipalities": allRoles,
	"reports":        leadRoles,
	"statistics":     leadRoles,
}

// ReadRoles roles que pueden leer la colección kind por la API.
func ReadRoles(kind string) []string {
	if roles, ok := Screens[kind]; ok {
		return roles
	}
	return DefaultRoles
}

// WriteRoles roles que pueden crear, modificar o borrar en la colección kind.
// Las pantallas de solo lectura devuelven nil.
func WriteRoles(kind string) []string {
	switch kind {
	case entity.KindUser, "roles":
		return adminRoles
	case entity.KindEntry, entity.KindExit:
		return staffRoles
	case "dashboard", "reports", "statistics":
		return nil
	}
	return leadRoles
}
