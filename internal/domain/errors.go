package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// Autenticación
	ErrInvalidCredential = errors.New("credenciales inválidas")
	ErrInactiveAccount   = errors.New("la cuenta está inactiva")
	ErrRoleMismatch      = errors.New("el rol no corresponde al usuario")

	// Backend remoto: inalcanzable (se puede usar la copia local) o rechazó la petición.
	ErrUnavailable = errors.New("servicio no disponible")
	ErrRejected    = errors.New("el servicio rechazó la petición")
)
