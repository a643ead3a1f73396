package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartbodega-api/internal/application/auth"
	"github.com/jhoicas/smartbodega-api/internal/application/dto"
	"github.com/jhoicas/smartbodega-api/internal/application/guard"
	"github.com/jhoicas/smartbodega-api/internal/domain"
	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
)

// Locals keys que deja SessionMiddleware en Fiber.
const (
	LocalSession = "session"
	LocalUserID  = "user_id"
	LocalRole    = "role"
	LocalToken   = "token"
)

// SessionCookie cookie con el token para las pantallas de la consola.
const SessionCookie = "smartbodega_token"

// bearerToken extrae el token del header Authorization. code vacío indica éxito.
func bearerToken(c *fiber.Ctx) (token, code, msg string) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", "MISSING_TOKEN", "Authorization header requerido"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "INVALID_TOKEN", "formato: Bearer <token>"
	}
	token = strings.TrimSpace(parts[1])
	if token == "" {
		return "", "MISSING_TOKEN", "token vacío"
	}
	return token, "", ""
}

// SessionMiddleware resuelve la sesión del Bearer Token (CheckAuth + ValidateToken) y la
// deja en c.Locals. Una sesión revocada o un token inválido cierran la sesión y responden 401.
func SessionMiddleware(authUC *auth.AuthUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, code, msg := bearerToken(c)
		if code != "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
		}
		session, err := authUC.Resolve(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido, expirado o sesión cerrada"})
			}
			return respondError(c, err)
		}
		setSession(c, session, token)
		return c.Next()
	}
}

func setSession(c *fiber.Ctx, session *entity.Session, token string) {
	c.Locals(LocalSession, session)
	c.Locals(LocalUserID, session.User.ID)
	c.Locals(LocalRole, session.User.Role)
	c.Locals(LocalToken, token)
}

// RequireRole autoriza por pertenencia del rol de la sesión al conjunto roles
// (por defecto solo administrador). Debe ir DESPUÉS de SessionMiddleware.
//
//   - 401 UNAUTHORIZED: no hay sesión en el contexto.
//   - 401 MISSING_ROLE: la sesión no tiene rol.
//   - 403 FORBIDDEN: el rol no está en el conjunto.
func RequireRole(roles ...string) fiber.Handler {
	if len(roles) == 0 {
		roles = guard.DefaultRoles
	}
	return func(c *fiber.Ctx) error {
		if GetSession(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
		}
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "la sesión no tiene rol asignado"})
		}
		if !guard.HasRole(role, roles) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el rol '" + role + "' no tiene acceso a este recurso"})
		}
		return c.Next()
	}
}

// GetSession devuelve la sesión del contexto o nil.
func GetSession(c *fiber.Ctx) *entity.Session {
	s, _ := c.Locals(LocalSession).(*entity.Session)
	return s
}

// GetUserID devuelve el id del usuario autenticado (0 si no hay sesión).
func GetUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalUserID).(int64)
	return id
}

// GetRole devuelve el rol del usuario autenticado.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// GetToken devuelve el token de la petición.
func GetToken(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalToken).(string)
	return s
}
