package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartbodega-api/internal/application/auth"
	"github.com/jhoicas/smartbodega-api/internal/application/dto"
	"github.com/jhoicas/smartbodega-api/internal/application/guard"
	"github.com/jhoicas/smartbodega-api/internal/domain"
)

// Rutas de redirección de la consola.
const (
	ConsoleLoginPath = "/console/login"
	ConsoleHomePath  = "/console/dashboard"
)

// ScreenResponse contenido de una pantalla autorizada.
type ScreenResponse struct {
	Screen       string            `json:"screen"`
	AllowedRoles []string          `json:"allowed_roles"`
	User         *dto.UserResponse `json:"user,omitempty"`
	CanWrite     bool              `json:"can_write"`
}

// ConsoleHandler sirve las pantallas protegidas de la consola.
type ConsoleHandler struct {
	authUC *auth.AuthUseCase
}

// NewConsoleHandler construye el handler.
func NewConsoleHandler(authUC *auth.AuthUseCase) *ConsoleHandler {
	return &ConsoleHandler{authUC: authUC}
}

// consoleToken toma el token de la cookie de sesión o, si no está, del header Bearer.
func consoleToken(c *fiber.Ctx) string {
	if tok := strings.TrimSpace(c.Cookies(SessionCookie)); tok != "" {
		return tok
	}
	tok, code, _ := bearerToken(c)
	if code != "" {
		return ""
	}
	return tok
}

// GuardScreen decide el acceso a /console/:screen. Los usuarios sin permiso nunca llegan
// al handler de la pantalla: se redirigen con 302 al login o al dashboard.
func (h *ConsoleHandler) GuardScreen(c *fiber.Ctx) error {
	screen := c.Params("screen")
	if screen == "login" {
		return c.Next()
	}
	roles, ok := guard.Screens[screen]
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pantalla desconocida"})
	}
	token := consoleToken(c)
	if token != "" {
		session, err := h.authUC.Resolve(c.UserContext(), token)
		if err != nil && !errors.Is(err, domain.ErrUnauthorized) {
			return respondError(c, err)
		}
		if session != nil {
			setSession(c, session, token)
		}
	}
	switch guard.Decide(GetSession(c), roles) {
	case guard.RedirectLogin:
		c.ClearCookie(SessionCookie)
		return c.Redirect(ConsoleLoginPath, fiber.StatusFound)
	case guard.RedirectHome:
		return c.Redirect(ConsoleHomePath, fiber.StatusFound)
	}
	return c.Next()
}

// Screen godoc
// @Summary      Pantalla de la consola
// @Description  Devuelve el contenido de la pantalla si el rol de la sesión está autorizado; si no, 302.
// @Tags         console
// @Produce      json
// @Param        screen  path  string  true  "Pantalla (dashboard, users, products, ...)"
// @Success      200  {object}  ScreenResponse
// @Success      302  "Redirección a /console/login o /console/dashboard"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /console/{screen} [get]
func (h *ConsoleHandler) Screen(c *fiber.Ctx) error {
	screen := c.Params("screen")
	if screen == "login" {
		if token := consoleToken(c); token != "" {
			if s, _ := h.authUC.CheckAuth(c.UserContext(), token); s != nil {
				return c.Redirect(ConsoleHomePath, fiber.StatusFound)
			}
		}
		return c.JSON(ScreenResponse{Screen: screen, AllowedRoles: []string{}})
	}
	session := GetSession(c)
	u := session.User
	return c.JSON(ScreenResponse{
		Screen:       screen,
		AllowedRoles: guard.Screens[screen],
		User:         dto.ToUserResponse(&u),
		CanWrite:     guard.HasRole(u.Role, guard.WriteRoles(screen)),
	})
}
