package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartbodega-api/internal/application/dto"
	"github.com/jhoicas/smartbodega-api/internal/domain"
)

// errorMapping status y código HTTP de cada error de dominio; el primero que coincide gana.
var errorMapping = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUserNotFound, fiber.StatusUnauthorized, "USER_NOT_FOUND"},
	{domain.ErrInvalidCredential, fiber.StatusUnauthorized, "INVALID_CREDENTIAL"},
	{domain.ErrRoleMismatch, fiber.StatusUnauthorized, "ROLE_MISMATCH"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrInactiveAccount, fiber.StatusForbidden, "INACTIVE_ACCOUNT"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrUnavailable, fiber.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE"},
	{domain.ErrRejected, fiber.StatusBadGateway, "UPSTREAM_REJECTED"},
}

// respondError traduce err a la respuesta dto.ErrorResponse correspondiente.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// paramID lee el parámetro :id como entero positivo; ok=false si no lo es.
func paramID(c *fiber.Ctx) (id int64, ok bool) {
	n, err := c.ParamsInt("id")
	if err != nil || n <= 0 {
		return 0, false
	}
	return int64(n), true
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id debe ser un entero positivo"})
}
