package dto

import (
	"fmt"

	json "github.com/bytedance/sonic"

	"github.com/jhoicas/smartbodega-api/internal/domain"
	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ListResponse envoltorio de los listados (sin paginación; total = len(items)).
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// NewList construye la respuesta de un listado.
func NewList[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items)}
}

// ListQuery parámetros de consulta de GET /api/{entity}.
// Se aplica el primero presente: q, field, from/to.
type ListQuery struct {
	Q     string `query:"q"`
	Field string `query:"field"`
	From  string `query:"from"`
	To    string `query:"to"`
}

// numberAPI decodifica números como json.Number, sin pasar por float64.
var numberAPI = json.Config{UseNumber: true}.Froze()

// toPatch convierte una petición de actualización (campos puntero con omitempty) en el
// mapa de mezcla superficial que consumen los repositorios.
func toPatch(req any) (map[string]any, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("patch: %w", err)
	}
	patch := map[string]any{}
	if err := numberAPI.Unmarshal(raw, &patch); err != nil {
		return nil, fmt.Errorf("patch: %w", err)
	}
	delete(patch, "id")
	return patch, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrInvalidInput}, args...)...)
}

func required(field, value string) error {
	if value == "" {
		return invalid("%s es obligatorio", field)
	}
	return nil
}

// catalogStatus aplica el estado por defecto (activo) y valida el enum.
func catalogStatus(s string) (string, error) {
	switch s {
	case "":
		return entity.StatusActive, nil
	case entity.StatusActive, entity.StatusInactive:
		return s, nil
	}
	return "", invalid("estado %q no válido", s)
}

func optionalStatus(s *string) error {
	if s == nil {
		return nil
	}
	if *s != entity.StatusActive && *s != entity.StatusInactive {
		return invalid("estado %q no válido", *s)
	}
	return nil
}
