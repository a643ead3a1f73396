package dto

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
)

// CreateEntryRequest entrada de stock. Quantity acepta "5" o 5; Date acepta YYYY-MM-DD.
type CreateEntryRequest struct {
	Product  string          `json:"product"`
	Quantity FlexInt         `json:"quantity"`
	Date     entity.Date     `json:"date"`
	Supplier string          `json:"supplier"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Status   string          `json:"status"`
	Notes    string          `json:"notes"`
}

func (r CreateEntryRequest) ToRecord() (*entity.Entry, error) {
	status, err := validateMovement(r.Product, r.Quantity, r.Date, r.Price, r.Status)
	if err != nil {
		return nil, err
	}
	return &entity.Entry{
		Product:  strings.TrimSpace(r.Product),
		Quantity: r.Quantity.Int(),
		Date:     r.Date,
		Supplier: strings.TrimSpace(r.Supplier),
		Category: strings.TrimSpace(r.Category),
		Price:    r.Price,
		Status:   status,
		Notes:    r.Notes,
	}, nil
}

// CreateExitRequest salida de stock.
type CreateExitRequest struct {
	Product     string          `json:"product"`
	Quantity    FlexInt         `json:"quantity"`
	Date        entity.Date     `json:"date"`
	Destination string          `json:"destination"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
	Notes       string          `json:"notes"`
}

func (r CreateExitRequest) ToRecord() (*entity.Exit, error) {
	status, err := validateMovement(r.Product, r.Quantity, r.Date, r.Price, r.Status)
	if err != nil {
		return nil, err
	}
	return &entity.Exit{
		Product:     strings.TrimSpace(r.Product),
		Quantity:    r.Quantity.Int(),
		Date:        r.Date,
		Destination: strings.TrimSpace(r.Destination),
		Category:    strings.TrimSpace(r.Category),
		Price:       r.Price,
		Status:      status,
		Notes:       r.Notes,
	}, nil
}

// UpdateMovementRequest campos comunes de la actualización parcial de entradas y salidas.
type UpdateMovementRequest struct {
	Product  *string          `json:"product,omitempty"`
	Quantity *FlexInt         `json:"quantity,omitempty"`
	Date     *entity.Date     `json:"date,omitempty"`
	Category *string          `json:"category,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Status   *string          `json:"status,omitempty"`
	Notes    *string          `json:"notes,omitempty"`
}

func (r UpdateMovementRequest) validate() error {
	if r.Product != nil && strings.TrimSpace(*r.Product) == "" {
		return invalid("product es obligatorio")
	}
	if r.Quantity != nil && *r.Quantity <= 0 {
		return invalid("la cantidad debe ser mayor que cero")
	}
	if r.Date != nil && r.Date.IsZero() {
		return invalid("date es obligatorio")
	}
	if r.Price != nil && r.Price.IsNegative() {
		return invalid("el precio no puede ser negativo")
	}
	if r.Status != nil && !entity.IsValidMovementStatus(*r.Status) {
		return invalid("estado %q no válido", *r.Status)
	}
	return nil
}

// UpdateEntryRequest actualización parcial de una entrada.
type UpdateEntryRequest struct {
	UpdateMovementRequest
	Supplier *string `json:"supplier,omitempty"`
}

func (r UpdateEntryRequest) ToPatch() (map[string]any, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	return toPatch(r)
}

// UpdateExitRequest actualización parcial de una salida.
type UpdateExitRequest struct {
	UpdateMovementRequest
	Destination *string `json:"destination,omitempty"`
}

func (r UpdateExitRequest) ToPatch() (map[string]any, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	return toPatch(r)
}

func validateMovement(product string, qty FlexInt, date entity.Date, price decimal.Decimal, status string) (string, error) {
	if err := required("product", strings.TrimSpace(product)); err != nil {
		return "", err
	}
	if qty <= 0 {
		return "", invalid("la cantidad debe ser mayor que cero")
	}
	if date.IsZero() {
		return "", invalid("date es obligatorio")
	}
	if price.IsNegative() {
		return "", invalid("el precio no puede ser negativo")
	}
	if status == "" {
		return entity.MovementCompleted, nil
	}
	if !entity.IsValidMovementStatus(status) {
		return "", invalid("estado %q no válido", status)
	}
	return status, nil
}
