package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un movimiento de inventario.
const (
	MovementCompleted = "Completado"
	MovementPending   = "Pendiente"
	MovementCancelled = "Cancelado"
)

// IsValidMovementStatus indica si status pertenece al enum de movimientos.
func IsValidMovementStatus(status string) bool {
	switch status {
	case MovementCompleted, MovementPending, MovementCancelled:
		return true
	}
	return false
}

// Entry movimiento de entrada de stock. Product y Category son texto libre.
type Entry struct {
	ID       int64           `json:"id"`
	Product  string          `json:"product"`
	Quantity int             `json:"quantity"`
	Date     Date            `json:"date"`
	Supplier string          `json:"supplier"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Status   string          `json:"status"`
	Notes    string          `json:"notes"`
}

func (e *Entry) GetID() int64   { return e.ID }
func (e *Entry) SetID(id int64) { e.ID = id }

func (e *Entry) SearchFields() []string {
	return []string{e.Product, e.Supplier, e.Category}
}

func (e *Entry) FilterField() string    { return e.Category }
func (e *Entry) RecordDate() *time.Time { return datePtr(e.Date) }

// Total cantidad por precio unitario.
func (e *Entry) Total() decimal.Decimal {
	return e.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// Qty cantidad movida.
func (e *Entry) Qty() int { return e.Quantity }

// Exit movimiento de salida de stock.
type Exit struct {
	ID          int64           `json:"id"`
	Product     string          `json:"product"`
	Quantity    int             `json:"quantity"`
	Date        Date            `json:"date"`
	Destination string          `json:"destination"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
	Notes       string          `json:"notes"`
}

func (e *Exit) GetID() int64   { return e.ID }
func (e *Exit) SetID(id int64) { e.ID = id }

func (e *Exit) SearchFields() []string {
	return []string{e.Product, e.Destination, e.Category}
}

func (e *Exit) FilterField() string    { return e.Category }
func (e *Exit) RecordDate() *time.Time { return datePtr(e.Date) }

// Total cantidad por precio unitario.
func (e *Exit) Total() decimal.Decimal {
	return e.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// Qty cantidad movida.
func (e *Exit) Qty() int { return e.Quantity }
