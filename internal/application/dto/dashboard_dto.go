package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	// Registros por colección: users, products, categories, entries, exits, sites...
	Counts map[string]int `json:"counts"`

	Entries     MovementTotalsDTO `json:"entries"`
	Exits       MovementTotalsDTO `json:"exits"`
	NetQuantity int64             `json:"net_quantity"` // entradas - salidas

	ByCategory []CategoryMovementDTO `json:"by_category"`
	LowStock   []LowStockDTO         `json:"low_stock"`

	DateLabel   string    `json:"date_label"` // ej: "Marzo 2024"
	GeneratedAt time.Time `json:"generated_at"`
}

// MovementTotalsDTO agregados de un tipo de movimiento.
type MovementTotalsDTO struct {
	Count    int             `json:"count"`
	Quantity int64           `json:"quantity"`
	Value    decimal.Decimal `json:"value"` // Σ cantidad × precio
}

// CategoryMovementDTO cantidades movidas por categoría (ordenado por nombre).
type CategoryMovementDTO struct {
	Category      string `json:"category"`
	EntryQuantity int64  `json:"entry_quantity"`
	ExitQuantity  int64  `json:"exit_quantity"`
}

// LowStockDTO producto en o por debajo de su stock mínimo.
type LowStockDTO struct {
	ID       int64  `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Stock    int    `json:"stock"`
	MinStock int    `json:"min_stock"`
}

// MovementsReportDTO datos del reporte de movimientos en un rango de fechas.
type MovementsReportDTO struct {
	From    *time.Time          `json:"from,omitempty"`
	To      *time.Time          `json:"to,omitempty"`
	Rows    []MovementReportRow `json:"rows"`
	Entries MovementTotalsDTO   `json:"entries"`
	Exits   MovementTotalsDTO   `json:"exits"`
}

// MovementReportRow una línea del reporte (entrada o salida).
type MovementReportRow struct {
	Type         string          `json:"type"` // entrada | salida
	ID           int64           `json:"id"`
	Date         string          `json:"date"`
	Product      string          `json:"product"`
	Category     string          `json:"category"`
	Counterparty string          `json:"counterparty"` // proveedor o destino
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
}
