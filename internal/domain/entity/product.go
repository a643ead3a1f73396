package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de la bodega.
// Stock es informativo: los movimientos no lo modifican.
type Product struct {
	ID          int64           `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"min_stock"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"` // activo, inactivo
	Notes       string          `json:"notes"`
}

func (p *Product) GetID() int64   { return p.ID }
func (p *Product) SetID(id int64) { p.ID = id }

func (p *Product) SearchFields() []string {
	return []string{p.Name, p.Code, p.Category, p.Description}
}

func (p *Product) FilterField() string    { return p.Category }
func (p *Product) RecordDate() *time.Time { return nil }

// LowStock indica si el stock está en o por debajo del mínimo.
func (p *Product) LowStock() bool { return p.Stock <= p.MinStock }
