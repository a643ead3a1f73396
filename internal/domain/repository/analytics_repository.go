package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MovementTotals agregados de un tipo de movimiento.
type MovementTotals struct {
	Count    int
	Quantity int64
	Value    decimal.Decimal // Σ quantity × price
}

// AnalyticsRepository consultas read-only para el dashboard. Los backends que no
// pueden agregar en origen (memoria, REST) se resuelven en la capa de aplicación.
type AnalyticsRepository interface {
	MovementTotals(ctx context.Context, kind string, start, end *time.Time) (MovementTotals, error)
}
