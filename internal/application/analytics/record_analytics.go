package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
	"github.com/jhoicas/smartbodega-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*RecordAnalytics)(nil)

// RecordAnalytics calcula los agregados recorriendo los registros. Lo usan los backends
// que no pueden agregar en origen (memoria, REST, fallback).
type RecordAnalytics struct {
	entries repository.RecordRepository[*entity.Entry]
	exits   repository.RecordRepository[*entity.Exit]
}

// NewRecordAnalytics construye el agregador sobre los repositorios de movimientos.
func NewRecordAnalytics(entries repository.RecordRepository[*entity.Entry], exits repository.RecordRepository[*entity.Exit]) *RecordAnalytics {
	return &RecordAnalytics{entries: entries, exits: exits}
}

func (a *RecordAnalytics) MovementTotals(ctx context.Context, kind string, start, end *time.Time) (repository.MovementTotals, error) {
	switch kind {
	case entity.KindEntry:
		list, err := a.entries.FilterByDateRange(ctx, start, end)
		if err != nil {
			return repository.MovementTotals{}, err
		}
		return sumMovements(list), nil
	case entity.KindExit:
		list, err := a.exits.FilterByDateRange(ctx, start, end)
		if err != nil {
			return repository.MovementTotals{}, err
		}
		return sumMovements(list), nil
	}
	return repository.MovementTotals{}, fmt.Errorf("analytics: kind %q no es un movimiento", kind)
}

type movement interface {
	Total() decimal.Decimal
	Qty() int
}

func sumMovements[M movement](list []M) repository.MovementTotals {
	out := repository.MovementTotals{Value: decimal.Zero}
	for _, m := range list {
		out.Count++
		out.Value = out.Value.Add(m.Total())
		out.Quantity += int64(m.Qty())
	}
	return out
}
