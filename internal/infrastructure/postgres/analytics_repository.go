package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/smartbodega-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// MovementTotals suma cantidades y valor (cantidad × precio) de entradas o salidas.
// El NUMERIC resultante se escanea a decimal.Decimal gracias al codec registrado en el pool.
func (r *AnalyticsRepo) MovementTotals(ctx context.Context, kind string, start, end *time.Time) (repository.MovementTotals, error) {
	const query = `
	SELECT
	    COUNT(*)                                                                         AS movements,
	    COALESCE(SUM((data->>'quantity')::BIGINT), 0)                                    AS quantity,
	    COALESCE(SUM((data->>'quantity')::NUMERIC * COALESCE(NULLIF(data->>'price', ''), '0')::NUMERIC), 0) AS value
	FROM records
	WHERE kind = $1
	  AND ($2::date IS NULL OR record_date >= $2::date)
	  AND ($3::date IS NULL OR record_date <= $3::date)`

	var out repository.MovementTotals
	if err := r.pool.QueryRow(ctx, query, kind, start, end).Scan(&out.Count, &out.Quantity, &out.Value); err != nil {
		return out, fmt.Errorf("analytics.MovementTotals(%s): %w", kind, err)
	}
	return out, nil
}
