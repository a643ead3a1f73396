package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/smartbodega-api/internal/domain"
	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
	"github.com/jhoicas/smartbodega-api/internal/domain/records"
	"github.com/jhoicas/smartbodega-api/internal/domain/repository"
)

var _ repository.RecordRepository[*entity.Entry] = (*RecordRepo[*entity.Entry])(nil)

// RecordRepo implementación de RecordRepository sobre la tabla records (JSONB por kind).
type RecordRepo[T entity.Record] struct {
	pool *pgxpool.Pool
	tx   *TxRunner
	kind string
}

// NewRecordRepository construye el adaptador de persistencia para la colección kind.
func NewRecordRepository[T entity.Record](pool *pgxpool.Pool, kind string) *RecordRepo[T] {
	return &RecordRepo[T]{pool: pool, tx: NewTxRunner(pool), kind: kind}
}

const selectRecords = `SELECT data FROM records WHERE kind = $1`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GetAll lista los registros del kind ordenados por ID.
func (r *RecordRepo[T]) GetAll(ctx context.Context) ([]T, error) {
	return r.list(ctx, selectRecords+` ORDER BY seq`, r.kind)
}

// GetByID obtiene un registro por ID.
func (r *RecordRepo[T]) GetByID(ctx context.Context, id int64) (T, error) {
	var zero T
	var raw []byte
	err := r.pool.QueryRow(ctx, selectRecords+` AND id = $2`, r.kind, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, domain.ErrNotFound
		}
		return zero, fmt.Errorf("get %s: %w", r.kind, err)
	}
	return records.Decode[T](raw)
}

// Search busca term en la columna search_text.
func (r *RecordRepo[T]) Search(ctx context.Context, term string) ([]T, error) {
	key := records.SearchKey(term)
	if key == "" {
		return r.GetAll(ctx)
	}
	return r.list(ctx, selectRecords+` AND search_text LIKE '%' || $2 || '%' ORDER BY seq`, r.kind, likeEscaper.Replace(key))
}

// FilterByField filtra por filter_value; "all" o vacío devuelven todo.
func (r *RecordRepo[T]) FilterByField(ctx context.Context, value string) ([]T, error) {
	if value == "" || value == entity.FilterAll {
		return r.GetAll(ctx)
	}
	return r.list(ctx, selectRecords+` AND filter_value = $2 ORDER BY seq`, r.kind, value)
}

// FilterByDateRange filtra por record_date con extremos inclusivos.
func (r *RecordRepo[T]) FilterByDateRange(ctx context.Context, start, end *time.Time) ([]T, error) {
	if start == nil && end == nil {
		return r.GetAll(ctx)
	}
	query := selectRecords + `
		AND record_date IS NOT NULL
		AND ($2::date IS NULL OR record_date >= $2::date)
		AND ($3::date IS NULL OR record_date <= $3::date)
		ORDER BY seq`
	return r.list(ctx, query, r.kind, start, end)
}

// Create asigna max(id)+1 bajo un advisory lock por kind, de modo que dos inserciones
// concurrentes nunca obtienen el mismo id.
func (r *RecordRepo[T]) Create(ctx context.Context, record T) (T, error) {
	var zero T
	rec, err := records.Clone(record)
	if err != nil {
		return zero, err
	}
	err = r.tx.Run(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, r.kind); err != nil {
			return fmt.Errorf("lock %s: %w", r.kind, err)
		}
		var next int64
		if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM records WHERE kind = $1`, r.kind).Scan(&next); err != nil {
			return fmt.Errorf("next id %s: %w", r.kind, err)
		}
		rec.SetID(next)
		raw, err := records.Encode(rec)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO records (kind, id, data, search_text, filter_value, record_date)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			r.kind, next, raw, searchText(rec), rec.FilterField(), rec.RecordDate(),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert %s: %w", r.kind, err)
		}
		return nil
	})
	if err != nil {
		return zero, err
	}
	return rec, nil
}

// Update bloquea la fila, mezcla patch y reescribe las columnas derivadas.
func (r *RecordRepo[T]) Update(ctx context.Context, id int64, patch map[string]any) (T, error) {
	var updated T
	err := r.tx.Run(ctx, func(tx pgx.Tx) error {
		var raw []byte
		err := tx.QueryRow(ctx, selectRecords+` AND id = $2 FOR UPDATE`, r.kind, id).Scan(&raw)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("get %s: %w", r.kind, err)
		}
		current, err := records.Decode[T](raw)
		if err != nil {
			return err
		}
		if updated, err = records.Merge(current, patch); err != nil {
			return err
		}
		if raw, err = records.Encode(updated); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			UPDATE records SET data = $3, search_text = $4, filter_value = $5, record_date = $6, updated_at = now()
			WHERE kind = $1 AND id = $2`,
			r.kind, id, raw, searchText(updated), updated.FilterField(), updated.RecordDate(),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("update %s: %w", r.kind, err)
		}
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return updated, nil
}

// Delete elimina un registro por ID.
func (r *RecordRepo[T]) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM records WHERE kind = $1 AND id = $2`, r.kind, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.kind, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Upsert escribe el registro con su id actual (carga de semillas).
func (r *RecordRepo[T]) Upsert(ctx context.Context, rec T) error {
	raw, err := records.Encode(rec)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO records (kind, id, data, search_text, filter_value, record_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (kind, id) DO UPDATE
		SET data = EXCLUDED.data, search_text = EXCLUDED.search_text,
		    filter_value = EXCLUDED.filter_value, record_date = EXCLUDED.record_date, updated_at = now()`,
		r.kind, rec.GetID(), raw, searchText(rec), rec.FilterField(), rec.RecordDate(),
	)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", r.kind, err)
	}
	return nil
}

func (r *RecordRepo[T]) list(ctx context.Context, query string, args ...any) ([]T, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.kind, err)
	}
	defer rows.Close()
	out := make([]T, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.kind, err)
		}
		rec, err := records.Decode[T](raw)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// searchText concatena los campos de búsqueda normalizados; un salto de línea evita
// coincidencias que crucen dos campos.
func searchText(r entity.Record) string {
	fields := r.SearchFields()
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, records.SearchKey(f))
	}
	return strings.Join(keys, "\n")
}
