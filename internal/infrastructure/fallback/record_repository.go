// Package fallback combina el backend REST con una copia local en memoria.
// Solo domain.ErrUnavailable activa la copia local; los rechazos del backend se propagan.
package fallback

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/smartbodega-api/internal/domain"
	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
	"github.com/jhoicas/smartbodega-api/internal/domain/repository"
	"github.com/jhoicas/smartbodega-api/pkg/logger"
)

// LocalStore copia local que además puede sincronizarse con el listado remoto.
type LocalStore[T entity.Record] interface {
	repository.RecordRepository[T]
	Replace(list []T) error
}

// RecordRepo intenta primary y recurre a local cuando primary no responde.
type RecordRepo[T entity.Record] struct {
	primary repository.RecordRepository[T]
	local   LocalStore[T]
	log     *logger.Logger
	kind    string
}

var _ repository.RecordRepository[*entity.Area] = (*RecordRepo[*entity.Area])(nil)

// NewRecordRepository construye el repositorio combinado para kind.
func NewRecordRepository[T entity.Record](kind string, primary repository.RecordRepository[T], local LocalStore[T], log *logger.Logger) *RecordRepo[T] {
	if log == nil {
		log = logger.Nop()
	}
	return &RecordRepo[T]{primary: primary, local: local, log: log.Component("fallback"), kind: kind}
}

// GetAll consulta el remoto y refresca la copia local; sin remoto usa la local.
func (r *RecordRepo[T]) GetAll(ctx context.Context) ([]T, error) {
	list, err := r.primary.GetAll(ctx)
	if err == nil {
		if err := r.local.Replace(list); err != nil {
			r.log.Warn().Err(err).Str("kind", r.kind).Msg("no se pudo sincronizar la copia local")
		}
		return list, nil
	}
	if !r.unavailable(err, "GetAll") {
		return nil, err
	}
	return r.local.GetAll(ctx)
}

// GetByID obtiene un registro por ID.
func (r *RecordRepo[T]) GetByID(ctx context.Context, id int64) (T, error) {
	rec, err := r.primary.GetByID(ctx, id)
	if err == nil || !r.unavailable(err, "GetByID") {
		return rec, err
	}
	return r.local.GetByID(ctx, id)
}

// Search busca en el remoto o, si no responde, en la copia local.
func (r *RecordRepo[T]) Search(ctx context.Context, term string) ([]T, error) {
	list, err := r.primary.Search(ctx, term)
	if err == nil || !r.unavailable(err, "Search") {
		return list, err
	}
	return r.local.Search(ctx, term)
}

// FilterByField filtra en el remoto o en la copia local.
func (r *RecordRepo[T]) FilterByField(ctx context.Context, value string) ([]T, error) {
	list, err := r.primary.FilterByField(ctx, value)
	if err == nil || !r.unavailable(err, "FilterByField") {
		return list, err
	}
	return r.local.FilterByField(ctx, value)
}

// FilterByDateRange filtra por fechas en el remoto o en la copia local.
func (r *RecordRepo[T]) FilterByDateRange(ctx context.Context, start, end *time.Time) ([]T, error) {
	list, err := r.primary.FilterByDateRange(ctx, start, end)
	if err == nil || !r.unavailable(err, "FilterByDateRange") {
		return list, err
	}
	return r.local.FilterByDateRange(ctx, start, end)
}

// Create crea en el remoto o en la copia local.
func (r *RecordRepo[T]) Create(ctx context.Context, record T) (T, error) {
	rec, err := r.primary.Create(ctx, record)
	if err == nil || !r.unavailable(err, "Create") {
		return rec, err
	}
	return r.local.Create(ctx, record)
}

// Update actualiza en el remoto o en la copia local.
func (r *RecordRepo[T]) Update(ctx context.Context, id int64, patch map[string]any) (T, error) {
	rec, err := r.primary.Update(ctx, id, patch)
	if err == nil || !r.unavailable(err, "Update") {
		return rec, err
	}
	return r.local.Update(ctx, id, patch)
}

// Delete elimina en el remoto o en la copia local.
func (r *RecordRepo[T]) Delete(ctx context.Context, id int64) error {
	err := r.primary.Delete(ctx, id)
	if err == nil || !r.unavailable(err, "Delete") {
		return err
	}
	return r.local.Delete(ctx, id)
}

// unavailable registra el aviso de modo local cuando err indica backend inalcanzable.
func (r *RecordRepo[T]) unavailable(err error, op string) bool {
	if !errors.Is(err, domain.ErrUnavailable) {
		return false
	}
	r.log.Warn().Err(err).Str("kind", r.kind).Str("op", op).Msg("backend no disponible, usando datos locales")
	return true
}
