package repository

import (
	"context"
	"time"

	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
)

// RecordRepository define el puerto de persistencia genérico para los catálogos y movimientos (DIP).
// Todas las implementaciones preservan el orden de inserción en los listados.
type RecordRepository[T entity.Record] interface {
	// GetAll devuelve la colección completa, sin paginación.
	GetAll(ctx context.Context) ([]T, error)
	// GetByID devuelve domain.ErrNotFound si no existe.
	GetByID(ctx context.Context, id int64) (T, error)
	// Search coincidencia por subcadena sin distinguir mayúsculas sobre SearchFields; "" devuelve todo.
	Search(ctx context.Context, term string) ([]T, error)
	// FilterByField coincidencia exacta sobre FilterField; "all" o "" desactivan el filtro.
	FilterByField(ctx context.Context, value string) ([]T, error)
	// FilterByDateRange rango inclusivo; cualquiera de los extremos puede ser nil.
	FilterByDateRange(ctx context.Context, start, end *time.Time) ([]T, error)
	// Create asigna id = max(ids)+1 (1 si está vacía) y devuelve el registro creado.
	Create(ctx context.Context, record T) (T, error)
	// Update mezcla superficialmente patch sobre el registro; domain.ErrNotFound si no existe.
	Update(ctx context.Context, id int64, patch map[string]any) (T, error)
	// Delete elimina el registro; domain.ErrNotFound si no existe.
	Delete(ctx context.Context, id int64) error
}
