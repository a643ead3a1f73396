// Package memory implementa los puertos de persistencia sobre colecciones en memoria.
// Es el backend por defecto en desarrollo y la copia local del backend fallback.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/smartbodega-api/internal/domain"
	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
	"github.com/jhoicas/smartbodega-api/internal/domain/records"
	"github.com/jhoicas/smartbodega-api/internal/domain/repository"
)

// Option configura un Store.
type Option func(*options)

type options struct {
	latency time.Duration
}

// WithLatency simula la latencia de red de un backend real en cada operación.
func WithLatency(d time.Duration) Option {
	return func(o *options) { o.latency = d }
}

// Store colección en memoria de registros de un mismo kind.
// Guarda copias: nadie fuera del store comparte punteros con su estado.
type Store[T entity.Record] struct {
	mu    sync.RWMutex
	kind  string
	items []T
	opts  options
}

var _ repository.RecordRepository[*entity.Product] = (*Store[*entity.Product])(nil)

// NewStore construye un store vacío para kind.
func NewStore[T entity.Record](kind string, opts ...Option) *Store[T] {
	s := &Store[T]{kind: kind}
	for _, o := range opts {
		o(&s.opts)
	}
	return s
}

// Kind nombre de la colección.
func (s *Store[T]) Kind() string { return s.kind }

// Seed carga registros iniciales. Los registros sin id reciben max+1.
func (s *Store[T]) Seed(list ...T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range list {
		c, err := records.Clone(r)
		if err != nil {
			return err
		}
		if c.GetID() == 0 {
			c.SetID(s.nextID())
		}
		s.items = append(s.items, c)
	}
	return nil
}

// Replace sustituye la colección completa (sincronización desde el backend remoto).
func (s *Store[T]) Replace(list []T) error {
	cp := make([]T, 0, len(list))
	for _, r := range list {
		c, err := records.Clone(r)
		if err != nil {
			return err
		}
		cp = append(cp, c)
	}
	s.mu.Lock()
	s.items = cp
	s.mu.Unlock()
	return nil
}

// GetAll devuelve copias de todos los registros en orden de inserción.
func (s *Store[T]) GetAll(ctx context.Context) ([]T, error) {
	return s.collect(ctx, func(T) bool { return true })
}

// GetByID obtiene un registro por ID.
func (s *Store[T]) GetByID(ctx context.Context, id int64) (T, error) {
	var zero T
	if err := s.wait(ctx); err != nil {
		return zero, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return zero, domain.ErrNotFound
	}
	return records.Clone(s.items[i])
}

// Search devuelve los registros cuyo texto contiene term, sin distinguir mayúsculas.
func (s *Store[T]) Search(ctx context.Context, term string) ([]T, error) {
	return s.collect(ctx, func(r T) bool { return records.MatchesTerm(r, term) })
}

// FilterByField filtra por el campo de estado o rol; "all" o vacío devuelven todo.
func (s *Store[T]) FilterByField(ctx context.Context, value string) ([]T, error) {
	return s.collect(ctx, func(r T) bool { return records.MatchesField(r, value) })
}

// FilterByDateRange filtra por fecha con extremos inclusivos y opcionales.
func (s *Store[T]) FilterByDateRange(ctx context.Context, start, end *time.Time) ([]T, error) {
	return s.collect(ctx, func(r T) bool { return records.InDateRange(r, start, end) })
}

// Create asigna el siguiente ID (máximo + 1) y guarda una copia.
func (s *Store[T]) Create(ctx context.Context, record T) (T, error) {
	var zero T
	if err := s.wait(ctx); err != nil {
		return zero, err
	}
	c, err := records.Clone(record)
	if err != nil {
		return zero, err
	}
	s.mu.Lock()
	c.SetID(s.nextID())
	s.items = append(s.items, c)
	s.mu.Unlock()
	return records.Clone(c)
}

// Update mezcla patch sobre el registro sin cambiar su ID.
func (s *Store[T]) Update(ctx context.Context, id int64, patch map[string]any) (T, error) {
	var zero T
	if err := s.wait(ctx); err != nil {
		return zero, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return zero, domain.ErrNotFound
	}
	updated, err := records.Merge(s.items[i], patch)
	if err != nil {
		return zero, err
	}
	s.items[i] = updated
	return records.Clone(updated)
}

// Delete elimina un registro por ID.
func (s *Store[T]) Delete(ctx context.Context, id int64) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

func (s *Store[T]) collect(ctx context.Context, keep func(T) bool) ([]T, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.items))
	for _, r := range s.items {
		if !keep(r) {
			continue
		}
		c, err := records.Clone(r)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// nextID requiere el lock tomado.
func (s *Store[T]) nextID() int64 {
	var max int64
	for _, r := range s.items {
		if r.GetID() > max {
			max = r.GetID()
		}
	}
	return max + 1
}

func (s *Store[T]) indexOf(id int64) int {
	for i, r := range s.items {
		if r.GetID() == id {
			return i
		}
	}
	return -1
}

func (s *Store[T]) wait(ctx context.Context) error {
	if s.opts.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.opts.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
