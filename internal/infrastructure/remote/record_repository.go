package remote

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
	"github.com/jhoicas/smartbodega-api/internal/domain/repository"
)

var _ repository.RecordRepository[*entity.Product] = (*RecordRepo[*entity.Product])(nil)

// RecordRepo colección kind expuesta por el backend REST:
// GET /kind[?q|field|from,to], GET /kind/:id, POST /kind, PUT /kind/:id, DELETE /kind/:id.
type RecordRepo[T entity.Record] struct {
	client *Client
	kind   string
}

// NewRecordRepository construye el repositorio remoto para kind.
func NewRecordRepository[T entity.Record](client *Client, kind string) *RecordRepo[T] {
	return &RecordRepo[T]{client: client, kind: kind}
}

// GetAll obtiene la colección completa del servicio remoto.
func (r *RecordRepo[T]) GetAll(ctx context.Context) ([]T, error) {
	return r.list(ctx, nil)
}

// GetByID obtiene un registro por ID.
func (r *RecordRepo[T]) GetByID(ctx context.Context, id int64) (T, error) {
	var out T
	err := r.client.Do(ctx, fasthttp.MethodGet, r.itemPath(id), nil, nil, &out)
	return out, err
}

// Search delega la búsqueda al servicio remoto (?q=).
func (r *RecordRepo[T]) Search(ctx context.Context, term string) ([]T, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return r.GetAll(ctx)
	}
	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)
	args.Add("q", term)
	return r.list(ctx, args)
}

// FilterByField delega el filtro al servicio remoto (?field=).
func (r *RecordRepo[T]) FilterByField(ctx context.Context, value string) ([]T, error) {
	if value == "" || value == entity.FilterAll {
		return r.GetAll(ctx)
	}
	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)
	args.Add("field", value)
	return r.list(ctx, args)
}

// FilterByDateRange delega el rango al servicio remoto (?from=&to=).
func (r *RecordRepo[T]) FilterByDateRange(ctx context.Context, start, end *time.Time) ([]T, error) {
	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)
	if start != nil {
		args.Add("from", start.Format(entity.DateLayout))
	}
	if end != nil {
		args.Add("to", end.Format(entity.DateLayout))
	}
	return r.list(ctx, args)
}

// Create envía el registro; el servicio asigna el ID.
func (r *RecordRepo[T]) Create(ctx context.Context, record T) (T, error) {
	var out T
	err := r.client.Do(ctx, fasthttp.MethodPost, "/"+r.kind, nil, record, &out)
	return out, err
}

// Update envía el patch sin la llave id.
func (r *RecordRepo[T]) Update(ctx context.Context, id int64, patch map[string]any) (T, error) {
	var out T
	body := make(map[string]any, len(patch))
	for k, v := range patch {
		if k != "id" {
			body[k] = v
		}
	}
	err := r.client.Do(ctx, fasthttp.MethodPut, r.itemPath(id), nil, body, &out)
	return out, err
}

// Delete elimina un registro por ID.
func (r *RecordRepo[T]) Delete(ctx context.Context, id int64) error {
	return r.client.Do(ctx, fasthttp.MethodDelete, r.itemPath(id), nil, nil, nil)
}

func (r *RecordRepo[T]) list(ctx context.Context, query *fasthttp.Args) ([]T, error) {
	out := make([]T, 0)
	if err := r.client.Do(ctx, fasthttp.MethodGet, "/"+r.kind, query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RecordRepo[T]) itemPath(id int64) string {
	return "/" + r.kind + "/" + strconv.FormatInt(id, 10)
}
