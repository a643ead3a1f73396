package remote_test

import (
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	json "github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	"github.com/jhoicas/smartbodega-api/internal/domain"
	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
	"github.com/jhoicas/smartbodega-api/internal/infrastructure/memory"
	"github.com/jhoicas/smartbodega-api/internal/infrastructure/remote"
	"github.com/jhoicas/smartbodega-api/internal/infrastructure/seed"
)

// fakeBackend expone un memory.Store de productos con la misma API REST que el backend real.
type fakeBackend struct {
	store    *memory.Store[*entity.Product]
	lastPath string
	reject   bool
}

func (b *fakeBackend) handle(ctx *fasthttp.RequestCtx) {
	b.lastPath = string(ctx.RequestURI())
	if b.reject {
		ctx.Error(`{"message":"validación"}`, fasthttp.StatusUnprocessableEntity)
		return
	}
	parts := strings.Split(strings.Trim(strings.TrimPrefix(string(ctx.Path()), "/api"), "/"), "/")
	if len(parts) == 0 || parts[0] != entity.KindProduct {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		return
	}
	c := context.Background()
	var (
		out any
		err error
	)
	if len(parts) == 1 {
		switch string(ctx.Method()) {
		case fasthttp.MethodGet:
			args := ctx.QueryArgs()
			switch {
			case args.Has("q"):
				out, err = b.store.Search(c, string(args.Peek("q")))
			case args.Has("field"):
				out, err = b.store.FilterByField(c, string(args.Peek("field")))
			default:
				out, err = b.store.GetAll(c)
			}
		case fasthttp.MethodPost:
			var p entity.Product
			if err = json.Unmarshal(ctx.PostBody(), &p); err == nil {
				out, err = b.store.Create(c, &p)
				ctx.SetStatusCode(fasthttp.StatusCreated)
			}
		}
	} else {
		id, _ := strconv.ParseInt(parts[1], 10, 64)
		switch string(ctx.Method()) {
		case fasthttp.MethodGet:
			out, err = b.store.GetByID(c, id)
		case fasthttp.MethodPut:
			patch := map[string]any{}
			if err = json.Unmarshal(ctx.PostBody(), &patch); err == nil {
				out, err = b.store.Update(c, id, patch)
			}
		case fasthttp.MethodDelete:
			err = b.store.Delete(c, id)
			ctx.SetStatusCode(fasthttp.StatusNoContent)
		}
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			ctx.SetStatusCode(fasthttp.StatusNotFound)
			return
		}
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	if out != nil {
		raw, _ := json.Marshal(out)
		ctx.SetContentType("application/json")
		ctx.SetBody(raw)
	}
}

func newRemote(t *testing.T) (*remote.RecordRepo[*entity.Product], *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{store: memory.NewStore[*entity.Product](entity.KindProduct)}
	require.NoError(t, backend.store.Seed(seed.Products()...))

	ln := fasthttputil.NewInmemoryListener()
	go func() { _ = fasthttp.Serve(ln, backend.handle) }()
	t.Cleanup(func() { _ = ln.Close() })

	httpClient := &fasthttp.Client{Dial: func(string) (net.Conn, error) { return ln.Dial() }}
	client := remote.NewClient("http://bodega.test/api", time.Second, remote.WithHTTPClient(httpClient))
	return remote.NewRecordRepository[*entity.Product](client, entity.KindProduct), backend
}

func TestRemote_GetAllYGetByID(t *testing.T) {
	repo, _ := newRemote(t)
	ctx := context.Background()

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(seed.Products()))

	p, err := repo.GetByID(ctx, all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, all[0].Name, p.Name)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemote_SearchEnviaQuery(t *testing.T) {
	repo, backend := newRemote(t)

	_, err := repo.Search(context.Background(), "laptop hp")
	require.NoError(t, err)
	assert.Equal(t, "/api/products?q=laptop+hp", backend.lastPath)

	_, err = repo.FilterByField(context.Background(), "all")
	require.NoError(t, err)
	assert.Equal(t, "/api/products", backend.lastPath, "all no envía filtro")
}

func TestRemote_CreateUpdateDelete(t *testing.T) {
	repo, _ := newRemote(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &entity.Product{Code: "P-900", Name: "Grapadora", Stock: 4, Price: decimal.RequireFromString("15.5")})
	require.NoError(t, err)
	assert.Equal(t, int64(len(seed.Products())+1), created.ID)

	updated, err := repo.Update(ctx, created.ID, map[string]any{"stock": 9})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Stock)
	assert.Equal(t, "Grapadora", updated.Name)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), domain.ErrNotFound)
}

func TestRemote_RespuestaNo2xx_EsRechazo(t *testing.T) {
	repo, backend := newRemote(t)
	backend.reject = true

	_, err := repo.Create(context.Background(), &entity.Product{Name: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRejected)
	assert.NotErrorIs(t, err, domain.ErrUnavailable)

	var se *remote.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, fasthttp.StatusUnprocessableEntity, se.Status)
}

func TestRemote_BackendInalcanzable_EsNoDisponible(t *testing.T) {
	ln := fasthttputil.NewInmemoryListener()
	require.NoError(t, ln.Close())
	httpClient := &fasthttp.Client{Dial: func(string) (net.Conn, error) { return ln.Dial() }}
	client := remote.NewClient("http://bodega.test/api", 200*time.Millisecond, remote.WithHTTPClient(httpClient))
	repo := remote.NewRecordRepository[*entity.Product](client, entity.KindProduct)

	_, err := repo.GetAll(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.False(t, remote.IsRejected(err))
}
