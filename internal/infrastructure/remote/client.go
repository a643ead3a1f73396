package remote

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	json "github.com/bytedance/sonic"
	"github.com/valyala/fasthttp"

	"github.com/jhoicas/smartbodega-api/internal/domain"
)

// Client cliente HTTP mínimo para el backend REST de SMARTBODEGA.
// Los errores de transporte se reportan como domain.ErrUnavailable; las respuestas
// fuera de 2xx como domain.ErrNotFound (404) o domain.ErrRejected.
type Client struct {
	http    *fasthttp.Client
	baseURL string
	timeout time.Duration
}

// Option configura el cliente.
type Option func(*Client)

// WithHTTPClient reemplaza el cliente fasthttp (tests con InmemoryListener).
func WithHTTPClient(c *fasthttp.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// NewClient construye el cliente sobre baseURL (sin "/" final).
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	c := &Client{
		http: &fasthttp.Client{
			Name:                "smartbodega-api",
			MaxIdleConnDuration: time.Minute,
		},
		baseURL: baseURL,
		timeout: timeout,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL devuelve la URL base configurada.
func (c *Client) BaseURL() string { return c.baseURL }

// Do ejecuta method sobre path con query opcional; body se serializa como JSON y la
// respuesta se decodifica en out cuando no es nil.
func (c *Client) Do(ctx context.Context, method, path string, query *fasthttp.Args, body, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	uri := c.baseURL + path
	if query != nil && query.Len() > 0 {
		uri += "?" + query.String()
	}
	req.SetRequestURI(uri)
	req.Header.SetMethod(method)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("remote: serializar %s %s: %w", method, path, err)
		}
		req.Header.SetContentType("application/json")
		req.SetBodyRaw(raw)
	}

	if err := c.http.DoTimeout(req, resp, c.deadline(ctx)); err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrUnavailable, method, path, err)
	}

	status := resp.StatusCode()
	switch {
	case status == fasthttp.StatusNotFound:
		return domain.ErrNotFound
	case status < 200 || status > 299:
		return &StatusError{Method: method, Path: path, Status: status, Body: string(resp.Body())}
	}
	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%w: %s %s: respuesta ilegible: %v", domain.ErrRejected, method, path, err)
	}
	return nil
}

func (c *Client) deadline(ctx context.Context) time.Duration {
	d := c.timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < d {
			d = left
		}
	}
	return d
}

// StatusError respuesta fuera de 2xx del backend; se compara como domain.ErrRejected.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

// Error describe el estado HTTP y el cuerpo recibido.
func (e *StatusError) Error() string {
	return "remote: " + e.Method + " " + e.Path + " respondió " + strconv.Itoa(e.Status)
}

// Is permite errors.Is(err, domain.ErrRejected).
func (e *StatusError) Is(target error) bool { return target == domain.ErrRejected }

// IsRejected indica si err proviene de una respuesta fuera de 2xx.
func IsRejected(err error) bool { return errors.Is(err, domain.ErrRejected) }
