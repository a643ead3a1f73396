package entity

import (
	"fmt"
	"strings"
	"time"
)

// Record es el contrato mínimo que necesitan los almacenes CRUD genéricos.
// Las implementaciones son punteros a struct con id numérico.
type Record interface {
	GetID() int64
	SetID(id int64)
	// SearchFields devuelve los textos sobre los que opera la búsqueda libre.
	SearchFields() []string
	// FilterField devuelve el valor del campo de filtrado exacto (categoría o estado).
	FilterField() string
	// RecordDate devuelve la fecha del registro; nil si la entidad no tiene fecha.
	RecordDate() *time.Time
}

// Kinds de registro; se usan como nombre de colección en los backends.
const (
	KindUser         = "users"
	KindProduct      = "products"
	KindCategory     = "categories"
	KindEntry        = "entries"
	KindExit         = "exits"
	KindSite         = "sites"
	KindCenter       = "centers"
	KindArea         = "areas"
	KindMunicipality = "municipalities"
)

// Estados genéricos de catálogo.
const (
	StatusActive   = "activo"
	StatusInactive = "inactivo"
)

// FilterAll es el centinela que desactiva el filtro por campo.
const FilterAll = "all"

// DateLayout formato de fecha de los movimientos (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Date fecha sin hora que se serializa como "YYYY-MM-DD".
type Date struct {
	time.Time
}

// NewDate trunca t al día.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate acepta "YYYY-MM-DD" o RFC3339.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return NewDate(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("fecha inválida %q", s)
	}
	return NewDate(t), nil
}

// String devuelve la fecha en formato YYYY-MM-DD ("" si es cero).
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MarshalJSON serializa como "YYYY-MM-DD" o null.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON acepta "YYYY-MM-DD", RFC3339, "" y null.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func datePtr(d Date) *time.Time {
	if d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
