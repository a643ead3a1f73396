package records

import (
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
)

var folder = cases.Fold()

// SearchKey normaliza un texto para comparaciones sin distinguir mayúsculas.
func SearchKey(s string) string {
	return folder.String(strings.TrimSpace(s))
}

// MatchesTerm indica si term aparece (sin distinguir mayúsculas) en alguno de los campos de búsqueda.
// Un término vacío coincide con todo.
func MatchesTerm(r entity.Record, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	needle := folder.String(term)
	for _, f := range r.SearchFields() {
		if strings.Contains(folder.String(f), needle) {
			return true
		}
	}
	return false
}

// MatchesField coincidencia exacta sobre FilterField; "all" y "" desactivan el filtro.
func MatchesField(r entity.Record, value string) bool {
	if value == "" || value == entity.FilterAll {
		return true
	}
	return r.FilterField() == value
}

// InDateRange rango inclusivo con extremos opcionales. Los registros sin fecha solo
// coinciden cuando no hay ningún extremo.
func InDateRange(r entity.Record, start, end *time.Time) bool {
	if start == nil && end == nil {
		return true
	}
	d := r.RecordDate()
	if d == nil {
		return false
	}
	if start != nil && d.Before(*start) {
		return false
	}
	if end != nil && d.After(*end) {
		return false
	}
	return true
}
