package records

import (
	stdjson "encoding/json"
	"fmt"

	json "github.com/bytedance/sonic"

	"github.com/jhoicas/smartbodega-api/internal/domain"
	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
)

// Merge aplica patch (mezcla superficial por llave JSON) sobre una copia de r.
// La llave "id" nunca se modifica. Los campos que el patch no toca se copian byte a byte,
// así un decimal serializado como número no pasa por float64.
func Merge[T entity.Record](r T, patch map[string]any) (T, error) {
	var zero T
	raw, err := json.Marshal(r)
	if err != nil {
		return zero, fmt.Errorf("merge: serializar: %w", err)
	}
	fields := map[string]stdjson.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return zero, fmt.Errorf("merge: leer campos: %w", err)
	}
	for k, v := range patch {
		if k == "id" {
			continue
		}
		val, err := json.Marshal(v)
		if err != nil {
			return zero, fmt.Errorf("%w: campo %s: %v", domain.ErrInvalidInput, k, err)
		}
		fields[k] = val
	}
	raw, err = json.Marshal(fields)
	if err != nil {
		return zero, fmt.Errorf("merge: serializar patch: %w", err)
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	out.SetID(r.GetID())
	return out, nil
}

// Clone copia profunda de r vía JSON.
func Clone[T entity.Record](r T) (T, error) {
	var out T
	raw, err := json.Marshal(r)
	if err != nil {
		return out, fmt.Errorf("clonar registro: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("clonar registro: %w", err)
	}
	return out, nil
}

// Decode construye un T desde su representación JSON.
func Decode[T entity.Record](raw []byte) (T, error) {
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decodificar registro: %w", err)
	}
	return out, nil
}

// Encode serializa r.
func Encode[T entity.Record](r T) ([]byte, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("codificar registro: %w", err)
	}
	return raw, nil
}
