package dto

import (
	stdjson "encoding/json"
	"strings"

	json "github.com/bytedance/sonic"
	"github.com/spf13/cast"
)

// FlexInt entero que acepta tanto 5 como "5" en el JSON de los formularios.
type FlexInt int

// UnmarshalJSON admite número, cadena numérica, "" y null (cero). Un número con parte
// fraccionaria se rechaza igual que su forma en cadena.
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		*f = 0
		return nil
	}
	var v any
	if err := numberAPI.Unmarshal(b, &v); err != nil {
		return err
	}
	if n, ok := v.(stdjson.Number); ok {
		v = n.String()
	}
	if str, ok := v.(string); ok {
		// cast interpreta "08" como octal; los formularios envían decimales con ceros a la izquierda.
		str = strings.TrimLeft(strings.TrimSpace(str), "0")
		if str == "" {
			str = "0"
		}
		v = str
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return invalid("se esperaba un número entero: %s", s)
	}
	*f = FlexInt(n)
	return nil
}

// MarshalJSON serializa como número.
func (f FlexInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(f))
}

// Int valor como int.
func (f FlexInt) Int() int { return int(f) }

// FlexString texto que también acepta números (teléfonos, códigos DANE).
type FlexString string

// UnmarshalJSON admite cadena, número y null.
func (f *FlexString) UnmarshalJSON(b []byte) error {
	if strings.TrimSpace(string(b)) == "null" {
		*f = ""
		return nil
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if n, ok := v.(float64); ok {
		v = int64(n)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return invalid("se esperaba texto: %s", string(b))
	}
	*f = FlexString(strings.TrimSpace(s))
	return nil
}

// String valor como string.
func (f FlexString) String() string { return string(f) }
