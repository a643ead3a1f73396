package seed

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"

	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
)

var titleCase = cases.Title(language.Spanish)

// ParseMunicipios lee el catálogo oficial Municipios.xml (ISO-8859-1): cada <valor cod nombre>
// con un <otro codigo valor> que trae el departamento. Los ids quedan en cero.
func ParseMunicipios(r io.Reader) ([]*entity.Municipality, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("municipios: decodificar XML: %w", err)
	}

	var out []*entity.Municipality
	seen := map[string]bool{}
	for _, v := range doc.FindElements("//valor") {
		code := strings.TrimSpace(v.SelectAttrValue("cod", ""))
		name := strings.TrimSpace(v.SelectAttrValue("nombre", ""))
		otro := v.SelectElement("otro")
		if code == "" || name == "" || otro == nil || seen[code] {
			continue
		}
		dept := strings.TrimSpace(otro.SelectAttrValue("valor", ""))
		if dept == "" {
			continue
		}
		seen[code] = true
		out = append(out, &entity.Municipality{
			Code:       code,
			Name:       titleCase.String(name),
			Department: titleCase.String(dept),
			Status:     entity.StatusActive,
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("municipios: el XML no contiene valores")
	}
	return out, nil
}

// MergeMunicipalities agrega a base los municipios importados cuyo código no existe,
// con ids consecutivos a partir del mayor de base.
func MergeMunicipalities(base, imported []*entity.Municipality) []*entity.Municipality {
	out := make([]*entity.Municipality, 0, len(base)+len(imported))
	known := map[string]bool{}
	var maxID int64
	for _, m := range base {
		out = append(out, m)
		known[m.Code] = true
		if m.ID > maxID {
			maxID = m.ID
		}
	}
	for _, m := range imported {
		if known[m.Code] {
			continue
		}
		known[m.Code] = true
		maxID++
		cp := *m
		cp.ID = maxID
		out = append(out, &cp)
	}
	return out
}
