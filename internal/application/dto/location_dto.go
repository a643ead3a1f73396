package dto

import (
	"strings"

	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
)

// CreateSiteRequest entrada para crear una sede.
type CreateSiteRequest struct {
	Name         string     `json:"name"`
	Address      string     `json:"address"`
	Municipality string     `json:"municipality"`
	Center       string     `json:"center"`
	Phone        FlexString `json:"phone"`
	Status       string     `json:"status"`
}

func (r CreateSiteRequest) ToRecord() (*entity.Site, error) {
	s := &entity.Site{
		Name:         strings.TrimSpace(r.Name),
		Address:      r.Address,
		Municipality: strings.TrimSpace(r.Municipality),
		Center:       strings.TrimSpace(r.Center),
		Phone:        r.Phone.String(),
	}
	if err := required("name", s.Name); err != nil {
		return nil, err
	}
	status, err := catalogStatus(r.Status)
	if err != nil {
		return nil, err
	}
	s.Status = status
	return s, nil
}

// UpdateSiteRequest actualización parcial de una sede.
type UpdateSiteRequest struct {
	Name         *string     `json:"name,omitempty"`
	Address      *string     `json:"address,omitempty"`
	Municipality *string     `json:"municipality,omitempty"`
	Center       *string     `json:"center,omitempty"`
	Phone        *FlexString `json:"phone,omitempty"`
	Status       *string     `json:"status,omitempty"`
}

func (r UpdateSiteRequest) ToPatch() (map[string]any, error) {
	return namedPatch(r, r.Name, r.Status)
}

// CreateCenterRequest entrada para crear un centro de formación.
type CreateCenterRequest struct {
	Code         FlexString `json:"code"`
	Name         string     `json:"name"`
	Municipality string     `json:"municipality"`
	Status       string     `json:"status"`
}

func (r CreateCenterRequest) ToRecord() (*entity.Center, error) {
	c := &entity.Center{
		Code:         r.Code.String(),
		Name:         strings.TrimSpace(r.Name),
		Municipality: strings.TrimSpace(r.Municipality),
	}
	if err := required("name", c.Name); err != nil {
		return nil, err
	}
	status, err := catalogStatus(r.Status)
	if err != nil {
		return nil, err
	}
	c.Status = status
	return c, nil
}

// UpdateCenterRequest actualización parcial de un centro.
type UpdateCenterRequest struct {
	Code         *FlexString `json:"code,omitempty"`
	Name         *string     `json:"name,omitempty"`
	Municipality *string     `json:"municipality,omitempty"`
	Status       *string     `json:"status,omitempty"`
}

func (r UpdateCenterRequest) ToPatch() (map[string]any, error) {
	return namedPatch(r, r.Name, r.Status)
}

// CreateAreaRequest entrada para crear un área dentro de una sede.
type CreateAreaRequest struct {
	Name        string `json:"name"`
	Site        string `json:"site"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (r CreateAreaRequest) ToRecord() (*entity.Area, error) {
	a := &entity.Area{Name: strings.TrimSpace(r.Name), Site: strings.TrimSpace(r.Site), Description: r.Description}
	if err := required("name", a.Name); err != nil {
		return nil, err
	}
	status, err := catalogStatus(r.Status)
	if err != nil {
		return nil, err
	}
	a.Status = status
	return a, nil
}

// UpdateAreaRequest actualización parcial de un área.
type UpdateAreaRequest struct {
	Name        *string `json:"name,omitempty"`
	Site        *string `json:"site,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (r UpdateAreaRequest) ToPatch() (map[string]any, error) {
	return namedPatch(r, r.Name, r.Status)
}

// CreateMunicipalityRequest entrada para crear un municipio. Code es el código DANE.
type CreateMunicipalityRequest struct {
	Code       FlexString `json:"code"`
	Name       string     `json:"name"`
	Department string     `json:"department"`
	Status     string     `json:"status"`
}

func (r CreateMunicipalityRequest) ToRecord() (*entity.Municipality, error) {
	m := &entity.Municipality{Code: r.Code.String(), Name: strings.TrimSpace(r.Name), Department: strings.TrimSpace(r.Department)}
	if err := required("name", m.Name); err != nil {
		return nil, err
	}
	status, err := catalogStatus(r.Status)
	if err != nil {
		return nil, err
	}
	m.Status = status
	return m, nil
}

// UpdateMunicipalityRequest actualización parcial de un municipio.
type UpdateMunicipalityRequest struct {
	Code       *FlexString `json:"code,omitempty"`
	Name       *string     `json:"name,omitempty"`
	Department *string     `json:"department,omitempty"`
	Status     *string     `json:"status,omitempty"`
}

func (r UpdateMunicipalityRequest) ToPatch() (map[string]any, error) {
	return namedPatch(r, r.Name, r.Status)
}

// namedPatch valida los campos comunes (name no vacío, estado del enum) y arma el patch.
func namedPatch(req any, name, status *string) (map[string]any, error) {
	if name != nil && strings.TrimSpace(*name) == "" {
		return nil, invalid("name es obligatorio")
	}
	if err := optionalStatus(status); err != nil {
		return nil, err
	}
	return toPatch(req)
}
