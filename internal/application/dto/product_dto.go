package dto

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto. Stock y MinStock aceptan "5" o 5.
type CreateProductRequest struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	Stock       FlexInt         `json:"stock"`
	MinStock    FlexInt         `json:"min_stock"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
	Notes       string          `json:"notes"`
}

func (r CreateProductRequest) ToRecord() (*entity.Product, error) {
	p := &entity.Product{
		Code:        strings.TrimSpace(r.Code),
		Name:        strings.TrimSpace(r.Name),
		Category:    strings.TrimSpace(r.Category),
		Description: r.Description,
		Unit:        r.Unit,
		Stock:       r.Stock.Int(),
		MinStock:    r.MinStock.Int(),
		Price:       r.Price,
		Notes:       r.Notes,
	}
	if err := required("name", p.Name); err != nil {
		return nil, err
	}
	if p.Stock < 0 || p.MinStock < 0 {
		return nil, invalid("el stock no puede ser negativo")
	}
	if p.Price.IsNegative() {
		return nil, invalid("el precio no puede ser negativo")
	}
	status, err := catalogStatus(r.Status)
	if err != nil {
		return nil, err
	}
	p.Status = status
	return p, nil
}

// UpdateProductRequest entrada para actualizar un producto; solo se aplican los campos presentes.
type UpdateProductRequest struct {
	Code        *string          `json:"code,omitempty"`
	Name        *string          `json:"name,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Description *string          `json:"description,omitempty"`
	Unit        *string          `json:"unit,omitempty"`
	Stock       *FlexInt         `json:"stock,omitempty"`
	MinStock    *FlexInt         `json:"min_stock,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Status      *string          `json:"status,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

func (r UpdateProductRequest) ToPatch() (map[string]any, error) {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return nil, invalid("name es obligatorio")
	}
	if (r.Stock != nil && *r.Stock < 0) || (r.MinStock != nil && *r.MinStock < 0) {
		return nil, invalid("el stock no puede ser negativo")
	}
	if r.Price != nil && r.Price.IsNegative() {
		return nil, invalid("el precio no puede ser negativo")
	}
	if err := optionalStatus(r.Status); err != nil {
		return nil, err
	}
	return toPatch(r)
}

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (r CreateCategoryRequest) ToRecord() (*entity.Category, error) {
	c := &entity.Category{Name: strings.TrimSpace(r.Name), Description: r.Description}
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

// UpdateCategoryRequest actualización parcial de una categoría.
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (r UpdateCategoryRequest) ToPatch() (map[string]any, error) {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return nil, invalid("name es obligatorio")
	}
	if err := optionalStatus(r.Status); err != nil {
		return nil, err
	}
	return toPatch(r)
}
