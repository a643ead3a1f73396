package entity

import "time"

// Category representa una categoría de productos.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"` // activo, inactivo
}

func (c *Category) GetID() int64   { return c.ID }
func (c *Category) SetID(id int64) { c.ID = id }

func (c *Category) SearchFields() []string { return []string{c.Name, c.Description} }
func (c *Category) FilterField() string    { return c.Status }
func (c *Category) RecordDate() *time.Time { return nil }
