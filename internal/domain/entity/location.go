package entity

import "time"

// Site (sede) ubicación física donde opera una bodega.
type Site struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	Municipality string `json:"municipality"`
	Center       string `json:"center"`
	Phone        string `json:"phone"`
	Status       string `json:"status"`
}

func (s *Site) GetID() int64   { return s.ID }
func (s *Site) SetID(id int64) { s.ID = id }

func (s *Site) SearchFields() []string {
	return []string{s.Name, s.Address, s.Municipality, s.Center}
}

func (s *Site) FilterField() string    { return s.Status }
func (s *Site) RecordDate() *time.Time { return nil }

// Center (centro de formación) agrupa sedes.
type Center struct {
	ID           int64  `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Municipality string `json:"municipality"`
	Status       string `json:"status"`
}

func (c *Center) GetID() int64   { return c.ID }
func (c *Center) SetID(id int64) { c.ID = id }

func (c *Center) SearchFields() []string {
	return []string{c.Code, c.Name, c.Municipality}
}

func (c *Center) FilterField() string    { return c.Status }
func (c *Center) RecordDate() *time.Time { return nil }

// Area zona de una sede (almacén, taller, oficina...).
type Area struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Site        string `json:"site"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (a *Area) GetID() int64   { return a.ID }
func (a *Area) SetID(id int64) { a.ID = id }

func (a *Area) SearchFields() []string {
	return []string{a.Name, a.Site, a.Description}
}

func (a *Area) FilterField() string    { return a.Status }
func (a *Area) RecordDate() *time.Time { return nil }

// Municipality municipio (catálogo DIVIPOLA).
type Municipality struct {
	ID         int64  `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Status     string `json:"status"`
}

func (m *Municipality) GetID() int64   { return m.ID }
func (m *Municipality) SetID(id int64) { m.ID = id }

func (m *Municipality) SearchFields() []string {
	return []string{m.Code, m.Name, m.Department}
}

func (m *Municipality) FilterField() string    { return m.Status }
func (m *Municipality) RecordDate() *time.Time { return nil }
