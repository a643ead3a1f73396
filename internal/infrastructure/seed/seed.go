// Package seed contiene los datos iniciales de la consola: usuarios, catálogos y movimientos.
// Los usa el backend en memoria al arrancar y el comando cmd/seed para PostgreSQL.
package seed

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
)

// DefaultPassword contraseña de todos los usuarios semilla.
const DefaultPassword = "123456"

// Users devuelve los usuarios semilla con la contraseña hasheada usando cost.
func Users(cost int) ([]*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("seed: hash de contraseña: %w", err)
	}
	created := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	mk := func(id int64, name, surname, email, phone, role, center, site, status string) *entity.User {
		return &entity.User{
			ID: id, Name: name, Surname: surname, Email: email, Phone: phone,
			Role: role, Center: center, Site: site, Status: status,
			PasswordHash: string(hash), CreatedAt: created,
		}
	}
	const (
		cgi = "Centro de Gestión Industrial"
		cms = "Centro de Manufactura en Textil y Cuero"
	)
	return []*entity.User{
		mk(1, "Laura", "Ortiz", "laura.ortiz@sena.edu.co", "3001234567", entity.RoleAdmin, cgi, "Sede Principal", entity.StatusActive),
		mk(2, "Carlos", "Ramírez", "carlos.ramirez@sena.edu.co", "3012345678", entity.RoleSupervisor, cgi, "Sede Principal", entity.StatusActive),
		mk(3, "Andrea", "Gómez", "andrea.gomez@sena.edu.co", "3023456789", entity.RoleOperator, cms, "Sede Norte", entity.StatusActive),
		mk(4, "Miguel", "Torres", "miguel.torres@sena.edu.co", "3034567890", entity.RoleInstructor, cms, "Sede Norte", entity.StatusActive),
		mk(5, "Sofía", "Herrera", "sofia.herrera@sena.edu.co", "3045678901", entity.RoleGuest, cgi, "Sede Principal", entity.StatusActive),
		mk(6, "Jorge", "Castillo", "jorge.castillo@sena.edu.co", "3056789012", entity.RoleOperator, cgi, "Sede Sur", entity.StatusInactive),
	}, nil
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(s string) entity.Date {
	d, err := entity.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Products catálogo inicial de productos.
func Products() []*entity.Product {
	return []*entity.Product{
		{ID: 1, Code: "ELE-001", Name: "Laptop HP", Category: "Electrónicos", Description: "Portátil HP ProBook 14\"", Unit: "unidad", Stock: 25, MinStock: 5, Price: price("899.99"), Status: entity.StatusActive},
		{ID: 2, Code: "ELE-002", Name: "Monitor Samsung 24\"", Category: "Electrónicos", Description: "Monitor LED Full HD", Unit: "unidad", Stock: 4, MinStock: 5, Price: price("189.50"), Status: entity.StatusActive},
		{ID: 3, Code: "PAP-001", Name: "Resma de papel carta", Category: "Papelería", Description: "Resma 500 hojas 75 g", Unit: "resma", Stock: 120, MinStock: 30, Price: price("4.75"), Status: entity.StatusActive},
		{ID: 4, Code: "MOB-001", Name: "Silla ergonómica", Category: "Mobiliario", Description: "Silla de oficina con soporte lumbar", Unit: "unidad", Stock: 10, MinStock: 2, Price: price("145.00"), Status: entity.StatusActive},
		{ID: 5, Code: "HER-001", Name: "Taladro percutor", Category: "Herramientas", Description: "Taladro 750 W", Unit: "unidad", Stock: 0, MinStock: 1, Price: price("79.90"), Status: entity.StatusInactive},
	}
}

// Categories categorías iniciales.
func Categories() []*entity.Category {
	return []*entity.Category{
		{ID: 1, Name: "Electrónicos", Description: "Equipos de cómputo y periféricos", Status: entity.StatusActive},
		{ID: 2, Name: "Papelería", Description: "Insumos de oficina", Status: entity.StatusActive},
		{ID: 3, Name: "Mobiliario", Description: "Muebles y enseres", Status: entity.StatusActive},
		{ID: 4, Name: "Herramientas", Description: "Herramienta manual y eléctrica", Status: entity.StatusInactive},
	}
}

// Entries entradas iniciales.
func Entries() []*entity.Entry {
	return []*entity.Entry{
		{ID: 1, Product: "Laptop HP", Quantity: 10, Date: day("2024-03-15"), Supplier: "HP Colombia S.A.S.", Category: "Electrónicos", Price: price("850.00"), Status: entity.MovementCompleted, Notes: "Compra trimestral"},
		{ID: 2, Product: "Resma de papel carta", Quantity: 50, Date: day("2024-03-18"), Supplier: "Papeles del Valle", Category: "Papelería", Price: price("4.20"), Status: entity.MovementPending},
	}
}

// Exits salidas iniciales.
func Exits() []*entity.Exit {
	return []*entity.Exit{
		{ID: 1, Product: "Monitor Samsung 24\"", Quantity: 2, Date: day("2024-03-16"), Destination: "Laboratorio de Sistemas", Category: "Electrónicos", Price: price("189.50"), Status: entity.MovementCompleted},
		{ID: 2, Product: "Silla ergonómica", Quantity: 4, Date: day("2024-03-19"), Destination: "Coordinación Académica", Category: "Mobiliario", Price: price("145.00"), Status: entity.MovementCompleted, Notes: "Dotación de oficina"},
	}
}

// Sites sedes iniciales.
func Sites() []*entity.Site {
	return []*entity.Site{
		{ID: 1, Name: "Sede Principal", Address: "Calle 52 # 13-65", Municipality: "Bogotá D.C.", Center: "Centro de Gestión Industrial", Phone: "6015461500", Status: entity.StatusActive},
		{ID: 2, Name: "Sede Norte", Address: "Av. Calle 170 # 54-30", Municipality: "Bogotá D.C.", Center: "Centro de Manufactura en Textil y Cuero", Phone: "6015461600", Status: entity.StatusActive},
		{ID: 3, Name: "Sede Sur", Address: "Cra. 30 # 17-91 Sur", Municipality: "Soacha", Center: "Centro de Gestión Industrial", Status: entity.StatusInactive},
	}
}

// Centers centros iniciales.
func Centers() []*entity.Center {
	return []*entity.Center{
		{ID: 1, Code: "9101", Name: "Centro de Gestión Industrial", Municipality: "Bogotá D.C.", Status: entity.StatusActive},
		{ID: 2, Code: "9102", Name: "Centro de Manufactura en Textil y Cuero", Municipality: "Bogotá D.C.", Status: entity.StatusActive},
	}
}

// Areas áreas iniciales.
func Areas() []*entity.Area {
	return []*entity.Area{
		{ID: 1, Name: "Almacén general", Site: "Sede Principal", Description: "Bodega de insumos", Status: entity.StatusActive},
		{ID: 2, Name: "Laboratorio de Sistemas", Site: "Sede Principal", Description: "Ambiente de formación TIC", Status: entity.StatusActive},
		{ID: 3, Name: "Taller de confección", Site: "Sede Norte", Status: entity.StatusActive},
	}
}

// Municipalities municipios iniciales (código DIVIPOLA).
func Municipalities() []*entity.Municipality {
	return []*entity.Municipality{
		{ID: 1, Code: "11001", Name: "Bogotá D.C.", Department: "Bogotá D.C.", Status: entity.StatusActive},
		{ID: 2, Code: "25754", Name: "Soacha", Department: "Cundinamarca", Status: entity.StatusActive},
		{ID: 3, Code: "05001", Name: "Medellín", Department: "Antioquia", Status: entity.StatusActive},
	}
}
