package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartbodega-api/internal/application/dto"
	"github.com/jhoicas/smartbodega-api/internal/application/usecase"
	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
)

// CatalogHandler CRUD HTTP genérico sobre un CatalogUseCase (productos, categorías,
// entradas, salidas, sedes, centros, áreas y municipios).
type CatalogHandler[T entity.Record, C usecase.CreateRequest[T], U usecase.UpdateRequest] struct {
	uc *usecase.CatalogUseCase[T, C, U]
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler[T entity.Record, C usecase.CreateRequest[T], U usecase.UpdateRequest](uc *usecase.CatalogUseCase[T, C, U]) *CatalogHandler[T, C, U] {
	return &CatalogHandler[T, C, U]{uc: uc}
}

// Create godoc
// @Summary      Crear registro
// @Description  Valida el formulario (los números pueden llegar como texto) y asigna id = max+1.
// @Tags         catalogs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        entity  path  string  true  "products, categories, entries, exits, sites, centers, areas, municipalities"
// @Param        body    body  object  true  "Formulario de la entidad"
// @Success      201  {object}  object
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/{entity} [post]
func (h *CatalogHandler[T, C, U]) Create(c *fiber.Ctx) error {
	var in C
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener registro por ID
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Param        entity  path  string  true  "Colección"
// @Param        id      path  int     true  "ID"
// @Success      200  {object}  object
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{entity}/{id} [get]
func (h *CatalogHandler[T, C, U]) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar registros
// @Description  Sin parámetros devuelve todo en orden de inserción. Se aplica el primero presente: q, field, from/to.
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Param        entity  path   string  true   "Colección"
// @Param        q       query  string  false  "Búsqueda libre sin distinguir mayúsculas"
// @Param        field   query  string  false  "Filtro exacto por categoría o estado (all = sin filtro)"
// @Param        from    query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        to      query  string  false  "Fecha final YYYY-MM-DD"
// @Success      200  {object}  object
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/{entity} [get]
func (h *CatalogHandler[T, C, U]) List(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	items, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(items))
}

// Update godoc
// @Summary      Actualizar registro
// @Description  Mezcla superficial: solo cambian los campos enviados; el id nunca cambia.
// @Tags         catalogs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        entity  path  string  true  "Colección"
// @Param        id      path  int     true  "ID"
// @Param        body    body  object  true  "Campos a actualizar"
// @Success      200  {object}  object
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{entity}/{id} [put]
func (h *CatalogHandler[T, C, U]) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var in U
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar registro
// @Tags         catalogs
// @Security     Bearer
// @Param        entity  path  string  true  "Colección"
// @Param        id      path  int     true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{entity}/{id} [delete]
func (h *CatalogHandler[T, C, U]) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
