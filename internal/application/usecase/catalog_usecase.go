package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/smartbodega-api/internal/application/dto"
	"github.com/jhoicas/smartbodega-api/internal/domain"
	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
	"github.com/jhoicas/smartbodega-api/internal/domain/repository"
)

// CreateRequest formulario de alta que sabe validarse y construir su registro.
type CreateRequest[T entity.Record] interface {
	ToRecord() (T, error)
}

// UpdateRequest formulario de edición que produce un patch de mezcla superficial.
type UpdateRequest interface {
	ToPatch() (map[string]any, error)
}

// CatalogUseCase casos de uso CRUD genéricos para un catálogo o tipo de movimiento.
type CatalogUseCase[T entity.Record, C CreateRequest[T], U UpdateRequest] struct {
	repo repository.RecordRepository[T]
	kind string
}

// NewCatalogUseCase construye el caso de uso para kind sobre repo.
func NewCatalogUseCase[T entity.Record, C CreateRequest[T], U UpdateRequest](kind string, repo repository.RecordRepository[T]) *CatalogUseCase[T, C, U] {
	return &CatalogUseCase[T, C, U]{repo: repo, kind: kind}
}

// Un caso de uso por entidad.
type (
	ProductUseCase      = CatalogUseCase[*entity.Product, dto.CreateProductRequest, dto.UpdateProductRequest]
	CategoryUseCase     = CatalogUseCase[*entity.Category, dto.CreateCategoryRequest, dto.UpdateCategoryRequest]
	EntryUseCase        = CatalogUseCase[*entity.Entry, dto.CreateEntryRequest, dto.UpdateEntryRequest]
	ExitUseCase         = CatalogUseCase[*entity.Exit, dto.CreateExitRequest, dto.UpdateExitRequest]
	SiteUseCase         = CatalogUseCase[*entity.Site, dto.CreateSiteRequest, dto.UpdateSiteRequest]
	CenterUseCase       = CatalogUseCase[*entity.Center, dto.CreateCenterRequest, dto.UpdateCenterRequest]
	AreaUseCase         = CatalogUseCase[*entity.Area, dto.CreateAreaRequest, dto.UpdateAreaRequest]
	MunicipalityUseCase = CatalogUseCase[*entity.Municipality, dto.CreateMunicipalityRequest, dto.UpdateMunicipalityRequest]
)

func NewProductUseCase(repo repository.RecordRepository[*entity.Product]) *ProductUseCase {
	return NewCatalogUseCase[*entity.Product, dto.CreateProductRequest, dto.UpdateProductRequest](entity.KindProduct, repo)
}

func NewCategoryUseCase(repo repository.RecordRepository[*entity.Category]) *CategoryUseCase {
	return NewCatalogUseCase[*entity.Category, dto.CreateCategoryRequest, dto.UpdateCategoryRequest](entity.KindCategory, repo)
}

func NewEntryUseCase(repo repository.RecordRepository[*entity.Entry]) *EntryUseCase {
	return NewCatalogUseCase[*entity.Entry, dto.CreateEntryRequest, dto.UpdateEntryRequest](entity.KindEntry, repo)
}

func NewExitUseCase(repo repository.RecordRepository[*entity.Exit]) *ExitUseCase {
	return NewCatalogUseCase[*entity.Exit, dto.CreateExitRequest, dto.UpdateExitRequest](entity.KindExit, repo)
}

func NewSiteUseCase(repo repository.RecordRepository[*entity.Site]) *SiteUseCase {
	return NewCatalogUseCase[*entity.Site, dto.CreateSiteRequest, dto.UpdateSiteRequest](entity.KindSite, repo)
}

func NewCenterUseCase(repo repository.RecordRepository[*entity.Center]) *CenterUseCase {
	return NewCatalogUseCase[*entity.Center, dto.CreateCenterRequest, dto.UpdateCenterRequest](entity.KindCenter, repo)
}

func NewAreaUseCase(repo repository.RecordRepository[*entity.Area]) *AreaUseCase {
	return NewCatalogUseCase[*entity.Area, dto.CreateAreaRequest, dto.UpdateAreaRequest](entity.KindArea, repo)
}

func NewMunicipalityUseCase(repo repository.RecordRepository[*entity.Municipality]) *MunicipalityUseCase {
	return NewCatalogUseCase[*entity.Municipality, dto.CreateMunicipalityRequest, dto.UpdateMunicipalityRequest](entity.KindMunicipality, repo)
}

// Kind nombre de la colección.
func (uc *CatalogUseCase[T, C, U]) Kind() string { return uc.kind }

// Create valida el formulario y crea el registro; el id lo asigna el repositorio.
func (uc *CatalogUseCase[T, C, U]) Create(ctx context.Context, in C) (T, error) {
	rec, err := in.ToRecord()
	if err != nil {
		var zero T
		return zero, err
	}
	return uc.repo.Create(ctx, rec)
}

// GetByID obtiene un registro; domain.ErrNotFound si no existe.
func (uc *CatalogUseCase[T, C, U]) GetByID(ctx context.Context, id int64) (T, error) {
	return uc.repo.GetByID(ctx, id)
}

// List aplica el primer criterio presente en q: búsqueda, filtro por campo o rango de fechas.
func (uc *CatalogUseCase[T, C, U]) List(ctx context.Context, q dto.ListQuery) ([]T, error) {
	switch {
	case strings.TrimSpace(q.Q) != "":
		return uc.repo.Search(ctx, q.Q)
	case q.Field != "":
		return uc.repo.FilterByField(ctx, q.Field)
	case q.From != "" || q.To != "":
		start, end, err := ParseRange(q.From, q.To)
		if err != nil {
			return nil, err
		}
		return uc.repo.FilterByDateRange(ctx, start, end)
	}
	return uc.repo.GetAll(ctx)
}

// Search búsqueda libre sin distinguir mayúsculas.
func (uc *CatalogUseCase[T, C, U]) Search(ctx context.Context, term string) ([]T, error) {
	return uc.repo.Search(ctx, term)
}

// FilterByField filtro exacto por categoría o estado ("all" desactiva).
func (uc *CatalogUseCase[T, C, U]) FilterByField(ctx context.Context, value string) ([]T, error) {
	return uc.repo.FilterByField(ctx, value)
}

// FilterByDateRange rango inclusivo con extremos opcionales.
func (uc *CatalogUseCase[T, C, U]) FilterByDateRange(ctx context.Context, start, end *time.Time) ([]T, error) {
	return uc.repo.FilterByDateRange(ctx, start, end)
}

// Update aplica solo los campos presentes en el formulario.
func (uc *CatalogUseCase[T, C, U]) Update(ctx context.Context, id int64, in U) (T, error) {
	patch, err := in.ToPatch()
	if err != nil {
		var zero T
		return zero, err
	}
	return uc.repo.Update(ctx, id, patch)
}

// Delete elimina un registro; domain.ErrNotFound si no existe.
func (uc *CatalogUseCase[T, C, U]) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// ParseRange interpreta from/to (YYYY-MM-DD); cualquiera puede omitirse.
func ParseRange(from, to string) (*time.Time, *time.Time, error) {
	parse := func(s string) (*time.Time, error) {
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		d, err := entity.ParseDate(s)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		t := d.Time
		return &t, nil
	}
	start, err := parse(from)
	if err != nil {
		return nil, nil, err
	}
	end, err := parse(to)
	if err != nil {
		return nil, nil, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, nil, domain.ErrInvalidInput
	}
	return start, end, nil
}
