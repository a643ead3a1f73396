// Package analytics contiene los casos de uso del dashboard y del reporte de movimientos.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/smartbodega-api/internal/application/dto"
	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
	"github.com/jhoicas/smartbodega-api/internal/domain/repository"
)

// Sources repositorios que alimentan el dashboard.
type Sources struct {
	Users          repository.UserRepository
	Products       repository.RecordRepository[*entity.Product]
	Categories     repository.RecordRepository[*entity.Category]
	Entries        repository.RecordRepository[*entity.Entry]
	Exits          repository.RecordRepository[*entity.Exit]
	Sites          repository.RecordRepository[*entity.Site]
	Centers        repository.RecordRepository[*entity.Center]
	Areas          repository.RecordRepository[*entity.Area]
	Municipalities repository.RecordRepository[*entity.Municipality]
}

// DashboardUseCase genera el resumen del dashboard.
//
// Fuente de datos: los repositorios de registros para conteos, stock bajo y desglose por
// categoría; AnalyticsRepository para los totales de movimientos.
type DashboardUseCase struct {
	src           Sources
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(src Sources, analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{src: src, analyticsRepo: analyticsRepo, now: time.Now}
}

type countResult struct {
	kind string
	n    int
	err  error
}

func counter[T entity.Record](kind string, repo repository.RecordRepository[T]) func(context.Context) countResult {
	return func(ctx context.Context) countResult {
		list, err := repo.GetAll(ctx)
		return countResult{kind: kind, n: len(list), err: err}
	}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Las consultas corren en paralelo:
//  1. un conteo por colección
//  2. MovementTotals(entries) y MovementTotals(exits)
//  3. productos (stock bajo) y movimientos (desglose por categoría)
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()

	counters := []func(context.Context) countResult{
		counter(entity.KindUser, repository.RecordRepository[*entity.User](uc.src.Users)),
		counter(entity.KindProduct, uc.src.Products),
		counter(entity.KindCategory, uc.src.Categories),
		counter(entity.KindEntry, uc.src.Entries),
		counter(entity.KindExit, uc.src.Exits),
		counter(entity.KindSite, uc.src.Sites),
		counter(entity.KindCenter, uc.src.Centers),
		counter(entity.KindArea, uc.src.Areas),
		counter(entity.KindMunicipality, uc.src.Municipalities),
	}

	type totalsResult struct {
		totals repository.MovementTotals
		err    error
	}
	type productsResult struct {
		products []*entity.Product
		err      error
	}
	type categoriesResult struct {
		rows []dto.CategoryMovementDTO
		err  error
	}

	countCh := make(chan countResult, len(counters))
	entriesCh := make(chan totalsResult, 1)
	exitsCh := make(chan totalsResult, 1)
	productsCh := make(chan productsResult, 1)
	categoriesCh := make(chan categoriesResult, 1)

	for _, c := range counters {
		go func(c func(context.Context) countResult) { countCh <- c(ctx) }(c)
	}
	go func() {
		t, err := uc.analyticsRepo.MovementTotals(ctx, entity.KindEntry, nil, nil)
		entriesCh <- totalsResult{t, err}
	}()
	go func() {
		t, err := uc.analyticsRepo.MovementTotals(ctx, entity.KindExit, nil, nil)
		exitsCh <- totalsResult{t, err}
	}()
	go func() {
		p, err := uc.src.Products.GetAll(ctx)
		productsCh <- productsResult{p, err}
	}()
	go func() {
		rows, err := uc.byCategory(ctx)
		categoriesCh <- categoriesResult{rows, err}
	}()

	counts := make(map[string]int, len(counters))
	var firstErr error
	for range counters {
		r := <-countCh
		if r.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("dashboard: conteo de %s: %w", r.kind, r.err)
		}
		counts[r.kind] = r.n
	}
	entries := <-entriesCh
	exits := <-exitsCh
	products := <-productsCh
	categories := <-categoriesCh

	if firstErr != nil {
		return nil, firstErr
	}
	if entries.err != nil {
		return nil, fmt.Errorf("dashboard: totales de entradas: %w", entries.err)
	}
	if exits.err != nil {
		return nil, fmt.Errorf("dashboard: totales de salidas: %w", exits.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", products.err)
	}
	if categories.err != nil {
		return nil, fmt.Errorf("dashboard: desglose por categoría: %w", categories.err)
	}

	lowStock := make([]dto.LowStockDTO, 0)
	for _, p := range products.products {
		if p.LowStock() {
			lowStock = append(lowStock, dto.LowStockDTO{ID: p.ID, Code: p.Code, Name: p.Name, Stock: p.Stock, MinStock: p.MinStock})
		}
	}

	return &dto.DashboardSummaryDTO{
		Counts:      counts,
		Entries:     toTotalsDTO(entries.totals),
		Exits:       toTotalsDTO(exits.totals),
		NetQuantity: entries.totals.Quantity - exits.totals.Quantity,
		ByCategory:  categories.rows,
		LowStock:    lowStock,
		DateLabel:   monthLabel(now),
		GeneratedAt: now.UTC(),
	}, nil
}

func (uc *DashboardUseCase) byCategory(ctx context.Context) ([]dto.CategoryMovementDTO, error) {
	entries, err := uc.src.Entries.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	exits, err := uc.src.Exits.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	acc := map[string]*dto.CategoryMovementDTO{}
	row := func(cat string) *dto.CategoryMovementDTO {
		if cat == "" {
			cat = "Sin categoría"
		}
		r, ok := acc[cat]
		if !ok {
			r = &dto.CategoryMovementDTO{Category: cat}
			acc[cat] = r
		}
		return r
	}
	for _, e := range entries {
		row(e.Category).EntryQuantity += int64(e.Quantity)
	}
	for _, e := range exits {
		row(e.Category).ExitQuantity += int64(e.Quantity)
	}
	out := make([]dto.CategoryMovementDTO, 0, len(acc))
	for _, r := range acc {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func toTotalsDTO(t repository.MovementTotals) dto.MovementTotalsDTO {
	return dto.MovementTotalsDTO{Count: t.Count, Quantity: t.Quantity, Value: t.Value.Round(2)}
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
