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

// ReportPDFGenerator puerto para renderizar el reporte de movimientos (implementado con Maroto).
type ReportPDFGenerator interface {
	GenerateMovementsPDF(ctx context.Context, report *dto.MovementsReportDTO) ([]byte, error)
}

// Tipos de fila del reporte.
const (
	RowEntry = "entrada"
	RowExit  = "salida"
)

// ReportUseCase reporte de entradas y salidas en un rango de fechas.
type ReportUseCase struct {
	entries repository.RecordRepository[*entity.Entry]
	exits   repository.RecordRepository[*entity.Exit]
	pdf     ReportPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(entries repository.RecordRepository[*entity.Entry], exits repository.RecordRepository[*entity.Exit], pdf ReportPDFGenerator) *ReportUseCase {
	return &ReportUseCase{entries: entries, exits: exits, pdf: pdf}
}

// MovementsReport arma las filas ordenadas por fecha (entradas antes que salidas el mismo día).
func (uc *ReportUseCase) MovementsReport(ctx context.Context, start, end *time.Time) (*dto.MovementsReportDTO, error) {
	type entriesResult struct {
		list []*entity.Entry
		err  error
	}
	type exitsResult struct {
		list []*entity.Exit
		err  error
	}
	entriesCh := make(chan entriesResult, 1)
	exitsCh := make(chan exitsResult, 1)
	go func() {
		l, err := uc.entries.FilterByDateRange(ctx, start, end)
		entriesCh <- entriesResult{l, err}
	}()
	go func() {
		l, err := uc.exits.FilterByDateRange(ctx, start, end)
		exitsCh <- exitsResult{l, err}
	}()
	entries := <-entriesCh
	exits := <-exitsCh
	if entries.err != nil {
		return nil, fmt.Errorf("reporte: entradas: %w", entries.err)
	}
	if exits.err != nil {
		return nil, fmt.Errorf("reporte: salidas: %w", exits.err)
	}

	rows := make([]dto.MovementReportRow, 0, len(entries.list)+len(exits.list))
	for _, e := range entries.list {
		rows = append(rows, dto.MovementReportRow{
			Type: RowEntry, ID: e.ID, Date: e.Date.String(), Product: e.Product, Category: e.Category,
			Counterparty: e.Supplier, Quantity: e.Quantity, Price: e.Price, Total: e.Total(), Status: e.Status,
		})
	}
	for _, e := range exits.list {
		rows = append(rows, dto.MovementReportRow{
			Type: RowExit, ID: e.ID, Date: e.Date.String(), Product: e.Product, Category: e.Category,
			Counterparty: e.Destination, Quantity: e.Quantity, Price: e.Price, Total: e.Total(), Status: e.Status,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].Type == RowEntry && rows[j].Type == RowExit
	})

	return &dto.MovementsReportDTO{
		From:    start,
		To:      end,
		Rows:    rows,
		Entries: toTotalsDTO(sumMovements(entries.list)),
		Exits:   toTotalsDTO(sumMovements(exits.list)),
	}, nil
}

// MovementsReportPDF genera el PDF del reporte.
func (uc *ReportUseCase) MovementsReportPDF(ctx context.Context, start, end *time.Time) ([]byte, error) {
	report, err := uc.MovementsReport(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateMovementsPDF(ctx, report)
}
