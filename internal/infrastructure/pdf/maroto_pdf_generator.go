// Package pdf genera el reporte de movimientos de inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: SMARTBODEGA + título  │  Rango de fechas            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Producto | Contraparte | Cant | Total │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Entradas / Salidas / Neto                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartbodega-api/internal/application/analytics"
	"github.com/jhoicas/smartbodega-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorEntry   = &props.Color{Red: 20, Green: 110, Blue: 60}
	colorExit    = &props.Color{Red: 160, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ analytics.ReportPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa analytics.ReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	now func() time.Time
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{now: time.Now} }

// GenerateMovementsPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateMovementsPDF(_ context.Context, report *dto.MovementsReportDTO) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de movimientos SMARTBODEGA", true).
		WithAuthor("SMARTBODEGA", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(report.Rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin movimientos en el rango seleccionado.", props.Text{
				Size: 8, Align: align.Center, Top: 2, Color: colorGray,
			}),
		)))
	}
	m.AddRows(tableDetailRows(report.Rows)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: marca + título (izq) y rango de fechas + fecha de emisión (der).
func headerRow(report *dto.MovementsReportDTO, now time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("SMARTBODEGA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de entradas y salidas", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RANGO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(rangeLabel(report.From, report.To), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 6,
			}),
			text.New("Emitido: "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de movimientos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 1, align.Left),
		h("Producto", 3, align.Left),
		h("Proveedor / Destino", 3, align.Left),
		h("Cant.", 1, align.Center),
		h("Total", 2, align.Right),
	)
}

// tableDetailRows: una fila por movimiento.
func tableDetailRows(rows []dto.MovementReportRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		color := colorEntry
		if r.Type == analytics.RowExit {
			color = colorExit
		}
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
		}
		result = append(result, row.New(7).Add(
			cell(formatDate(r.Date), 2, align.Left),
			col.New(1).Add(text.New(r.Type, props.Text{Size: 8, Top: 1, Left: 1, Color: color})),
			cell(r.Product, 3, align.Left),
			cell(nonEmpty(r.Counterparty, "—"), 3, align.Left),
			cell(fmt.Sprintf("%d", r.Quantity), 1, align.Center),
			cell("$"+formatMoney(r.Total), 2, align.Right),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(report *dto.MovementsReportDTO) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	net := report.Entries.Quantity - report.Exits.Quantity
	return row.New(22).Add(
		col.New(4),
		col.New(4).Add(
			label("Entradas:"),
			text.New("Salidas:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 6}),
			text.New("Unidades netas:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 2, Top: 12, Color: colorPrimary}),
		),
		col.New(4).Add(
			text.New(totalsLabel(report.Entries), props.Text{Size: 9, Align: align.Right, Right: 1}),
			text.New(totalsLabel(report.Exits), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 6}),
			text.New(fmt.Sprintf("%d", net), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 1, Top: 12, Color: colorPrimary}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func totalsLabel(t dto.MovementTotalsDTO) string {
	return fmt.Sprintf("%d mov. / %d und. / $%s", t.Count, t.Quantity, formatMoney(t.Value))
}

func rangeLabel(from, to *time.Time) string {
	f, t := "inicio", "hoy"
	if from != nil {
		f = from.Format("02/01/2006")
	}
	if to != nil {
		t = to.Format("02/01/2006")
	}
	return f + " - " + t
}

// formatDate convierte YYYY-MM-DD a DD/MM/YYYY.
func formatDate(s string) string {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return d.Format("02/01/2006")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea con puntos de miles y coma decimal.
// Ej: 25000 → "25.000,00", 1234567.5 → "1.234.567,50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "," + frac
}
