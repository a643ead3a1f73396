package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/smartbodega-api/internal/application/analytics"
	"github.com/jhoicas/smartbodega-api/internal/application/usecase"
)

// DashboardHandler maneja los endpoints del dashboard y los reportes.
type DashboardHandler struct {
	uc       *appanalytics.DashboardUseCase
	reportUC *appanalytics.ReportUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, reportUC *appanalytics.ReportUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, reportUC: reportUC}
}

// GetSummary godoc
// @Summary      Resumen del dashboard
// @Description  Conteos por entidad, totales de entradas y salidas, desglose por categoría y productos con stock bajo.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// MovementsReport godoc
// @Summary      Reporte de movimientos (JSON)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        to    query  string  false  "Fecha final YYYY-MM-DD"
// @Success      200  {object}  dto.MovementsReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/movements [get]
func (h *DashboardHandler) MovementsReport(c *fiber.Ctx) error {
	start, end, err := usecase.ParseRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return respondError(c, err)
	}
	report, err := h.reportUC.MovementsReport(c.UserContext(), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// MovementsReportPDF godoc
// @Summary      Reporte de movimientos (PDF)
// @Description  Entradas y salidas del rango con sus totales.
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        from  query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        to    query  string  false  "Fecha final YYYY-MM-DD"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/movements.pdf [get]
func (h *DashboardHandler) MovementsReportPDF(c *fiber.Ctx) error {
	start, end, err := usecase.ParseRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return respondError(c, err)
	}
	pdf, err := h.reportUC.MovementsReportPDF(c.UserContext(), start, end)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="movimientos-%s.pdf"`, rangeSuffix(c.Query("from"), c.Query("to"))))
	return c.Send(pdf)
}

func rangeSuffix(from, to string) string {
	switch {
	case from == "" && to == "":
		return "todos"
	case from == "":
		return "hasta-" + to
	case to == "":
		return "desde-" + from
	}
	return from + "_" + to
}
