package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/reports"
)

const (
	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReportHandler reportes de solo lectura (protegido).
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Resumen del almacén
// @Description  Totales, últimos 10 movimientos, entradas/salidas de las últimas 4 semanas y top 8 productos por saldo.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Daily godoc
// @Summary      Reporte diario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "YYYY-MM-DD (vacío = hoy)"
// @Success      200  {object}  dto.DailyReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/daily [get]
func (h *ReportHandler) Daily(c *fiber.Ctx) error {
	out, err := h.uc.Daily(c.Context(), c.Query("date"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DailyPDF godoc
// @Summary      Reporte diario en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        date  query  string  false  "YYYY-MM-DD (vacío = hoy)"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/daily.pdf [get]
func (h *ReportHandler) DailyPDF(c *fiber.Ctx) error {
	doc, filename, err := h.uc.DailyPDF(c.Context(), c.Query("date"))
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, mimePDF, filename, doc)
}

// MovementsXLSX godoc
// @Summary      Exportar movimientos a Excel
// @Description  Hojas "Entradas" y "Salidas" del rango [from, to].
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta, inclusive (YYYY-MM-DD)"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/movements.xlsx [get]
func (h *ReportHandler) MovementsXLSX(c *fiber.Ctx) error {
	doc, filename, err := h.uc.MovementsXLSX(c.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, mimeXLSX, filename, doc)
}

// Consistency godoc
// @Summary      Verificación de saldos
// @Description  Productos cuyo saldo difiere de Σ entradas − Σ salidas. Debe estar siempre vacío.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ConsistencyResponse
// @Router       /api/reports/consistency [get]
func (h *ReportHandler) Consistency(c *fiber.Ctx) error {
	out, err := h.uc.Consistency(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func sendAttachment(c *fiber.Ctx, mime, filename string, body []byte) error {
	c.Set(fiber.HeaderContentType, mime)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(body)
}
