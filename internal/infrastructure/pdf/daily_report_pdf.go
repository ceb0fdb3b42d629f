// Package pdf genera el resumen diario de movimientos del almacén en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del almacén     │  Reporte diario + Fecha   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Entradas | Salidas | Neto                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Hora | Tipo | Producto | Cantidad | Responsable     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
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

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/reports"
)

var _ reports.DailyRenderer = (*DailyReportPDF)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorIn      = &props.Color{Red: 20, Green: 120, Blue: 60}
	colorOut     = &props.Color{Red: 170, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// DailyReportPDF implementa reports.DailyRenderer usando Maroto v2.
type DailyReportPDF struct {
	title string
}

// NewDailyReportPDF construye el generador. title aparece en el encabezado (nombre del almacén).
func NewDailyReportPDF(title string) *DailyReportPDF {
	return &DailyReportPDF{title: title}
}

// RenderDaily genera el PDF y devuelve sus bytes.
func (g *DailyReportPDF) RenderDaily(report *dto.DailyReportResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte diario "+report.Date, true).
		WithAuthor(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, report.Date))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalsRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(report.Movements) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin movimientos en el día.", props.Text{Size: 9, Align: align.Center, Color: colorGray, Top: 3}),
		)))
	}
	for _, r := range movementRows(report.Movements) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title, date string) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		),
		col.New(5).Add(
			text.New("REPORTE DIARIO DE MOVIMIENTOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha: "+displayDate(date), props.Text{Size: 9, Align: align.Right, Top: 8, Color: colorGray}),
		),
	)
}

func totalsRow(report *dto.DailyReportResponse) core.Row {
	box := func(label string, value int64, color *props.Color) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
			text.New(formatInt(value), props.Text{Style: fontstyle.Bold, Size: 14, Align: align.Center, Color: color, Top: 8}),
		)
	}
	return row.New(20).Add(
		box("ENTRADAS", report.TotalIn, colorIn),
		box("SALIDAS", report.TotalOut, colorOut),
		box("NETO", report.TotalIn-report.TotalOut, colorPrimary),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Hora", 2, align.Left),
		h("Tipo", 1, align.Center),
		h("Producto", 5, align.Left),
		h("Cantidad", 2, align.Right),
		h("Responsable", 2, align.Left),
	)
}

func movementRows(items []dto.ActivityResponse) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		color := colorIn
		kind := "Entrada"
		if it.Type == "OUT" {
			color, kind = colorOut, "Salida"
		}
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(it.At.Format("15:04"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(kind, props.Text{Size: 8, Align: align.Center, Top: 1, Color: color})),
			col.New(5).Add(text.New(it.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatInt(it.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(nonEmpty(it.User, "—"), props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// displayDate "2025-06-18" → "18/06/2025".
func displayDate(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}

// formatInt inserta puntos de miles. Ej: 25000 → "25.000", -1500 → "-1.500".
func formatInt(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, len(s)+len(s)/3)
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
