// Package export genera hojas de cálculo de movimientos con excelize.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

var _ reports.MovementsExporter = (*MovementsXLSX)(nil)

// Nombres de las hojas del libro.
const (
	SheetStockIn  = "Entradas"
	SheetStockOut = "Salidas"
)

const timeLayout = "2006-01-02 15:04"

// MovementsXLSX exportador de entradas y salidas a .xlsx (una hoja por tipo).
type MovementsXLSX struct{}

// NewMovementsXLSX construye el exportador.
func NewMovementsXLSX() *MovementsXLSX { return &MovementsXLSX{} }

// ExportMovements devuelve el libro serializado.
func (x *MovementsXLSX) ExportMovements(ins []*entity.StockIn, outs []*entity.StockOut) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// La hoja por defecto se renombra para entradas
	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), SheetStockIn); err != nil {
		return nil, fmt.Errorf("xlsx: hoja entradas: %w", err)
	}
	if _, err := f.NewSheet(SheetStockOut); err != nil {
		return nil, fmt.Errorf("xlsx: hoja salidas: %w", err)
	}

	inRows := make([][]interface{}, 0, len(ins))
	for _, e := range ins {
		inRows = append(inRows, []interface{}{
			e.ID, e.OccurredAt.Format(timeLayout), e.ProductID, e.ProductName, e.Quantity, e.Supplier, e.Comment, e.ReceivedBy,
		})
	}
	if err := writeSheet(f, SheetStockIn,
		[]interface{}{"id", "fecha", "product_id", "producto", "cantidad", "proveedor", "comentario", "recibido_por"},
		inRows,
	); err != nil {
		return nil, err
	}

	outRows := make([][]interface{}, 0, len(outs))
	for _, e := range outs {
		outRows = append(outRows, []interface{}{
			e.ID, e.OccurredAt.Format(timeLayout), e.ProductID, e.ProductName, e.Quantity, e.IssuedBy, e.Purpose,
		})
	}
	if err := writeSheet(f, SheetStockOut,
		[]interface{}{"id", "fecha", "product_id", "producto", "cantidad", "entregado_por", "propósito"},
		outRows,
	); err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("xlsx: encabezado %s: %w", sheet, err)
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx: celda %s: %w", sheet, err)
		}
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("xlsx: fila %s: %w", sheet, err)
		}
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("xlsx: fijar encabezado %s: %w", sheet, err)
	}
	return nil
}
