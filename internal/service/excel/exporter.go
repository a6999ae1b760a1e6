package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/MartinianoLopez/comparador-clientes/internal/model"
)

const (
	// ExportSheetName 导出工作表名
	ExportSheetName = "Comparación"
	// ExportFileName 建议的下载文件名
	ExportFileName = "comparacion_clientes.xlsx"
)

// Exporter Excel导出器
type Exporter struct {
	sheetName string
}

// NewExporter 创建导出器，sheetName 为空时使用默认名
func NewExporter(sheetName string) *Exporter {
	if sheetName == "" {
		sheetName = ExportSheetName
	}
	return &Exporter{sheetName: sheetName}
}

// ExportHeaders 导出表头：固定列 + 每个附加字段的 last/diff/new
func ExportHeaders(extraFields []string) []string {
	headers := []string{
		"Codigo_Cliente", "Nombre", "Segmento", "ICS_BE_last", "Diferencia", "ICS_BE_new",
	}
	for _, field := range extraFields {
		headers = append(headers, field+"_last", field+"_diff", field+"_new")
	}
	return headers
}

// Export 导出对比结果到单 sheet 工作簿
func (e *Exporter) Export(result *model.Result) (*excelize.File, error) {
	if result == nil {
		return nil, fmt.Errorf("export: result is nil")
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", e.sheetName); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headers := ExportHeaders(result.ExtraFields)
	headerRow := make([]interface{}, 0, len(headers))
	for _, h := range headers {
		headerRow = append(headerRow, h)
	}
	if err := f.SetSheetRow(e.sheetName, "A1", &headerRow); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err == nil {
		_ = f.SetRowStyle(e.sheetName, 1, 1, headerStyle)
	}

	for i, c := range result.Comparisons {
		row := make([]interface{}, 0, len(headers))
		row = append(row, c.ID, c.Name, c.Segment, c.PriorIndicator, c.Diff, c.CurrentIndicator)
		for _, field := range result.ExtraFields {
			d := c.Extras[field]
			row = append(row, d.Prior, d.Diff, d.Current)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(e.sheetName, cell, &row); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	// 设置列宽
	_ = f.SetColWidth(e.sheetName, "A", "A", 18)
	_ = f.SetColWidth(e.sheetName, "B", "B", 30)
	_ = f.SetColWidth(e.sheetName, "C", "C", 16)

	return f, nil
}
