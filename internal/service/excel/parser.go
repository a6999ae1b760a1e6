package excel

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/MartinianoLopez/comparador-clientes/internal/model"
)

// ErrEmptySheet 第一个工作表没有表头
var ErrEmptySheet = errors.New("first sheet is empty")

// DecodeError 工作簿无法解析为表格数据
type DecodeError struct {
	FileName string
	Err      error
}

func (e *DecodeError) Error() string {
	if e.FileName == "" {
		return fmt.Sprintf("decode workbook: %v", e.Err)
	}
	return fmt.Sprintf("decode workbook %q: %v", e.FileName, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Dataset 一个输入文件解码后的数据
type Dataset struct {
	ID          string            `json:"id"`
	FileName    string            `json:"fileName"`
	SheetName   string            `json:"sheetName"`
	Records     []model.RawRecord `json:"records"`
	SkippedRows int               `json:"skippedRows"` // 有内容但缺少客户编号的行
}

// Decoder 读取工作簿第一个 sheet，按表头把每行转为 RawRecord
type Decoder struct {
	columns Columns
}

// NewDecoder 创建解码器
func NewDecoder(columns Columns) *Decoder {
	return &Decoder{columns: columns}
}

// Decode 从 reader 读取 xlsx
func (d *Decoder) Decode(reader io.Reader, fileName string) (*Dataset, error) {
	wb, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, &DecodeError{FileName: fileName, Err: fmt.Errorf("failed to open excel: %w", err)}
	}
	defer wb.Close()

	return d.DecodeWorkbook(wb, fileName)
}

// DecodeWorkbook 解码已打开的工作簿
func (d *Decoder) DecodeWorkbook(wb *excelize.File, fileName string) (*Dataset, error) {
	if wb == nil {
		return nil, &DecodeError{FileName: fileName, Err: errors.New("workbook is nil")}
	}

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, &DecodeError{FileName: fileName, Err: errors.New("workbook has no sheets")}
	}
	sheetName := sheets[0]

	rows, err := wb.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &DecodeError{FileName: fileName, Err: fmt.Errorf("read sheet %q: %w", sheetName, err)}
	}
	if len(rows) == 0 {
		return nil, &DecodeError{FileName: fileName, Err: ErrEmptySheet}
	}

	idx := newHeaderIndex(rows[0])
	colID := idx.find(d.columns.ID)
	colName := idx.find(d.columns.Name)
	colSegment := idx.find(d.columns.Segment)
	colIndicator := idx.find(d.columns.Indicator)
	colExtras := make(map[string]int, len(d.columns.Extras))
	for _, field := range d.columns.Extras {
		colExtras[field] = idx.find(field)
	}

	ds := &Dataset{
		ID:        uuid.New().String(),
		FileName:  fileName,
		SheetName: sheetName,
		Records:   make([]model.RawRecord, 0, len(rows)-1),
	}

	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		id := getCell(row, colID)
		if id == "" {
			ds.SkippedRows++
			continue
		}

		rec := model.RawRecord{
			ID:        id,
			Name:      getCell(row, colName),
			Segment:   getCell(row, colSegment),
			Indicator: parseOptionalFloat(getCell(row, colIndicator)),
			Extras:    make(map[string]*float64, len(colExtras)),
			RowNo:     i + 2,
		}
		for field, col := range colExtras {
			if v := parseOptionalFloat(getCell(row, col)); v != nil {
				rec.Extras[field] = v
			}
		}
		ds.Records = append(ds.Records, rec)
	}

	return ds, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

var thousandsPattern = regexp.MustCompile(`^[-+]?\d{1,3}(,\d{3})+(\.\d+)?$`)

// parseOptionalFloat 空值或无法解析返回 nil；布尔单元格按 1/0 计
func parseOptionalFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	switch strings.ToLower(s) {
	case "true":
		return model.Float(1)
	case "false":
		return model.Float(0)
	}
	if strings.Contains(s, ",") {
		// 只接受千分位分组，"1,5" 之类的小数逗号视为无法解析
		if !thousandsPattern.MatchString(s) {
			return nil
		}
		s = strings.ReplaceAll(s, ",", "")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return model.Float(f)
}
