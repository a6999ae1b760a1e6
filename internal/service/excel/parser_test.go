package excel_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"

	"github.com/MartinianoLopez/comparador-clientes/internal/service/excel"
)

func buildWorkbook(t *testing.T, sheet string, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	wb := excelize.NewFile()
	defer wb.Close()
	if sheet != "Sheet1" {
		if err := wb.SetSheetName("Sheet1", sheet); err != nil {
			t.Fatalf("SetSheetName failed: %v", err)
		}
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		r := row
		if err := wb.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}
	buf, err := wb.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}
	return buf
}

func TestDecodeFirstSheet(t *testing.T) {
	buf := buildWorkbook(t, "Cartera", [][]interface{}{
		{"Codigo_Cliente", "Nombre", "Segmento", "ICS - BE", "PS", "Cupones", "Acuerdo"},
		{1001, "Cliente Uno", "Pyme", 10, 0, 3, true},
		{"1002", "Cliente Dos", "Corporativo", "1,250.5", "", "x", false},
		{"1003", "Cliente Tres", "Pyme", "1,5", "12,34", "-2,000", ""},
		{},
		{"", "Sin código", "Pyme", 4},
	})

	dec := excel.NewDecoder(excel.DefaultColumns())
	ds, err := dec.Decode(buf, "anterior.xlsx")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if ds.ID == "" {
		t.Fatalf("dataset id should be set")
	}
	if ds.SheetName != "Cartera" {
		t.Fatalf("SheetName=%q, want Cartera", ds.SheetName)
	}
	if got, want := len(ds.Records), 3; got != want {
		t.Fatalf("records=%d, want %d", got, want)
	}
	if ds.SkippedRows != 1 {
		t.Fatalf("SkippedRows=%d, want 1", ds.SkippedRows)
	}

	r1 := ds.Records[0]
	if r1.ID != "1001" || r1.Name != "Cliente Uno" || r1.Segment != "Pyme" {
		t.Fatalf("unexpected record: %+v", r1)
	}
	if r1.Indicator == nil || *r1.Indicator != 10 {
		t.Fatalf("Indicator=%v, want 10", r1.Indicator)
	}
	// 显式 0 必须保留，不能视为缺失
	if v := r1.Extras["PS"]; v == nil || *v != 0 {
		t.Fatalf("PS=%v, want explicit 0", v)
	}
	if v := r1.Extras["Cupones"]; v == nil || *v != 3 {
		t.Fatalf("Cupones=%v, want 3", v)
	}
	if v := r1.Extras["Acuerdo"]; v == nil || *v != 1 {
		t.Fatalf("Acuerdo=%v, want 1", v)
	}
	if _, ok := r1.Extras["Pagos"]; ok {
		t.Fatalf("Pagos column missing from sheet, should be absent")
	}
	if r1.RowNo != 2 {
		t.Fatalf("RowNo=%d, want 2", r1.RowNo)
	}

	r2 := ds.Records[1]
	if r2.Indicator == nil || *r2.Indicator != 1250.5 {
		t.Fatalf("Indicator=%v, want 1250.5", r2.Indicator)
	}
	if _, ok := r2.Extras["PS"]; ok {
		t.Fatalf("empty PS should be absent")
	}
	if _, ok := r2.Extras["Cupones"]; ok {
		t.Fatalf("non-numeric Cupones should be absent")
	}
	if v := r2.Extras["Acuerdo"]; v == nil || *v != 0 {
		t.Fatalf("Acuerdo=%v, want 0", v)
	}

	// 小数逗号不是千分位，不能被放大
	r3 := ds.Records[2]
	if r3.Indicator != nil {
		t.Fatalf("text cell \"1,5\" decoded as %v, want absent", *r3.Indicator)
	}
	if _, ok := r3.Extras["PS"]; ok {
		t.Fatalf("PS \"12,34\" should be absent")
	}
	if v := r3.Extras["Cupones"]; v == nil || *v != -2000 {
		t.Fatalf("Cupones=%v, want -2000", v)
	}
}

func TestDecodeMatchesNormalizedHeaders(t *testing.T) {
	decomposed := norm.NFD.String("Opera a Crédito")
	buf := buildWorkbook(t, "Sheet1", [][]interface{}{
		{" codigo_cliente ", "NOMBRE", "ICS  -  BE", decomposed},
		{"7", "Siete", 2, 5},
	})

	ds, err := excel.NewDecoder(excel.DefaultColumns()).Decode(buf, "actual.xlsx")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(ds.Records) != 1 {
		t.Fatalf("records=%d, want 1", len(ds.Records))
	}
	r := ds.Records[0]
	if r.Name != "Siete" {
		t.Fatalf("Name=%q", r.Name)
	}
	if r.Indicator == nil || *r.Indicator != 2 {
		t.Fatalf("Indicator=%v, want 2", r.Indicator)
	}
	if v := r.Extras["Opera a Crédito"]; v == nil || *v != 5 {
		t.Fatalf("Opera a Crédito=%v, want 5", v)
	}
}

func TestDecodeInvalidInput(t *testing.T) {
	_, err := excel.NewDecoder(excel.DefaultColumns()).Decode(strings.NewReader("not a workbook"), "roto.xlsx")
	if err == nil {
		t.Fatalf("expected error")
	}
	var decErr *excel.DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("expected DecodeError, got %T", err)
	}
	if decErr.FileName != "roto.xlsx" {
		t.Fatalf("FileName=%q", decErr.FileName)
	}
}

func TestDecodeEmptySheet(t *testing.T) {
	buf := buildWorkbook(t, "Sheet1", nil)

	_, err := excel.NewDecoder(excel.DefaultColumns()).Decode(buf, "vacio.xlsx")
	if !errors.Is(err, excel.ErrEmptySheet) {
		t.Fatalf("err=%v, want ErrEmptySheet", err)
	}
}

func TestNormalizeHeader(t *testing.T) {
	cases := map[string]string{
		"  ICS - BE ":                       "ICS - BE",
		"Cuenta\tMS":                        "Cuenta MS",
		norm.NFD.String("Opera a Crédito"): "Opera a Crédito",
	}
	for in, want := range cases {
		if got := excel.NormalizeHeader(in); got != want {
			t.Errorf("NormalizeHeader(%q)=%q, want %q", in, got, want)
		}
	}
}
