package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/MartinianoLopez/comparador-clientes/internal/model"
)

// TextOptions 终端输出选项
type TextOptions struct {
	Color   bool // 是否着色
	Details bool // 是否输出逐客户明细
}

// Text 输出终端汇总表（可选明细）与净变动
func Text(w io.Writer, result *model.Result, opts TextOptions) error {
	if result == nil {
		return fmt.Errorf("render: result is nil")
	}

	if opts.Details {
		if err := detailTable(w, result, opts); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	summary := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{PerColumn: []tw.Align{tw.AlignLeft, tw.AlignRight, tw.AlignRight}},
		},
	}))
	summary.Header("Cambio", "Cantidad", "Total Diferencia")
	for _, s := range result.SummaryRows() {
		if err := summary.Append(s.Label, fmt.Sprint(s.Count), FormatNumber(s.TotalDiff)); err != nil {
			return err
		}
	}
	if err := summary.Render(); err != nil {
		return err
	}

	net := color.New(color.Bold)
	switch {
	case result.NetTotal > 0:
		net.Add(color.FgGreen)
	case result.NetTotal < 0:
		net.Add(color.FgRed)
	}
	if !opts.Color {
		net.DisableColor()
	}
	_, err := net.Fprintf(w, "Total Neto: %s\n", FormatSigned(result.NetTotal))
	return err
}

func detailTable(w io.Writer, result *model.Result, opts TextOptions) error {
	table := tablewriter.NewTable(w)
	table.Header("numero", "Nombre", "Segmento", "ICS anterior", "cambio", "ICS nuevo")

	up := color.New(color.FgGreen, color.Bold)
	down := color.New(color.FgRed, color.Bold)
	if !opts.Color {
		up.DisableColor()
		down.DisableColor()
	}

	for _, c := range result.Comparisons {
		change := result.Label(c)
		switch c.Change {
		case model.ChangeIncreased:
			change = up.Sprint(FormatSigned(c.Diff))
		case model.ChangeDecreased:
			change = down.Sprint(FormatSigned(c.Diff))
		}
		if err := table.Append(c.ID, c.Name, c.Segment, FormatNumber(c.PriorIndicator), change, FormatNumber(c.CurrentIndicator)); err != nil {
			return err
		}
	}
	return table.Render()
}
