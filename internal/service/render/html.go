package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"github.com/MartinianoLopez/comparador-clientes/internal/model"
)

const (
	colorUp   = "#4CAF50"
	colorDown = "#f44336"
)

var resultTemplate = template.Must(template.New("result").Parse(`<table class="comparison">
<tr><th>numero</th><th>Nombre</th><th>Segmento</th><th>ICS anterior</th><th>cambio</th><th>ICS nuevo</th>
{{- range .ExtraFields}}<th>{{.}} anterior</th><th>Cambio</th><th>{{.}} nuevo</th>{{end}}</tr>
{{- range .Rows}}
<tr><td>{{.ID}}</td><td>{{.Name}}</td><td>{{.Segment}}</td><td>{{.Prior}}</td>{{template "cell" .Change}}<td>{{.Current}}</td>
{{- range .Extras}}<td>{{.Prior}}</td>{{template "cell" .Delta}}<td>{{.Current}}</td>{{end}}</tr>
{{- end}}
</table>
<hr>
<table class="summary">
<tr><th>Cambio</th><th>Cantidad</th><th>Total Diferencia</th></tr>
{{- range .Summary}}
<tr><td>{{.Label}}</td><td>{{.Count}}</td><td>{{.TotalDiff}}</td></tr>
{{- end}}
</table>
<p><strong>Total Neto:</strong> {{.NetTotal}}</p>
{{- define "cell"}}<td style="background-color: {{.Background}}; color: {{.Foreground}}; font-weight: bold; text-align: center;">{{.Text}}</td>{{end}}`))

type cellView struct {
	Text       string
	Background template.CSS
	Foreground template.CSS
}

type extraView struct {
	Prior   string
	Current string
	Delta   cellView
}

type rowView struct {
	ID      string
	Name    string
	Segment string
	Prior   string
	Current string
	Change  cellView
	Extras  []extraView
}

type summaryView struct {
	Label     string
	Count     int
	TotalDiff string
}

type resultView struct {
	ExtraFields []string
	Rows        []rowView
	Summary     []summaryView
	NetTotal    string
}

// HTML 渲染对比表格、汇总表与净变动
func HTML(result *model.Result) (template.HTML, error) {
	if result == nil {
		return "", fmt.Errorf("render: result is nil")
	}

	view := resultView{
		ExtraFields: result.ExtraFields,
		Rows:        make([]rowView, 0, len(result.Comparisons)),
		NetTotal:    FormatNumber(result.NetTotal),
	}

	for _, c := range result.Comparisons {
		row := rowView{
			ID:      c.ID,
			Name:    c.Name,
			Segment: c.Segment,
			Prior:   FormatNumber(c.PriorIndicator),
			Current: FormatNumber(c.CurrentIndicator),
			Change:  changeCell(c, result.Label(c)),
			Extras:  make([]extraView, 0, len(result.ExtraFields)),
		}
		for _, field := range result.ExtraFields {
			d := c.Extras[field]
			row.Extras = append(row.Extras, extraView{
				Prior:   FormatNumber(d.Prior),
				Current: FormatNumber(d.Current),
				Delta:   deltaCell(d.Diff),
			})
		}
		view.Rows = append(view.Rows, row)
	}

	for _, s := range result.SummaryRows() {
		view.Summary = append(view.Summary, summaryView{
			Label:     s.Label,
			Count:     s.Count,
			TotalDiff: FormatNumber(s.TotalDiff),
		})
	}

	var buf bytes.Buffer
	if err := resultTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// changeCell 增加/减少显示带符号差值并着色，其余显示分类文案
func changeCell(c model.ComparisonRecord, label string) cellView {
	switch c.Change {
	case model.ChangeIncreased:
		return cellView{Text: FormatSigned(c.Diff), Background: colorUp, Foreground: "white"}
	case model.ChangeDecreased:
		return cellView{Text: FormatSigned(c.Diff), Background: colorDown, Foreground: "white"}
	default:
		return cellView{Text: label, Background: "transparent", Foreground: "black"}
	}
}

func deltaCell(diff float64) cellView {
	switch {
	case diff > 0:
		return cellView{Text: FormatSigned(diff), Background: colorUp, Foreground: "white"}
	case diff < 0:
		return cellView{Text: FormatSigned(diff), Background: colorDown, Foreground: "white"}
	default:
		return cellView{Text: "0", Background: "transparent", Foreground: "black"}
	}
}

// FormatNumber 最短表示，整数不带小数点
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatSigned 正数加 “+”
func FormatSigned(v float64) string {
	if v > 0 {
		return "+" + FormatNumber(v)
	}
	return FormatNumber(v)
}
