package render_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MartinianoLopez/comparador-clientes/internal/model"
	"github.com/MartinianoLopez/comparador-clientes/internal/service/reconciler"
	"github.com/MartinianoLopez/comparador-clientes/internal/service/render"
)

func sampleResult(t *testing.T) *model.Result {
	t.Helper()

	r := reconciler.New([]string{"PS"}, model.DefaultLabels())
	result, err := r.Compare(
		[]model.RawRecord{
			{ID: "1", Name: "Ana <SA>", Segment: "Pyme", Indicator: model.Float(10), Extras: map[string]*float64{"PS": model.Float(1)}},
			{ID: "2", Name: "Beto", Segment: "Pyme", Indicator: model.Float(8)},
			{ID: "3", Name: "Caro", Segment: "Pyme", Indicator: model.Float(2)},
		},
		[]model.RawRecord{
			{ID: "1", Name: "Ana <SA>", Segment: "Pyme", Indicator: model.Float(15), Extras: map[string]*float64{"PS": model.Float(0)}},
			{ID: "2", Name: "Beto", Segment: "Pyme", Indicator: model.Float(6.5)},
			{ID: "3", Name: "Caro", Segment: "Pyme", Indicator: model.Float(2)},
		},
	)
	require.NoError(t, err)
	return result
}

func TestHTML(t *testing.T) {
	out, err := render.HTML(sampleResult(t))
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "<th>PS anterior</th><th>Cambio</th><th>PS nuevo</th>")
	assert.Contains(t, html, "Ana &lt;SA&gt;")
	assert.NotContains(t, html, "Ana <SA>")
	assert.Contains(t, html, "background-color: #4CAF50")
	// html/template 会把 “+” 转义为 &#43;
	assert.Contains(t, html, ">&#43;5</td>")
	assert.Contains(t, html, "background-color: #f44336")
	assert.Contains(t, html, ">-1.5</td>")
	assert.Contains(t, html, ">Igual</td>")
	assert.Contains(t, html, "<tr><td>Disminuyó</td><td>1</td><td>-1.5</td></tr>")
	assert.Contains(t, html, "<strong>Total Neto:</strong> 3.5")

	// 减少排在增加之前
	assert.Less(t, strings.Index(html, "Beto"), strings.Index(html, "Ana &lt;SA&gt;"))
}

func TestHTMLNilResult(t *testing.T) {
	_, err := render.HTML(nil)
	require.Error(t, err)
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	err := render.Text(&buf, sampleResult(t), render.TextOptions{Color: false, Details: true})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Aumentó")
	assert.Contains(t, out, "Disminuyó")
	assert.Contains(t, out, "Beto")
	assert.Contains(t, out, "Total Neto: +3.5")
	assert.NotContains(t, out, "\x1b[")
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "10", render.FormatNumber(10))
	assert.Equal(t, "1250.5", render.FormatNumber(1250.5))
	assert.Equal(t, "+3", render.FormatSigned(3))
	assert.Equal(t, "-3", render.FormatSigned(-3))
	assert.Equal(t, "0", render.FormatSigned(0))
}
