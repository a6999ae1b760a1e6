package excel

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultExtraFields 默认跟踪的附加字段（产品/业务计数）
var DefaultExtraFields = []string{
	"PS", "Cupones", "Pagos", "Cobranzas", "TC", "CPD", "Opera a Crédito", "Acuerdo", "Cuenta MS",
}

// Columns 输入表头与记录字段的对应关系
type Columns struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Segment   string   `json:"segment"`
	Indicator string   `json:"indicator"`
	Extras    []string `json:"extras"`
}

// DefaultColumns 默认列名
func DefaultColumns() Columns {
	extras := make([]string, len(DefaultExtraFields))
	copy(extras, DefaultExtraFields)
	return Columns{
		ID:        "Codigo_Cliente",
		Name:      "Nombre",
		Segment:   "Segmento",
		Indicator: "ICS - BE",
		Extras:    extras,
	}
}

var reSpaces = regexp.MustCompile(`\s+`)

// NormalizeHeader 规范化列名：去首尾空白、压缩空白、统一为 NFC
// “Crédito” 的组合/分解两种写法规范化后一致
func NormalizeHeader(name string) string {
	name = norm.NFC.String(name)
	name = strings.TrimSpace(name)
	return reSpaces.ReplaceAllString(name, " ")
}

// headerIndex 规范化列名 -> 列索引；重复列名以首列为准
type headerIndex map[string]int

func newHeaderIndex(header []string) headerIndex {
	idx := make(headerIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(NormalizeHeader(h))
		if key == "" {
			continue
		}
		if _, ok := idx[key]; ok {
			continue
		}
		idx[key] = i
	}
	return idx
}

// find 返回列索引，不存在返回 -1
func (h headerIndex) find(name string) int {
	if i, ok := h[strings.ToLower(NormalizeHeader(name))]; ok {
		return i
	}
	return -1
}
