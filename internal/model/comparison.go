package model

import (
	"encoding/json"
	"fmt"
)

// Classification 客户变动分类
// 枚举顺序即结果排序顺序
type Classification int

const (
	ChangeDecreased Classification = iota // 减少
	ChangeIncreased                       // 增加
	ChangeUnchanged                       // 不变
	ChangeNewAccount                      // 新开户
	ChangeClosedAccount                   // 销户
)

// unknownRank 未知分类排在最后
const unknownRank = 5

var classificationKeys = map[Classification]string{
	ChangeDecreased:     "decreased",
	ChangeIncreased:     "increased",
	ChangeUnchanged:     "unchanged",
	ChangeNewAccount:    "new_account",
	ChangeClosedAccount: "closed_account",
}

// Classifications 按排序优先级返回全部分类
func Classifications() []Classification {
	return []Classification{
		ChangeDecreased,
		ChangeIncreased,
		ChangeUnchanged,
		ChangeNewAccount,
		ChangeClosedAccount,
	}
}

// Rank 排序优先级
func (c Classification) Rank() int {
	if _, ok := classificationKeys[c]; !ok {
		return unknownRank
	}
	return int(c)
}

// String 稳定的英文键（用于 JSON / 日志）
func (c Classification) String() string {
	if k, ok := classificationKeys[c]; ok {
		return k
	}
	return "unknown"
}

// MarshalJSON 以字符串键输出
func (c Classification) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON 从字符串键解析
func (c *Classification) UnmarshalJSON(data []byte) error {
	var key string
	if err := json.Unmarshal(data, &key); err != nil {
		return err
	}
	for k, v := range classificationKeys {
		if v == key {
			*c = k
			return nil
		}
	}
	return fmt.Errorf("unknown classification %q", key)
}

// ExtraDelta 附加字段的三元组
type ExtraDelta struct {
	Prior   float64 `json:"last"`
	Current float64 `json:"new"`
	Diff    float64 `json:"diff"`
}

// ComparisonRecord 单个客户的对比结果
type ComparisonRecord struct {
	ID               string                `json:"id"`
	Name             string                `json:"name"`
	Segment          string                `json:"segment"`
	PriorIndicator   float64               `json:"icsBeLast"`
	CurrentIndicator float64               `json:"icsBeNew"`
	Diff             float64               `json:"diferencia"`
	Change           Classification        `json:"change"`
	Extras           map[string]ExtraDelta `json:"extras"`
}

// SummaryEntry 某一分类的汇总
type SummaryEntry struct {
	Count     int     `json:"count"`
	TotalDiff float64 `json:"totalDiff"`
}

// SummaryRow 带分类与展示文案的汇总行
type SummaryRow struct {
	Change    Classification `json:"change"`
	Label     string         `json:"label"`
	Count     int            `json:"count"`
	TotalDiff float64        `json:"totalDiff"`
}

// Result 一次对比运行的完整产物
type Result struct {
	RunID        string                          `json:"runId"`
	Comparisons  []ComparisonRecord              `json:"comparisons"`
	Summary      map[Classification]SummaryEntry `json:"-"`
	SummaryOrder []Classification                `json:"-"` // 分类首次出现的顺序（排序前）
	NetTotal     float64                         `json:"netTotal"`
	ExtraFields  []string                        `json:"extraFields"`
	Labels       LabelSet                        `json:"-"`
	PriorCount   int                             `json:"priorCount"`
	CurrentCount int                             `json:"currentCount"`
}

// SummaryRows 按分类首次出现的顺序输出汇总（只包含出现过的分类）
// 未记录出现顺序时按分类优先级输出
func (r *Result) SummaryRows() []SummaryRow {
	order := r.SummaryOrder
	if len(order) == 0 {
		for _, c := range Classifications() {
			if _, ok := r.Summary[c]; ok {
				order = append(order, c)
			}
		}
	}

	rows := make([]SummaryRow, 0, len(order))
	for _, change := range order {
		entry, ok := r.Summary[change]
		if !ok {
			continue
		}
		rows = append(rows, SummaryRow{
			Change:    change,
			Label:     r.Labels.Label(change),
			Count:     entry.Count,
			TotalDiff: entry.TotalDiff,
		})
	}
	return rows
}

// Label 对比记录的分类文案
func (r *Result) Label(rec ComparisonRecord) string {
	return r.Labels.Label(rec.Change)
}
