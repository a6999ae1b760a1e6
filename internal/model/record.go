package model

// Period 快照期次
type Period string

const (
	PeriodPrior   Period = "prior"   // 上期（对比基准）
	PeriodCurrent Period = "current" // 本期
)

// RawRecord 解码后的一行客户数据
// 数值字段使用指针区分“缺失”与“显式 0”
type RawRecord struct {
	ID        string              `json:"id"`        // 客户编号（关联键）
	Name      string              `json:"name"`      // 客户名称
	Segment   string              `json:"segment"`   // 客户分层
	Indicator *float64            `json:"indicator"` // 主指标 ICS - BE
	Extras    map[string]*float64 `json:"extras"`    // 附加字段，按配置的标签索引
	RowNo     int                 `json:"rowNo"`     // Excel 行号
}

// PeriodRecord 归一化后的单期记录
type PeriodRecord struct {
	ID        string             `json:"id"`
	Period    Period             `json:"period"`
	Name      string             `json:"name"`
	Segment   string             `json:"segment"`
	Indicator float64            `json:"indicator"`
	Extras    map[string]float64 `json:"extras"` // 每个配置标签都有值，缺失补 0
}

// Float 返回指向 v 的指针，便于构造 RawRecord
func Float(v float64) *float64 {
	return &v
}
