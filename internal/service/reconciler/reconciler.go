package reconciler

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/MartinianoLopez/comparador-clientes/internal/model"
)

// InputError 输入数据集不足两个
type InputError struct {
	Got int
}

func (e *InputError) Error() string {
	return fmt.Sprintf("two datasets are required (prior and current), got %d", e.Got)
}

// Reconciler 上期/本期客户数据对比器
// 无内部可变状态，可并发使用
type Reconciler struct {
	extraFields []string
	labels      model.LabelSet
}

// New 创建对比器；extraFields 顺序决定附加字段的输出顺序
func New(extraFields []string, labels model.LabelSet) *Reconciler {
	fields := make([]string, len(extraFields))
	copy(fields, extraFields)
	return &Reconciler{
		extraFields: fields,
		labels:      labels,
	}
}

// ExtraFields 返回配置的附加字段副本
func (r *Reconciler) ExtraFields() []string {
	out := make([]string, len(r.extraFields))
	copy(out, r.extraFields)
	return out
}

// Compare 对前两个数据集执行对比：第一个为上期，第二个为本期
func (r *Reconciler) Compare(datasets ...[]model.RawRecord) (*model.Result, error) {
	if len(datasets) < 2 {
		return nil, &InputError{Got: len(datasets)}
	}

	prior := r.Normalize(datasets[0], model.PeriodPrior)
	current := r.Normalize(datasets[1], model.PeriodCurrent)
	return r.Reconcile(prior, current), nil
}

// Normalize 把原始记录转换为单期记录
// 主指标缺失按 0 处理；附加字段仅在缺失时补 0，显式 0 保留
func (r *Reconciler) Normalize(records []model.RawRecord, period model.Period) []model.PeriodRecord {
	out := make([]model.PeriodRecord, 0, len(records))
	for _, rec := range records {
		pr := model.PeriodRecord{
			ID:      rec.ID,
			Period:  period,
			Name:    rec.Name,
			Segment: rec.Segment,
			Extras:  make(map[string]float64, len(r.extraFields)),
		}
		if rec.Indicator != nil {
			pr.Indicator = *rec.Indicator
		}
		for _, field := range r.extraFields {
			if v := rec.Extras[field]; v != nil {
				pr.Extras[field] = *v
			} else {
				pr.Extras[field] = 0
			}
		}
		out = append(out, pr)
	}
	return out
}

// Reconcile 按客户编号外连接两期数据并分类、汇总、排序
func (r *Reconciler) Reconcile(prior, current []model.PeriodRecord) *model.Result {
	priorIdx := indexByID(prior)
	currentIdx := indexByID(current)
	ids := unionIDs(prior, current)

	result := &model.Result{
		RunID:        uuid.New().String(),
		Comparisons:  make([]model.ComparisonRecord, 0, len(ids)),
		Summary:      make(map[model.Classification]model.SummaryEntry),
		ExtraFields:  r.ExtraFields(),
		Labels:       r.labels,
		PriorCount:   len(prior),
		CurrentCount: len(current),
	}

	for _, id := range ids {
		last, hasLast := priorIdx[id]
		cur, hasCur := currentIdx[id]

		var lastValue, curValue float64
		if hasLast {
			lastValue = last.Indicator
		}
		if hasCur {
			curValue = cur.Indicator
		}
		diff := curValue - lastValue

		rec := model.ComparisonRecord{
			ID:               id,
			Name:             pick(last.Name, cur.Name),
			Segment:          pick(last.Segment, cur.Segment),
			PriorIndicator:   lastValue,
			CurrentIndicator: curValue,
			Diff:             diff,
			Change:           classify(hasLast, hasCur, diff),
			Extras:           make(map[string]model.ExtraDelta, len(r.extraFields)),
		}

		for _, field := range r.extraFields {
			d := model.ExtraDelta{}
			if hasLast {
				d.Prior = last.Extras[field]
			}
			if hasCur {
				d.Current = cur.Extras[field]
			}
			d.Diff = d.Current - d.Prior
			rec.Extras[field] = d
		}

		entry, seen := result.Summary[rec.Change]
		if !seen {
			result.SummaryOrder = append(result.SummaryOrder, rec.Change)
		}
		entry.Count++
		entry.TotalDiff += diff
		result.Summary[rec.Change] = entry
		result.NetTotal += diff

		result.Comparisons = append(result.Comparisons, rec)
	}

	sort.SliceStable(result.Comparisons, func(i, j int) bool {
		return result.Comparisons[i].Change.Rank() < result.Comparisons[j].Change.Rank()
	})

	return result
}

// classify 先判断开户/销户（记录是否存在），再看差值方向
func classify(hasLast, hasCur bool, diff float64) model.Classification {
	switch {
	case !hasLast && hasCur:
		return model.ChangeNewAccount
	case hasLast && !hasCur:
		return model.ChangeClosedAccount
	case diff > 0:
		return model.ChangeIncreased
	case diff < 0:
		return model.ChangeDecreased
	default:
		return model.ChangeUnchanged
	}
}

// indexByID 同一数据集中重复编号以首条为准
func indexByID(records []model.PeriodRecord) map[string]model.PeriodRecord {
	idx := make(map[string]model.PeriodRecord, len(records))
	for _, rec := range records {
		if _, ok := idx[rec.ID]; ok {
			continue
		}
		idx[rec.ID] = rec
	}
	return idx
}

// unionIDs 上期编号在前，随后是仅在本期出现的编号
func unionIDs(prior, current []model.PeriodRecord) []string {
	seen := make(map[string]struct{}, len(prior)+len(current))
	ids := make([]string, 0, len(prior)+len(current))
	for _, list := range [][]model.PeriodRecord{prior, current} {
		for _, rec := range list {
			if _, ok := seen[rec.ID]; ok {
				continue
			}
			seen[rec.ID] = struct{}{}
			ids = append(ids, rec.ID)
		}
	}
	return ids
}

func pick(preferred, fallback string) string {
	if preferred != "" {
		return preferred
	}
	return fallback
}
