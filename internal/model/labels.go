package model

import (
	"fmt"
	"strings"
)

// LabelSet 分类展示文案
type LabelSet struct {
	Key           string `json:"key"`
	Increased     string `json:"increased"`
	Decreased     string `json:"decreased"`
	Unchanged     string `json:"unchanged"`
	NewAccount    string `json:"newAccount"`
	ClosedAccount string `json:"closedAccount"`
}

const (
	LabelSetIgual      = "igual"
	LabelSetSinCambios = "sin_cambios"
)

// DefaultLabels 默认文案（“Igual”版本）
func DefaultLabels() LabelSet {
	return LabelSet{
		Key:           LabelSetIgual,
		Increased:     "Aumentó",
		Decreased:     "Disminuyó",
		Unchanged:     "Igual",
		NewAccount:    "Cuenta nueva",
		ClosedAccount: "Cuenta eliminada",
	}
}

// SinCambiosLabels 另一版页面使用的文案，仅“不变”不同
func SinCambiosLabels() LabelSet {
	l := DefaultLabels()
	l.Key = LabelSetSinCambios
	l.Unchanged = "Sin cambios"
	return l
}

// LabelSetByKey 根据配置键选择文案
func LabelSetByKey(key string) (LabelSet, error) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", LabelSetIgual:
		return DefaultLabels(), nil
	case LabelSetSinCambios:
		return SinCambiosLabels(), nil
	default:
		return LabelSet{}, fmt.Errorf("unknown label set %q", key)
	}
}

// Label 分类对应的文案
func (l LabelSet) Label(c Classification) string {
	switch c {
	case ChangeIncreased:
		return l.Increased
	case ChangeDecreased:
		return l.Decreased
	case ChangeUnchanged:
		return l.Unchanged
	case ChangeNewAccount:
		return l.NewAccount
	case ChangeClosedAccount:
		return l.ClosedAccount
	default:
		return c.String()
	}
}
