package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryRowsFollowsSummaryOrder(t *testing.T) {
	r := &Result{
		Summary: map[Classification]SummaryEntry{
			ChangeNewAccount: {Count: 1, TotalDiff: 3},
			ChangeIncreased:  {Count: 2, TotalDiff: 4},
		},
		SummaryOrder: []Classification{ChangeNewAccount, ChangeIncreased},
		Labels:       DefaultLabels(),
	}

	rows := r.SummaryRows()
	require.Len(t, rows, 2)
	assert.Equal(t, "Cuenta nueva", rows[0].Label)
	assert.Equal(t, "Aumentó", rows[1].Label)
	assert.Equal(t, 4.0, rows[1].TotalDiff)
}

func TestSummaryRowsWithoutOrderUsesRank(t *testing.T) {
	r := &Result{
		Summary: map[Classification]SummaryEntry{
			ChangeClosedAccount: {Count: 1},
			ChangeUnchanged:     {Count: 1},
			ChangeDecreased:     {Count: 1},
		},
		Labels: DefaultLabels(),
	}

	rows := r.SummaryRows()
	require.Len(t, rows, 3)
	assert.Equal(t, ChangeDecreased, rows[0].Change)
	assert.Equal(t, ChangeUnchanged, rows[1].Change)
	assert.Equal(t, ChangeClosedAccount, rows[2].Change)
}

func TestClassificationJSON(t *testing.T) {
	data, err := json.Marshal(ChangeNewAccount)
	require.NoError(t, err)
	assert.Equal(t, `"new_account"`, string(data))

	var c Classification
	require.NoError(t, json.Unmarshal(data, &c))
	assert.Equal(t, ChangeNewAccount, c)
	assert.Error(t, json.Unmarshal([]byte(`"otro"`), &c))
}
