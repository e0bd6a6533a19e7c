package eval

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRunBuiltinScenarios 內建情境全數完全匹配
func TestRunBuiltinScenarios(t *testing.T) {
	report := NewRunner().Run(AllScenarios())

	s := report.Summary
	assert.Equal(t, len(builtinScenarios), s.TotalScenarios)
	assert.Equal(t, s.TotalScenarios, s.ExactMatches)
	assert.Equal(t, 1.0, s.ExactMatchRate)
	assert.InDelta(t, 1.0, s.AverageF1, 1e-9)
	assert.InDelta(t, 1.0, s.AverageItemAccuracy, 1e-9)

	assert.Equal(t, s.TotalScenarios, s.SmallMenu.Total+s.LargeMenu.Total)
	assert.Equal(t, s.SmallMenu.Total, s.SmallMenu.ExactMatches)
	assert.Equal(t, s.LargeMenu.Total, s.LargeMenu.ExactMatches)
	assert.InDelta(t, 1.0, s.SmallMenu.AverageF1, 1e-9)
	assert.InDelta(t, 1.0, s.LargeMenu.AverageF1, 1e-9)
}

// TestRunEmptyScenarioList 空情境列表不會產生 NaN
func TestRunEmptyScenarioList(t *testing.T) {
	report := NewRunner().Run(nil)

	assert.Equal(t, 0, report.Summary.TotalScenarios)
	assert.Equal(t, 0.0, report.Summary.ExactMatchRate)
	assert.Equal(t, 0.0, report.Summary.AverageF1)
	assert.Empty(t, report.Results)
}

// TestScenariosByMenu 依菜單過濾內建情境
func TestScenariosByMenu(t *testing.T) {
	small := ScenariosByMenu("small")
	large := ScenariosByMenu("large")

	assert.NotEmpty(t, small)
	assert.NotEmpty(t, large)
	assert.Equal(t, len(builtinScenarios), len(small)+len(large))
	for _, s := range small {
		assert.Equal(t, "small", s.Menu)
	}
	for _, s := range large {
		assert.Equal(t, "large", s.Menu)
	}
}

// TestFilterScenarios 依 ID 過濾，空列表代表全部
func TestFilterScenarios(t *testing.T) {
	all := AllScenarios()

	assert.Equal(t, all, FilterScenarios(all, nil))

	filtered := FilterScenarios(all, []string{"small_no_items", "large_venti_latte"})
	require.Len(t, filtered, 2)
	assert.Equal(t, "small_no_items", filtered[0].ID)
	assert.Equal(t, "large_venti_latte", filtered[1].ID)

	assert.Empty(t, FilterScenarios(all, []string{"does_not_exist"}))
}

// TestReportSave 報告以時間戳檔名寫入輸出目錄
func TestReportSave(t *testing.T) {
	report := NewRunner().Run(ScenariosByMenu("small"))
	dir := t.TempDir()

	path, err := report.Save(dir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "evaluation_report_"))
	assert.True(t, strings.HasSuffix(path, ".json"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "timestamp")
	assert.Contains(t, decoded, "summary")
	assert.Contains(t, decoded, "results")

	summary := decoded["summary"].(map[string]interface{})
	assert.Contains(t, summary, "exact_match_rate")
	assert.Contains(t, summary, "average_f1")
	assert.Contains(t, summary, "average_item_accuracy")
	assert.Contains(t, summary, "small_menu")
	assert.Contains(t, summary, "large_menu")
}

// TestPrintSummaryAndFailures 文字輸出含關鍵欄位
func TestPrintSummaryAndFailures(t *testing.T) {
	report := NewRunner().Run(AllScenarios())

	var buf strings.Builder
	report.PrintSummary(&buf)
	assert.Contains(t, buf.String(), "Evaluation Summary")
	assert.Contains(t, buf.String(), "Exact matches")

	// 全數匹配時不輸出失敗細節
	var failures strings.Builder
	report.PrintFailures(&failures)
	assert.Empty(t, failures.String())
}
