package eval

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cart-normalizer/internal/core/cart"
	"cart-normalizer/internal/pkg/common"
)

// MenuSummary 單一菜單的彙總統計
type MenuSummary struct {
	Total        int     `json:"total"`
	ExactMatches int     `json:"exact_matches"`
	AverageF1    float64 `json:"average_f1"`
}

// Summary 整體評估彙總
type Summary struct {
	TotalScenarios      int         `json:"total_scenarios"`
	ExactMatches        int         `json:"exact_matches"`
	ExactMatchRate      float64     `json:"exact_match_rate"`
	AverageF1           float64     `json:"average_f1"`
	AverageItemAccuracy float64     `json:"average_item_accuracy"`
	SmallMenu           MenuSummary `json:"small_menu"`
	LargeMenu           MenuSummary `json:"large_menu"`
}

// Report 一次評估執行的完整報告
type Report struct {
	Timestamp string   `json:"timestamp"`
	Summary   Summary  `json:"summary"`
	Results   []Result `json:"results"`
}

// NewReport 從逐情境結果彙整報告
func NewReport(results []Result) *Report {
	r := &Report{
		Timestamp: time.Now().Format(time.RFC3339),
		Results:   results,
	}
	r.Summary = summarize(results)
	return r
}

func summarize(results []Result) Summary {
	s := Summary{TotalScenarios: len(results)}
	if len(results) == 0 {
		return s
	}

	var f1Sum, accSum float64
	perMenu := map[string]*MenuSummary{
		"small": &s.SmallMenu,
		"large": &s.LargeMenu,
	}
	menuF1 := map[string]float64{}

	for _, r := range results {
		if r.Metrics.ExactMatch {
			s.ExactMatches++
		}
		f1Sum += r.Metrics.F1
		accSum += r.Metrics.ItemAccuracy

		if ms, ok := perMenu[r.Menu]; ok {
			ms.Total++
			if r.Metrics.ExactMatch {
				ms.ExactMatches++
			}
			menuF1[r.Menu] += r.Metrics.F1
		}
	}

	s.ExactMatchRate = float64(s.ExactMatches) / float64(s.TotalScenarios)
	s.AverageF1 = f1Sum / float64(s.TotalScenarios)
	s.AverageItemAccuracy = accSum / float64(s.TotalScenarios)

	for name, ms := range perMenu {
		if ms.Total > 0 {
			ms.AverageF1 = menuF1[name] / float64(ms.Total)
		}
	}
	return s
}

// ToJSON 報告的縮排 JSON 字串
func (r *Report) ToJSON() (string, error) {
	return common.ToJSONIndent(r)
}

// Save 將報告存到輸出目錄，檔名帶時間戳
func (r *Report) Save(outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	data, err := r.ToJSON()
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	path := filepath.Join(outputDir, fmt.Sprintf("evaluation_report_%s.json", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// PrintSummary 輸出人類可讀的彙總
func (r *Report) PrintSummary(w io.Writer) {
	s := r.Summary
	fmt.Fprintln(w, "=== Evaluation Summary ===")
	fmt.Fprintf(w, "Scenarios:       %d\n", s.TotalScenarios)
	fmt.Fprintf(w, "Exact matches:   %d (%.1f%%)\n", s.ExactMatches, s.ExactMatchRate*100)
	fmt.Fprintf(w, "Average F1:      %.4f\n", s.AverageF1)
	fmt.Fprintf(w, "Item accuracy:   %.4f\n", s.AverageItemAccuracy)
	if s.SmallMenu.Total > 0 {
		fmt.Fprintf(w, "Small menu:      %d/%d exact, F1 %.4f\n", s.SmallMenu.ExactMatches, s.SmallMenu.Total, s.SmallMenu.AverageF1)
	}
	if s.LargeMenu.Total > 0 {
		fmt.Fprintf(w, "Large menu:      %d/%d exact, F1 %.4f\n", s.LargeMenu.ExactMatches, s.LargeMenu.Total, s.LargeMenu.AverageF1)
	}
}

// PrintFailures 輸出未完全匹配的情境細節
func (r *Report) PrintFailures(w io.Writer) {
	for _, res := range r.Results {
		if res.Metrics.ExactMatch {
			continue
		}
		fmt.Fprintf(w, "--- %s (%s menu) ---\n", res.ScenarioID, res.Menu)
		fmt.Fprintf(w, "input:    %q\n", res.InputText)
		fmt.Fprintf(w, "f1=%.4f item_accuracy=%.4f\n", res.Metrics.F1, res.Metrics.ItemAccuracy)
		fmt.Fprintf(w, "expected: %s\n", describeSnapshot(res.Expected))
		fmt.Fprintf(w, "actual:   %s\n", describeSnapshot(res.Actual))
	}
}

func describeSnapshot(snap cart.Snapshot) string {
	if len(snap.Items) == 0 {
		return "(empty)"
	}
	var b strings.Builder
	for i, item := range snap.Items {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%dx %s", item.Quantity, item.Name)
		if item.Size != nil {
			fmt.Fprintf(&b, " (%s)", *item.Size)
		}
		if len(item.Modifiers) > 0 {
			fmt.Fprintf(&b, " +%s", strings.Join(item.Modifiers, ",+"))
		}
	}
	fmt.Fprintf(&b, " | total $%.2f", snap.Total)
	return b.String()
}
