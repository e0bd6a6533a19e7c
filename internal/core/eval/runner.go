package eval

import (
	"cart-normalizer/internal/core/cart"
	"cart-normalizer/internal/core/menu"
	"cart-normalizer/internal/pkg/common"

	"go.uber.org/zap"
)

// Metrics 單一情境的評估指標
type Metrics struct {
	ExactMatch   bool    `json:"exact_match"`
	F1           float64 `json:"f1"`
	ItemAccuracy float64 `json:"item_accuracy"`
}

// Result 單一情境的評估結果
type Result struct {
	ScenarioID  string        `json:"scenario_id"`
	Description string        `json:"description"`
	Menu        string        `json:"menu"`
	InputText   string        `json:"input_text"`
	Expected    cart.Snapshot `json:"expected"`
	Actual      cart.Snapshot `json:"actual"`
	Metrics     Metrics       `json:"metrics"`
}

// Runner 批次執行評估情境並彙整成報告
type Runner struct {
	normalizers map[string]*cart.Normalizer
}

// NewRunner 創建評估執行器
func NewRunner() *Runner {
	return &Runner{normalizers: make(map[string]*cart.Normalizer)}
}

// Run 執行全部情境並產生報告
func (r *Runner) Run(scenarios []Scenario) *Report {
	results := make([]Result, 0, len(scenarios))

	for _, s := range scenarios {
		results = append(results, r.runScenario(s))
	}

	report := NewReport(results)
	common.LogInfo("評估完成",
		zap.Int("情境數", report.Summary.TotalScenarios),
		zap.Int("完全匹配數", report.Summary.ExactMatches),
		zap.Float64("平均F1", report.Summary.AverageF1),
	)
	return report
}

// runScenario 執行單一情境，解析崩潰時以空購物車計分
func (r *Runner) runScenario(s Scenario) Result {
	n, ok := r.normalizers[s.Menu]
	if !ok {
		n = cart.NewNormalizer(menu.Get(s.Menu))
		r.normalizers[s.Menu] = n
	}

	expected := s.ExpectedCart()
	actual := r.parseSafely(n, s)

	metrics := Metrics{
		ExactMatch:   cart.ExactMatch(actual, expected),
		F1:           cart.F1(actual, expected),
		ItemAccuracy: cart.ItemAccuracy(actual, expected),
	}

	return Result{
		ScenarioID:  s.ID,
		Description: s.Description,
		Menu:        s.Menu,
		InputText:   s.InputText,
		Expected:    expected.Snapshot(),
		Actual:      actual.Snapshot(),
		Metrics:     metrics,
	}
}

func (r *Runner) parseSafely(n *cart.Normalizer, s Scenario) (actual *cart.Cart) {
	defer func() {
		if rec := recover(); rec != nil {
			common.LogError("情境解析崩潰",
				zap.String("情境", s.ID),
				zap.Any("原因", rec),
			)
			actual = cart.New()
		}
	}()
	return n.ParseOrder(s.InputText)
}
