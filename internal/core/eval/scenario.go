package eval

import (
	"cart-normalizer/internal/core/cart"
)

// Scenario 一筆評估情境：輸入文本與期望的購物車
type Scenario struct {
	ID          string      `json:"id"`
	Description string      `json:"description"`
	Menu        string      `json:"menu"`
	InputText   string      `json:"input_text"`
	Expected    []cart.Item `json:"expected"`
}

// ExpectedCart 期望購物車
func (s *Scenario) ExpectedCart() *cart.Cart {
	c := cart.New()
	for _, item := range s.Expected {
		c.AddItem(item)
	}
	return c
}

func strPtr(s string) *string { return &s }

// builtinScenarios 內建評估情境，涵蓋兩套菜單的代表性點餐語句
var builtinScenarios = []Scenario{
	{
		ID:          "small_simple_donuts",
		Description: "兩種甜甜圈，配料只綁定自己的提及",
		Menu:        "small",
		InputText:   "a chocolate donut with sprinkles and a raspberry donut",
		Expected: []cart.Item{
			{SKU: "DON002", Name: "Chocolate Iced Doughnut", Quantity: 1, Modifiers: []string{"sprinkles"}, Price: 1.09},
			{SKU: "DON003", Name: "Raspberry Filled Doughnut", Quantity: 1, Modifiers: []string{}, Price: 1.09},
		},
	},
	{
		ID:          "small_coffee_quantity_size",
		Description: "數量詞、尺寸字與配料同義詞",
		Menu:        "small",
		InputText:   "two medium regular brewed coffees with cream",
		Expected: []cart.Item{
			{SKU: "COF001", Name: "Regular Brewed Coffee", Quantity: 2, Size: strPtr("medium"), Modifiers: []string{"cream"}, Price: 2.09},
		},
	},
	{
		ID:          "small_latte_default_size",
		Description: "沒講尺寸時套用咖啡類的預設尺寸",
		Menu:        "small",
		InputText:   "a psl please",
		Expected: []cart.Item{
			{SKU: "COF002", Name: "Pumpkin Spice Latte", Quantity: 1, Size: strPtr("medium"), Modifiers: []string{}, Price: 5.09},
		},
	},
	{
		ID:          "small_mixed_order",
		Description: "甜甜圈與咖啡混合點單",
		Menu:        "small",
		InputText:   "three pumpkin donuts and a small black coffee",
		Expected: []cart.Item{
			{SKU: "DON001", Name: "Pumpkin Spice Iced Doughnut", Quantity: 3, Modifiers: []string{}, Price: 1.29},
			{SKU: "COF001", Name: "Regular Brewed Coffee", Quantity: 1, Size: strPtr("small"), Modifiers: []string{}, Price: 1.79},
		},
	},
	{
		ID:          "small_correction",
		Description: "修正語彙不影響品項辨識",
		Menu:        "small",
		InputText:   "actually make that two raspberry donuts",
		Expected: []cart.Item{
			{SKU: "DON003", Name: "Raspberry Filled Doughnut", Quantity: 2, Modifiers: []string{}, Price: 1.09},
		},
	},
	{
		ID:          "small_no_items",
		Description: "沒有任何菜單品項的輸入",
		Menu:        "small",
		InputText:   "hello is anyone there",
		Expected:    []cart.Item{},
	},
	{
		ID:          "large_latte_overlap",
		Description: "重疊別名以較長者勝出",
		Menu:        "large",
		InputText:   "one pumpkin spice latte",
		Expected: []cart.Item{
			{SKU: "COF002", Name: "Pumpkin Spice Latte", Quantity: 1, Size: strPtr("medium"), Modifiers: []string{}, Price: 5.09},
		},
	},
	{
		ID:          "large_venti_latte",
		Description: "尺寸縮寫與配料同義詞",
		Menu:        "large",
		InputText:   "a venti latte with oat milk",
		Expected: []cart.Item{
			{SKU: "COF005", Name: "Latte", Quantity: 1, Size: strPtr("large"), Modifiers: []string{"oat milk"}, Price: 4.29},
		},
	},
	{
		ID:          "large_decaf_cream",
		Description: "別名複數與尺寸價差",
		Menu:        "large",
		InputText:   "two large decafs with cream",
		Expected: []cart.Item{
			{SKU: "COF004", Name: "Decaf Brewed Coffee", Quantity: 2, Size: strPtr("large"), Modifiers: []string{"cream"}, Price: 2.39},
		},
	},
	{
		ID:          "large_chocolate_donut",
		Description: "大菜單上的單品甜甜圈",
		Menu:        "large",
		InputText:   "a chocolate donut",
		Expected: []cart.Item{
			{SKU: "DON004", Name: "Chocolate Iced Doughnut", Quantity: 1, Modifiers: []string{}, Price: 1.09},
		},
	},
}

// AllScenarios 全部內建情境
func AllScenarios() []Scenario {
	out := make([]Scenario, len(builtinScenarios))
	copy(out, builtinScenarios)
	return out
}

// ScenariosByMenu 指定菜單的內建情境
func ScenariosByMenu(menuName string) []Scenario {
	var out []Scenario
	for _, s := range builtinScenarios {
		if s.Menu == menuName {
			out = append(out, s)
		}
	}
	return out
}

// FilterScenarios 依情境 ID 過濾
func FilterScenarios(scenarios []Scenario, ids []string) []Scenario {
	if len(ids) == 0 {
		return scenarios
	}
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []Scenario
	for _, s := range scenarios {
		if wanted[s.ID] {
			out = append(out, s)
		}
	}
	return out
}
