package cart

import (
	"sort"
	"strings"
)

// 購物車評分：三個指標刻意採不同的展開方式，
// F1 以集合比對（數量重複會坍縮），品項準確率以排序後逐位比對，
// 兩者對重複 SKU 的案例可能得出不同結論，皆為既定評分行為。

// ExactMatch 兩購物車是否完全一致（與品項順序無關）
func ExactMatch(actual, expected *Cart) bool {
	if len(actual.Items) != len(expected.Items) {
		return false
	}

	a := sortedForCompare(actual.Items)
	e := sortedForCompare(expected.Items)

	for i := range a {
		if a[i].SKU != e[i].SKU ||
			a[i].Quantity != e[i].Quantity ||
			a[i].sizeKey() != e[i].sizeKey() ||
			!sameModifierSet(a[i].Modifiers, e[i].Modifiers) {
			return false
		}
	}
	return true
}

func sortedForCompare(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	sort.Slice(out, func(i, j int) bool {
		if out[i].SKU != out[j].SKU {
			return out[i].SKU < out[j].SKU
		}
		if out[i].sizeKey() != out[j].sizeKey() {
			return out[i].sizeKey() < out[j].sizeKey()
		}
		return strings.Join(out[i].Modifiers, "\x00") < strings.Join(out[j].Modifiers, "\x00")
	})
	return out
}

func sameModifierSet(a, b []string) bool {
	setA := make(map[string]bool, len(a))
	for _, m := range a {
		setA[m] = true
	}
	setB := make(map[string]bool, len(b))
	for _, m := range b {
		setB[m] = true
	}
	if len(setA) != len(setB) {
		return false
	}
	for m := range setA {
		if !setB[m] {
			return false
		}
	}
	return true
}

// F1 以品項身分鍵為單位的 F1 分數
func F1(actual, expected *Cart) float64 {
	actualSet := identitySet(actual)
	expectedSet := identitySet(expected)

	if len(expectedSet) == 0 {
		if len(actualSet) == 0 {
			return 1.0
		}
		return 0.0
	}

	tp := 0
	for key := range actualSet {
		if expectedSet[key] {
			tp++
		}
	}
	fp := len(actualSet) - tp
	fn := len(expectedSet) - tp

	precision := 0.0
	if tp+fp > 0 {
		precision = float64(tp) / float64(tp+fp)
	}
	recall := 0.0
	if tp+fn > 0 {
		recall = float64(tp) / float64(tp+fn)
	}
	if precision+recall == 0 {
		return 0.0
	}
	return 2 * precision * recall / (precision + recall)
}

func identitySet(c *Cart) map[string]bool {
	set := make(map[string]bool, len(c.Items))
	for i := range c.Items {
		set[c.Items[i].Key()] = true
	}
	return set
}

// ItemAccuracy 僅看 SKU 的準確率：展開數量後排序，逐位比對
func ItemAccuracy(actual, expected *Cart) float64 {
	actualSKUs := flattenSKUs(actual)
	expectedSKUs := flattenSKUs(expected)

	if len(expectedSKUs) == 0 {
		if len(actualSKUs) == 0 {
			return 1.0
		}
		return 0.0
	}

	sort.Strings(actualSKUs)
	sort.Strings(expectedSKUs)

	pairs := len(actualSKUs)
	if len(expectedSKUs) < pairs {
		pairs = len(expectedSKUs)
	}
	correct := 0
	for i := 0; i < pairs; i++ {
		if actualSKUs[i] == expectedSKUs[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(expectedSKUs))
}

func flattenSKUs(c *Cart) []string {
	var skus []string
	for i := range c.Items {
		for q := 0; q < c.Items[i].Quantity; q++ {
			skus = append(skus, c.Items[i].SKU)
		}
	}
	return skus
}
