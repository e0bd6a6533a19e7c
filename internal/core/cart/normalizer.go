package cart

import (
	"regexp"
	"strconv"
	"strings"

	"cart-normalizer/internal/core/menu"
)

// 語境視窗範圍：提及位置往前找數量、往後找尺寸與配料
const (
	contextBefore    = 50
	contextAfter     = 100
	quantityLookback = 5
)

// 修正語彙，於正規化時移除，不影響品項辨識
var correctionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bactually\b`),
	regexp.MustCompile(`(?i)\binstead\b`),
	regexp.MustCompile(`(?i)\bchange\b`),
	regexp.MustCompile(`(?i)\bmake that\b`),
	regexp.MustCompile(`(?i)\bswitch\b`),
}

// 保留連字號與撇號，其餘標點換成空白
var punctuationPattern = regexp.MustCompile(`[^\w\s'\-]`)

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"a": 1, "an": 1,
}

// mention 文本中偵測到的一次品項別名出現
type mention struct {
	start int
	end   int
	alias string
	item  *menu.MenuItem
}

// Normalizer 將口語點餐文本正規化為結構化購物車。
// 索引於建構時一次建好，之後唯讀，可併發使用。
type Normalizer struct {
	menu *menu.Menu

	aliasOrder    []string
	aliasItems    map[string]*menu.MenuItem
	aliasPatterns map[string]*regexp.Regexp

	sizeSynonyms []menu.Synonym
	sizePatterns []*regexp.Regexp

	modifierSynonyms []menu.Synonym
}

// NewNormalizer 依菜單建立正規化引擎
func NewNormalizer(m *menu.Menu) *Normalizer {
	n := &Normalizer{
		menu:          m,
		aliasItems:    make(map[string]*menu.MenuItem),
		aliasPatterns: make(map[string]*regexp.Regexp),
	}
	n.buildIndexes()
	return n
}

// buildIndexes 建立別名、尺寸與配料同義詞索引。
// 跨品項衝突一律採後註冊者優先，掃描順序則固定為首次註冊的位置。
func (n *Normalizer) buildIndexes() {
	register := func(alias string, item *menu.MenuItem) {
		alias = strings.ToLower(alias)
		if _, ok := n.aliasItems[alias]; !ok {
			n.aliasOrder = append(n.aliasOrder, alias)
			// 容許口語複數，例如 "coffees"、"donuts"
			n.aliasPatterns[alias] = regexp.MustCompile(`\b` + regexp.QuoteMeta(alias) + `s?\b`)
		}
		n.aliasItems[alias] = item
	}

	for i := range n.menu.Items {
		item := &n.menu.Items[i]
		register(item.Name, item)
		for _, alias := range item.Aliases {
			register(alias, item)
		}
	}

	n.sizeSynonyms = effectiveSynonyms(n.menu.SizeSynonyms)
	n.sizePatterns = make([]*regexp.Regexp, len(n.sizeSynonyms))
	for i, s := range n.sizeSynonyms {
		n.sizePatterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(s.From) + `\b`)
	}

	var table menu.SynonymTable
	for i := range n.menu.Items {
		for _, s := range n.menu.Items[i].ModifierSynonyms {
			table = append(table, menu.Synonym{From: strings.ToLower(s.From), To: s.To})
		}
	}
	n.modifierSynonyms = effectiveSynonyms(table)
}

// effectiveSynonyms 壓平同義詞表：位置取首次出現、對應取最後宣告
func effectiveSynonyms(table menu.SynonymTable) []menu.Synonym {
	pos := make(map[string]int, len(table))
	var out []menu.Synonym
	for _, s := range table {
		if i, ok := pos[s.From]; ok {
			out[i].To = s.To
			continue
		}
		pos[s.From] = len(out)
		out = append(out, s)
	}
	return out
}

// NormalizeText 文本前處理：移除修正語彙與標點、壓縮空白、轉小寫
func (n *Normalizer) NormalizeText(text string) string {
	for _, p := range correctionPatterns {
		text = p.ReplaceAllString(text, "")
	}
	text = punctuationPattern.ReplaceAllString(text, " ")
	text = strings.Join(strings.Fields(text), " ")
	return strings.ToLower(text)
}

// ParseOrder 解析完整點餐文本。
// 找不到任何品項時回傳空購物車，不視為錯誤。
func (n *Normalizer) ParseOrder(text string) *Cart {
	normalized := n.NormalizeText(text)

	c := New()
	for _, m := range n.resolveOverlaps(n.findMentions(normalized)) {
		windowStart := m.start - contextBefore
		if windowStart < 0 {
			windowStart = 0
		}
		windowEnd := m.end + contextAfter
		if windowEnd > len(normalized) {
			windowEnd = len(normalized)
		}
		window := normalized[windowStart:windowEnd]

		size := n.extractSize(window, m.item)
		item := Item{
			SKU:       m.item.SKU,
			Name:      m.item.Name,
			Quantity:  n.extractQuantity(window, m.alias),
			Size:      size,
			Modifiers: n.extractModifiers(normalized[m.start:windowEnd], m.item),
			Price:     calculatePrice(m.item, size),
		}
		c.AddItem(item)
	}

	c.MergeDuplicates()
	return c
}

// findMentions 逐一掃描別名，回傳所有出現位置（依起點排序）
func (n *Normalizer) findMentions(text string) []mention {
	var mentions []mention
	for _, alias := range n.aliasOrder {
		item := n.aliasItems[alias]
		for _, loc := range n.aliasPatterns[alias].FindAllStringIndex(text, -1) {
			mentions = append(mentions, mention{start: loc[0], end: loc[1], alias: alias, item: item})
		}
	}
	sortMentionsByStart(mentions)
	return mentions
}

func sortMentionsByStart(mentions []mention) {
	// 插入排序即可，且保證穩定：起點相同時維持註冊順序
	for i := 1; i < len(mentions); i++ {
		for j := i; j > 0 && mentions[j].start < mentions[j-1].start; j-- {
			mentions[j], mentions[j-1] = mentions[j-1], mentions[j]
		}
	}
}

// resolveOverlaps 去除重疊的提及，別名較長者勝出
func (n *Normalizer) resolveOverlaps(mentions []mention) []mention {
	var accepted []mention
	for _, cand := range mentions {
		overlaps := false
		for i := 0; i < len(accepted); i++ {
			prev := accepted[i]
			if cand.end <= prev.start || cand.start >= prev.end {
				continue
			}
			if len(cand.alias) > len(prev.alias) {
				accepted = append(accepted[:i], accepted[i+1:]...)
				continue
			}
			overlaps = true
			break
		}
		if !overlaps {
			accepted = append(accepted, cand)
		}
	}
	return accepted
}

// extractQuantity 往提及之前最多五個詞找數量，找不到時為 1
func (n *Normalizer) extractQuantity(window, alias string) int {
	aliasPos := strings.Index(window, alias)
	if aliasPos == -1 {
		return 1
	}

	words := strings.Fields(window[:aliasPos])
	if len(words) > quantityLookback {
		words = words[len(words)-quantityLookback:]
	}
	for i := len(words) - 1; i >= 0; i-- {
		if q, ok := numberWords[words[i]]; ok {
			return q
		}
		if isDigits(words[i]) {
			q, _ := strconv.Atoi(words[i])
			return q
		}
	}
	return 1
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// extractSize 在語境視窗中找尺寸字，無尺寸概念的品項回傳 nil
func (n *Normalizer) extractSize(window string, item *menu.MenuItem) *string {
	if !item.HasSizes() {
		return nil
	}

	for i, s := range n.sizeSynonyms {
		if n.sizePatterns[i].MatchString(window) {
			size := s.To
			return &size
		}
	}

	size, ok := n.menu.DefaultSizes[item.Category]
	if !ok {
		size = "medium"
	}
	return &size
}

// extractModifiers 從提及起點到視窗尾端找配料。
// 先比對全域同義詞，再比對品項自身的配料名稱，依標準名稱去重。
func (n *Normalizer) extractModifiers(region string, item *menu.MenuItem) []string {
	modifiers := []string{}
	found := make(map[string]bool)

	for _, s := range n.modifierSynonyms {
		if strings.Contains(region, s.From) && !found[s.To] {
			modifiers = append(modifiers, s.To)
			found[s.To] = true
		}
	}
	for _, mod := range item.Modifiers {
		if strings.Contains(region, strings.ToLower(mod)) && !found[mod] {
			modifiers = append(modifiers, mod)
			found[mod] = true
		}
	}
	return modifiers
}

// calculatePrice 單價為基本價加上尺寸價差，不做中間捨入
func calculatePrice(item *menu.MenuItem, size *string) float64 {
	price := item.BasePrice
	if size != nil {
		if delta, ok := item.SizeVariations[*size]; ok {
			price += delta
		}
	}
	return price
}
