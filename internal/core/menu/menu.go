package menu

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Synonym 同義詞條目，From 映射到標準名稱 To
type Synonym struct {
	From string
	To   string
}

// SynonymTable 依宣告順序排列的同義詞表。
// 比對時的優先順序即宣告順序，重複宣告以最後一筆為準。
type SynonymTable []Synonym

// Lookup 查詢同義詞的標準名稱（最後一筆宣告優先）
func (t SynonymTable) Lookup(from string) (string, bool) {
	to := ""
	found := false
	for _, s := range t {
		if s.From == from {
			to = s.To
			found = true
		}
	}
	return to, found
}

// MarshalJSON 將同義詞表序列化為 JSON 物件，保留宣告順序
func (t SynonymTable) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	seen := make(map[string]bool, len(t))
	first := true
	for _, s := range t {
		if seen[s.From] {
			continue
		}
		seen[s.From] = true
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, err := json.Marshal(s.From)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.To)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON 從 JSON 物件還原同義詞表（順序依解碼順序）
func (t *SynonymTable) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok != json.Delim('{') {
		return &json.UnmarshalTypeError{Value: "non-object", Type: nil}
	}
	var table SynonymTable
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		var val string
		if err := dec.Decode(&val); err != nil {
			return err
		}
		table = append(table, Synonym{From: keyTok.(string), To: val})
	}
	*t = table
	return nil
}

// MenuItem 單一菜單品項，載入後不再變動
type MenuItem struct {
	SKU              string             `json:"sku"`
	Name             string             `json:"name"`
	Category         string             `json:"category"`
	BasePrice        float64            `json:"base_price"`
	Aliases          []string           `json:"aliases"`
	SizeVariations   map[string]float64 `json:"size_variations"` // 尺寸名稱 -> 價差
	Modifiers        []string           `json:"modifiers"`
	ModifierSynonyms SynonymTable       `json:"modifier_synonyms"` // 同義詞 -> 標準配料名稱
}

// HasSizes 此品項是否有尺寸變化
func (i *MenuItem) HasSizes() bool {
	return len(i.SizeVariations) > 0
}

// Menu 完整菜單與正規化所需的對照資料
type Menu struct {
	Name         string            `json:"name"`
	Items        []MenuItem        `json:"items"`
	SizeSynonyms SynonymTable      `json:"size_synonyms"` // 例如 "lg" -> "large"
	DefaultSizes map[string]string `json:"default_sizes"` // 分類 -> 預設尺寸
}

// FindItemBySKU 依 SKU 查詢品項
func (m *Menu) FindItemBySKU(sku string) *MenuItem {
	for i := range m.Items {
		if m.Items[i].SKU == sku {
			return &m.Items[i]
		}
	}
	return nil
}

// Get 依名稱取得菜單，未知名稱回退到 small
func Get(name string) *Menu {
	if m, ok := Find(name); ok {
		return m
	}
	return smallMenu
}

// Find 依名稱查詢菜單
func Find(name string) (*Menu, bool) {
	switch strings.ToLower(name) {
	case "small":
		return smallMenu, true
	case "large":
		return largeMenu, true
	}
	return nil, false
}

// Names 回傳所有內建菜單名稱
func Names() []string {
	return []string{"small", "large"}
}
