package resume

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// Text 是宽松类型的字段：任何 JSON 值都会以其文本形式保存。
// 数字保留原始字面量，null 视为空串，数组按 "," 拼接，对象保留紧凑 JSON。
// 解码时同时记录 JSON 真假值：false、0、null 与 "" 在条件输出中视为缺失，
// 但直接插值时仍输出其文本形式。
type Text struct {
	s     string
	falsy bool
}

// NewText 由普通字符串构造字段，空串为假值。
func NewText(s string) Text { return Text{s: s, falsy: s == ""} }

func textFrom(res gjson.Result) Text {
	return Text{s: textOf(res), falsy: isFalsy(res)}
}

// UnmarshalJSON 实现宽松解码。
func (t *Text) UnmarshalJSON(b []byte) error {
	*t = textFrom(gjson.ParseBytes(b))
	return nil
}

// MarshalJSON 输出文本形式。
func (t Text) MarshalJSON() ([]byte, error) { return json.Marshal(t.s) }

// String 返回文本内容。
func (t Text) String() string { return t.s }

// Present 报告字段是否为真值，即条件输出时是否应该出现。
func (t Text) Present() bool { return !t.falsy && t.s != "" }

// Or 在字段为假值时返回 fallback。
func (t Text) Or(fallback string) string {
	if !t.Present() {
		return fallback
	}
	return t.s
}

// TextList 是有序的文本序列，例如 responsibilities、technologies、keywords。
type TextList []Text

// UnmarshalJSON 逐元素解码数组；单个标量按一项处理，null 得到空列表。
func (l *TextList) UnmarshalJSON(b []byte) error {
	res := gjson.ParseBytes(b)
	switch {
	case res.Type == gjson.Null:
		*l = nil
	case res.IsArray():
		items := res.Array()
		out := make(TextList, 0, len(items))
		for _, item := range items {
			out = append(out, textFrom(item))
		}
		*l = out
	default:
		*l = TextList{textFrom(res)}
	}
	return nil
}

// JoinText 以 ", " 拼接文本序列。
func JoinText(list TextList) string {
	parts := make([]string, len(list))
	for i, item := range list {
		parts[i] = item.s
	}
	return strings.Join(parts, ", ")
}

func textOf(res gjson.Result) string {
	switch res.Type {
	case gjson.Null:
		return ""
	case gjson.String:
		return res.Str
	case gjson.Number, gjson.True, gjson.False:
		return res.Raw
	case gjson.JSON:
		if res.IsArray() {
			items := res.Array()
			parts := make([]string, len(items))
			for i, item := range items {
				parts[i] = textOf(item)
			}
			return strings.Join(parts, ",")
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, []byte(res.Raw)); err != nil {
			return res.Raw
		}
		return buf.String()
	default:
		return ""
	}
}

// isFalsy 按 JSON 值的类型判断假值：false、数值 0、null 与空字符串。
func isFalsy(res gjson.Result) bool {
	switch res.Type {
	case gjson.Null, gjson.False:
		return true
	case gjson.Number:
		return res.Num == 0
	case gjson.String:
		return res.Str == ""
	default:
		return false
	}
}
