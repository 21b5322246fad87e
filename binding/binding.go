package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值。
// 路径不存在或值为 null 时替换为空串；数组按 ", " 连接。
func Interpolate(text string, data any) string {
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := exprPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return ""
		}
		path := strings.TrimSpace(groups[1])
		if path == "" {
			return ""
		}
		if val, ok := resolvePath(data, path); ok {
			return format(val)
		}
		return ""
	})
}

// List 在 text 恰好是单个 ${path} 表达式且其值为数组时，返回逐项格式化的结果。
// 其他情况 ok 为 false，调用方应退回 Interpolate。
func List(text string, data any) (items []string, ok bool) {
	groups := exprPattern.FindStringSubmatch(strings.TrimSpace(text))
	if len(groups) < 2 || groups[0] != strings.TrimSpace(text) {
		return nil, false
	}
	val, found := resolvePath(data, strings.TrimSpace(groups[1]))
	if !found {
		return nil, false
	}
	arr, isArray := val.([]interface{})
	if !isArray {
		return nil, false
	}
	items = make([]string, 0, len(arr))
	for _, item := range arr {
		items = append(items, format(item))
	}
	return items, true
}

func format(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s := format(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

// resolvePath 沿 "a.b[0].c" 形式的路径下降；任一步缺失或类型不符时 ok 为 false。
func resolvePath(data any, path string) (any, bool) {
	steps, ok := splitPath(path)
	if !ok {
		return nil, false
	}
	current := data
	for _, st := range steps {
		switch c := current.(type) {
		case map[string]any:
			if st.index >= 0 {
				return nil, false
			}
			if current, ok = c[st.key]; !ok {
				return nil, false
			}
		case []any:
			if st.index < 0 || st.index >= len(c) {
				return nil, false
			}
			current = c[st.index]
		default:
			return nil, false
		}
	}
	return current, true
}

// pathStep 是路径中的一步：对象键，或 index >= 0 时的数组下标。
type pathStep struct {
	key   string
	index int
}

// splitPath 把路径拆成步骤序列，下标非法或括号不闭合时 ok 为 false。
func splitPath(path string) ([]pathStep, bool) {
	var steps []pathStep
	for _, segment := range strings.Split(path, ".") {
		name, rest, found := strings.Cut(segment, "[")
		if name != "" {
			steps = append(steps, pathStep{key: name, index: -1})
		}
		if !found {
			continue
		}
		rest = "[" + rest
		for rest != "" {
			end := strings.IndexByte(rest, ']')
			if rest[0] != '[' || end == -1 {
				return nil, false
			}
			idx, err := strconv.Atoi(rest[1:end])
			if err != nil || idx < 0 {
				return nil, false
			}
			steps = append(steps, pathStep{index: idx})
			rest = rest[end+1:]
		}
	}
	return steps, true
}
