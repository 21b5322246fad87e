package layout

import (
	"math"
	"strings"
	"unicode"
)

// Measure 返回一段文本在当前字体下的宽度，单位需与 WrapText 的 width 一致。
type Measure func(s string) float64

// WrapText 使用贪心算法折行：优先在空白处断开，超宽的单词按字符拆分，显式换行始终生效。
// 软换行处的空白不会出现在行首或行尾。
func WrapText(content string, width float64, measure Measure) []string {
	limit := width
	if limit <= 0 {
		limit = math.MaxFloat64
	}

	tokens := tokenizeContent(content)
	var lines []string
	var builder strings.Builder
	currentWidth := 0.0

	emit := func(force bool) {
		line := strings.TrimRightFunc(builder.String(), unicode.IsSpace)
		builder.Reset()
		currentWidth = 0
		if line == "" && !force {
			return
		}
		lines = append(lines, line)
	}

	appendToken := func(token string, w float64) {
		builder.WriteString(token)
		currentWidth += w
	}

	for _, token := range tokens {
		if token == "\n" {
			emit(true)
			continue
		}
		isSpace := strings.TrimSpace(token) == ""
		if isSpace && builder.Len() == 0 && len(lines) > 0 {
			// 软换行后的行首空白直接丢弃
			continue
		}

		tokenWidth := measure(token)
		if currentWidth > 0 && currentWidth+tokenWidth > limit {
			emit(false)
			if isSpace {
				continue
			}
		}
		if tokenWidth <= limit {
			appendToken(token, tokenWidth)
			continue
		}

		for _, chunk := range splitTokenByWidth(token, limit, measure) {
			chunkWidth := measure(chunk)
			if currentWidth > 0 && currentWidth+chunkWidth > limit {
				emit(false)
			}
			appendToken(chunk, chunkWidth)
		}
	}

	emit(len(lines) == 0 || builder.Len() > 0)
	return lines
}

func tokenizeContent(s string) []string {
	var tokens []string
	var builder strings.Builder
	lastWasSpace := false
	flush := func() {
		if builder.Len() == 0 {
			return
		}
		tokens = append(tokens, builder.String())
		builder.Reset()
	}

	for _, r := range s {
		if r == '\r' {
			continue
		}
		if r == '\n' {
			flush()
			tokens = append(tokens, "\n")
			lastWasSpace = false
			continue
		}
		isSpace := unicode.IsSpace(r)
		if builder.Len() == 0 {
			lastWasSpace = isSpace
		} else if lastWasSpace != isSpace {
			flush()
			lastWasSpace = isSpace
		}
		builder.WriteRune(r)
	}
	flush()
	return tokens
}

func splitTokenByWidth(token string, limit float64, measure Measure) []string {
	if limit <= 0 || limit == math.MaxFloat64 {
		return []string{token}
	}
	var parts []string
	var current []rune
	for _, r := range token {
		current = append(current, r)
		if len(current) > 1 && measure(string(current)) > limit {
			parts = append(parts, string(current[:len(current)-1]))
			current = []rune{r}
		}
	}
	if len(current) > 0 {
		parts = append(parts, string(current))
	}
	return parts
}
