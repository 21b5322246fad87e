package layout

import (
	"reflect"
	"testing"
)

// 每个字符宽 1，便于按字符数推算折行位置。
func runeWidth(s string) float64 { return float64(len([]rune(s))) }

func TestWrapText(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		width float64
		want  []string
	}{
		{"fits", "hello world", 20, []string{"hello world"}},
		{"break at space", "hello world again", 11, []string{"hello world", "again"}},
		{"no leading space after soft break", "aaaa    bbbb", 6, []string{"aaaa", "bbbb"}},
		{"long word split by rune", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"explicit newline", "one\ntwo", 50, []string{"one", "two"}},
		{"blank line kept", "one\n\ntwo", 50, []string{"one", "", "two"}},
		{"unbounded width", "hello world", 0, []string{"hello world"}},
		{"cjk", "简历生成器", 2, []string{"简历", "生成", "器"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := WrapText(c.in, c.width, runeWidth)
			if !reflect.DeepEqual(got, c.want) {
				t.Fatalf("WrapText(%q, %g) = %q，期望 %q", c.in, c.width, got, c.want)
			}
		})
	}
}

func TestWrapTextLinesNeverExceedWidth(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog while a supercalifragilistic word appears"
	for _, line := range WrapText(text, 10, runeWidth) {
		if runeWidth(line) > 10 {
			t.Fatalf("行 %q 超出宽度", line)
		}
	}
}
