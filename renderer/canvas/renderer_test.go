package canvasrenderer

import (
	"bytes"
	"testing"

	pdfreader "github.com/ledongthuc/pdf"

	"github.com/ByLCY/vitae/layout"
	"github.com/ByLCY/vitae/resume"
)

var body = layout.Font{Size: 10}

func TestSplitLinesWrapsText(t *testing.T) {
	r := NewRenderer()
	// 宽度单位为 pt
	lines, err := r.SplitLines("hello world again", 30, body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) < 2 {
		t.Fatalf("expected wrapping into multiple lines, got %d", len(lines))
	}
}

func TestSplitLinesHonorsNewlines(t *testing.T) {
	r := NewRenderer()
	lines, err := r.SplitLines("foo\n\nbar", 300, body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines including blank, got %d", len(lines))
	}
	if lines[1] != "" {
		t.Fatalf("expected middle line to be blank, got %q", lines[1])
	}
}

// TestSplitLinesWidthLimit 验证每行宽度不超过限制（pt）。
func TestSplitLinesWidthLimit(t *testing.T) {
	r := NewRenderer()
	face, err := r.fontFace(body)
	if err != nil {
		t.Fatal(err)
	}
	limit := 80.0
	content := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa bbb ccccccc"
	lines, err := r.SplitLines(content, limit, body)
	if err != nil {
		t.Fatalf("SplitLines error: %v", err)
	}
	if len(lines) < 2 {
		t.Fatalf("expected the long word to be split, got %d lines", len(lines))
	}
	for i, ln := range lines {
		if w := face.TextWidth(ln) * layout.MmToPt; w-limit > 1e-6 {
			t.Fatalf("line %d width exceeds limit: width=%g limit=%g", i, w, limit)
		}
	}
}

// 当第一行宽度与容器宽度恰好相等且后面紧跟一个显式换行时，不应产生额外的空行。
func TestNoBlankLineWhenEqualWidthThenNewline(t *testing.T) {
	r := NewRenderer()
	face, err := r.fontFace(body)
	if err != nil {
		t.Fatal(err)
	}
	first := "SAMPLE-A"
	limit := face.TextWidth(first) * layout.MmToPt

	lines, err := r.SplitLines(first+"\nSAMPLE-B", limit, body)
	if err != nil {
		t.Fatalf("SplitLines error: %v", err)
	}
	if len(lines) != 2 || lines[0] != first || lines[1] != "SAMPLE-B" {
		t.Fatalf("expected [%q SAMPLE-B], got %q", first, lines)
	}
}

func TestBoldIsWiderThanRegular(t *testing.T) {
	r := NewRenderer()
	regular, err := r.fontFace(layout.Font{Size: 12})
	if err != nil {
		t.Fatal(err)
	}
	bold, err := r.fontFace(layout.Font{Size: 12, Bold: true})
	if err != nil {
		t.Fatal(err)
	}
	if bold.TextWidth("Work Experience") <= regular.TextWidth("Work Experience") {
		t.Fatalf("粗体宽度应大于常规字重")
	}
}

func TestRenderDefaultResume(t *testing.T) {
	doc, err := resume.Default()
	if err != nil {
		t.Fatal(err)
	}
	r := NewRenderer()
	res, err := layout.Build(doc, layout.BuildOptions{Typesetter: r})
	if err != nil {
		t.Fatalf("布局失败: %v", err)
	}
	out, err := r.Render(res)
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("输出不是 PDF")
	}
	reader, err := pdfreader.NewReader(bytes.NewReader(out), int64(len(out)))
	if err != nil {
		t.Fatalf("读取 PDF 失败: %v", err)
	}
	if got := reader.NumPage(); got != len(res.Pages) {
		t.Fatalf("PDF 页数 %d 与布局页数 %d 不一致", got, len(res.Pages))
	}
}

func TestRenderRejectsEmptyResult(t *testing.T) {
	r := NewRenderer()
	if _, err := r.Render(nil); err == nil {
		t.Fatalf("nil 结果应报错")
	}
	if _, err := r.Render(&layout.Result{}); err == nil {
		t.Fatalf("无页面结果应报错")
	}
}

func TestBadFontPath(t *testing.T) {
	r := NewRendererWithOptions(Options{Regular: Resource{Path: "does-not-exist.ttf"}})
	if _, err := r.SplitLines("x", 100, body); err == nil {
		t.Fatalf("字体路径无效时应报错")
	}
}
