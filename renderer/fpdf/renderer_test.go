package fpdfrenderer

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	pdfreader "github.com/ledongthuc/pdf"

	"github.com/ByLCY/vitae/layout"
	"github.com/ByLCY/vitae/resume"
)

func render(t *testing.T, doc *resume.Resume) (*layout.Result, []byte) {
	t.Helper()
	r := NewRenderer()
	res, err := layout.Build(doc, layout.BuildOptions{Typesetter: r})
	if err != nil {
		t.Fatalf("布局失败: %v", err)
	}
	out, err := r.Render(res)
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	return res, out
}

func openPDF(t *testing.T, data []byte) *pdfreader.Reader {
	t.Helper()
	reader, err := pdfreader.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("读取 PDF 失败: %v", err)
	}
	return reader
}

func TestSplitLinesUsesHelveticaMetrics(t *testing.T) {
	r := NewRenderer()
	// Helvetica 10pt 下 "i" 远窄于 "W"
	narrow, err := r.SplitLines(strings.Repeat("i", 60), 100, layout.Font{Size: 10})
	if err != nil {
		t.Fatal(err)
	}
	wide, err := r.SplitLines(strings.Repeat("W", 60), 100, layout.Font{Size: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(narrow) >= len(wide) {
		t.Fatalf("窄字符应占用更少的行: narrow=%d wide=%d", len(narrow), len(wide))
	}
	bold, err := r.SplitLines("Work Experience Work Experience", 150, layout.Font{Size: 12, Bold: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(bold) != 2 {
		t.Fatalf("期望粗体文本折成 2 行，实际 %q", bold)
	}
}

func TestRenderDefaultResume(t *testing.T) {
	doc, err := resume.Default()
	if err != nil {
		t.Fatal(err)
	}
	res, out := render(t, doc)
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("输出不是 PDF")
	}
	reader := openPDF(t, out)
	if got := reader.NumPage(); got != len(res.Pages) {
		t.Fatalf("PDF 页数 %d 与布局页数 %d 不一致", got, len(res.Pages))
	}
	text, err := reader.Page(1).GetPlainText(nil)
	if err != nil {
		t.Fatalf("提取文本失败: %v", err)
	}
	for _, want := range []string{doc.Basics.FullName.String(), "PROFESSIONAL SUMMARY"} {
		if !strings.Contains(text, want) {
			t.Errorf("第一页缺少 %q", want)
		}
	}
}

func TestRenderIsByteStable(t *testing.T) {
	doc, err := resume.Default()
	if err != nil {
		t.Fatal(err)
	}
	_, a := render(t, doc)
	_, b := render(t, doc)
	if !bytes.Equal(a, b) {
		t.Fatalf("相同输入的 PDF 输出不一致")
	}
}

func TestRenderPaginatesLongResume(t *testing.T) {
	doc := &resume.Resume{Basics: resume.Basics{FullName: resume.NewText("Pat Long")}}
	for i := 0; i < 30; i++ {
		job := resume.Job{JobTitle: resume.NewText(fmt.Sprintf("Engineer %d", i)), Company: resume.NewText("Acme")}
		for j := 0; j < 10; j++ {
			job.Responsibilities = append(job.Responsibilities, resume.NewText(fmt.Sprintf("Delivered item %d.%d", i, j)))
		}
		doc.WorkExperience = append(doc.WorkExperience, job)
	}
	res, out := render(t, doc)
	if len(res.Pages) < 2 {
		t.Fatalf("期望多页，实际 %d", len(res.Pages))
	}
	if got := openPDF(t, out).NumPage(); got != len(res.Pages) {
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
