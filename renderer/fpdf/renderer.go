package fpdfrenderer

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"time"

	"codeberg.org/go-pdf/fpdf"

	"github.com/ByLCY/vitae/layout"
	"github.com/ByLCY/vitae/renderer"
)

// Helvetica 的上升部（字号的比例），用于由行顶部推算基线。
const helveticaAscent = 0.718

const family = "Helvetica"

// 固定的创建/修改时间，保证相同输入得到逐字节相同的输出。
var fixedDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Renderer 使用 PDF 标准 14 字体（Helvetica）绘制布局结果，输出不嵌入字体文件。
// 文本按 cp1252 编码，超出该字符集的字符无法显示。
type Renderer struct {
	mu      sync.Mutex
	measure *fpdf.Fpdf
	tr      func(string) string
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

// NewRenderer 创建渲染器，内部保留一个仅用于测量字符串宽度的 fpdf 实例。
func NewRenderer() *Renderer {
	m := newDocument(layout.A4Width, layout.A4Height)
	return &Renderer{
		measure: m,
		tr:      m.UnicodeTranslatorFromDescriptor(""),
	}
}

func newDocument(width, height float64) *fpdf.Fpdf {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCreationDate(fixedDate)
	pdf.SetModificationDate(fixedDate)
	pdf.SetCatalogSort(true)
	return pdf
}

func fontStyle(f layout.Font) string {
	if f.Bold {
		return "B"
	}
	return ""
}

// SplitLines 实现 layout.Typesetter 接口，使用 Helvetica 的字宽表测量（pt）。
func (r *Renderer) SplitLines(text string, width float64, font layout.Font) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.measure.SetFont(family, fontStyle(font), font.Size)
	lines := layout.WrapText(text, width, func(s string) float64 {
		return r.measure.GetStringWidth(r.tr(s))
	})
	if err := r.measure.Error(); err != nil {
		return nil, fmt.Errorf("测量文本宽度失败: %w", err)
	}
	return lines, nil
}

// Render renders the result into a PDF byte slice.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	first := result.Pages[0]
	pdf := newDocument(first.Width, first.Height)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	applyMeta(pdf, result.Meta)
	pdf.SetTextColor(30, 30, 30)
	pdf.SetDrawColor(0, 0, 0)

	for _, page := range result.Pages {
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: page.Width, Ht: page.Height})
		// 分隔线先画，文本覆盖其上
		for _, rule := range page.Rules {
			w := rule.Width
			if w <= 0 {
				w = 0.6
			}
			pdf.SetLineWidth(w)
			pdf.Line(rule.X1, rule.Y, rule.X2, rule.Y)
		}
		for _, tb := range page.Texts {
			pdf.SetFont(family, fontStyle(tb.Font), tb.Font.Size)
			baseline := tb.Font.Size * helveticaAscent
			for i, line := range tb.Lines {
				if line == "" {
					continue
				}
				pdf.Text(tb.X, tb.Y+float64(i)*tb.LineHeight+baseline, tr(line))
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func applyMeta(pdf *fpdf.Fpdf, meta layout.DocumentMeta) {
	pdf.SetTitle(meta.Title, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.SetSubject(meta.Subject, true)
	pdf.SetCreator(meta.Creator, true)
	if len(meta.Keywords) > 0 {
		pdf.SetKeywords(strings.Join(meta.Keywords, ", "), true)
	}
}
