package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/vitae/fonts"
	"github.com/ByLCY/vitae/layout"
	"github.com/ByLCY/vitae/renderer"
)

// Renderer draws layout results via github.com/tdewolff/canvas.
// 布局结果以 pt 为单位，canvas 以 mm 为单位，换算只发生在本包边界。
type Renderer struct {
	regular []byte
	bold    []byte

	fontMu   sync.Mutex
	families map[bool]*canvas.FontFamily
	loadErr  error
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

var textColor = canvas.RGBA(30.0/255.0, 30.0/255.0, 30.0/255.0, 1.0)

// Options configures the canvas renderer.
type Options struct {
	Regular Resource // 为空时使用内置 Go Regular
	Bold    Resource // 为空时使用内置 Go Bold
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates a canvas-based renderer using the built-in Go fonts.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer with injected fonts.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{families: map[bool]*canvas.FontFamily{}}
	var err error
	if r.regular, err = loadResource(opts.Regular, fonts.Regular); err != nil {
		r.loadErr = err
	}
	if r.bold, err = loadResource(opts.Bold, fonts.Bold); err != nil && r.loadErr == nil {
		r.loadErr = err
	}
	return r
}

func loadResource(res Resource, builtin string) ([]byte, error) {
	if len(res.Bytes) > 0 {
		return res.Bytes, nil
	}
	if res.Path != "" {
		data, err := os.ReadFile(res.Path)
		if err != nil {
			return nil, fmt.Errorf("读取字体 %s 失败: %w", res.Path, err)
		}
		return data, nil
	}
	return fonts.Load(builtin)
}

// Render renders the result into a PDF byte slice.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	var buf bytes.Buffer
	first := result.Pages[0]
	writer := pdf.New(&buf, toMm(first.Width), toMm(first.Height), nil)
	applyMeta(writer, result.Meta)
	for i, page := range result.Pages {
		if i > 0 {
			writer.NewPage(toMm(page.Width), toMm(page.Height))
		}
		c := canvas.New(toMm(page.Width), toMm(page.Height))
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

		if err := r.drawPage(ctx, page); err != nil {
			return nil, fmt.Errorf("绘制第 %d 页失败: %w", i+1, err)
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	if writer == nil {
		return
	}
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

// SplitLines 实现 layout.Typesetter 接口：宽度入参与返回的度量均为 pt。
func (r *Renderer) SplitLines(text string, width float64, font layout.Font) ([]string, error) {
	face, err := r.fontFace(font)
	if err != nil {
		return nil, err
	}
	return layout.WrapText(text, width, func(s string) float64 {
		return face.TextWidth(s) * layout.MmToPt
	}), nil
}

func (r *Renderer) drawPage(ctx *canvas.Context, page layout.Page) error {
	// 分隔线先画，文本覆盖其上
	for _, rule := range page.Rules {
		drawRule(ctx, rule)
	}
	for _, tb := range page.Texts {
		if err := r.drawTextBox(ctx, tb); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) drawTextBox(ctx *canvas.Context, tb layout.TextBox) error {
	face, err := r.fontFace(tb.Font)
	if err != nil {
		return err
	}
	// 基线位置：行顶部加上字体上升部（Ascent，mm）
	ascent := face.Metrics().Ascent
	for i, line := range tb.Lines {
		if line == "" {
			continue
		}
		top := toMm(tb.Y + float64(i)*tb.LineHeight)
		textLine := canvas.NewTextLine(face, line, canvas.Left)
		ctx.DrawText(toMm(tb.X), top+ascent, textLine)
	}
	return nil
}

// drawRule 绘制水平分隔线（输入为 pt）
func drawRule(ctx *canvas.Context, rule layout.Rule) {
	w := rule.Width
	if w <= 0 {
		w = 0.6
	}
	ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	ctx.SetStrokeColor(canvas.Black)
	ctx.SetStrokeWidth(toMm(w))
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(toMm(rule.X2-rule.X1), 0)
	ctx.DrawPath(toMm(rule.X1), toMm(rule.Y), p)
}

func (r *Renderer) fontFace(font layout.Font) (*canvas.FontFace, error) {
	family, style, err := r.ensureFontFamily(font.Bold)
	if err != nil {
		return nil, err
	}
	size := font.Size
	if size <= 0 {
		size = 10
	}
	// canvas 的字号单位本身就是 pt
	return family.Face(size, textColor, style, canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(bold bool) (*canvas.FontFamily, canvas.FontStyle, error) {
	style := canvas.FontRegular
	data := r.regular
	name := "vitae-regular"
	if bold {
		style = canvas.FontBold
		data = r.bold
		name = "vitae-bold"
	}

	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if r.loadErr != nil {
		return nil, style, r.loadErr
	}
	if family, ok := r.families[bold]; ok {
		return family, style, nil
	}
	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(data, 0, style); err != nil {
		return nil, style, fmt.Errorf("加载字体 %s 失败: %w", name, err)
	}
	r.families[bold] = family
	return family, style, nil
}

// toMm 将点(pt)转换为毫米(mm)。
func toMm(pt float64) float64 { return pt * layout.PtToMm }
