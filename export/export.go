package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ByLCY/vitae/htmldoc"
	"github.com/ByLCY/vitae/layout"
	"github.com/ByLCY/vitae/renderer"
	"github.com/ByLCY/vitae/resume"
	"github.com/ByLCY/vitae/theme"
)

// ErrPrinterDisabled 表示没有配置浏览器打印器。
var ErrPrinterDisabled = errors.New("print-to-PDF is disabled")

const pdfContentType = "application/pdf"

// Printer 把 HTML 打印成分页 PDF。
type Printer interface {
	PrintPDF(ctx context.Context, html string) ([]byte, error)
}

// Artifact 是一次导出的结果：下载文件名、MIME 类型与内容。
type Artifact struct {
	Name        string
	ContentType string
	Body        []byte
}

// Exporter 组合排版、渲染与 HTML 输出。零值不可用，Renderer 必须设置。
type Exporter struct {
	Renderer    renderer.Backend
	Theme       *theme.Theme // 为空时使用默认页面与样式
	HTMLOptions htmldoc.Options
	Printer     Printer // 为空时禁用 PrintPDF
	Logger      *slog.Logger
}

// Layout 只执行排版，返回分页结果。
func (e *Exporter) Layout(r *resume.Resume) (*layout.Result, error) {
	if e.Renderer == nil {
		return nil, fmt.Errorf("export: 未配置渲染后端")
	}
	opts := layout.BuildOptions{Typesetter: e.Renderer}
	if e.Theme != nil {
		opts = e.Theme.Options(e.Renderer)
	}
	res, err := layout.Build(r, opts)
	if err != nil {
		return nil, fmt.Errorf("布局计算失败: %w", err)
	}
	return res, nil
}

// PDF 排版并渲染为 PDF，文件名为 <slug>.pdf。
func (e *Exporter) PDF(r *resume.Resume) (Artifact, error) {
	res, err := e.Layout(r)
	if err != nil {
		return Artifact{}, err
	}
	body, err := e.Renderer.Render(res)
	if err != nil {
		return Artifact{}, fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	e.logger().Debug("pdf exported", "file", res.FileName, "pages", len(res.Pages), "bytes", len(body))
	return Artifact{Name: res.FileName, ContentType: pdfContentType, Body: body}, nil
}

// HTML 生成自包含的 HTML 文档，文件名为 <slug>.html。
func (e *Exporter) HTML(r *resume.Resume) (Artifact, error) {
	out, err := htmldoc.Render(r, e.HTMLOptions)
	if err != nil {
		return Artifact{}, err
	}
	name := r.FileName(".html")
	e.logger().Debug("html exported", "file", name, "bytes", len(out))
	return Artifact{Name: name, ContentType: htmldoc.ContentType, Body: []byte(out)}, nil
}

// PrintPDF 先生成 HTML，再交给浏览器打印成 PDF。
func (e *Exporter) PrintPDF(ctx context.Context, r *resume.Resume) (Artifact, error) {
	if e.Printer == nil {
		return Artifact{}, ErrPrinterDisabled
	}
	doc, err := e.HTML(r)
	if err != nil {
		return Artifact{}, err
	}
	body, err := e.Printer.PrintPDF(ctx, string(doc.Body))
	if err != nil {
		return Artifact{}, err
	}
	name := r.FileName(".pdf")
	e.logger().Debug("printed pdf exported", "file", name, "bytes", len(body))
	return Artifact{Name: name, ContentType: pdfContentType, Body: body}, nil
}

func (e *Exporter) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}
