package printer

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// A4: 210mm x 297mm -> inches: 8.27 x 11.69
const (
	paperWidthIn  = 8.27
	paperHeightIn = 11.69
)

// DefaultTimeout 是单次打印的默认超时。
const DefaultTimeout = 60 * time.Second

// Chrome 通过无头 Chrome 把 HTML 打印为 PDF，是 HTML 输出的分页替代路径。
type Chrome struct {
	// ExecPath 为空时由 chromedp 自行查找浏览器。
	ExecPath string
	Timeout  time.Duration
	Logger   *slog.Logger
}

// NewChrome 返回使用指定浏览器路径与超时的打印器。
func NewChrome(execPath string, timeout time.Duration) *Chrome {
	return &Chrome{ExecPath: execPath, Timeout: timeout}
}

// PrintPDF 直接把 HTML 写入空白页并打印，不经过临时文件或网络。
func (c *Chrome) PrintPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if c.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancelRun := context.WithTimeout(cctx, timeout)
	defer cancelRun()

	start := time.Now()
	var pdfBuf []byte
	err := chromedp.Run(runCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().WithPrintBackground(true).
				WithPaperWidth(paperWidthIn).
				WithPaperHeight(paperHeightIn).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("Chrome 打印 PDF 失败: %w", err)
	}
	c.logger().Debug("chrome print finished", "bytes", len(pdfBuf), "elapsed", time.Since(start))
	return pdfBuf, nil
}

func (c *Chrome) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// FindBrowser 在 PATH 中查找可用的 Chrome/Chromium。
func FindBrowser() (string, error) {
	browsers := []string{"chromium", "chromium-browser", "google-chrome", "google-chrome-stable", "chrome"}
	for _, browser := range browsers {
		if path, err := exec.LookPath(browser); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no suitable browser found")
}
