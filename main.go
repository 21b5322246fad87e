package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ByLCY/vitae/config"
	"github.com/ByLCY/vitae/export"
	"github.com/ByLCY/vitae/htmldoc"
	"github.com/ByLCY/vitae/layout"
	"github.com/ByLCY/vitae/logging"
	"github.com/ByLCY/vitae/printer"
	"github.com/ByLCY/vitae/renderer"
	canvasrenderer "github.com/ByLCY/vitae/renderer/canvas"
	fpdfrenderer "github.com/ByLCY/vitae/renderer/fpdf"
	"github.com/ByLCY/vitae/resume"
	"github.com/ByLCY/vitae/server"
	"github.com/ByLCY/vitae/theme"
)

func main() {
	cfg := config.Load()

	input := flag.String("in", "", "简历 JSON 路径，为空时使用内置示例")
	outDir := flag.String("out", "output", "输出目录")
	format := flag.String("format", "pdf", "输出格式: pdf | html | print")
	backend := flag.String("backend", cfg.Backend, "PDF 排版后端: fpdf | canvas")
	themePath := flag.String("theme", cfg.ThemePath, "主题文件路径")
	debug := flag.String("debug", "", "布局调试 JSON 输出路径")
	minify := flag.Bool("minify", cfg.Minify, "压缩 HTML 输出")
	serve := flag.String("serve", "", "以 HTTP 服务方式运行并监听该地址")
	flag.Parse()

	logger := logging.Setup(cfg.LogLevel, os.Stderr)

	cfg.Backend = *backend
	cfg.ThemePath = *themePath
	cfg.Minify = *minify
	if *format == "print" {
		cfg.PrintEnabled = true
	}

	exp, err := newExporter(cfg, logger)
	if err != nil {
		fail(err)
	}

	if *serve != "" {
		cfg.ListenAddr = *serve
		if err := listen(cfg, exp, logger); err != nil {
			fail(err)
		}
		return
	}

	path, err := run(exp, *input, *outDir, *format, *debug)
	if err != nil {
		fail(err)
	}
	fmt.Printf("已生成：%s\n", path)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "vitae: %v\n", err)
	os.Exit(1)
}

// newExporter 按配置组装主题、后端与可选的浏览器打印器。
func newExporter(cfg config.Config, logger *slog.Logger) (*export.Exporter, error) {
	backend, err := newBackend(cfg.Backend)
	if err != nil {
		return nil, err
	}
	th, err := loadTheme(cfg.ThemePath)
	if err != nil {
		return nil, err
	}
	exp := &export.Exporter{
		Renderer:    backend,
		Theme:       th,
		HTMLOptions: htmldoc.Options{Minify: cfg.Minify},
		Logger:      logger,
	}
	if cfg.PrintEnabled {
		chrome := printer.NewChrome(cfg.ChromePath, cfg.PrintTimeout)
		chrome.Logger = logger
		exp.Printer = chrome
	}
	return exp, nil
}

func newBackend(name string) (renderer.Backend, error) {
	switch name {
	case "", config.BackendFPDF:
		return fpdfrenderer.NewRenderer(), nil
	case config.BackendCanvas:
		return canvasrenderer.NewRenderer(), nil
	default:
		return nil, fmt.Errorf("未知的渲染后端 %q", name)
	}
}

func loadTheme(path string) (*theme.Theme, error) {
	if path == "" {
		return theme.Default()
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开主题文件 %s: %w", path, err)
	}
	defer file.Close()

	th, err := theme.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("解析主题 %s 失败: %w", path, err)
	}
	return th, nil
}

// run 串联读取、导出与写文件，返回输出文件路径。
func run(exp *export.Exporter, inputPath, outDir, format, debugPath string) (string, error) {
	doc, err := readResume(inputPath)
	if err != nil {
		return "", err
	}

	if debugPath != "" {
		res, err := exp.Layout(doc)
		if err != nil {
			return "", err
		}
		if err := writeDebug(res, debugPath); err != nil {
			return "", err
		}
	}

	var art export.Artifact
	switch format {
	case "pdf":
		art, err = exp.PDF(doc)
	case "html":
		art, err = exp.HTML(doc)
	case "print":
		art, err = exp.PrintPDF(context.Background(), doc)
	default:
		return "", fmt.Errorf("未知的输出格式 %q", format)
	}
	if err != nil {
		return "", fmt.Errorf("导出 %s 失败: %w", format, err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("创建输出目录失败: %w", err)
	}
	outPath := filepath.Join(outDir, art.Name)
	if err := os.WriteFile(outPath, art.Body, 0o644); err != nil {
		return "", fmt.Errorf("写入文件失败: %w", err)
	}
	return outPath, nil
}

func readResume(path string) (*resume.Resume, error) {
	if path == "" {
		return resume.Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取简历 %s: %w", path, err)
	}
	doc, err := resume.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("解析简历 %s 失败: %w", path, err)
	}
	return doc, nil
}

func writeDebug(result *layout.Result, debugPath string) error {
	if dir := filepath.Dir(debugPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建调试目录失败: %w", err)
		}
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

// listen 运行 HTTP 服务，收到 SIGINT/SIGTERM 后优雅退出。
func listen(cfg config.Config, exp *export.Exporter, logger *slog.Logger) error {
	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr: cfg.ListenAddr,
		Handler: server.New(exp, server.Options{
			MaxBodyBytes: cfg.MaxBodyBytes,
			PrintTimeout: cfg.PrintTimeout,
			Logger:       logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.ListenAddr, "backend", cfg.Backend, "print", cfg.PrintEnabled)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTP 服务异常退出: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
