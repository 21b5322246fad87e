package server

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ByLCY/vitae/export"
	"github.com/ByLCY/vitae/resume"
)

// Options 控制 HTTP 层的行为。
type Options struct {
	MaxBodyBytes int64         // <= 0 时使用 DefaultMaxBodyBytes
	PrintTimeout time.Duration // <= 0 时不额外限制打印耗时
	Logger       *slog.Logger
}

const DefaultMaxBodyBytes = 1 << 20

// Server 把 Exporter 暴露为 HTTP 接口。
type Server struct {
	exp  *export.Exporter
	opts Options
	log  *slog.Logger
}

// New 构建 gin 引擎并注册全部路由。
func New(exp *export.Exporter, opts Options) *gin.Engine {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{exp: exp, opts: opts, log: logger}

	engine := gin.New()
	engine.Use(RequestID(), Logging(logger), Recovery(logger))
	engine.NoRoute(func(c *gin.Context) {
		respondError(c, NewAPIError(http.StatusNotFound, "Not Found", c.Request.URL.Path))
	})

	engine.GET("/healthz", func(c *gin.Context) {
		respondJSON(c, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	api.GET("/resume/default", s.handleDefault)
	api.POST("/resume/validate", s.handleValidate)
	api.POST("/render/pdf", s.handleRenderPDF)
	api.POST("/render/html", s.handleRenderHTML)
	api.POST("/render/print", s.handleRenderPrint)
	return engine
}

func (s *Server) handleDefault(c *gin.Context) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", resume.DefaultJSON())
}

func (s *Server) handleValidate(c *gin.Context) {
	doc, ok := s.bindResume(c)
	if !ok {
		return
	}
	sections := make([]string, 0, len(doc.Sections()))
	for _, sec := range doc.Sections() {
		sections = append(sections, sec.String())
	}
	respondJSON(c, gin.H{
		"valid":    true,
		"fileName": doc.FileName(".pdf"),
		"sections": sections,
	})
}

func (s *Server) handleRenderPDF(c *gin.Context) {
	doc, ok := s.bindResume(c)
	if !ok {
		return
	}
	art, err := s.exp.PDF(doc)
	if err != nil {
		s.fail(c, err)
		return
	}
	sendArtifact(c, art, true)
}

func (s *Server) handleRenderHTML(c *gin.Context) {
	doc, ok := s.bindResume(c)
	if !ok {
		return
	}
	art, err := s.exp.HTML(doc)
	if err != nil {
		s.fail(c, err)
		return
	}
	sendArtifact(c, art, c.Query("download") == "1")
}

func (s *Server) handleRenderPrint(c *gin.Context) {
	doc, ok := s.bindResume(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if s.opts.PrintTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.PrintTimeout)
		defer cancel()
	}
	art, err := s.exp.PrintPDF(ctx, doc)
	if err != nil {
		s.fail(c, err)
		return
	}
	sendArtifact(c, art, true)
}

// bindResume 读取请求体并解析简历；空请求体使用内置示例简历。
func (s *Server) bindResume(c *gin.Context) (*resume.Resume, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, s.opts.MaxBodyBytes))
	if err != nil {
		s.fail(c, err)
		return nil, false
	}
	var doc *resume.Resume
	if len(bytes.TrimSpace(body)) == 0 {
		doc, err = resume.Default()
	} else {
		doc, err = resume.Parse(body)
	}
	if err != nil {
		s.fail(c, err)
		return nil, false
	}
	return doc, true
}

func (s *Server) fail(c *gin.Context, err error) {
	apiErr := toAPIError(err)
	if apiErr.Code >= http.StatusInternalServerError {
		s.log.ErrorContext(c.Request.Context(), "request failed", "error", err)
	}
	respondError(c, apiErr)
}

func sendArtifact(c *gin.Context, art export.Artifact, download bool) {
	kind := "inline"
	if download {
		kind = "attachment"
	}
	c.Header("Content-Disposition", contentDisposition(kind, art.Name))
	c.Data(http.StatusOK, art.ContentType, art.Body)
}

// contentDisposition 对普通 ASCII 文件名直接加引号，其余交给 mime 按 RFC 2231 编码。
func contentDisposition(kind, name string) string {
	plain := true
	for _, r := range name {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			plain = false
			break
		}
	}
	if plain {
		return fmt.Sprintf(`%s; filename="%s"`, kind, name)
	}
	if v := mime.FormatMediaType(kind, map[string]string{"filename": name}); v != "" {
		return v
	}
	return kind + `; filename="` + strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			return '_'
		}
		return r
	}, name) + `"`
}
