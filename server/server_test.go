package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ByLCY/vitae/export"
	fpdfrenderer "github.com/ByLCY/vitae/renderer/fpdf"
)

type stubPrinter struct {
	err error
}

func (p *stubPrinter) PrintPDF(_ context.Context, html string) ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	return []byte("%PDF-stub " + html[:15]), nil
}

func newTestServer(printer export.Printer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	exp := &export.Exporter{
		Renderer: fpdfrenderer.NewRenderer(),
		Printer:  printer,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	return New(exp, Options{
		MaxBodyBytes: 4096,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) APIError {
	t.Helper()
	var apiErr APIError
	if err := json.Unmarshal(rec.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("错误响应不是 JSON: %v (%s)", err, rec.Body.String())
	}
	return apiErr
}

const janeDoc = `{"basics":{"full_name":"Jane Q. Public"},"professional_summary":"Builds things."}`

func TestHealthz(t *testing.T) {
	rec := do(t, newTestServer(nil), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("状态码 %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("响应体 %s", rec.Body.String())
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatalf("缺少 %s 响应头", requestIDHeader)
	}
}

func TestRequestIDIsPropagated(t *testing.T) {
	h := newTestServer(nil)
	req := httptest.NewRequest(http.MethodPost, "/api/render/pdf", strings.NewReader("[1]"))
	req.Header.Set(requestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get(requestIDHeader); got != "req-123" {
		t.Fatalf("请求 ID 未透传: %q", got)
	}
	if apiErr := decodeError(t, rec); apiErr.RequestID != "req-123" {
		t.Fatalf("错误体中的请求 ID 为 %q", apiErr.RequestID)
	}
}

func TestDefaultResume(t *testing.T) {
	rec := do(t, newTestServer(nil), http.MethodGet, "/api/resume/default", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("状态码 %d", rec.Code)
	}
	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("默认简历不是 JSON 对象: %v", err)
	}
	if _, ok := doc["basics"]; !ok {
		t.Fatalf("默认简历缺少 basics")
	}
}

func TestValidate(t *testing.T) {
	h := newTestServer(nil)

	rec := do(t, h, http.MethodPost, "/api/resume/validate", janeDoc)
	if rec.Code != http.StatusOK {
		t.Fatalf("状态码 %d: %s", rec.Code, rec.Body.String())
	}
	var got struct {
		Valid    bool     `json:"valid"`
		FileName string   `json:"fileName"`
		Sections []string `json:"sections"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if !got.Valid || got.FileName != "jane-q.-public.pdf" {
		t.Fatalf("校验结果 %+v", got)
	}
	if len(got.Sections) != 1 || got.Sections[0] != "summary" {
		t.Fatalf("分节列表 %v", got.Sections)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	h := newTestServer(nil)
	cases := []struct {
		name string
		body string
		code int
	}{
		{"invalid json", `{ nope`, http.StatusBadRequest},
		{"array root", `[1, 2]`, http.StatusBadRequest},
		{"null root", `null`, http.StatusBadRequest},
		{"bad shape", `{"work_experience": "not a list"}`, http.StatusUnprocessableEntity},
		{"too large", `{"professional_summary":"` + strings.Repeat("x", 5000) + `"}`, http.StatusRequestEntityTooLarge},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/render/pdf", c.body)
			if rec.Code != c.code {
				t.Fatalf("状态码 %d，期望 %d: %s", rec.Code, c.code, rec.Body.String())
			}
			apiErr := decodeError(t, rec)
			if apiErr.Code != c.code || apiErr.Detail == "" {
				t.Fatalf("错误体 %+v", apiErr)
			}
		})
	}
}

func TestNotObjectMessage(t *testing.T) {
	rec := do(t, newTestServer(nil), http.MethodPost, "/api/resume/validate", `"text"`)
	if apiErr := decodeError(t, rec); apiErr.Detail != "JSON root must be an object." {
		t.Fatalf("错误详情 %q", apiErr.Detail)
	}
}

func TestRenderPDF(t *testing.T) {
	rec := do(t, newTestServer(nil), http.MethodPost, "/api/render/pdf", janeDoc)
	if rec.Code != http.StatusOK {
		t.Fatalf("状态码 %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("Content-Type %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="jane-q.-public.pdf"` {
		t.Fatalf("Content-Disposition %q", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Fatalf("响应体不是 PDF")
	}
}

func TestRenderPDFEmptyBodyUsesDefault(t *testing.T) {
	rec := do(t, newTestServer(nil), http.MethodPost, "/api/render/pdf", "  ")
	if rec.Code != http.StatusOK {
		t.Fatalf("状态码 %d: %s", rec.Code, rec.Body.String())
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="alex-morgan.pdf"` {
		t.Fatalf("Content-Disposition %q", cd)
	}
}

func TestRenderHTML(t *testing.T) {
	h := newTestServer(nil)

	rec := do(t, h, http.MethodPost, "/api/render/html", janeDoc)
	if rec.Code != http.StatusOK {
		t.Fatalf("状态码 %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Fatalf("Content-Type %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `inline; filename="jane-q.-public.html"` {
		t.Fatalf("Content-Disposition %q", cd)
	}
	if !strings.Contains(rec.Body.String(), "<title>Jane Q. Public</title>") {
		t.Fatalf("HTML 缺少标题: %s", rec.Body.String())
	}

	rec = do(t, h, http.MethodPost, "/api/render/html?download=1", janeDoc)
	if cd := rec.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment;") {
		t.Fatalf("download=1 时应为附件: %q", cd)
	}
}

func TestRenderPrint(t *testing.T) {
	rec := do(t, newTestServer(nil), http.MethodPost, "/api/render/print", janeDoc)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("未配置打印器时状态码 %d", rec.Code)
	}

	rec = do(t, newTestServer(&stubPrinter{}), http.MethodPost, "/api/render/print", janeDoc)
	if rec.Code != http.StatusOK {
		t.Fatalf("状态码 %d: %s", rec.Code, rec.Body.String())
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-stub <!doctype html>")) {
		t.Fatalf("响应体 %q", rec.Body.String())
	}

	rec = do(t, newTestServer(&stubPrinter{err: errors.New("browser crashed")}), http.MethodPost, "/api/render/print", janeDoc)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("打印失败时状态码 %d", rec.Code)
	}
}

func TestNoRoute(t *testing.T) {
	rec := do(t, newTestServer(nil), http.MethodGet, "/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("状态码 %d", rec.Code)
	}
}

func TestContentDisposition(t *testing.T) {
	if got := contentDisposition("attachment", "a.pdf"); got != `attachment; filename="a.pdf"` {
		t.Fatalf("got %q", got)
	}
	if got := contentDisposition("attachment", `ja"ne.pdf`); strings.Contains(got, `ja"ne`) {
		t.Fatalf("引号未转义: %q", got)
	}
	if got := contentDisposition("attachment", "简历.pdf"); !strings.Contains(got, "filename*=utf-8''") {
		t.Fatalf("非 ASCII 文件名应使用 RFC 2231: %q", got)
	}
}
