package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/fatih/color"
)

type requestKey string

const requestIDKey requestKey = "requestID"

var (
	timeColor    = color.New(color.FgMagenta)
	requestColor = color.New(color.FgBlue, color.Bold)
	messageColor = color.New(color.FgWhite, color.Bold)
	keyColor     = color.New(color.FgYellow)
)

var levelColors = map[slog.Level]*color.Color{
	slog.LevelDebug: color.New(color.FgCyan),
	slog.LevelInfo:  color.New(color.FgGreen),
	slog.LevelWarn:  color.New(color.FgYellow),
	slog.LevelError: color.New(color.FgRed),
}

// ColoredHandler 以单行彩色文本输出日志：时间 级别 [request_id] 消息 key=value。
// 终端不支持颜色或设置了 NO_COLOR 时由 fatih/color 自动关闭着色。
type ColoredHandler struct {
	level slog.Leveler
	out   io.Writer
	mu    *sync.Mutex
	attrs []slog.Attr
	group string
}

// NewColoredHandler 创建写入 w 的 handler。
func NewColoredHandler(w io.Writer, level slog.Leveler) *ColoredHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &ColoredHandler{level: level, out: w, mu: &sync.Mutex{}}
}

func (h *ColoredHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *ColoredHandler) Handle(ctx context.Context, r slog.Record) error {
	var line strings.Builder
	line.WriteString(timeColor.Sprint(r.Time.Format("15:04:05.000")))
	line.WriteByte(' ')

	lc, ok := levelColors[r.Level]
	if !ok {
		lc = color.New(color.FgWhite)
	}
	line.WriteString(lc.Sprintf("%-6s", strings.ToUpper(r.Level.String())))
	line.WriteByte(' ')

	requestID := RequestID(ctx)
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "request_id" && requestID == "" {
			requestID = a.Value.String()
		}
		return true
	})
	if requestID != "" {
		line.WriteString(requestColor.Sprintf("[%s]", requestID))
		line.WriteByte(' ')
	}
	line.WriteString(messageColor.Sprint(r.Message))

	write := func(a slog.Attr) {
		if a.Key == "request_id" || a.Equal(slog.Attr{}) {
			return
		}
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		val := a.Value.Resolve().String()
		if a.Value.Kind() == slog.KindString {
			val = fmt.Sprintf("%q", val)
		}
		line.WriteByte(' ')
		line.WriteString(keyColor.Sprint(key))
		line.WriteByte('=')
		line.WriteString(val)
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		write(a)
		return true
	})
	line.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, line.String())
	return err
}

func (h *ColoredHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := *h
	out.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &out
}

func (h *ColoredHandler) WithGroup(name string) slog.Handler {
	out := *h
	if out.group != "" {
		name = out.group + "." + name
	}
	out.group = name
	return &out
}

// ParseLevel 解析 debug/info/warn/error，无法识别时返回 info。
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Setup 安装默认 logger 并返回它。
func Setup(level string, w io.Writer) *slog.Logger {
	logger := slog.New(NewColoredHandler(w, ParseLevel(level)))
	slog.SetDefault(logger)
	return logger
}

// WithRequestID 把请求 ID 放入 context，日志会自动带上它。
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID 返回 context 中的请求 ID。
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if reqID, ok := ctx.Value(requestIDKey).(string); ok {
		return reqID
	}
	return ""
}
