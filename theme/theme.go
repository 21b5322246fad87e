package theme

import (
	_ "embed"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/vitae/layout"
)

//go:embed classic.theme
var classicSource string

// Theme 是解析并校验后的主题：页面规格、样式表与元信息模板。
type Theme struct {
	Name    string
	Version string
	Page    layout.PageSpec
	Styles  layout.Styles
	Meta    layout.MetaTemplate
}

var pagePresets = map[string][2]float64{
	"A4":     {layout.A4Width, layout.A4Height},
	"LETTER": {612, 792},
	"LEGAL":  {612, 1008},
}

var classic = sync.OnceValues(func() (*Theme, error) {
	return ParseString(classicSource)
})

// Default 返回内置的 Classic 主题。
func Default() (*Theme, error) {
	t, err := classic()
	if err != nil {
		return nil, fmt.Errorf("内置主题无效: %w", err)
	}
	return t.clone(), nil
}

// Parse 从 io.Reader 读取并解析主题。
func Parse(r io.Reader) (*Theme, error) {
	doc, err := ParseDocument("", r)
	if err != nil {
		return nil, fmt.Errorf("解析主题失败: %w", err)
	}
	return Compile(doc)
}

// ParseString 解析字符串形式的主题。
func ParseString(input string) (*Theme, error) {
	return Parse(strings.NewReader(input))
}

// Compile 将 AST 解析为主题，未声明的部分沿用默认值。
func Compile(doc *Document) (*Theme, error) {
	if doc == nil {
		return nil, fmt.Errorf("主题为空")
	}
	t := &Theme{
		Name:    doc.Name,
		Version: doc.Version,
		Page:    layout.DefaultPage(),
		Meta:    layout.DefaultMeta(),
	}
	overrides := layout.Styles{}
	defaults := layout.DefaultStyles()
	for _, section := range doc.Sections {
		switch {
		case section.Meta != nil:
			if err := applyMeta(&t.Meta, section.Meta.Block); err != nil {
				return nil, err
			}
		case section.Page != nil:
			page, err := resolvePage(section.Page)
			if err != nil {
				return nil, err
			}
			t.Page = page
		case section.Style != nil:
			name := section.Style.Name
			base, ok := overrides[name]
			if !ok {
				if base, ok = defaults[name]; !ok {
					return nil, posErrorf(section.Style.Pos, "未知样式 %q", name)
				}
			}
			st, err := applyStyle(base, section.Style.Block)
			if err != nil {
				return nil, err
			}
			overrides[name] = st
		}
	}
	styles, err := layout.Merge(overrides)
	if err != nil {
		return nil, err
	}
	t.Styles = styles
	return t, nil
}

// Options 返回使用该主题排版所需的 BuildOptions。
func (t *Theme) Options(ts layout.Typesetter) layout.BuildOptions {
	return layout.BuildOptions{
		Typesetter: ts,
		Page:       t.Page,
		Styles:     t.Styles,
		Meta:       t.Meta,
	}
}

func (t *Theme) clone() *Theme {
	out := *t
	out.Styles = make(layout.Styles, len(t.Styles))
	for k, v := range t.Styles {
		out.Styles[k] = v
	}
	return &out
}

func applyMeta(meta *layout.MetaTemplate, block *Block) error {
	if block == nil {
		return nil
	}
	for _, stmt := range block.Statements {
		if stmt.Value == nil || stmt.Value.String == nil {
			return posErrorf(stmt.Pos, "meta.%s 需要字符串值", stmt.Key)
		}
		val := string(*stmt.Value.String)
		switch strings.ToLower(stmt.Key) {
		case "title":
			meta.Title = val
		case "author":
			meta.Author = val
		case "subject":
			meta.Subject = val
		case "creator":
			meta.Creator = val
		case "keywords":
			meta.Keywords = val
		default:
			return posErrorf(stmt.Pos, "未知的 meta 字段 %q", stmt.Key)
		}
	}
	return nil
}

func applyStyle(st layout.TextStyle, block *Block) (layout.TextStyle, error) {
	if block == nil {
		return st, nil
	}
	for _, stmt := range block.Statements {
		switch strings.ToLower(stmt.Key) {
		case "size":
			v, err := lengthValue(stmt)
			if err != nil {
				return st, err
			}
			if v <= 0 {
				return st, posErrorf(stmt.Pos, "字号必须大于 0")
			}
			st.Size = v
		case "gap":
			v, err := lengthValue(stmt)
			if err != nil {
				return st, err
			}
			st.Gap = v
		case "bold":
			if stmt.Value == nil || stmt.Value.Bool == nil {
				return st, posErrorf(stmt.Pos, "bold 需要 true 或 false")
			}
			st.Bold = *stmt.Value.Bool == "true"
		default:
			return st, posErrorf(stmt.Pos, "未知的样式属性 %q", stmt.Key)
		}
	}
	return st, nil
}

func lengthValue(stmt *Assignment) (float64, error) {
	if stmt.Value == nil || stmt.Value.Number == nil {
		return 0, posErrorf(stmt.Pos, "%s 需要长度值", stmt.Key)
	}
	l, ok := layout.ParseRawLengthStr(*stmt.Value.Number)
	if !ok {
		return 0, posErrorf(stmt.Pos, "无法解析长度 %q", *stmt.Value.Number)
	}
	return l.ToPT(), nil
}

func resolvePage(spec *PageSection) (layout.PageSpec, error) {
	base, ok := pagePresets[strings.ToUpper(spec.Size)]
	if !ok {
		return layout.PageSpec{}, posErrorf(spec.Pos, "暂不支持的纸张尺寸：%s", spec.Size)
	}
	page := layout.DefaultPage()
	page.Width, page.Height = base[0], base[1]

	for _, p := range spec.Params {
		vals := make([]float64, 0, len(p.Values))
		for _, raw := range p.Values {
			l, ok := layout.ParseRawLengthStr(raw)
			if !ok {
				return page, posErrorf(p.Pos, "无法解析长度 %q", raw)
			}
			vals = append(vals, l.ToPT())
		}
		switch strings.ToLower(p.Key) {
		case "portrait":
		case "landscape":
			page.Width, page.Height = page.Height, page.Width
		case "margin":
			m, err := resolveMargin(p, vals)
			if err != nil {
				return page, err
			}
			page.Margin = m
		case "rule":
			if len(vals) != 1 {
				return page, posErrorf(p.Pos, "rule 需要一个长度值")
			}
			page.RuleWidth = vals[0]
		default:
			return page, posErrorf(p.Pos, "未知的页面参数 %q", p.Key)
		}
	}
	if page.ContentWidth() <= 0 || page.ContentBottom() <= page.Margin.Top {
		return page, posErrorf(spec.Pos, "边距过大，页面没有可用的内容区域")
	}
	return page, nil
}

// resolveMargin 按 CSS 的 1~4 值语义展开边距。
func resolveMargin(p *Param, vals []float64) (layout.Margin, error) {
	switch len(vals) {
	case 1:
		return layout.UniformMargin(vals[0]), nil
	case 2:
		return layout.Margin{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}, nil
	case 3:
		return layout.Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[1]}, nil
	case 4:
		return layout.Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}, nil
	default:
		return layout.Margin{}, posErrorf(p.Pos, "margin 需要 1 到 4 个长度值，实际 %d 个", len(vals))
	}
}

func posErrorf(pos lexer.Position, format string, args ...any) error {
	return fmt.Errorf("%d:%d: %s", pos.Line, pos.Column, fmt.Sprintf(format, args...))
}

// Describe 以主题语法回写页面设置，便于日志输出。
func (t *Theme) Describe() string {
	m := t.Page.Margin
	return "page " + strconv.FormatFloat(t.Page.Width, 'f', -1, 64) + "x" +
		strconv.FormatFloat(t.Page.Height, 'f', -1, 64) +
		" margin " + fmtPt(m.Top) + " " + fmtPt(m.Right) + " " + fmtPt(m.Bottom) + " " + fmtPt(m.Left) +
		" rule " + fmtPt(t.Page.RuleWidth)
}

func fmtPt(v float64) string {
	return layout.Length{Value: v, Unit: layout.UnitPT}.String()
}
