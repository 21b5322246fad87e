package layout

// BuildOptions 配置布局阶段所需的依赖，例如排版后端、页面规格与样式表。
type BuildOptions struct {
	Typesetter Typesetter
	Page       PageSpec
	Styles     Styles
	Meta       MetaTemplate
}

// Typesetter 负责根据字体与宽度约束将文本拆成可绘制的行。
type Typesetter interface {
	SplitLines(text string, width float64, font Font) ([]string, error)
}

// PageSpec 描述页面尺寸（pt）、边距与分节线宽。
type PageSpec struct {
	Width     float64
	Height    float64
	Margin    Margin
	RuleWidth float64
}

// A4 页面尺寸（pt）。
const (
	A4Width  = 595.28
	A4Height = 841.89
)

// DefaultPage 返回 A4、四边 44pt 边距的页面规格。
func DefaultPage() PageSpec {
	return PageSpec{
		Width:     A4Width,
		Height:    A4Height,
		Margin:    UniformMargin(44),
		RuleWidth: 0.6,
	}
}

// UniformMargin 返回四边相同的边距。
func UniformMargin(v float64) Margin {
	return Margin{Top: v, Right: v, Bottom: v, Left: v}
}

// ContentWidth 返回可排版的内容宽度。
func (p PageSpec) ContentWidth() float64 {
	return p.Width - p.Margin.Left - p.Margin.Right
}

// ContentBottom 返回内容区域底部的纵坐标。
func (p PageSpec) ContentBottom() float64 {
	return p.Height - p.Margin.Bottom
}

// MetaTemplate 保存 PDF 元信息模板，支持 ${path} 插值。
type MetaTemplate struct {
	Title    string
	Author   string
	Subject  string
	Creator  string
	Keywords string
}
