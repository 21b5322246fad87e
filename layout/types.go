package layout

// 该文件定义布局结果，供布局计算、渲染与调试 JSON 共用。
// 所有坐标与尺寸均以 pt 为单位，原点在页面左上角。

// Result 保存布局后的页面与文档元信息。
type Result struct {
	Pages    []Page       `json:"pages"`
	Meta     DocumentMeta `json:"meta"`
	FileName string       `json:"fileName"`
}

// Page 记录页面尺寸、边距与最终可以直接渲染的元素。
type Page struct {
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Margin Margin    `json:"margin"`
	Texts  []TextBox `json:"texts"`
	Rules  []Rule    `json:"rules,omitempty"`
}

// Margin 以 pt 为单位。
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// TextBox 表示一个已经排好坐标的文本块。Y 为首行顶部，
// 第 i 行顶部位于 Y + i*LineHeight，Height = len(Lines)*LineHeight。
type TextBox struct {
	Lines      []string `json:"lines"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Width      float64  `json:"width"`
	LineHeight float64  `json:"lineHeight"`
	Height     float64  `json:"height"`
	Font       Font     `json:"font"`
}

// Bottom 返回文本块的底边纵坐标。
func (tb TextBox) Bottom() float64 { return tb.Y + tb.Height }

// Rule 表示一条水平分隔线。
type Rule struct {
	X1    float64 `json:"x1"`
	X2    float64 `json:"x2"`
	Y     float64 `json:"y"`
	Width float64 `json:"width"` // 线宽（pt）
}

// Font 描述文本使用的字重与字号（pt）。字体族由渲染后端决定。
type Font struct {
	Bold bool    `json:"bold,omitempty"`
	Size float64 `json:"size"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
