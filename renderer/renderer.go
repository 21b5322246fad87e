package renderer

import "github.com/ByLCY/vitae/layout"

// Renderer 将布局结果输出为最终文件，例如 PDF。
// Render 返回生成的二进制数据以及可能的错误；失败时不应返回部分结果。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}

// Backend 同时负责测量与绘制，布局阶段必须使用与渲染相同的字体度量。
type Backend interface {
	Renderer
	layout.Typesetter
}
