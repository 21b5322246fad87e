package htmldoc

import (
	_ "embed"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"

	"github.com/ByLCY/vitae/resume"
)

//go:embed resume.html.tmpl
var pageSource string

var page = template.Must(template.New("resume").Funcs(template.FuncMap{
	"join": resume.JoinText,
}).Parse(pageSource))

// ContentType 是 Render 输出的 MIME 类型。
const ContentType = "text/html; charset=utf-8"

// Options 控制 HTML 输出。
type Options struct {
	// Minify 压缩 HTML 与内联 CSS。
	Minify bool
	// AlwaysShowSkills 在没有任何技能分组时仍输出技能分节标题，与 PDF 的行为不同。
	AlwaysShowSkills bool
}

type sectionView struct {
	Key   string
	Title string
}

type pageView struct {
	Title    string
	Resume   *resume.Resume
	Sections []sectionView
}

var minifier = sync.OnceValue(func() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.Add("text/html", &html.Minifier{KeepDocumentTags: true, KeepEndTags: true})
	return m
})

// Render 生成自包含的 HTML 文档。所有简历字段都经过上下文相关的转义，
// 只有模板自身的标记会原样输出。
func Render(r *resume.Resume, opts Options) (string, error) {
	if r == nil {
		return "", fmt.Errorf("简历为空")
	}
	view := pageView{
		Title:  r.Basics.FullName.Or("Resume"),
		Resume: r,
	}
	for _, s := range resume.Order {
		if r.Present(s) || (s == resume.SectionSkills && opts.AlwaysShowSkills) {
			view.Sections = append(view.Sections, sectionView{Key: s.String(), Title: r.Title(s)})
		}
	}

	var sb strings.Builder
	if err := page.Execute(&sb, view); err != nil {
		return "", fmt.Errorf("渲染 HTML 失败: %w", err)
	}
	if !opts.Minify {
		return sb.String(), nil
	}
	out, err := minifier().String("text/html", sb.String())
	if err != nil {
		return "", fmt.Errorf("压缩 HTML 失败: %w", err)
	}
	return out, nil
}
