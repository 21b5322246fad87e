package layout

import (
	"fmt"
	"sort"
)

// TextStyle 描述一个文本块的字号（pt）、字重与块后间距（pt）。
type TextStyle struct {
	Size float64 `json:"size"`
	Bold bool    `json:"bold,omitempty"`
	Gap  float64 `json:"gap"`
}

func (s TextStyle) font() Font { return Font{Bold: s.Bold, Size: s.Size} }

// 样式名称，主题文件中的 style 语句使用同样的名字。
const (
	StyleBody        = "body"
	StyleName        = "name"
	StyleHeadline    = "headline"
	StyleContact     = "contact"
	StyleLinks       = "links"
	StyleSection     = "section"
	StyleSummary     = "summary"
	StyleSkill       = "skill"
	StyleEntryTitle  = "entry-title"
	StyleEntryDetail = "entry-detail"
	StyleWorkTech    = "work-tech"
	StyleEduDates    = "edu-dates"
	StyleProjectLink = "project-link"
	StyleBullet      = "bullet"
	StyleKeywords    = "keywords"
)

// Styles 是样式名到样式的映射。
type Styles map[string]TextStyle

// DefaultStyles 返回默认样式表。
func DefaultStyles() Styles {
	return Styles{
		StyleBody:        {Size: 10, Gap: 14},
		StyleName:        {Size: 20, Bold: true, Gap: 8},
		StyleHeadline:    {Size: 11, Gap: 6},
		StyleContact:     {Size: 10, Gap: 6},
		StyleLinks:       {Size: 10, Gap: 14},
		StyleSection:     {Size: 12, Bold: true, Gap: 8},
		StyleSummary:     {Size: 10, Gap: 10},
		StyleSkill:       {Size: 10, Gap: 8},
		StyleEntryTitle:  {Size: 11, Bold: true, Gap: 6},
		StyleEntryDetail: {Size: 10, Gap: 6},
		StyleWorkTech:    {Size: 10, Gap: 10},
		StyleEduDates:    {Size: 10, Gap: 8},
		StyleProjectLink: {Size: 10, Gap: 8},
		StyleBullet:      {Size: 10, Gap: 8},
		StyleKeywords:    {Size: 10, Gap: 8},
	}
}

// Names 返回按字母排序的样式名。
func (s Styles) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup 返回指定样式；缺失时回退到 body。
func (s Styles) Lookup(name string) TextStyle {
	if st, ok := s[name]; ok {
		return st
	}
	if st, ok := s[StyleBody]; ok {
		return st
	}
	return DefaultStyles()[StyleBody]
}

// Merge 返回在默认样式表之上应用 overrides 的新样式表，未知样式名视为错误。
func Merge(overrides Styles) (Styles, error) {
	out := DefaultStyles()
	for name, st := range overrides {
		if _, ok := out[name]; !ok {
			return nil, fmt.Errorf("未知样式 %q", name)
		}
		if st.Size <= 0 {
			return nil, fmt.Errorf("样式 %q 的字号必须大于 0", name)
		}
		out[name] = st
	}
	return out, nil
}
