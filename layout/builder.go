package layout

import (
	"fmt"
	"strings"

	"github.com/ByLCY/vitae/binding"
	"github.com/ByLCY/vitae/resume"
)

// DefaultMeta 返回未配置主题时使用的元信息模板。
func DefaultMeta() MetaTemplate {
	return MetaTemplate{
		Title:    "${basics.full_name}",
		Author:   "${basics.full_name}",
		Subject:  "Resume",
		Creator:  "vitae",
		Keywords: "${keywords}",
	}
}

// Build 按固定顺序把简历排成若干页：页眉块、然后依次输出每个非空分节。
func Build(r *resume.Resume, opts BuildOptions) (*Result, error) {
	if r == nil {
		return nil, fmt.Errorf("简历为空")
	}
	if opts.Typesetter == nil {
		return nil, fmt.Errorf("layout: 缺少排版后端 Typesetter")
	}
	page := opts.Page
	if page.Width <= 0 || page.Height <= 0 {
		page = DefaultPage()
	}
	if page.ContentWidth() <= 0 || page.ContentBottom() <= page.Margin.Top {
		return nil, fmt.Errorf("layout: 边距过大，页面没有可用的内容区域")
	}
	styles := opts.Styles
	if len(styles) == 0 {
		styles = DefaultStyles()
	}

	c := newComposer(page, styles, opts.Typesetter)
	writeHeader(c, r.Basics)
	for _, s := range r.Sections() {
		c.addSection(r.Title(s))
		writeSection(c, r, s)
	}
	if c.err != nil {
		return nil, c.err
	}

	meta := opts.Meta
	if meta == (MetaTemplate{}) {
		meta = DefaultMeta()
	}
	return &Result{
		Pages:    c.collector.pages(),
		Meta:     collectMeta(meta, r.Data()),
		FileName: r.FileName(".pdf"),
	}, nil
}

// 直接取字段的文本块按真值输出：false、0 等假值与空串一样跳过。

// 页眉没有分节标题与分隔线。
func writeHeader(c *composer, b resume.Basics) {
	c.addStyled(b.FullName.Or(""), StyleName)
	c.addStyled(b.Headline(), StyleHeadline)
	c.addStyled(b.ContactLine(), StyleContact)
	c.addStyled(b.LinksLine(), StyleLinks)
}

func writeSection(c *composer, r *resume.Resume, s resume.Section) {
	switch s {
	case resume.SectionSummary:
		c.addStyled(r.ProfessionalSummary.Or(""), StyleSummary)
	case resume.SectionSkills:
		for _, g := range r.Skills.Qualifying() {
			c.addStyled(g.Line(), StyleSkill)
		}
	case resume.SectionWorkExperience:
		for _, job := range r.WorkExperience {
			c.addStyled(job.Heading(), StyleEntryTitle)
			c.addStyled(job.Meta(), StyleEntryDetail)
			for _, duty := range job.Responsibilities {
				c.addBullet(duty.Or(""))
			}
			c.addStyled(job.TechLine(), StyleWorkTech)
		}
	case resume.SectionEducation:
		for _, edu := range r.Education {
			c.addStyled(edu.Heading(), StyleEntryTitle)
			c.addStyled(edu.Institution.Or(""), StyleEntryDetail)
			c.addStyled(edu.Dates(), StyleEduDates)
		}
	case resume.SectionCertifications:
		for _, cert := range r.Certifications {
			c.addBullet(cert.Line())
		}
	case resume.SectionProjects:
		for _, p := range r.Projects {
			c.addStyled(p.Name.Or(""), StyleEntryTitle)
			c.addStyled(p.RoleLine(), StyleEntryDetail)
			c.addStyled(p.Description.Or(""), StyleEntryDetail)
			c.addStyled(p.TechLine(), StyleEntryDetail)
			c.addStyled(p.LinkLine(), StyleProjectLink)
		}
	case resume.SectionAwards:
		for _, a := range r.Awards {
			c.addBullet(a.Line())
		}
	case resume.SectionPublications:
		for _, p := range r.Publications {
			c.addBullet(p.Line())
		}
	case resume.SectionLanguages:
		for _, l := range r.Languages {
			c.addBullet(l.Line())
		}
	case resume.SectionKeywords:
		c.addStyled(r.KeywordLine(), StyleKeywords)
	}
}

func collectMeta(tmpl MetaTemplate, data any) DocumentMeta {
	meta := DocumentMeta{
		Title:   binding.Interpolate(tmpl.Title, data),
		Author:  binding.Interpolate(tmpl.Author, data),
		Subject: binding.Interpolate(tmpl.Subject, data),
		Creator: binding.Interpolate(tmpl.Creator, data),
	}
	if strings.TrimSpace(meta.Title) == "" {
		meta.Title = "Resume"
	}
	// 模板恰好是一个数组路径时逐项取值，关键词本身可以含逗号
	keywords, ok := binding.List(tmpl.Keywords, data)
	if !ok {
		keywords = strings.Split(binding.Interpolate(tmpl.Keywords, data), ",")
	}
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			meta.Keywords = append(meta.Keywords, kw)
		}
	}
	return meta
}
