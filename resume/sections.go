package resume

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Section 标识输出中的一个分节，顺序由 Order 固定。
type Section int

const (
	SectionSummary Section = iota
	SectionSkills
	SectionWorkExperience
	SectionEducation
	SectionCertifications
	SectionProjects
	SectionAwards
	SectionPublications
	SectionLanguages
	SectionKeywords
)

// Order 是两个渲染后端共同遵循的分节顺序。
var Order = []Section{
	SectionSummary,
	SectionSkills,
	SectionWorkExperience,
	SectionEducation,
	SectionCertifications,
	SectionProjects,
	SectionAwards,
	SectionPublications,
	SectionLanguages,
	SectionKeywords,
}

const defaultSkillsTitle = "Core Skills"

var sectionTitles = map[Section]string{
	SectionSummary:        "Professional Summary",
	SectionSkills:         defaultSkillsTitle,
	SectionWorkExperience: "Work Experience",
	SectionEducation:      "Education",
	SectionCertifications: "Certifications",
	SectionProjects:       "Projects",
	SectionAwards:         "Awards",
	SectionPublications:   "Publications",
	SectionLanguages:      "Languages",
	SectionKeywords:       "Keywords",
}

var sectionKeys = map[Section]string{
	SectionSummary:        "summary",
	SectionSkills:         "skills",
	SectionWorkExperience: "work_experience",
	SectionEducation:      "education",
	SectionCertifications: "certifications",
	SectionProjects:       "projects",
	SectionAwards:         "awards",
	SectionPublications:   "publications",
	SectionLanguages:      "languages",
	SectionKeywords:       "keywords",
}

// String 返回分节的稳定键名，模板据此分派。
func (s Section) String() string {
	if k, ok := sectionKeys[s]; ok {
		return k
	}
	return "unknown"
}

// Title 返回分节标题；技能分节优先使用 skills.title 覆盖。
func (r *Resume) Title(s Section) string {
	if s == SectionSkills {
		return r.Skills.Label.Or(defaultSkillsTitle)
	}
	return sectionTitles[s]
}

// Present 报告分节是否有可渲染的数据；缺失、空序列与空值都会抑制整个分节。
func (r *Resume) Present(s Section) bool {
	switch s {
	case SectionSummary:
		return r.ProfessionalSummary.Present()
	case SectionSkills:
		return len(r.Skills.Qualifying()) > 0
	case SectionWorkExperience:
		return len(r.WorkExperience) > 0
	case SectionEducation:
		return len(r.Education) > 0
	case SectionCertifications:
		return len(r.Certifications) > 0
	case SectionProjects:
		return len(r.Projects) > 0
	case SectionAwards:
		return len(r.Awards) > 0
	case SectionPublications:
		return len(r.Publications) > 0
	case SectionLanguages:
		return len(r.Languages) > 0
	case SectionKeywords:
		return len(r.Keywords) > 0
	default:
		return false
	}
}

// Sections 按 Order 返回所有需要输出的分节。
func (r *Resume) Sections() []Section {
	out := make([]Section, 0, len(Order))
	for _, s := range Order {
		if r.Present(s) {
			out = append(out, s)
		}
	}
	return out
}

// Slug 返回导出文件名主体：姓名小写，连续空白（含 Unicode 空白）替换为 "-"；姓名缺失时为 "resume"。
func (r *Resume) Slug() string {
	fields := strings.Fields(r.Basics.FullName.Or(""))
	if len(fields) == 0 {
		return "resume"
	}
	return cases.Lower(language.Und).String(strings.Join(fields, "-"))
}

// FileName 返回带扩展名的导出文件名，ext 需包含前导点。
func (r *Resume) FileName(ext string) string {
	return r.Slug() + ext
}
