package resume

import "strings"

// 本文件定义 PDF 与 HTML 共用的字段组合规则，保证两种输出的文字完全一致。
// 缺失字段按空串参与组合，分隔符原样保留。

const separator = " | "

// String 将非空的 city/state/country 以 ", " 连接。
func (l Location) String() string {
	return joinPresent(", ", l.City, l.State, l.Country)
}

// Headline 返回 "职位 | 地点"，地点为空时只有职位。
func (b Basics) Headline() string {
	out := b.JobTitle.Or("")
	if loc := b.Location.String(); loc != "" {
		out += separator + loc
	}
	return out
}

// ContactLine 返回 "邮箱 | 电话"，电话为空时省略分隔符。
func (b Basics) ContactLine() string {
	out := b.Contacts.Email.Or("")
	if b.Contacts.Phone.Present() {
		out += separator + b.Contacts.Phone.String()
	}
	return out
}

// LinksLine 以 " | " 连接非空的 linkedin/github/portfolio。
func (b Basics) LinksLine() string {
	return joinPresent(separator, b.Connect.LinkedIn, b.Connect.GitHub, b.Connect.Portfolio)
}

func (g SkillGroup) Line() string {
	return g.Title.String() + ": " + JoinText(g.Values)
}

func (j Job) Heading() string {
	return j.JobTitle.String() + " - " + j.Company.String()
}

func (j Job) Meta() string {
	return j.Location.String() + separator + j.StartDate.String() + " to " + j.EndDate.String() + separator + j.EmploymentType.String()
}

// TechLine 在没有技术栈时返回空串。
func (j Job) TechLine() string {
	return techLine(j.Technologies)
}

func (e Education) Heading() string {
	return e.Degree.String() + " in " + e.FieldOfStudy.String()
}

func (e Education) Dates() string {
	out := e.StartDate.String() + " to " + e.EndDate.String()
	if e.GPA.Present() {
		out += separator + "GPA: " + e.GPA.String()
	}
	return out
}

// Detail 是证书名称之后的部分，HTML 中名称单独加粗。
func (c Certification) Detail() string {
	var sb strings.Builder
	sb.WriteString(" - ")
	sb.WriteString(c.Issuer.String())
	sb.WriteString(" (")
	sb.WriteString(c.Level.Or("N/A"))
	sb.WriteString(")")
	sb.WriteString(separator + "Earned: ")
	sb.WriteString(c.DateEarned.String())
	if c.ExpirationDate.Present() {
		sb.WriteString(separator + "Expires: ")
		sb.WriteString(c.ExpirationDate.String())
	}
	if c.CredentialID.Present() {
		sb.WriteString(separator + "ID: ")
		sb.WriteString(c.CredentialID.String())
	}
	return sb.String()
}

func (c Certification) Line() string { return c.Name.String() + c.Detail() }

func (p Project) RoleLine() string { return "Role: " + p.Role.String() }

func (p Project) TechLine() string { return techLine(p.Technologies) }

// LinkLine 在没有链接时返回空串。
func (p Project) LinkLine() string {
	if !p.Link.Present() {
		return ""
	}
	return "Link: " + p.Link.String()
}

func (a Award) Detail() string {
	return " - " + a.Issuer.String() + " (" + a.Date.String() + ")"
}

func (a Award) Line() string { return a.Title.String() + a.Detail() }

func (p Publication) Detail() string {
	out := " - " + p.Publisher.String() + " (" + p.Date.String() + ")"
	if p.Link.Present() {
		out += separator + p.Link.String()
	}
	return out
}

func (p Publication) Line() string { return p.Title.String() + p.Detail() }

func (l Language) Line() string {
	return l.Language.String() + " - " + l.Proficiency.String()
}

// KeywordLine 返回逗号连接的关键词。
func (r *Resume) KeywordLine() string { return JoinText(r.Keywords) }

func techLine(list TextList) string {
	if len(list) == 0 {
		return ""
	}
	return "Technologies: " + JoinText(list)
}

func joinPresent(sep string, values ...Text) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v.Present() {
			parts = append(parts, v.String())
		}
	}
	return strings.Join(parts, sep)
}
