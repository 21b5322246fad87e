package resume

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Resume 是两个渲染后端共同消费的根数据，渲染期间视为只读快照。
type Resume struct {
	Basics              Basics          `json:"basics"`
	ProfessionalSummary Text            `json:"professional_summary"`
	Skills              Skills          `json:"skills"`
	WorkExperience      []Job           `json:"work_experience"`
	Education           []Education     `json:"education"`
	Certifications      []Certification `json:"certifications"`
	Projects            []Project       `json:"projects"`
	Awards              []Award         `json:"awards"`
	Publications        []Publication   `json:"publications"`
	Languages           []Language      `json:"languages"`
	Keywords            TextList        `json:"keywords"`

	raw map[string]any
}

// Data 返回解析时的原始 JSON 对象，供元信息插值使用；直接构造的 Resume 返回 nil。
func (r *Resume) Data() map[string]any {
	if r == nil {
		return nil
	}
	return r.raw
}

type Basics struct {
	FullName Text     `json:"full_name"`
	JobTitle Text     `json:"job_title"`
	Location Location `json:"location"`
	Contacts Contacts `json:"contacts"`
	Connect  Connect  `json:"connect"`
}

type Location struct {
	City    Text `json:"city"`
	State   Text `json:"state"`
	Country Text `json:"country"`
}

type Contacts struct {
	Email Text `json:"email"`
	Phone Text `json:"phone"`
}

type Connect struct {
	LinkedIn  Text `json:"linkedin"`
	GitHub    Text `json:"github"`
	Portfolio Text `json:"portfolio"`
}

// Skills 把原始 JSON 中保留的 "title" 键拆成 Label，其余键按文档顺序成为分组。
type Skills struct {
	Label  Text
	Groups []SkillGroup
}

// SkillGroup 是一组技能，Key 为原始 JSON 中的分组键。
type SkillGroup struct {
	Key    string   `json:"-"`
	Title  Text     `json:"title"`
	Values TextList `json:"values"`
}

// UnmarshalJSON 按键出现的顺序解码分组，非对象的分组值会被跳过。
func (s *Skills) UnmarshalJSON(b []byte) error {
	res := gjson.ParseBytes(b)
	if res.Type == gjson.Null {
		return nil
	}
	if !res.IsObject() {
		return fmt.Errorf("skills 必须是对象，实际为 %s", res.Type)
	}
	var out Skills
	var err error
	res.ForEach(func(key, value gjson.Result) bool {
		if key.String() == "title" {
			out.Label = textFrom(value)
			return true
		}
		if !value.IsObject() {
			return true
		}
		group := SkillGroup{Key: key.String()}
		if err = json.Unmarshal([]byte(value.Raw), &group); err != nil {
			err = fmt.Errorf("skills.%s: %w", key.String(), err)
			return false
		}
		out.Groups = append(out.Groups, group)
		return true
	})
	if err != nil {
		return err
	}
	*s = out
	return nil
}

// Qualifying 返回至少包含一个值的分组。
func (s Skills) Qualifying() []SkillGroup {
	var out []SkillGroup
	for _, g := range s.Groups {
		if len(g.Values) > 0 {
			out = append(out, g)
		}
	}
	return out
}

type Job struct {
	JobTitle         Text     `json:"job_title"`
	Company          Text     `json:"company"`
	Location         Text     `json:"location"`
	StartDate        Text     `json:"start_date"`
	EndDate          Text     `json:"end_date"`
	EmploymentType   Text     `json:"employment_type"`
	Responsibilities TextList `json:"responsibilities"`
	Technologies     TextList `json:"technologies"`
}

type Education struct {
	Degree       Text `json:"degree"`
	FieldOfStudy Text `json:"field_of_study"`
	Institution  Text `json:"institution"`
	StartDate    Text `json:"start_date"`
	EndDate      Text `json:"end_date"`
	GPA          Text `json:"gpa"`
}

type Certification struct {
	Name           Text `json:"name"`
	Issuer         Text `json:"issuer"`
	Level          Text `json:"level"`
	DateEarned     Text `json:"date_earned"`
	ExpirationDate Text `json:"expiration_date"`
	CredentialID   Text `json:"credential_id"`
}

type Project struct {
	Name         Text     `json:"name"`
	Role         Text     `json:"role"`
	Description  Text     `json:"description"`
	Technologies TextList `json:"technologies"`
	Link         Text     `json:"link"`
}

type Award struct {
	Title  Text `json:"title"`
	Issuer Text `json:"issuer"`
	Date   Text `json:"date"`
}

type Publication struct {
	Title     Text `json:"title"`
	Publisher Text `json:"publisher"`
	Date      Text `json:"date"`
	Link      Text `json:"link"`
}

type Language struct {
	Language    Text `json:"language"`
	Proficiency Text `json:"proficiency"`
}
