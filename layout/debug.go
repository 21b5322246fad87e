package layout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// debugSnapshot 在布局结果外附加每页的占用统计，便于排查分页问题。
type debugSnapshot struct {
	*Result
	Summary []pageSummary `json:"summary"`
}

type pageSummary struct {
	Page   int     `json:"page"`
	Texts  int     `json:"texts"`
	Lines  int     `json:"lines"`
	Rules  int     `json:"rules"`
	Bottom float64 `json:"bottom"` // 最后一个文本块的底边（pt）
}

func summarize(res *Result) []pageSummary {
	out := make([]pageSummary, len(res.Pages))
	for i, p := range res.Pages {
		s := pageSummary{Page: i + 1, Texts: len(p.Texts), Rules: len(p.Rules)}
		for _, tb := range p.Texts {
			s.Lines += len(tb.Lines)
			if b := tb.Bottom(); b > s.Bottom {
				s.Bottom = b
			}
		}
		out[i] = s
	}
	return out
}

// EncodeDebugJSON 把布局结果连同分页统计写入 w。
func EncodeDebugJSON(w io.Writer, res *Result) error {
	if res == nil {
		return fmt.Errorf("布局结果为空")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(debugSnapshot{Result: res, Summary: summarize(res)})
}

// WriteDebugJSON 将布局结果输出为 JSON 文件。
func WriteDebugJSON(res *Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeDebugJSON(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
