package resume

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

var (
	//go:embed schema.json
	schemaJSON []byte
	//go:embed default.json
	defaultJSON []byte
)

var (
	// ErrInvalidJSON 表示输入不是合法的 JSON 文本。
	ErrInvalidJSON = errors.New("invalid JSON")
	// ErrNotObject 表示 JSON 根节点不是对象（数组、null 或标量）。
	ErrNotObject = errors.New("JSON root must be an object.")
)

// ValidationError 汇总结构校验失败的全部信息。
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "resume shape validation failed: " + strings.Join(e.Messages, "; ")
}

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
})

// Parse 解析并校验 JSON 文本。只检查结构形状（根为对象、列表分节为数组），
// 字段内容按宽松规则转换为文本，不做业务校验。
func Parse(data []byte) (*Resume, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}

	schema, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("加载 resume schema 失败: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(obj))
	if err != nil {
		return nil, fmt.Errorf("校验 resume 失败: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, &ValidationError{Messages: msgs}
	}

	var r Resume
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, &ValidationError{Messages: []string{err.Error()}}
	}
	r.raw = obj
	return &r, nil
}

// Default 返回内置的示例简历，作为初始状态与重置目标。
func Default() (*Resume, error) {
	r, err := Parse(defaultJSON)
	if err != nil {
		return nil, fmt.Errorf("内置 default.json 无效: %w", err)
	}
	return r, nil
}

// DefaultJSON 返回内置示例简历的原始 JSON 副本。
func DefaultJSON() []byte {
	out := make([]byte, len(defaultJSON))
	copy(out, defaultJSON)
	return out
}
