package binding

import "testing"

func TestInterpolate(t *testing.T) {
	data := map[string]any{
		"basics": map[string]any{
			"full_name": "Jane Q. Public",
			"phone":     nil,
		},
		"keywords": []any{"Go", "Kafka", nil},
		"education": []any{
			map[string]any{"gpa": 3.8},
		},
	}
	cases := []struct {
		in   string
		want string
	}{
		{"${basics.full_name}", "Jane Q. Public"},
		{"Resume of ${ basics.full_name }", "Resume of Jane Q. Public"},
		{"${keywords}", "Go, Kafka"},
		{"GPA ${education[0].gpa}", "GPA 3.8"},
		{"${basics.phone}", ""},
		{"${basics.missing}", ""},
		{"${education[3].gpa}", ""},
		{"plain text", "plain text"},
	}
	for _, c := range cases {
		if got := Interpolate(c.in, data); got != c.want {
			t.Errorf("Interpolate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestInterpolateWithoutData(t *testing.T) {
	if got := Interpolate("x${basics.full_name}y", nil); got != "xy" {
		t.Fatalf("expected placeholders to vanish without data, got %q", got)
	}
}

func TestList(t *testing.T) {
	data := map[string]any{
		"keywords": []any{"Go, Rust", "PDF", 7.0, nil},
		"basics":   map[string]any{"full_name": "Jane"},
	}
	got, ok := List("${keywords}", data)
	if !ok {
		t.Fatalf("数组路径应返回逐项结果")
	}
	want := []string{"Go, Rust", "PDF", "7", ""}
	if len(got) != len(want) {
		t.Fatalf("List = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("List = %q, want %q", got, want)
		}
	}
	for _, text := range []string{"${basics.full_name}", "kw: ${keywords}", "${missing}", "plain"} {
		if _, ok := List(text, data); ok {
			t.Errorf("List(%q) 不应按数组处理", text)
		}
	}
}

func TestResolvePathRejectsMalformedIndexes(t *testing.T) {
	data := map[string]any{"a": []any{map[string]any{"b": "x"}}}
	cases := map[string]bool{
		"a[0].b":  true,
		"a[0]b":   false,
		"a[x].b":  false,
		"a[-1].b": false,
		"a[0":     false,
		"a.b":     false,
	}
	for path, want := range cases {
		if _, ok := resolvePath(data, path); ok != want {
			t.Errorf("resolvePath(%q) ok = %v, want %v", path, ok, want)
		}
	}
}
