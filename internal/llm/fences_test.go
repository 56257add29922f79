package llm

import "testing"

func TestStripFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"no fences", `[{"q":1}]`, `[{"q":1}]`},
		{"json fence", "```json\n[{\"q\":1}]\n```", `[{"q":1}]`},
		{"bare fence", "```\n[{\"q\":1}]\n```", `[{"q":1}]`},
		{"surrounding whitespace", "  ```json\n{\"a\":2}\n```  ", `{"a":2}`},
		{"fence without newline", "```{\"a\":3}```", `{"a":3}`},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripFences(tc.in); got != tc.want {
				t.Errorf("StripFences(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
