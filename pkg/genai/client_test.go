package genai

import "testing"

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"无围栏", `{"a":1}`, `{"a":1}`},
		{"json 围栏", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"无语言标记围栏", "```\n[1,2]\n```", "[1,2]"},
		{"前后空白", "  ```json\n{}\n```  ", "{}"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripCodeFence(tc.in); got != tc.want {
				t.Errorf("StripCodeFence(%q) = %q, 期望 %q", tc.in, got, tc.want)
			}
		})
	}
}
