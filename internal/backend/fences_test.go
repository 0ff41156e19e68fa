package backend

import "testing"

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text untouched",
			in:   "func f() {}\n",
			want: "func f() {}",
		},
		{
			name: "fence with language tag",
			in:   "```go\nfunc f() {}\n```\n",
			want: "func f() {}",
		},
		{
			name: "fence without tag",
			in:   "```\nx := 1\ny := 2\n```",
			want: "x := 1\ny := 2",
		},
		{
			name: "leading prose is not a fence",
			in:   "Here you go:\n```go\ncode\n```",
			want: "Here you go:\n```go\ncode\n```",
		},
		{
			name: "unterminated fence",
			in:   "```go\nfunc f() {}\n",
			want: "func f() {}",
		},
		{
			name: "empty fence",
			in:   "```go\n```",
			want: "",
		},
		{
			name: "bare fence marker",
			in:   "```",
			want: "",
		},
		{
			name: "inner fences preserved",
			in:   "```markdown\nuse ```go blocks\nlike this\n```\n",
			want: "use ```go blocks\nlike this",
		},
		{
			name: "whitespace only",
			in:   "   \n\t\n",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFences(tt.in); got != tt.want {
				t.Errorf("StripFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
