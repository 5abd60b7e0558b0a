package format

import "testing"

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		version int
		in      string
		want    string
	}{
		{MarkdownV1, "snake_case *bold* [link] `code`", "snake\\_case \\*bold\\* \\[link] \\`code\\`"},
		{MarkdownV2, "v1.2 (beta)!", "v1\\.2 \\(beta\\)\\!"},
		{MarkdownV2, "plain", "plain"},
	}
	for _, tt := range tests {
		got, err := EscapeMarkdown(tt.in, tt.version)
		if err != nil {
			t.Fatalf("EscapeMarkdown(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("EscapeMarkdown(%q, v%d) = %q, want %q", tt.in, tt.version, got, tt.want)
		}
	}

	if _, err := EscapeMarkdown("x", 3); err == nil {
		t.Fatal("expected error for unknown version")
	}
}
