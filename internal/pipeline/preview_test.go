package pipeline

import (
	"strings"
	"testing"
)

func TestRedactionPreviewTruncates(t *testing.T) {
	long := strings.Repeat("a", 150)
	preview := redactionPreview([]string{long, "short"}, 9)
	if len(preview) != 2 {
		t.Fatalf("got %d lines, want 2", len(preview))
	}
	if len([]rune(preview[0])) != previewLineWidth+3 || !strings.HasSuffix(preview[0], "...") {
		t.Fatalf("first line = %q", preview[0])
	}
	if preview[1] != "short" {
		t.Fatalf("second line = %q", preview[1])
	}
}

func TestRedactionPreviewCapsLineCount(t *testing.T) {
	lines := make([]string, 20)
	for i := range lines {
		lines[i] = "line"
	}
	if got := redactionPreview(lines, 9); len(got) != 9 {
		t.Fatalf("got %d lines, want 9", len(got))
	}
}

func TestContextPreviewStopsAtWordLimit(t *testing.T) {
	lines := []string{
		strings.Repeat("word ", 25),
		strings.Repeat("more ", 25),
	}
	got := contextPreview(lines)
	if words := strings.Fields(got); len(words) != contextPreviewWords {
		t.Fatalf("got %d words, want %d", len(words), contextPreviewWords)
	}
}

func TestContextPreviewShortStory(t *testing.T) {
	got := contextPreview([]string{"just", "a few words"})
	if got != "just a few words" {
		t.Fatalf("preview = %q", got)
	}
}
