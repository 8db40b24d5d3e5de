package markdown

import (
	"strings"
	"testing"
)

func TestToHTMLRendersBasicMarkdown(t *testing.T) {
	out := ToHTML("Hello **World**")
	if !strings.Contains(out, "<strong>World</strong>") {
		t.Fatalf("expected bold rendering, got %q", out)
	}
}

func TestToHTMLSanitizesScript(t *testing.T) {
	out := ToHTML("hi\n\n<script>alert(1)</script>")
	if strings.Contains(out, "<script>") {
		t.Fatalf("expected script tag stripped, got %q", out)
	}
}

func TestToHTMLEmptyInput(t *testing.T) {
	if out := ToHTML(""); out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}

func TestExtractSummaryStripsCodeFencesAndMarkup(t *testing.T) {
	md := "# 标题\n\n```go\nfmt.Println(\"hidden\")\n```\n\n正文 **加粗** 内容"
	got := ExtractSummary(md, 120)
	if strings.Contains(got, "hidden") {
		t.Fatalf("code fence content should be removed, got %q", got)
	}
	if strings.Contains(got, "#") || strings.Contains(got, "*") {
		t.Fatalf("markdown punctuation should be removed, got %q", got)
	}
	if !strings.Contains(got, "正文") {
		t.Fatalf("expected body text preserved, got %q", got)
	}
}

func TestExtractSummaryTruncates(t *testing.T) {
	md := strings.Repeat("字", 300)
	got := ExtractSummary(md, 120)
	if len([]rune(got)) != 120 {
		t.Fatalf("expected 120 runes, got %d", len([]rune(got)))
	}
}

func TestExtractSummaryBlankInput(t *testing.T) {
	if got := ExtractSummary("   \n\t", 120); got != "" {
		t.Fatalf("expected empty summary, got %q", got)
	}
	if got := ExtractSummary("text", 0); got != "" {
		t.Fatalf("expected empty summary for non-positive length, got %q", got)
	}
}
