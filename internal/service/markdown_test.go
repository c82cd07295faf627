package service

import (
	"strings"
	"testing"
)

func TestRenderContentMarkdown(t *testing.T) {
	html, err := RenderContent("# Season Opener\n\nWe won **3-0**.")
	if err != nil {
		t.Fatalf("failed to render content: %v", err)
	}
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "<strong>3-0</strong>") {
		t.Fatalf("unexpected rendered html %q", html)
	}
}

func TestRenderContentSanitizesScripts(t *testing.T) {
	html, err := RenderContent("hello <script>alert(1)</script> world")
	if err != nil {
		t.Fatalf("failed to render content: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("expected script tags stripped, got %q", html)
	}
}
