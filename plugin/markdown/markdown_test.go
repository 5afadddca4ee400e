package markdown

import (
	"strings"
	"testing"
)

func TestRenderBasicMarkdown(t *testing.T) {
	svc := NewService()

	html, err := svc.Render("**Portfolio Created**")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "<strong>Portfolio Created</strong>") {
		t.Errorf("html = %q", html)
	}
}

func TestRenderGFMTable(t *testing.T) {
	svc := NewService()

	html, err := svc.Render("| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "<table>") {
		t.Errorf("GFM tables not rendered: %q", html)
	}
}

func TestRenderHardWraps(t *testing.T) {
	svc := NewService(WithHardWraps())

	html, err := svc.Render("line one\nline two")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "<br") {
		t.Errorf("hard wraps not applied: %q", html)
	}
}
