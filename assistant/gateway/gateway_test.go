package gateway

import (
	"context"
	"strings"
	"testing"
)

func TestNewWithoutKeyIsSimulated(t *testing.T) {
	if !New(nil).IsSimulated() {
		t.Error("nil config must yield simulated gateway")
	}
	if !New(&Config{Provider: "openai"}).IsSimulated() {
		t.Error("keyless config must yield simulated gateway")
	}
	if New(&Config{APIKey: "sk-test", Model: "gpt-4o-mini"}).IsSimulated() {
		t.Error("configured gateway must not report simulated")
	}
}

func TestSimulatedCompletions(t *testing.T) {
	g := New(nil)

	tests := []struct {
		prompt string
		want   string
	}{
		{"help me build a portfolio", "create an investment portfolio"},
		{"show me financial data", "financial insights and data analysis"},
		{"any insights for me?", "financial insights and data analysis"},
		{"what did the fomc decide", "latest FOMC report"},
		{"federal reserve news", "latest FOMC report"},
		{"hello", "I'm your financial assistant"},
	}

	for _, tt := range tests {
		got, err := g.Invoke(context.Background(), tt.prompt)
		if err != nil {
			t.Fatalf("Invoke(%q): %v", tt.prompt, err)
		}
		if !strings.Contains(got, tt.want) {
			t.Errorf("Invoke(%q) = %q, want substring %q", tt.prompt, got, tt.want)
		}
	}
}
