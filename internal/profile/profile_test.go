package profile

import (
	"os"
	"testing"
)

func TestProfileDefaults(t *testing.T) {
	clearEnvVars()

	profile := &Profile{}
	profile.FromEnv()

	tests := []struct {
		name     string
		expected string
		actual   string
	}{
		{"Region default", "us-east-1", profile.Region},
		{"SenderEmail default", "financial-assistant@example.com", profile.SenderEmail},
		{"UseSMTP should be false by default", "false", boolToString(profile.UseSMTP)},
		{"UseRemoteAgent should be false by default", "false", boolToString(profile.UseRemoteAgent)},
		{"AgentBaseURL default", "http://localhost:8972/agent", profile.AgentBaseURL},
		{"FOMCDataPath default", "data/fomc_summaries.json", profile.FOMCDataPath},
		{"FOMCReportPath default", "data/sample_fomc_report.txt", profile.FOMCReportPath},
		{"LLMProvider default", "openai", profile.LLMProvider},
		{"LLMBaseURL default", "https://api.openai.com/v1", profile.LLMBaseURL},
		{"LLMModel default", "gpt-4o-mini", profile.LLMModel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.actual != tt.expected {
				t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, tt.actual)
			}
		})
	}
}

func TestProfileFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		envVar   string
		envValue string
		field    func(*Profile) string
		expected string
	}{
		{
			name:     "sender email override",
			envVar:   "FINSAGE_SENDER_EMAIL",
			envValue: "advisor@finsage.dev",
			field:    func(p *Profile) string { return p.SenderEmail },
			expected: "advisor@finsage.dev",
		},
		{
			name:     "agent base URL override",
			envVar:   "FINSAGE_AGENT_BASE_URL",
			envValue: "http://agent.internal:9000",
			field:    func(p *Profile) string { return p.AgentBaseURL },
			expected: "http://agent.internal:9000",
		},
		{
			name:     "use SMTP toggle",
			envVar:   "FINSAGE_USE_SMTP",
			envValue: "true",
			field:    func(p *Profile) string { return boolToString(p.UseSMTP) },
			expected: "true",
		},
		{
			name:     "use remote agent toggle",
			envVar:   "FINSAGE_USE_REMOTE_AGENT",
			envValue: "true",
			field:    func(p *Profile) string { return boolToString(p.UseRemoteAgent) },
			expected: "true",
		},
		{
			name:     "unknown LLM provider falls back to openai",
			envVar:   "FINSAGE_LLM_PROVIDER",
			envValue: "bedrock",
			field:    func(p *Profile) string { return p.LLMProvider },
			expected: "openai",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars()
			os.Setenv(tt.envVar, tt.envValue)
			defer os.Unsetenv(tt.envVar)

			profile := &Profile{}
			profile.FromEnv()

			actual := tt.field(profile)
			if actual != tt.expected {
				t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, actual)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("unknown mode falls back to demo", func(t *testing.T) {
		p := &Profile{Mode: "staging", Data: t.TempDir(), Driver: "sqlite"}
		if err := p.Validate(); err != nil {
			t.Fatalf("Validate() returned error: %v", err)
		}
		if p.Mode != "demo" {
			t.Errorf("expected mode demo, got %q", p.Mode)
		}
	})

	t.Run("sqlite DSN defaulted under data dir", func(t *testing.T) {
		dir := t.TempDir()
		p := &Profile{Mode: "dev", Data: dir, Driver: "sqlite"}
		if err := p.Validate(); err != nil {
			t.Fatalf("Validate() returned error: %v", err)
		}
		if p.DSN == "" {
			t.Error("expected DSN to be defaulted, got empty string")
		}
	})

	t.Run("SMTP enabled without host fails", func(t *testing.T) {
		p := &Profile{Mode: "dev", Data: t.TempDir(), UseSMTP: true}
		if err := p.Validate(); err == nil {
			t.Error("expected error when UseSMTP is set without SMTP host")
		}
	})
}

func TestIsLLMEnabled(t *testing.T) {
	p := &Profile{}
	if p.IsLLMEnabled() {
		t.Error("expected LLM disabled without an API key")
	}
	p.LLMAPIKey = "sk-test"
	if !p.IsLLMEnabled() {
		t.Error("expected LLM enabled with an API key")
	}
}

// clearEnvVars clears all finsage environment variables used by FromEnv.
func clearEnvVars() {
	keys := []string{
		"FINSAGE_REGION",
		"FINSAGE_SENDER_EMAIL",
		"FINSAGE_USE_SMTP",
		"FINSAGE_USE_REMOTE_AGENT",
		"FINSAGE_AGENT_BASE_URL",
		"FINSAGE_COMPANY_DATA_DIR",
		"FINSAGE_FOMC_DATA_PATH",
		"FINSAGE_FOMC_REPORT_PATH",
		"FINSAGE_SMTP_HOST",
		"FINSAGE_SMTP_PORT",
		"FINSAGE_SMTP_USERNAME",
		"FINSAGE_SMTP_PASSWORD",
		"FINSAGE_LLM_PROVIDER",
		"FINSAGE_LLM_API_KEY",
		"FINSAGE_LLM_BASE_URL",
		"FINSAGE_LLM_MODEL",
		"FINSAGE_LLM_TIMEOUT_SECONDS",
	}

	for _, key := range keys {
		os.Unsetenv(key)
	}
}

func boolToString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
