package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Profile is configuration to start the main server.
// It is constructed once at startup and passed by reference into each
// component's constructor; business logic never reads the environment.
type Profile struct {
	// Server configuration
	Mode    string
	Addr    string
	Port    int
	Data    string
	Driver  string
	DSN     string
	Version string

	// Assistant configuration
	Region         string // deployment region label, reported in startup logs
	SenderEmail    string
	UseSMTP        bool   // send mail through the SMTP backend instead of the simulated sender
	UseRemoteAgent bool   // call the agent function service over HTTP instead of in-process
	AgentBaseURL   string // base URL of the agent function service

	// Dataset locations
	CompanyDataDir string
	FOMCDataPath   string
	FOMCReportPath string

	// SMTP configuration (used when UseSMTP is true)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	// LLM gateway configuration (OpenAI-compatible protocol)
	LLMProvider string // openai, deepseek, siliconflow, ollama
	LLMAPIKey   string
	LLMBaseURL  string
	LLMModel    string
	LLMTimeout  int // request timeout in seconds
}

// Provider default configurations for the LLM gateway.
// Used when FINSAGE_LLM_BASE_URL is not explicitly set.
var llmProviderDefaults = map[string]struct {
	BaseURL string
	Model   string
}{
	"openai": {
		BaseURL: "https://api.openai.com/v1",
		Model:   "gpt-4o-mini",
	},
	"deepseek": {
		BaseURL: "https://api.deepseek.com",
		Model:   "deepseek-chat",
	},
	"siliconflow": {
		BaseURL: "https://api.siliconflow.cn/v1",
		Model:   "Qwen/Qwen2.5-7B-Instruct",
	},
	"ollama": {
		BaseURL: "http://localhost:11434",
		Model:   "llama3.1",
	},
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsLLMEnabled returns true if an LLM API key is configured.
// Without a key the gateway serves deterministic simulated completions.
func (p *Profile) IsLLMEnabled() bool {
	return p.LLMAPIKey != ""
}

// getEnvOrDefault returns environment variable value or default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default value.
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvOrDefaultBool returns environment variable value as bool or default value.
func getEnvOrDefaultBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.EqualFold(value, "true") || value == "1"
	}
	return defaultValue
}

// FromEnv loads configuration from environment variables.
func (p *Profile) FromEnv() {
	p.Region = getEnvOrDefault("FINSAGE_REGION", "us-east-1")
	p.SenderEmail = getEnvOrDefault("FINSAGE_SENDER_EMAIL", "financial-assistant@example.com")
	p.UseSMTP = getEnvOrDefaultBool("FINSAGE_USE_SMTP", false)
	p.UseRemoteAgent = getEnvOrDefaultBool("FINSAGE_USE_REMOTE_AGENT", false)
	p.AgentBaseURL = getEnvOrDefault("FINSAGE_AGENT_BASE_URL", "http://localhost:8972/agent")

	p.CompanyDataDir = getEnvOrDefault("FINSAGE_COMPANY_DATA_DIR", "data")
	p.FOMCDataPath = getEnvOrDefault("FINSAGE_FOMC_DATA_PATH", "data/fomc_summaries.json")
	p.FOMCReportPath = getEnvOrDefault("FINSAGE_FOMC_REPORT_PATH", "data/sample_fomc_report.txt")

	p.SMTPHost = getEnvOrDefault("FINSAGE_SMTP_HOST", "")
	p.SMTPPort = getEnvOrDefaultInt("FINSAGE_SMTP_PORT", 587)
	p.SMTPUsername = getEnvOrDefault("FINSAGE_SMTP_USERNAME", "")
	p.SMTPPassword = getEnvOrDefault("FINSAGE_SMTP_PASSWORD", "")

	p.LLMProvider = getEnvOrDefault("FINSAGE_LLM_PROVIDER", "openai")
	p.LLMAPIKey = getEnvOrDefault("FINSAGE_LLM_API_KEY", "")
	p.LLMBaseURL = getEnvOrDefault("FINSAGE_LLM_BASE_URL", "")
	p.LLMModel = getEnvOrDefault("FINSAGE_LLM_MODEL", "")
	p.LLMTimeout = getEnvOrDefaultInt("FINSAGE_LLM_TIMEOUT_SECONDS", 120)

	// Apply provider defaults if not explicitly set.
	if _, ok := llmProviderDefaults[p.LLMProvider]; !ok {
		p.LLMProvider = "openai"
	}
	if defaults, ok := llmProviderDefaults[p.LLMProvider]; ok {
		if p.LLMBaseURL == "" {
			p.LLMBaseURL = defaults.BaseURL
		}
		if p.LLMModel == "" {
			p.LLMModel = defaults.Model
		}
	}
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		absDir, err := filepath.Abs(dataDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies.
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Data == "" {
		p.Data = "."
	}
	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		return err
	}
	p.Data = dataDir

	if p.Driver == "" {
		p.Driver = "sqlite"
	}
	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("finsage_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}

	if p.UseSMTP && p.SMTPHost == "" {
		return errors.New("FINSAGE_SMTP_HOST is required when FINSAGE_USE_SMTP is enabled")
	}

	return nil
}
