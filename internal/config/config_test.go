package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/lingua/internal/llm"
)

// isolate clears every variable Load or key discovery reads, so the host
// environment cannot leak into a test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{
		"LINGUA_CONFIG", "LINGUA_DB", "LINGUA_LLM_PROVIDER",
		"LINGUA_GEMINI_API_KEY", "LINGUA_OPENAI_API_KEY",
		"LINGUA_ANTHROPIC_API_KEY", "LINGUA_OPENROUTER_API_KEY",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"LINGUA_QUESTION_COUNT", "LINGUA_LOG_LEVEL",
	} {
		// Setenv registers the restore; cleanenv treats a set-but-empty
		// variable as a value, so it must be unset.
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
llm:
  provider: "anthropic"
  anthropic:
    api_key: "sk-ant-test"
    model: "claude-sonnet"
  retry:
    max_attempts: 2
    initial_wait: "500ms"
  timeout: "30s"

content:
  question_count: 8
  vocabulary_count: 12
  temperature: 0.4

store:
  path: "/tmp/lingua-test.db"

log:
  level: "debug"
  file: "off"
`

func TestLoad_ValidYAML(t *testing.T) {
	isolate(t)
	path := writeYAML(t, t.TempDir(), validYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.LLM.Provider != llm.ProviderAnthropic {
		t.Errorf("llm.provider = %q, want anthropic", cfg.LLM.Provider)
	}
	if cfg.LLM.Anthropic.APIKey != "sk-ant-test" {
		t.Errorf("llm.anthropic.api_key = %q", cfg.LLM.Anthropic.APIKey)
	}
	if cfg.LLM.Anthropic.Model != "claude-sonnet" {
		t.Errorf("llm.anthropic.model = %q", cfg.LLM.Anthropic.Model)
	}
	if cfg.LLM.Retry.MaxAttempts != 2 {
		t.Errorf("llm.retry.max_attempts = %d, want 2", cfg.LLM.Retry.MaxAttempts)
	}
	if cfg.LLM.Retry.InitialWait != 500*time.Millisecond {
		t.Errorf("llm.retry.initial_wait = %v, want 500ms", cfg.LLM.Retry.InitialWait)
	}
	if cfg.LLM.Timeout != 30*time.Second {
		t.Errorf("llm.timeout = %v, want 30s", cfg.LLM.Timeout)
	}

	if cfg.Content.QuestionCount != 8 {
		t.Errorf("content.question_count = %d, want 8", cfg.Content.QuestionCount)
	}
	if cfg.Content.VocabularyCount != 12 {
		t.Errorf("content.vocabulary_count = %d, want 12", cfg.Content.VocabularyCount)
	}
	if cfg.Content.Temperature != 0.4 {
		t.Errorf("content.temperature = %v, want 0.4", cfg.Content.Temperature)
	}
	if cfg.Content.MaxTokens != 8192 {
		t.Errorf("content.max_tokens = %d, want default 8192", cfg.Content.MaxTokens)
	}

	if cfg.Store.Path != "/tmp/lingua-test.db" {
		t.Errorf("store.path = %q", cfg.Store.Path)
	}
	if cfg.Log.Level != "debug" || cfg.Log.File != "off" {
		t.Errorf("log = %+v", cfg.Log)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.LLM.Provider != llm.ProviderGemini {
		t.Errorf("llm.provider = %q, want gemini", cfg.LLM.Provider)
	}
	if cfg.LLM.Gemini.Model != "gemini-flash" {
		t.Errorf("llm.gemini.model = %q", cfg.LLM.Gemini.Model)
	}
	if cfg.LLM.Retry.MaxAttempts != 3 {
		t.Errorf("llm.retry.max_attempts = %d, want 3", cfg.LLM.Retry.MaxAttempts)
	}
	if cfg.LLM.Timeout != 90*time.Second {
		t.Errorf("llm.timeout = %v, want 90s", cfg.LLM.Timeout)
	}
	if cfg.Content.QuestionCount != 5 || cfg.Content.VocabularyCount != 20 {
		t.Errorf("content counts = %d/%d, want 5/20", cfg.Content.QuestionCount, cfg.Content.VocabularyCount)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log.level = %q, want info", cfg.Log.Level)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	isolate(t)
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("LINGUA_QUESTION_COUNT", "3")
	t.Setenv("LINGUA_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Content.QuestionCount != 3 {
		t.Errorf("content.question_count = %d, want 3 (env override)", cfg.Content.QuestionCount)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want warn (env override)", cfg.Log.Level)
	}
}

func TestLoad_ConfigEnvPath(t *testing.T) {
	isolate(t)
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("LINGUA_CONFIG", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LLM.Provider != llm.ProviderAnthropic {
		t.Errorf("expected LINGUA_CONFIG file to be read, provider = %q", cfg.LLM.Provider)
	}
}

func TestLoad_DefaultFileLocation(t *testing.T) {
	isolate(t)
	dir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "lingua")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeYAML(t, dir, validYAML)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Content.QuestionCount != 8 {
		t.Errorf("expected default-location file to be read, question_count = %d", cfg.Content.QuestionCount)
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit file")
	}
	if !strings.Contains(err.Error(), "nope.yaml") {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestLoad_DiscoversVendorKey(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-discovered")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LLM.Provider != llm.ProviderOpenAI || cfg.LLM.OpenAI.APIKey != "sk-discovered" {
		t.Errorf("expected discovered openai key, got provider %q", cfg.LLM.Provider)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidate_MissingKey(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load should not require a key: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected Validate to require a provider key")
	}
}

func TestLoad_InvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero questions", "content:\n  question_count: -1\n"},
		{"temperature out of range", "content:\n  temperature: 2\n"},
		{"retry attempts", "llm:\n  retry:\n    max_attempts: -2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			path := writeYAML(t, t.TempDir(), tt.yaml)
			if _, err := Load(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestStoreConfig_DBPath(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "nested", "lingua.db")

	got, err := StoreConfig{Path: want}.DBPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("DBPath = %q, want %q", got, want)
	}
	if _, err := os.Stat(filepath.Dir(want)); err != nil {
		t.Errorf("expected parent directory to be created: %v", err)
	}
}
