package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSubstituteEnvVars(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		input    string
		expected string
	}{
		{
			name:     "single",
			env:      map[string]string{"SP_VAR": "value"},
			input:    "path: ${SP_VAR}",
			expected: "path: value",
		},
		{
			name:     "multiple",
			env:      map[string]string{"SP_A": "a", "SP_B": "b"},
			input:    "first: ${SP_A}\nsecond: ${SP_B}",
			expected: "first: a\nsecond: b",
		},
		{
			name:     "unset stays unchanged",
			input:    "value: ${SP_NONEXISTENT}",
			expected: "value: ${SP_NONEXISTENT}",
		},
		{
			name:     "fallback when unset",
			input:    "dir: ${SP_NONEXISTENT:-models}",
			expected: "dir: models",
		},
		{
			name:     "env wins over fallback",
			env:      map[string]string{"SP_DIR": "/srv/models"},
			input:    "dir: ${SP_DIR:-models}",
			expected: "dir: /srv/models",
		},
		{
			name:     "empty fallback",
			input:    "dir: \"${SP_NONEXISTENT:-}\"",
			expected: "dir: \"\"",
		},
		{
			name:     "no vars",
			input:    "value: plain_text",
			expected: "value: plain_text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			result := substituteEnvVars([]byte(tt.input))
			if string(result) != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("SP_PORT", "9999")
	t.Setenv("SP_HISTORY", "/tmp/history.csv")

	content := `
server:
  port: ${SP_PORT}

history:
  path: "${SP_HISTORY}"

artifacts:
  dir: "${SP_ARTIFACTS:-trained}"
`
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("expected port 9999, got %d", cfg.Server.Port)
	}
	if cfg.History.Path != "/tmp/history.csv" {
		t.Errorf("expected history path from env, got %s", cfg.History.Path)
	}
	if cfg.Artifacts.Dir != "trained" {
		t.Errorf("expected fallback dir, got %s", cfg.Artifacts.Dir)
	}
}
