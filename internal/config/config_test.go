package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFileConfigDefaultsWhenMissing(t *testing.T) {
	workDir := t.TempDir()
	jobdeskDir := filepath.Join(workDir, JobdeskDir)
	if err := os.MkdirAll(jobdeskDir, 0o755); err != nil {
		t.Fatal(err)
	}
	c := &Config{WorkDir: workDir, JobdeskWorkDir: jobdeskDir, File: defaultFileConfig()}
	if err := c.loadFileConfig(); err != nil {
		t.Fatalf("loadFileConfig returned error: %v", err)
	}
	if c.File.Version != 1 {
		t.Fatalf("expected default version == 1, got %d", c.File.Version)
	}
	if c.APIBaseURL() != defaultAPIBaseURL {
		t.Fatalf("expected default base URL %q, got %q", defaultAPIBaseURL, c.APIBaseURL())
	}
}

func TestLoadFileConfigParsesYaml(t *testing.T) {
	workDir := t.TempDir()
	jobdeskDir := filepath.Join(workDir, JobdeskDir)
	if err := os.MkdirAll(jobdeskDir, 0o755); err != nil {
		t.Fatal(err)
	}
	configYAML := strings.TrimSpace(`
version: 1
api:
  base_url: https://jobs.example.com
  timeout_seconds: 30
`)
	if err := os.WriteFile(filepath.Join(jobdeskDir, "config.yaml"), []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	c := &Config{WorkDir: workDir, JobdeskWorkDir: jobdeskDir, File: defaultFileConfig()}
	if err := c.loadFileConfig(); err != nil {
		t.Fatalf("loadFileConfig returned error: %v", err)
	}
	if c.APIBaseURL() != "https://jobs.example.com" {
		t.Fatalf("wrong base URL: %s", c.APIBaseURL())
	}
	if c.File.API.TimeoutSeconds != 30 {
		t.Fatalf("wrong timeout: %d", c.File.API.TimeoutSeconds)
	}
}

func TestLoadFileConfigValidation(t *testing.T) {
	workDir := t.TempDir()
	jobdeskDir := filepath.Join(workDir, JobdeskDir)
	if err := os.MkdirAll(jobdeskDir, 0o755); err != nil {
		t.Fatal(err)
	}
	configYAML := strings.TrimSpace(`
version: 1
api:
  base_url: not-a-url
`)
	if err := os.WriteFile(filepath.Join(jobdeskDir, "config.yaml"), []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	c := &Config{WorkDir: workDir, JobdeskWorkDir: jobdeskDir, File: defaultFileConfig()}
	if err := c.loadFileConfig(); err == nil {
		t.Fatal("expected validation error for non-http base_url")
	}
}

func TestEnvOverrides(t *testing.T) {
	workDir := t.TempDir()
	t.Setenv("JOBDESK_API_URL", "http://10.0.0.5:9000")
	t.Setenv("JOBDESK_TIMEOUT_SECONDS", "45")
	if err := InitJobdeskDir(workDir); err != nil {
		t.Fatal(err)
	}
	c, err := NewConfig(workDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.APIBaseURL() != "http://10.0.0.5:9000" {
		t.Fatalf("env override not applied, got %s", c.APIBaseURL())
	}
	if c.File.API.TimeoutSeconds != 45 {
		t.Fatalf("timeout override not applied, got %d", c.File.API.TimeoutSeconds)
	}
}

func TestEnvOverrideRejectsBadTimeout(t *testing.T) {
	workDir := t.TempDir()
	t.Setenv("JOBDESK_TIMEOUT_SECONDS", "zero")
	if err := InitJobdeskDir(workDir); err != nil {
		t.Fatal(err)
	}
	if _, err := NewConfig(workDir); err == nil {
		t.Fatal("expected error for non-numeric JOBDESK_TIMEOUT_SECONDS")
	}
}

func TestInitJobdeskDirLayout(t *testing.T) {
	workDir := t.TempDir()
	if err := InitJobdeskDir(workDir); err != nil {
		t.Fatalf("InitJobdeskDir returned error: %v", err)
	}
	for _, dir := range []string{
		filepath.Join(workDir, JobdeskDir, "logs"),
		filepath.Join(workDir, JobdeskDir, "state"),
	} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s", dir)
		}
	}
	data, err := os.ReadFile(filepath.Join(workDir, JobdeskDir, "config.yaml"))
	if err != nil {
		t.Fatalf("expected default config file: %v", err)
	}
	if !strings.Contains(string(data), "base_url") {
		t.Fatalf("default config missing api section: %s", data)
	}

	// Second init must not clobber an edited config.
	if err := os.WriteFile(filepath.Join(workDir, JobdeskDir, "config.yaml"), []byte("version: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := InitJobdeskDir(workDir); err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(filepath.Join(workDir, JobdeskDir, "config.yaml"))
	if strings.Contains(string(data), "base_url") {
		t.Fatal("re-init overwrote existing config file")
	}
}
