package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"phono/internal/testsupport"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	contentDir string
	outputDir  string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(base); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Errorf("restore wd: %v", err)
		}
	})

	contentDir := filepath.Join(base, "content")
	templatesDir := filepath.Join(base, "templates")
	staticDir := filepath.Join(base, "static")
	outputDir := filepath.Join(base, "public")
	for _, dir := range []string{contentDir, templatesDir, staticDir} {
		testsupport.MkdirAll(t, dir)
	}
	testsupport.Templates(t, templatesDir)

	configPath := filepath.Join(base, "phono.toml")
	content := fmt.Sprintf(`[site]
title = "CLI Test Site"
base_url = "https://example.com"

[paths]
content_dir = %q
templates_dir = %q
static_dir = %q
output_dir = %q
log_dir = %q

[media]
enabled = false
`, contentDir, templatesDir, staticDir, outputDir, filepath.Join(base, "logs"))
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{
		baseDir:    base,
		configPath: configPath,
		contentDir: contentDir,
		outputDir:  outputDir,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
