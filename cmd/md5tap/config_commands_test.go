package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitWritesSample(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(env.baseDir, "fresh", "config.toml")

	stdout, _, err := runCLI(t, nil, nil, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, stdout, target)

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	requireContains(t, string(data), "[observer]")
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(env.baseDir, "config.toml")
	if err := os.WriteFile(target, []byte("# existing\n"), 0o644); err != nil {
		t.Fatalf("write existing: %v", err)
	}

	_, _, err := runCLI(t, nil, nil, "config", "init", "--path", target)
	if err == nil {
		t.Fatal("expected refusal without --overwrite")
	}
	requireContains(t, err.Error(), "already exists")

	if _, _, err := runCLI(t, nil, nil, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if strings.Contains(string(data), "# existing") {
		t.Fatal("overwrite left the old contents in place")
	}
}

func TestConfigValidateWithFile(t *testing.T) {
	env := setupCLITestEnv(t)

	// validate always resolves the default locations, so put the config
	// where Load("") will find it.
	defaultPath := filepath.Join(os.Getenv("HOME"), ".config", "md5tap", "config.toml")
	if defaultPath != env.configPath {
		t.Fatalf("test env config %q is not at the default location %q", env.configPath, defaultPath)
	}

	stdout, _, err := runCLI(t, nil, nil, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, stdout, "is valid")
	requireContains(t, stdout, "Algorithm: md5")
}

func TestConfigValidateDefaults(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.Remove(env.configPath); err != nil {
		t.Fatalf("remove config: %v", err)
	}

	stdout, _, err := runCLI(t, nil, nil, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, stdout, "defaults are in effect")
}

func TestConfigShow(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := runCLI(t, env, nil, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, stdout, "[observer]")
	requireContains(t, stdout, "algorithm = 'md5'")
	requireContains(t, stdout, "chunk_size = 4096")
}

func TestConfigPath(t *testing.T) {
	setupCLITestEnv(t)

	stdout, _, err := runCLI(t, nil, nil, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	requireContains(t, stdout, filepath.Join(".config", "md5tap", "config.toml"))
}
