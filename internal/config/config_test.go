package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() is invalid: %v", err)
	}
}

func TestLoadOverridesOnlyDefinedKeys(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[parse]
max_depth = 64
keep_comments = true

[query]
skip_whitespace_text = true

[fetch]
timeout = "5s"
user_agent = "ewb-test/1.0"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	want.Parse.MaxDepth = 64
	want.Parse.KeepComments = true
	want.Query.SkipWhitespaceText = true
	want.Fetch.Timeout = Duration{5 * time.Second}
	want.Fetch.UserAgent = "ewb-test/1.0"
	want.Path = path
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[parse]\nmax_dept = 3\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "parse.max_dept") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadValidationNamesFileAndKey(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[parse]\nmax_depth = 0\n")
	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), path) || !strings.Contains(err.Error(), "[parse].max_depth") {
		t.Errorf("error must name file and key: %v", err)
	}
}

func TestLoadBadDuration(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[fetch]\ntimeout = \"soon\"\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for bad duration")
	}
}

func TestFindWalksUpward(t *testing.T) {
	root := t.TempDir()
	want := writeConfig(t, root, "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatal(err)
	}
	got, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find: ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Errorf("Find = %q, want %q", got, want)
	}
}

func TestResolvePrefersExplicit(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[parse]\nmax_depth = 10\n")
	other := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(other, []byte("[parse]\nmax_depth = 20\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Resolve(other, root)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Parse.MaxDepth != 20 {
		t.Errorf("explicit config ignored: max_depth=%d", cfg.Parse.MaxDepth)
	}

	cfg, err = Resolve("", root)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Parse.MaxDepth != 10 {
		t.Errorf("found config ignored: max_depth=%d", cfg.Parse.MaxDepth)
	}
}
