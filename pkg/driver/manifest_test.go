package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestFileName)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifestParsesTargetsInOrder(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
name: Demo Project
interpreter:
  strict_unassigned: true
  history_file: .lox_history
targets:
  tools: scripts/tools.lox
  remote:
    git: https://example.com/scripts.git
    tag: v1.0.0
    main: hello.lox
`)

	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if manifest.Name != "demo_project" {
		t.Fatalf("unexpected name %q", manifest.Name)
	}
	if !manifest.Interpreter.StrictUnassigned || manifest.Interpreter.HistoryFile != ".lox_history" {
		t.Fatalf("unexpected interpreter config %+v", manifest.Interpreter)
	}
	if got := strings.Join(manifest.TargetOrder, ","); got != "tools,remote" {
		t.Fatalf("unexpected target order %q", got)
	}

	tools := manifest.Targets["tools"]
	if tools == nil || tools.Main != "scripts/tools.lox" || tools.Remote() {
		t.Fatalf("unexpected tools target %+v", tools)
	}
	remote := manifest.Targets["remote"]
	if remote == nil || !remote.Remote() {
		t.Fatalf("expected remote target, got %+v", remote)
	}
	if remote.Source.URL != "https://example.com/scripts.git" || remote.Source.Tag != "v1.0.0" {
		t.Fatalf("unexpected git source %+v", remote.Source)
	}

	def, err := manifest.DefaultTarget()
	if err != nil {
		t.Fatalf("DefaultTarget: %v", err)
	}
	if def.Name != "tools" {
		t.Fatalf("expected first target as default, got %q", def.Name)
	}
}

func TestDefaultTargetPrefersMain(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
name: demo
targets:
  other: other.lox
  main: main.lox
`)
	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	def, err := manifest.DefaultTarget()
	if err != nil {
		t.Fatalf("DefaultTarget: %v", err)
	}
	if def.Main != "main.lox" {
		t.Fatalf("expected main target, got %+v", def)
	}
}

func TestFindTargetMatchesOriginalName(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
name: demo
targets:
  Hello-World: hello.lox
`)
	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	for _, name := range []string{"hello_world", "Hello-World", "hello-world"} {
		if _, ok := manifest.FindTarget(name); !ok {
			t.Fatalf("FindTarget(%q) failed", name)
		}
	}
	if _, ok := manifest.FindTarget("missing"); ok {
		t.Fatalf("unexpected match for missing target")
	}
}

func TestLoadManifestValidation(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
targets:
  a:
    git: https://example.com/a.git
    main: a.lox
  b:
    git: https://example.com/b.git
    tag: v1
    branch: main
    main: b.lox
  c:
    rev: abc123
    main: c.lox
  d:
    git: https://example.com/d.git
    rev: abc123
`)
	_, err := LoadManifest(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{
		"name must be provided",
		"targets.a: git sources require rev, tag, or branch",
		"targets.b: git sources accept only one of rev, tag, or branch",
		"targets.c: rev, tag and branch require a git source",
		`target "d" requires a main script`,
	}
	if len(verr.Issues) != len(want) {
		t.Fatalf("unexpected issues:\n%s", verr.Error())
	}
	for i, issue := range want {
		if verr.Issues[i] != issue {
			t.Fatalf("issue %d: got %q want %q", i, verr.Issues[i], issue)
		}
	}
}

func TestLoadManifestRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "name: demo\nversion: 1.0.0\n")
	if _, err := LoadManifest(path); err == nil || !strings.Contains(err.Error(), "version") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestLoadManifestEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "")
	if _, err := LoadManifest(path); err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("expected empty manifest error, got %v", err)
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeManifest(t, root, "name: demo\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	script := filepath.Join(nested, "main.lox")
	if err := os.WriteFile(script, []byte("println(1);"), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	for _, start := range []string{nested, script} {
		got, err := FindManifest(start)
		if err != nil {
			t.Fatalf("FindManifest(%s): %v", start, err)
		}
		if got != want {
			t.Fatalf("FindManifest(%s) = %s, want %s", start, got, want)
		}
	}
}

func TestFindManifestNotFound(t *testing.T) {
	if _, err := FindManifest(t.TempDir()); !errors.Is(err, ErrManifestNotFound) {
		t.Fatalf("expected ErrManifestNotFound, got %v", err)
	}
}
