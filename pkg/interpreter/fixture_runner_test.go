package interpreter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fixtureManifest is the manifest.json sitting next to a fixture script.
type fixtureManifest struct {
	Description string `json:"description"`
	Entry       string `json:"entry"`
	Stdin       string `json:"stdin"`
	Strict      bool   `json:"strictUnassigned"`
	Expect      struct {
		Status string   `json:"status"`
		Stdout []string `json:"stdout"`
		Errors []string `json:"errors"`
	} `json:"expect"`
}

func readFixtureManifest(t *testing.T, dir string) fixtureManifest {
	t.Helper()
	manifestPath := filepath.Join(dir, "manifest.json")
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fixtureManifest{}
		}
		t.Fatalf("read manifest %s: %v", manifestPath, err)
	}
	var manifest fixtureManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		t.Fatalf("parse manifest %s: %v", manifestPath, err)
	}
	return manifest
}

// runFixture executes the fixture script and compares output, diagnostics
// and status against the manifest. Stdout is compared line by line.
func runFixture(t *testing.T, dir string) {
	t.Helper()
	manifest := readFixtureManifest(t, dir)
	entry := manifest.Entry
	if entry == "" {
		entry = "source.lox"
	}
	source, err := os.ReadFile(filepath.Join(dir, entry))
	if err != nil {
		t.Fatalf("read fixture source: %v", err)
	}

	var out bytes.Buffer
	interp := New(Options{
		Stdout:           &out,
		Stdin:            strings.NewReader(manifest.Stdin),
		StrictUnassigned: manifest.Strict,
	})
	result := interp.Run(string(source))

	wantStatus := manifest.Expect.Status
	if wantStatus == "" {
		wantStatus = StatusOK.String()
	}
	if result.Status.String() != wantStatus {
		t.Fatalf("status %q, want %q\n%s", result.Status, wantStatus, result.Describe())
	}

	var gotErrors []string
	if described := result.Describe(); described != "" {
		gotErrors = strings.Split(described, "\n")
	}
	if !equalLines(gotErrors, manifest.Expect.Errors) {
		t.Fatalf("diagnostics mismatch\n got: %q\nwant: %q", gotErrors, manifest.Expect.Errors)
	}

	var gotStdout []string
	if out.Len() > 0 {
		gotStdout = strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	}
	if !equalLines(gotStdout, manifest.Expect.Stdout) {
		t.Fatalf("stdout mismatch\n got: %q\nwant: %q", gotStdout, manifest.Expect.Stdout)
	}
}

func equalLines(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
