package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFileName is the project file looked up by FindManifest.
const ManifestFileName = "lox.yml"

// ErrManifestNotFound is returned by FindManifest when no lox.yml exists in
// the start directory or any of its parents.
var ErrManifestNotFound = errors.New("lox.yml not found")

// Manifest represents the parsed contents of lox.yml.
type Manifest struct {
	Path        string
	Name        string
	Interpreter InterpreterConfig
	Targets     map[string]*TargetSpec
	TargetOrder []string

	targetEntries []manifestTargetEntry
}

// InterpreterConfig holds per-project interpreter settings.
type InterpreterConfig struct {
	StrictUnassigned bool
	HistoryFile      string
}

// TargetSpec describes a runnable script from the manifest.
type TargetSpec struct {
	Name         string
	OriginalName string
	Main         string
	Source       *GitSource
}

// GitSource pins a target to a script living in a git repository. Exactly
// one of Rev, Tag or Branch selects the revision.
type GitSource struct {
	URL    string
	Rev    string
	Tag    string
	Branch string
}

// Remote reports whether the target must be fetched before it can run.
func (t *TargetSpec) Remote() bool {
	return t != nil && t.Source != nil && t.Source.URL != ""
}

type manifestTargetEntry struct {
	sanitized string
	spec      *TargetSpec
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses lox.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// FindManifest walks from start towards the filesystem root and returns the
// path of the first lox.yml it sees.
func FindManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve %s: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, ManifestFileName)
		info, err := os.Stat(candidate)
		switch {
		case err == nil && !info.IsDir():
			return candidate, nil
		case err != nil && !errors.Is(err, os.ErrNotExist):
			return "", fmt.Errorf("manifest: stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrManifestNotFound
		}
		dir = parent
	}
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}

	targetNames := make(map[string]string, len(m.targetEntries))
	for _, entry := range m.targetEntries {
		target := entry.spec
		if target == nil {
			continue
		}
		if other, exists := targetNames[entry.sanitized]; exists {
			errs.Issues = append(errs.Issues, fmt.Sprintf("targets %q and %q collide after sanitization", other, target.OriginalName))
		} else {
			targetNames[entry.sanitized] = target.OriginalName
		}
		if target.Main == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q requires a main script", target.OriginalName))
		}
		if target.Source == nil {
			continue
		}
		for _, issue := range target.Source.validate() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("targets.%s: %s", target.OriginalName, issue))
		}
		if target.Source.URL != "" && filepath.IsAbs(filepath.FromSlash(target.Main)) {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q: main must be relative to the repository root", target.OriginalName))
		}
	}

	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

func (g *GitSource) validate() []string {
	var errs []string
	selectors := 0
	for _, value := range []string{g.Rev, g.Tag, g.Branch} {
		if value != "" {
			selectors++
		}
	}
	if g.URL == "" {
		if selectors > 0 {
			errs = append(errs, "rev, tag and branch require a git source")
		}
		return errs
	}
	switch selectors {
	case 0:
		errs = append(errs, "git sources require rev, tag, or branch")
	case 1:
	default:
		errs = append(errs, "git sources accept only one of rev, tag, or branch")
	}
	return errs
}

// DefaultTarget returns the target named "main" if present, otherwise the
// first target in manifest order.
func (m *Manifest) DefaultTarget() (*TargetSpec, error) {
	if m == nil || len(m.TargetOrder) == 0 {
		return nil, fmt.Errorf("manifest: no targets defined")
	}
	if target, ok := m.Targets["main"]; ok && target != nil {
		return target, nil
	}
	return m.Targets[m.TargetOrder[0]], nil
}

// FindTarget looks up a target by sanitized or original name.
func (m *Manifest) FindTarget(name string) (*TargetSpec, bool) {
	if m == nil {
		return nil, false
	}
	key := sanitizeSegment(strings.TrimSpace(name))
	if key != "" {
		if target, ok := m.Targets[key]; ok && target != nil {
			return target, true
		}
	}
	for _, entry := range m.targetEntries {
		if entry.spec == nil {
			continue
		}
		if strings.EqualFold(entry.spec.OriginalName, strings.TrimSpace(name)) {
			return entry.spec, true
		}
	}
	return nil, false
}

type manifestFile struct {
	Name        string          `yaml:"name"`
	Interpreter interpreterYAML `yaml:"interpreter"`
	Targets     targetMap       `yaml:"targets"`
}

type interpreterYAML struct {
	StrictUnassigned bool   `yaml:"strict_unassigned"`
	HistoryFile      string `yaml:"history_file"`
}

type targetYAML struct {
	Main   string `yaml:"main"`
	Git    string `yaml:"git"`
	Rev    string `yaml:"rev"`
	Tag    string `yaml:"tag"`
	Branch string `yaml:"branch"`
}

type targetMap struct {
	items []targetMapEntry
}

type targetMapEntry struct {
	name string
	spec *targetYAML
}

// UnmarshalYAML keeps targets in file order; DefaultTarget depends on it.
func (tm *targetMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 {
		tm.items = nil
		return nil
	}
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		tm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: targets must be a mapping")
	}
	items := make([]targetMapEntry, 0, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valueNode := value.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("manifest: targets must not use empty keys")
		}
		entry := new(targetYAML)
		switch valueNode.Kind {
		case yaml.ScalarNode:
			// Shorthand: `name: path/to/script.lox`.
			entry.Main = valueNode.Value
		default:
			if err := valueNode.Decode(entry); err != nil {
				return fmt.Errorf("manifest: target %q: %w", key, err)
			}
		}
		items = append(items, targetMapEntry{name: key, spec: entry})
	}
	tm.items = items
	return nil
}

func (mf manifestFile) toManifest(path string) *Manifest {
	targetCapacity := len(mf.Targets.items)
	result := &Manifest{
		Path: path,
		Name: sanitizeSegment(strings.TrimSpace(mf.Name)),
		Interpreter: InterpreterConfig{
			StrictUnassigned: mf.Interpreter.StrictUnassigned,
			HistoryFile:      strings.TrimSpace(mf.Interpreter.HistoryFile),
		},
		Targets:       make(map[string]*TargetSpec, targetCapacity),
		TargetOrder:   make([]string, 0, targetCapacity),
		targetEntries: make([]manifestTargetEntry, 0, targetCapacity),
	}

	for _, item := range mf.Targets.items {
		target := item.spec
		if target == nil {
			continue
		}
		original := strings.TrimSpace(item.name)
		sanitized := sanitizeSegment(original)
		spec := &TargetSpec{
			Name:         sanitized,
			OriginalName: original,
			Main:         strings.TrimSpace(target.Main),
		}
		source := &GitSource{
			URL:    strings.TrimSpace(target.Git),
			Rev:    strings.TrimSpace(target.Rev),
			Tag:    strings.TrimSpace(target.Tag),
			Branch: strings.TrimSpace(target.Branch),
		}
		if *source != (GitSource{}) {
			spec.Source = source
		}
		if _, exists := result.Targets[sanitized]; !exists {
			result.Targets[sanitized] = spec
			result.TargetOrder = append(result.TargetOrder, sanitized)
		}
		result.targetEntries = append(result.targetEntries, manifestTargetEntry{
			sanitized: sanitized,
			spec:      spec,
		})
	}
	return result
}

// sanitizeSegment lowercases s and folds anything outside [a-z0-9_] to '_'.
func sanitizeSegment(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
