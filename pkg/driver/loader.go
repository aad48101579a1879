package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// HomeEnv names the environment variable overriding the cache directory.
const HomeEnv = "LOX_HOME"

// Source is a script ready to hand to the interpreter.
type Source struct {
	Path string
	Text string
	// Checkout is set when the script came from a git source.
	Checkout *Checkout
}

// Loader reads scripts from disk, fetching git-backed targets into the cache
// directory first.
type Loader struct {
	cacheDir string
	fetcher  *GitFetcher
}

func NewLoader(cacheDir string) *Loader {
	return &Loader{cacheDir: cacheDir, fetcher: NewGitFetcher(cacheDir)}
}

// CacheDir is where fetched sources are stored.
func (l *Loader) CacheDir() string {
	return l.cacheDir
}

// LoadFile reads a script from path.
func (l *Loader) LoadFile(path string) (*Source, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("loader: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("loader: resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", path, err)
	}
	return &Source{Path: absPath, Text: string(data)}, nil
}

// LoadTarget resolves a manifest target to its main script. Local targets
// are relative to the manifest directory; remote targets are relative to
// their checkout.
func (l *Loader) LoadTarget(manifest *Manifest, target *TargetSpec) (*Source, error) {
	if manifest == nil || target == nil {
		return nil, fmt.Errorf("loader: missing manifest or target")
	}
	mainPath := filepath.FromSlash(strings.TrimSpace(target.Main))
	if mainPath == "" {
		return nil, fmt.Errorf("target %q missing main script", target.OriginalName)
	}

	if !target.Remote() {
		if !filepath.IsAbs(mainPath) {
			mainPath = filepath.Join(filepath.Dir(manifest.Path), mainPath)
		}
		return l.LoadFile(mainPath)
	}

	if l.fetcher == nil {
		return nil, fmt.Errorf("target %q: no cache directory for git sources", target.OriginalName)
	}
	checkout, err := l.fetcher.Fetch(target.Name, target.Source)
	if err != nil {
		return nil, fmt.Errorf("target %q: %w", target.OriginalName, err)
	}
	src, err := l.LoadFile(filepath.Join(checkout.Dir, mainPath))
	if err != nil {
		return nil, err
	}
	src.Checkout = checkout
	return src, nil
}

// ResolveHome returns $LOX_HOME as an absolute path, or ~/.lox.
func ResolveHome() (string, error) {
	if home := strings.TrimSpace(os.Getenv(HomeEnv)); home != "" {
		abs, err := filepath.Abs(home)
		if err != nil {
			return "", fmt.Errorf("resolve %s %q: %w", HomeEnv, home, err)
		}
		return abs, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}
	return filepath.Join(userHome, ".lox"), nil
}
