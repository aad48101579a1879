package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Checkout is a working tree holding one pinned revision of a git source.
type Checkout struct {
	Dir string
	// Version is the rev, tag or branch the target asked for.
	Version string
	Commit  string
}

// GitFetcher keeps one working tree per target and pin under
// <cacheDir>/src/<target>/<kind>-<pin>. Rev and tag checkouts never change
// once on disk; branch checkouts are reset to the remote tip on every fetch.
type GitFetcher struct {
	cacheDir string
}

func NewGitFetcher(cacheDir string) *GitFetcher {
	if cacheDir == "" {
		return nil
	}
	return &GitFetcher{cacheDir: cacheDir}
}

type gitPinKind string

const (
	pinRev    gitPinKind = "rev"
	pinTag    gitPinKind = "tag"
	pinBranch gitPinKind = "branch"
)

type gitPin struct {
	kind  gitPinKind
	value string
}

// referenceName is the ref a single-branch clone follows. Revs have none.
func (p gitPin) referenceName() plumbing.ReferenceName {
	switch p.kind {
	case pinTag:
		return plumbing.NewTagReferenceName(p.value)
	case pinBranch:
		return plumbing.NewBranchReferenceName(p.value)
	default:
		return ""
	}
}

func (p gitPin) dirName() string {
	return string(p.kind) + "-" + cacheSegment(p.value)
}

func pinFromSource(source *GitSource) (gitPin, error) {
	if issues := source.validate(); len(issues) > 0 {
		return gitPin{}, errors.New(issues[0])
	}
	switch {
	case source.Rev != "":
		return gitPin{kind: pinRev, value: strings.TrimSpace(source.Rev)}, nil
	case source.Tag != "":
		return gitPin{kind: pinTag, value: strings.TrimSpace(source.Tag)}, nil
	default:
		return gitPin{kind: pinBranch, value: strings.TrimSpace(source.Branch)}, nil
	}
}

// Fetch makes the pinned revision available on disk. A rev or tag checkout
// already in the cache is returned without contacting the remote.
func (g *GitFetcher) Fetch(name string, source *GitSource) (*Checkout, error) {
	if g == nil {
		return nil, errors.New("git fetcher unavailable")
	}
	if source == nil || strings.TrimSpace(source.URL) == "" {
		return nil, fmt.Errorf("target %q: git URL required", name)
	}
	pin, err := pinFromSource(source)
	if err != nil {
		return nil, fmt.Errorf("target %q: %w", name, err)
	}

	baseDir := filepath.Join(g.cacheDir, "src", cacheSegment(name))
	dir := filepath.Join(baseDir, pin.dirName())

	var commit plumbing.Hash
	if _, statErr := os.Stat(dir); statErr == nil {
		commit, err = reuseCheckout(dir, pin)
	} else {
		commit, err = cloneCheckout(baseDir, dir, strings.TrimSpace(source.URL), pin)
	}
	if err != nil {
		return nil, err
	}
	return &Checkout{Dir: dir, Version: pin.value, Commit: commit.String()}, nil
}

func reuseCheckout(dir string, pin gitPin) (plumbing.Hash, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("open cached checkout %s: %w", dir, err)
	}
	if pin.kind == pinBranch {
		return updateBranch(repo, pin.value)
	}
	head, err := repo.Head()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("read cached checkout %s: %w", dir, err)
	}
	return head.Hash(), nil
}

// updateBranch pulls the branch tip into an existing checkout, discarding
// anything that differs from the remote.
func updateBranch(repo *git.Repository, branch string) (plumbing.Hash, error) {
	err := repo.Fetch(&git.FetchOptions{RemoteName: git.DefaultRemoteName, Tags: git.NoTags})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return plumbing.ZeroHash, fmt.Errorf("git fetch %s: %w", branch, err)
	}
	ref, err := repo.Reference(plumbing.NewRemoteReferenceName(git.DefaultRemoteName, branch), true)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolve branch %s: %w", branch, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, err
	}
	if err := worktree.Reset(&git.ResetOptions{Commit: ref.Hash(), Mode: git.HardReset}); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("git reset %s: %w", branch, err)
	}
	return ref.Hash(), nil
}

// cloneCheckout clones into a scratch directory and renames it into place so
// an interrupted clone never looks like a finished checkout. Tags and
// branches fetch only their own ref; a rev needs the full history.
func cloneCheckout(baseDir, dir, url string, pin gitPin) (plumbing.Hash, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return plumbing.ZeroHash, err
	}
	tmpDir, err := os.MkdirTemp(baseDir, "clone-*")
	if err != nil {
		return plumbing.ZeroHash, err
	}
	defer os.RemoveAll(tmpDir)

	opts := &git.CloneOptions{URL: url, Tags: git.AllTags}
	if ref := pin.referenceName(); ref != "" {
		opts.ReferenceName = ref
		opts.SingleBranch = true
		opts.Tags = git.NoTags
	}
	repo, err := git.PlainClone(tmpDir, false, opts)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("git clone %s (%s %s): %w", url, pin.kind, pin.value, err)
	}

	var commit plumbing.Hash
	if pin.kind == pinRev {
		hash, err := repo.ResolveRevision(plumbing.Revision(pin.value))
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("resolve rev %s: %w", pin.value, err)
		}
		worktree, err := repo.Worktree()
		if err != nil {
			return plumbing.ZeroHash, err
		}
		if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
			return plumbing.ZeroHash, fmt.Errorf("git checkout %s: %w", pin.value, err)
		}
		commit = *hash
	} else {
		head, err := repo.Head()
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("read HEAD of %s: %w", url, err)
		}
		commit = head.Hash()
	}

	if err := os.Rename(tmpDir, dir); err != nil {
		return plumbing.ZeroHash, err
	}
	return commit, nil
}

// cacheSegment keeps a name usable as a single path element.
func cacheSegment(segment string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(segment))
}
