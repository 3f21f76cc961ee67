package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"nock/reducer-go/pkg/driver"
)

// runSuites handles "suites fetch": clone every remote declared in a
// suite file into the local cache, pin commits and content checksums,
// and write suite.lock next to the suite.
func runSuites(args []string) int {
	if len(args) == 0 || args[0] != "fetch" {
		fmt.Fprintln(os.Stderr, "nock: suites supports only the fetch subcommand")
		printUsage()
		return 1
	}
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "nock: suites fetch requires a suite file")
		return 1
	}

	suite, err := driver.LoadSuite(args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "nock:", err)
		return 1
	}
	if len(suite.Remotes) == 0 {
		fmt.Fprintf(os.Stdout, "%s declares no remote suites\n", suite.Name)
		return 0
	}

	lockPath := filepath.Join(filepath.Dir(suite.Path), "suite.lock")
	previous, _ := driver.LoadLockfile(lockPath)

	cacheDir := suiteCacheDir()
	lock := driver.NewLockfile(suite.Name, cliToolVersion)

	names := make([]string, 0, len(suite.Remotes))
	for name := range suite.Remotes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		locked, dir, err := fetchRemote(cacheDir, name, suite.Remotes[name])
		if err != nil {
			fmt.Fprintf(os.Stderr, "nock: remote %s: %v\n", name, err)
			return 1
		}
		if previous != nil {
			if pinned := previous.Remote(name); pinned != nil && pinned.Checksum != locked.Checksum {
				fmt.Fprintf(os.Stderr, "nock: remote %s checksum changed (%s -> %s)\n",
					name, pinned.Checksum, locked.Checksum)
				return 1
			}
		}
		lock.Remotes = append(lock.Remotes, locked)
		fmt.Fprintf(os.Stdout, "fetched %s -> %s\n", name, dir)
	}

	if err := driver.WriteLockfile(lock, lockPath); err != nil {
		fmt.Fprintln(os.Stderr, "nock:", err)
		return 1
	}
	fmt.Fprintf(os.Stdout, "wrote %s\n", lockPath)
	return 0
}

func suiteCacheDir() string {
	if dir := os.Getenv("NOCK_CACHE"); dir != "" {
		return dir
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "nock")
	}
	return filepath.Join(base, "nock")
}

func fetchRemote(cacheDir, name string, spec *driver.RemoteSpec) (*driver.LockedRemote, string, error) {
	revision, descriptor, err := revisionFromSpec(spec)
	if err != nil {
		return nil, "", err
	}

	baseDir := filepath.Join(cacheDir, "suites", sanitizeSegment(name))
	commit, dir, err := ensureCheckout(baseDir, spec.Git, revision, descriptor)
	if err != nil {
		return nil, "", err
	}

	checksumRoot := dir
	if spec.Path != "" {
		checksumRoot = filepath.Join(dir, filepath.FromSlash(spec.Path))
		if _, err := os.Stat(checksumRoot); err != nil {
			return nil, "", fmt.Errorf("suite path %s: %w", spec.Path, err)
		}
	}
	checksum, err := dirChecksum(checksumRoot)
	if err != nil {
		return nil, "", err
	}

	return &driver.LockedRemote{
		Name:     name,
		Source:   fmt.Sprintf("git+%s@%s", spec.Git, commit),
		Commit:   commit,
		Checksum: checksum,
	}, checksumRoot, nil
}

// ensureCheckout clones the remote into a fresh directory keyed by
// commit, reusing an existing checkout when the revision is already
// pinned on disk.
func ensureCheckout(baseDir, url string, revision plumbing.Revision, descriptor string) (string, string, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", "", err
	}

	if looksLikeCommit(descriptor) {
		existing := filepath.Join(baseDir, sanitizeSegment(descriptor))
		if _, err := os.Stat(existing); err == nil {
			return descriptor, existing, nil
		}
	}

	tmpDir, err := os.MkdirTemp(baseDir, "fetch-*")
	if err != nil {
		return "", "", err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", "", err
	}

	repo, err := git.PlainClone(tmpDir, false, &git.CloneOptions{URL: url})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("git clone %s: %w", url, err)
	}

	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("resolve revision %s: %w", revision, err)
	}

	targetDir := filepath.Join(baseDir, sanitizeSegment(hash.String()))
	if _, err := os.Stat(targetDir); err == nil {
		_ = os.RemoveAll(tmpDir)
		return hash.String(), targetDir, nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("git checkout %s: %w", revision, err)
	}

	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	return hash.String(), targetDir, nil
}

func revisionFromSpec(spec *driver.RemoteSpec) (plumbing.Revision, string, error) {
	if rev := strings.TrimSpace(spec.Rev); rev != "" {
		return plumbing.Revision(rev), rev, nil
	}
	if tag := strings.TrimSpace(spec.Tag); tag != "" {
		return plumbing.Revision("refs/tags/" + tag), tag, nil
	}
	if branch := strings.TrimSpace(spec.Branch); branch != "" {
		return plumbing.Revision("refs/heads/" + branch), branch, nil
	}
	return "", "", fmt.Errorf("remote requires rev, tag, or branch")
}

func looksLikeCommit(descriptor string) bool {
	if len(descriptor) != 40 {
		return false
	}
	for _, r := range descriptor {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

func dirChecksum(path string) (string, error) {
	h := sha256.New()
	err := filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(path, p)
		if err != nil {
			return err
		}
		h.Write([]byte(filepath.ToSlash(rel)))
		h.Write(data)
		return nil
	})
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func sanitizeSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	var b strings.Builder
	for _, r := range segment {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "head"
	}
	return b.String()
}
