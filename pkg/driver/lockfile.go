package driver

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Lockfile models the suite.lock contents: the remote suites a fetch
// resolved, pinned by commit and content checksum.
type Lockfile struct {
	Path      string
	Suite     string
	Generated string
	Tool      string
	Remotes   []*LockedRemote
}

// LockedRemote captures a single fetched remote suite.
type LockedRemote struct {
	Name     string
	Source   string
	Commit   string
	Checksum string
}

// NewLockfile constructs a lockfile with metadata seeded for a suite.
func NewLockfile(suite, tool string) *Lockfile {
	return &Lockfile{
		Suite:     strings.TrimSpace(suite),
		Generated: time.Now().UTC().Format(time.RFC3339),
		Tool:      strings.TrimSpace(tool),
		Remotes:   []*LockedRemote{},
	}
}

// Remote looks up a locked remote by name.
func (l *Lockfile) Remote(name string) *LockedRemote {
	for _, r := range l.Remotes {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// LoadLockfile parses suite.lock from disk.
func LoadLockfile(path string) (*Lockfile, error) {
	if path == "" {
		return nil, fmt.Errorf("lockfile: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("lockfile: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var raw lockfileDisk
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("lockfile: parse %s: %w", abs, err)
	}

	lock := raw.toLockfile()
	lock.Path = abs
	lock.normalize()
	return lock, nil
}

// WriteLockfile serialises the lockfile back to disk, refreshing
// metadata.
func WriteLockfile(lock *Lockfile, path string) error {
	if lock == nil {
		return fmt.Errorf("lockfile: nil lockfile")
	}
	if path == "" {
		if lock.Path == "" {
			return fmt.Errorf("lockfile: missing path")
		}
		path = lock.Path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("lockfile: resolve %s: %w", path, err)
	}

	if lock.Generated == "" {
		lock.Generated = time.Now().UTC().Format(time.RFC3339)
	}
	lock.Path = abs
	lock.normalize()

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(lock.toDisk()); err != nil {
		return fmt.Errorf("lockfile: marshal %s: %w", abs, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("lockfile: encoder close: %w", err)
	}
	if err := os.WriteFile(abs, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("lockfile: write %s: %w", abs, err)
	}
	return nil
}

func (l *Lockfile) normalize() {
	if l == nil {
		return
	}
	l.Suite = strings.TrimSpace(l.Suite)
	l.Tool = strings.TrimSpace(l.Tool)
	sort.SliceStable(l.Remotes, func(i, j int) bool {
		return l.Remotes[i].Name < l.Remotes[j].Name
	})
	for _, r := range l.Remotes {
		if r == nil {
			continue
		}
		r.Name = strings.TrimSpace(r.Name)
		r.Source = strings.TrimSpace(r.Source)
		r.Commit = strings.TrimSpace(r.Commit)
		r.Checksum = strings.TrimSpace(r.Checksum)
	}
}

type lockfileDisk struct {
	Suite     string           `yaml:"suite"`
	Generated string           `yaml:"generated"`
	Tool      string           `yaml:"tool"`
	Remotes   []lockfileRemote `yaml:"remotes"`
}

type lockfileRemote struct {
	Name     string `yaml:"name"`
	Source   string `yaml:"source"`
	Commit   string `yaml:"commit"`
	Checksum string `yaml:"checksum"`
}

func (l *Lockfile) toDisk() lockfileDisk {
	remotes := make([]lockfileRemote, 0, len(l.Remotes))
	for _, r := range l.Remotes {
		if r == nil {
			continue
		}
		remotes = append(remotes, lockfileRemote{
			Name:     r.Name,
			Source:   r.Source,
			Commit:   r.Commit,
			Checksum: r.Checksum,
		})
	}
	return lockfileDisk{
		Suite:     l.Suite,
		Generated: l.Generated,
		Tool:      l.Tool,
		Remotes:   remotes,
	}
}

func (d lockfileDisk) toLockfile() *Lockfile {
	lock := &Lockfile{
		Suite:     strings.TrimSpace(d.Suite),
		Generated: strings.TrimSpace(d.Generated),
		Tool:      strings.TrimSpace(d.Tool),
		Remotes:   make([]*LockedRemote, 0, len(d.Remotes)),
	}
	for _, r := range d.Remotes {
		lock.Remotes = append(lock.Remotes, &LockedRemote{
			Name:     strings.TrimSpace(r.Name),
			Source:   strings.TrimSpace(r.Source),
			Commit:   strings.TrimSpace(r.Commit),
			Checksum: strings.TrimSpace(r.Checksum),
		})
	}
	lock.normalize()
	return lock
}
