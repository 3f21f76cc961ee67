package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLockfileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "suite.lock")

	lock := NewLockfile("core-ops", "nock-cli test")
	lock.Remotes = append(lock.Remotes,
		&LockedRemote{
			Name:     "zulu",
			Source:   "git+https://example.com/z.git@abc123",
			Commit:   "abc123",
			Checksum: "deadbeef",
		},
		&LockedRemote{
			Name:     "alpha",
			Source:   "git+https://example.com/a.git@def456",
			Commit:   "def456",
			Checksum: "cafef00d",
		},
	)

	if err := WriteLockfile(lock, path); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	loaded, err := LoadLockfile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Suite != "core-ops" || loaded.Tool != "nock-cli test" {
		t.Fatalf("metadata lost: %+v", loaded)
	}
	if len(loaded.Remotes) != 2 {
		t.Fatalf("remotes lost: %+v", loaded.Remotes)
	}
	if loaded.Remotes[0].Name != "alpha" || loaded.Remotes[1].Name != "zulu" {
		t.Fatalf("remotes are not sorted: %+v", loaded.Remotes)
	}
	if got := loaded.Remote("zulu"); got == nil || got.Checksum != "deadbeef" {
		t.Fatalf("lookup failed: %+v", got)
	}
	if loaded.Remote("missing") != nil {
		t.Fatalf("missing remote should be nil")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !strings.Contains(string(data), "suite: core-ops") {
		t.Fatalf("unexpected lockfile contents:\n%s", data)
	}
}

func TestWriteLockfileRejectsNil(t *testing.T) {
	if err := WriteLockfile(nil, "anywhere"); err == nil {
		t.Fatalf("nil lockfile should not be written")
	}
	if err := WriteLockfile(&Lockfile{}, ""); err == nil {
		t.Fatalf("a lockfile with no path should not be written")
	}
}
