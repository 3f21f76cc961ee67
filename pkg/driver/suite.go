// Package driver loads and executes the YAML fixture suites used to
// exercise the reduction engine: suite manifests, noun literal
// decoding, the suite lockfile, and the case runner.
package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"nock/reducer-go/pkg/noun"
)

// Suite represents the parsed contents of a suite.yml fixture file.
type Suite struct {
	Path    string
	Name    string
	Remotes map[string]*RemoteSpec
	Cases   []*Case
}

// RemoteSpec names a git source providing a shared fixture suite.
type RemoteSpec struct {
	Git    string
	Rev    string
	Tag    string
	Branch string
	Path   string
}

// Case is one reduction fixture: a subject/formula pair together with
// either an expected product or an expected failure name.
type Case struct {
	Name    string
	Subject noun.Noun
	Formula noun.Noun
	Product noun.Noun
	Failure string
}

// ValidationError aggregates suite validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "suite: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("suite validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadSuite parses a suite file from disk, returning a validated suite.
func LoadSuite(path string) (*Suite, error) {
	if path == "" {
		return nil, fmt.Errorf("suite: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("suite: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("suite: open %s: %w", absPath, err)
	}
	defer file.Close()

	suite, err := DecodeSuite(file)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("suite: %s is empty", absPath)
		}
		return nil, fmt.Errorf("suite: %s: %w", absPath, err)
	}
	suite.Path = absPath
	return suite, nil
}

// DecodeSuite parses a suite from a reader, validating as it goes.
func DecodeSuite(r io.Reader) (*Suite, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw suiteFile
	if err := decoder.Decode(&raw); err != nil {
		return nil, err
	}
	return raw.toSuite()
}

type suiteFile struct {
	Name    string                 `yaml:"name"`
	Remotes map[string]*remoteFile `yaml:"remotes"`
	Cases   []*caseFile            `yaml:"cases"`
}

type remoteFile struct {
	Git    string `yaml:"git"`
	Rev    string `yaml:"rev"`
	Tag    string `yaml:"tag"`
	Branch string `yaml:"branch"`
	Path   string `yaml:"path"`
}

// The noun-valued fields must be value-typed: yaml.v3 only captures a
// raw node into a yaml.Node value, a *yaml.Node falls through to
// ordinary struct decoding and rejects scalars and sequences.
type caseFile struct {
	Name    string    `yaml:"name"`
	Subject yaml.Node `yaml:"subject"`
	Formula yaml.Node `yaml:"formula"`
	Product yaml.Node `yaml:"product"`
	Error   string    `yaml:"error"`
}

func (f *suiteFile) toSuite() (*Suite, error) {
	var issues []string

	suite := &Suite{
		Name:    strings.TrimSpace(f.Name),
		Remotes: make(map[string]*RemoteSpec, len(f.Remotes)),
	}
	if suite.Name == "" {
		issues = append(issues, "suite name is required")
	}

	remoteNames := make([]string, 0, len(f.Remotes))
	for name := range f.Remotes {
		remoteNames = append(remoteNames, name)
	}
	sort.Strings(remoteNames)
	for _, name := range remoteNames {
		raw := f.Remotes[name]
		if raw == nil {
			issues = append(issues, fmt.Sprintf("remote %q is empty", name))
			continue
		}
		spec := &RemoteSpec{
			Git:    strings.TrimSpace(raw.Git),
			Rev:    strings.TrimSpace(raw.Rev),
			Tag:    strings.TrimSpace(raw.Tag),
			Branch: strings.TrimSpace(raw.Branch),
			Path:   strings.TrimSpace(raw.Path),
		}
		if spec.Git == "" {
			issues = append(issues, fmt.Sprintf("remote %q requires a git URL", name))
		}
		if spec.Rev == "" && spec.Tag == "" && spec.Branch == "" {
			issues = append(issues, fmt.Sprintf("remote %q requires rev, tag, or branch", name))
		}
		suite.Remotes[name] = spec
	}

	seen := make(map[string]bool, len(f.Cases))
	for idx, raw := range f.Cases {
		if raw == nil {
			issues = append(issues, fmt.Sprintf("case %d is empty", idx))
			continue
		}
		c := &Case{
			Name:    strings.TrimSpace(raw.Name),
			Failure: strings.TrimSpace(raw.Error),
		}
		label := c.Name
		if label == "" {
			label = fmt.Sprintf("case %d", idx)
			issues = append(issues, label+" has no name")
		} else if seen[label] {
			issues = append(issues, fmt.Sprintf("case name %q is duplicated", label))
		}
		seen[label] = true

		if raw.Subject.IsZero() {
			issues = append(issues, label+" has no subject")
		} else if n, err := DecodeNoun(&raw.Subject); err != nil {
			issues = append(issues, fmt.Sprintf("%s subject: %v", label, err))
		} else {
			c.Subject = n
		}
		if raw.Formula.IsZero() {
			issues = append(issues, label+" has no formula")
		} else if n, err := DecodeNoun(&raw.Formula); err != nil {
			issues = append(issues, fmt.Sprintf("%s formula: %v", label, err))
		} else {
			c.Formula = n
		}

		switch {
		case !raw.Product.IsZero() && c.Failure != "":
			issues = append(issues, label+" declares both a product and an error")
		case !raw.Product.IsZero():
			if n, err := DecodeNoun(&raw.Product); err != nil {
				issues = append(issues, fmt.Sprintf("%s product: %v", label, err))
			} else {
				c.Product = n
			}
		case c.Failure != "":
			if _, ok := FailureByName(c.Failure); !ok {
				issues = append(issues, fmt.Sprintf("%s names unknown error %q", label, c.Failure))
			}
		default:
			issues = append(issues, label+" declares neither a product nor an error")
		}

		suite.Cases = append(suite.Cases, c)
	}

	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	return suite, nil
}
