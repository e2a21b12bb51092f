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
)

// Manifest represents the parsed contents of spool.yml: the entry program,
// the initial input tape, and the libraries the program imports from.
type Manifest struct {
	Path         string
	Name         string
	Entry        string
	Input        string
	Dependencies map[string]*DependencySpec
	DepOrder     []string
}

// DependencySpec describes one library dependency: either a git source
// pinned to a revision, or a local path.
type DependencySpec struct {
	Git    string
	Rev    string
	Tag    string
	Branch string
	Path   string
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

type manifestFile struct {
	Name         string                     `yaml:"name"`
	Entry        string                     `yaml:"entry"`
	Input        string                     `yaml:"input"`
	Dependencies map[string]*dependencyFile `yaml:"dependencies"`
}

type dependencyFile struct {
	Git    string `yaml:"git"`
	Rev    string `yaml:"rev"`
	Tag    string `yaml:"tag"`
	Branch string `yaml:"branch"`
	Path   string `yaml:"path"`
}

// LoadManifest parses spool.yml from disk, returning a validated manifest.
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

func (raw *manifestFile) toManifest(absPath string) *Manifest {
	m := &Manifest{
		Path:         absPath,
		Name:         raw.Name,
		Entry:        raw.Entry,
		Input:        raw.Input,
		Dependencies: make(map[string]*DependencySpec, len(raw.Dependencies)),
	}
	for name, dep := range raw.Dependencies {
		if dep == nil {
			m.Dependencies[name] = &DependencySpec{}
			continue
		}
		m.Dependencies[name] = &DependencySpec{
			Git:    dep.Git,
			Rev:    dep.Rev,
			Tag:    dep.Tag,
			Branch: dep.Branch,
			Path:   dep.Path,
		}
	}
	m.DepOrder = make([]string, 0, len(m.Dependencies))
	for name := range m.Dependencies {
		m.DepOrder = append(m.DepOrder, name)
	}
	sort.Strings(m.DepOrder)
	return m
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if m.Entry == "" {
		errs.Issues = append(errs.Issues, "entry must name the program file")
	}
	for _, name := range m.DepOrder {
		dep := m.Dependencies[name]
		switch {
		case name == "":
			errs.Issues = append(errs.Issues, "dependency names must be non-empty")
		case dep.Git == "" && dep.Path == "":
			errs.Issues = append(errs.Issues, fmt.Sprintf("dependency %q requires git or path", name))
		case dep.Git != "" && dep.Path != "":
			errs.Issues = append(errs.Issues, fmt.Sprintf("dependency %q: git and path are mutually exclusive", name))
		case dep.Git != "" && dep.Rev == "" && dep.Tag == "" && dep.Branch == "":
			errs.Issues = append(errs.Issues, fmt.Sprintf("dependency %q: git dependencies require rev, tag, or branch", name))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// Dir returns the directory containing the manifest file.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}
