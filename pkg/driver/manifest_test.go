package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "spool.yml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, `
name: busy-beaver
entry: main.spool
input: "111#"
dependencies:
  scanlib:
    git: https://example.com/scanlib.git
    tag: v1.2.0
  local-helpers:
    path: ../helpers
`)
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Name != "busy-beaver" || m.Entry != "main.spool" || m.Input != "111#" {
		t.Fatalf("unexpected manifest %#v", m)
	}
	if len(m.DepOrder) != 2 || m.DepOrder[0] != "local-helpers" || m.DepOrder[1] != "scanlib" {
		t.Fatalf("dependency order must be sorted, got %v", m.DepOrder)
	}
	if dep := m.Dependencies["scanlib"]; dep.Git == "" || dep.Tag != "v1.2.0" {
		t.Fatalf("git dependency lost fields: %#v", dep)
	}
	if m.Dir() != filepath.Dir(path) {
		t.Fatalf("Dir() should be the manifest directory, got %q", m.Dir())
	}
}

func TestLoadManifestMissingFile(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "spool.yml"))
	if err == nil {
		t.Fatal("expected an error for a missing manifest")
	}
}

func TestLoadManifestEmptyFile(t *testing.T) {
	_, err := LoadManifest(writeManifest(t, ""))
	if err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("expected an empty-file error, got %v", err)
	}
}

func TestLoadManifestUnknownField(t *testing.T) {
	_, err := LoadManifest(writeManifest(t, `
name: p
entry: main.spool
verison: 3
`))
	if err == nil {
		t.Fatal("expected unknown fields to be rejected")
	}
}

func TestLoadManifestValidation(t *testing.T) {
	cases := []struct {
		name     string
		contents string
		want     string
	}{
		{
			"missing name and entry",
			`input: "abc"`,
			"name must be provided",
		},
		{
			"dependency without source",
			"name: p\nentry: main.spool\ndependencies:\n  broken: {}\n",
			`dependency "broken" requires git or path`,
		},
		{
			"dependency with both sources",
			"name: p\nentry: main.spool\ndependencies:\n  both:\n    git: https://example.com/r.git\n    rev: abc123\n    path: ../r\n",
			"mutually exclusive",
		},
		{
			"git dependency without pin",
			"name: p\nentry: main.spool\ndependencies:\n  loose:\n    git: https://example.com/r.git\n",
			"require rev, tag, or branch",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadManifest(writeManifest(t, tc.contents))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !strings.Contains(verr.Error(), tc.want) {
				t.Fatalf("error %q should mention %q", verr.Error(), tc.want)
			}
		})
	}
}

func TestLoadManifestNullDependency(t *testing.T) {
	_, err := LoadManifest(writeManifest(t, "name: p\nentry: main.spool\ndependencies:\n  empty:\n"))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("a null dependency entry must fail validation, got %v", err)
	}
}
