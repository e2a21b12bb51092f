package main

import (
	"os"
	"path/filepath"
	"testing"

	"spool/interpreter-go/pkg/driver"
	"spool/interpreter-go/pkg/interpreter"
)

func TestVerdict(t *testing.T) {
	if got := verdict(interpreter.HaltAccept); got != "accepted" {
		t.Fatalf("expected accepted, got %q", got)
	}
	if got := verdict(interpreter.HaltReject); got != "rejected" {
		t.Fatalf("expected rejected, got %q", got)
	}
	if got := verdict(interpreter.Continuing); got != "no verdict" {
		t.Fatalf("expected no verdict, got %q", got)
	}
}

func TestLoadTargetSpoolFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.spool")
	if err := os.WriteFile(path, []byte("accept"), 0o644); err != nil {
		t.Fatalf("write program: %v", err)
	}
	program, input, err := loadTarget(path, t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input != "" {
		t.Fatalf("a bare file target has no manifest input, got %q", input)
	}
	if len(program.Body) != 1 {
		t.Fatalf("expected one statement, got %d", len(program.Body))
	}
}

func TestLoadTargetManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := "name: demo\nentry: main.spool\ninput: \"abc\"\n"
	if err := os.WriteFile(filepath.Join(dir, "spool.yml"), []byte(manifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "main.spool"), []byte("right input\naccept"), 0o644); err != nil {
		t.Fatalf("write program: %v", err)
	}
	program, input, err := loadTarget(filepath.Join(dir, "spool.yml"), t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input != "abc" {
		t.Fatalf("manifest input lost, got %q", input)
	}
	if len(program.Body) != 2 {
		t.Fatalf("expected two statements, got %d", len(program.Body))
	}
}

func TestBuildResolverPathDependency(t *testing.T) {
	projectDir := t.TempDir()
	libDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(libDir, "util.spool"), []byte("accept"), 0o644); err != nil {
		t.Fatalf("write library: %v", err)
	}
	manifest := "name: demo\nentry: main.spool\ndependencies:\n  util:\n    path: " + libDir + "\n"
	manifestPath := filepath.Join(projectDir, "spool.yml")
	if err := os.WriteFile(manifestPath, []byte(manifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	m, err := driver.LoadManifest(manifestPath)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	resolver, err := buildResolver(m, t.TempDir())
	if err != nil {
		t.Fatalf("build resolver: %v", err)
	}
	if _, _, err := resolver.Resolve("util"); err != nil {
		t.Fatalf("path dependency should resolve: %v", err)
	}
}

func TestGitRevisionFromSpec(t *testing.T) {
	rev, desc, err := gitRevisionFromSpec(&driver.DependencySpec{Rev: "abc123"})
	if err != nil || string(rev) != "abc123" || desc != "abc123" {
		t.Fatalf("rev spec mishandled: %v %v %v", rev, desc, err)
	}
	rev, desc, err = gitRevisionFromSpec(&driver.DependencySpec{Tag: "v1.0.0"})
	if err != nil || string(rev) != "refs/tags/v1.0.0" || desc != "v1.0.0" {
		t.Fatalf("tag spec mishandled: %v %v %v", rev, desc, err)
	}
	rev, desc, err = gitRevisionFromSpec(&driver.DependencySpec{Branch: "main"})
	if err != nil || string(rev) != "refs/heads/main" || desc != "main" {
		t.Fatalf("branch spec mishandled: %v %v %v", rev, desc, err)
	}
	if _, _, err := gitRevisionFromSpec(&driver.DependencySpec{}); err == nil {
		t.Fatal("an unpinned spec must be rejected")
	}
}

func TestSanitizePathSegment(t *testing.T) {
	cases := map[string]string{
		"v1.2.0":        "v1.2.0",
		"feature/x y":   "feature_x_y",
		"  ":            "head",
		"///":           "head",
		"UPPER-lower_9": "UPPER-lower_9",
	}
	for in, want := range cases {
		if got := sanitizePathSegment(in); got != want {
			t.Fatalf("sanitizePathSegment(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDefaultCacheDirHonorsEnv(t *testing.T) {
	t.Setenv("SPOOL_CACHE", "/tmp/spool-test-cache")
	if got := defaultCacheDir(); got != "/tmp/spool-test-cache" {
		t.Fatalf("expected the env override, got %q", got)
	}
}
