package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"spool/interpreter-go/pkg/ast"
	"spool/interpreter-go/pkg/driver"
	"spool/interpreter-go/pkg/interpreter"
)

const cliToolVersion = "spool-cli 0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runEntry(args[1:])
	case "repl":
		return runREPL(args[1:])
	default:
		return runEntry(args)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage:
  spool run [-input STRING] FILE.spool
  spool run [-input STRING] spool.yml
  spool repl [-input STRING]

Runs a Spool program and reports its verdict: "accepted", "rejected", or
"no verdict" when the program ends without halting. Program output is
printed line by line before the verdict.`)
}

func runEntry(args []string) int {
	fs := flag.NewFlagSet("spool run", flag.ContinueOnError)
	input := fs.String("input", "", "initial contents of the input tape")
	cache := fs.String("cache", defaultCacheDir(), "dependency cache directory")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "spool run requires exactly one target: a .spool file or a spool.yml manifest")
		return 1
	}

	target := fs.Arg(0)
	program, tapeInput, err := loadTarget(target, *cache)
	if err != nil {
		fmt.Fprintf(os.Stderr, "spool: %v\n", err)
		return 1
	}
	if *input != "" {
		tapeInput = *input
	}

	interp := interpreter.New(tapeInput)
	outcome, runErr := interp.Run(program)
	for _, item := range interp.Output() {
		fmt.Fprintln(os.Stdout, item)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "spool: %v\n", runErr)
		return 1
	}
	fmt.Fprintln(os.Stdout, verdict(outcome))
	return 0
}

func verdict(outcome interpreter.Outcome) string {
	switch outcome {
	case interpreter.HaltAccept:
		return "accepted"
	case interpreter.HaltReject:
		return "rejected"
	default:
		return "no verdict"
	}
}

// loadTarget resolves a run target into a merged program plus the initial
// input tape contents (empty unless a manifest provides one).
func loadTarget(target, cacheDir string) (*ast.Program, string, error) {
	if filepath.Base(target) == "spool.yml" || strings.HasSuffix(target, ".yml") {
		manifest, err := driver.LoadManifest(target)
		if err != nil {
			return nil, "", err
		}
		resolver, err := buildResolver(manifest, cacheDir)
		if err != nil {
			return nil, "", err
		}
		entry := strings.TrimSuffix(manifest.Entry, ".spool")
		program, err := driver.Load(entry, resolver)
		if err != nil {
			return nil, "", err
		}
		return program, manifest.Input, nil
	}

	dir := filepath.Dir(target)
	entry := strings.TrimSuffix(filepath.Base(target), ".spool")
	program, err := driver.Load(entry, driver.NewFileResolver(dir))
	if err != nil {
		return nil, "", err
	}
	return program, "", nil
}

// buildResolver roots the import resolver at the manifest directory plus
// each dependency: local-path dependencies directly, git dependencies via a
// pinned checkout in the cache.
func buildResolver(manifest *driver.Manifest, cacheDir string) (*driver.FileResolver, error) {
	resolver := driver.NewFileResolver(manifest.Dir())
	for _, name := range manifest.DepOrder {
		spec := manifest.Dependencies[name]
		if spec.Path != "" {
			root := spec.Path
			if !filepath.IsAbs(root) {
				root = filepath.Join(manifest.Dir(), root)
			}
			resolver.AddRoot(root)
			continue
		}
		checkout, err := fetchGitDependency(cacheDir, name, spec)
		if err != nil {
			return nil, fmt.Errorf("dependency %q: %w", name, err)
		}
		resolver.AddRoot(checkout)
	}
	return resolver, nil
}

func defaultCacheDir() string {
	if env := os.Getenv("SPOOL_CACHE"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".spool-cache"
	}
	return filepath.Join(home, ".spool", "cache")
}
