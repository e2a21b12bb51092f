package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"spool/interpreter-go/pkg/ast"
	"spool/interpreter-go/pkg/parser"
)

// Resolver maps an import path to the module behind it: the paths it
// imports in turn, and its body statements.
type Resolver interface {
	Resolve(path string) (imports []string, body []ast.Statement, err error)
}

// FileResolver resolves import paths against an ordered list of root
// directories. A path names a .spool file relative to some root; the
// extension may be omitted.
type FileResolver struct {
	roots []string
}

func NewFileResolver(roots ...string) *FileResolver {
	return &FileResolver{roots: roots}
}

// AddRoot appends a search root, e.g. a fetched dependency checkout.
func (r *FileResolver) AddRoot(root string) {
	r.roots = append(r.roots, root)
}

func (r *FileResolver) Resolve(path string) ([]string, []ast.Statement, error) {
	name := path
	if !strings.HasSuffix(name, ".spool") {
		name += ".spool"
	}
	for _, root := range r.roots {
		full := filepath.Join(root, name)
		data, err := os.ReadFile(full)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, nil, fmt.Errorf("resolve %s: %w", path, err)
		}
		program, err := parser.Parse(string(data))
		if err != nil {
			return nil, nil, fmt.Errorf("resolve %s: %w", path, err)
		}
		imports := make([]string, 0, len(program.Imports))
		for _, imp := range program.Imports {
			imports = append(imports, imp.Path)
		}
		return imports, program.Body, nil
	}
	return nil, nil, fmt.Errorf("resolve %s: not found under %v", path, r.roots)
}

// Load assembles the merged statement tree for entry: a depth-first walk of
// the import graph in which each module's imports precede its own body, each
// module is included once, and cycles are rejected.
func Load(entry string, resolver Resolver) (*ast.Program, error) {
	l := &loader{
		resolver: resolver,
		visited:  make(map[string]bool),
		active:   make(map[string]bool),
	}
	body, err := l.visit(entry, nil)
	if err != nil {
		return nil, err
	}
	return ast.NewProgram(body, nil), nil
}

type loader struct {
	resolver Resolver
	visited  map[string]bool
	active   map[string]bool
}

func (l *loader) visit(path string, chain []string) ([]ast.Statement, error) {
	if l.active[path] {
		return nil, fmt.Errorf("import cycle: %s", strings.Join(append(chain, path), " -> "))
	}
	if l.visited[path] {
		return nil, nil
	}
	l.active[path] = true
	defer func() {
		delete(l.active, path)
		l.visited[path] = true
	}()

	imports, body, err := l.resolver.Resolve(path)
	if err != nil {
		return nil, err
	}
	var merged []ast.Statement
	for _, imp := range imports {
		stmts, err := l.visit(imp, append(chain, path))
		if err != nil {
			return nil, err
		}
		merged = append(merged, stmts...)
	}
	return append(merged, body...), nil
}
