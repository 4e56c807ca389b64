package sprout

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os/exec"
	"path/filepath"
	goruntime "runtime"
	"sort"
	"strings"
	"sync"

	"github.com/jward/sprout/internal/model"
	"github.com/jward/sprout/internal/parser"
)

// Project is a fully bound source tree: the parsed files, the universe of
// resolved types, and the renderer used to produce metadata from them.
type Project struct {
	Files    []*parser.SourceFile
	Universe *model.Universe
	Types    *TypeUtils

	typeElems []*model.TypeElement          // declaration order across files
	fileOf    map[*model.TypeElement]string // declaring file path per top-level type
}

// skipDirs are directories excluded from the filesystem walk fallback.
// Build output trees never hold configuration sources.
var skipDirs = map[string]bool{
	"node_modules": true,
	"target":       true,
	"build":        true,
	"out":          true,
}

// DiscoverSources finds .java files under root. When root is inside a git
// repository, uses git ls-files to respect .gitignore; falls back to a
// filesystem walk (skipping hidden dirs and build output) when git is
// unavailable. Paths are returned sorted.
func DiscoverSources(root string) ([]string, error) {
	paths, err := gitListSources(root)
	if err != nil {
		// Not a git repo or git not available — fall back to walk.
		paths, err = walkListSources(root)
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// gitListSources uses git ls-files to discover tracked and untracked (but
// not ignored) .java files under root.
func gitListSources(root string) ([]string, error) {
	// --cached: tracked files, --others: untracked files,
	// --exclude-standard: respect .gitignore, .git/info/exclude, global excludes.
	cmd := exec.Command("git", "ls-files", "--cached", "--others", "--exclude-standard")
	cmd.Dir = root
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git ls-files: %w", err)
	}

	var paths []string
	for _, line := range strings.Split(stdout.String(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.HasSuffix(line, ".java") {
			continue
		}
		paths = append(paths, filepath.Join(root, line))
	}
	return paths, nil
}

// walkListSources discovers .java files by walking the filesystem, used as a
// fallback when git is not available.
func walkListSources(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if strings.HasPrefix(name, ".") || skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".java") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}
	return paths, nil
}

// LoadDir discovers and loads every .java file under root.
func LoadDir(ctx context.Context, root string) (*Project, error) {
	paths, err := DiscoverSources(root)
	if err != nil {
		return nil, err
	}
	return Load(ctx, paths)
}

// Load parses the given files in parallel and binds them into one Project.
// Parsing is the expensive phase, so it runs on a worker pool; binding is
// serial because it mutates the shared universe.
func Load(ctx context.Context, paths []string) (*Project, error) {
	files, err := parseAll(ctx, paths)
	if err != nil {
		return nil, err
	}

	p := &Project{
		Files:    files,
		Universe: model.NewUniverse(),
		fileOf:   map[*model.TypeElement]string{},
	}
	p.bind()
	p.Types = NewTypeUtils(p.Universe)
	return p, nil
}

// parseAll parses paths on a worker pool. Results come back in input order;
// the first parse error aborts the load.
func parseAll(ctx context.Context, paths []string) ([]*parser.SourceFile, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	numWorkers := min(goruntime.NumCPU(), len(paths))
	if numWorkers < 1 {
		numWorkers = 1
	}

	type job struct {
		idx  int
		path string
	}
	jobCh := make(chan job, len(paths))
	for i, path := range paths {
		jobCh <- job{idx: i, path: path}
	}
	close(jobCh)

	files := make([]*parser.SourceFile, len(paths))
	errs := make([]error, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Each worker gets its own tree-sitter parser via Parse, so
			// parsing is goroutine-safe.
			for j := range jobCh {
				f, err := parser.Parse(ctx, j.path)
				if err != nil {
					errs[j.idx] = fmt.Errorf("parse %s: %w", j.path, err)
					continue
				}
				files[j.idx] = f
			}
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// bind registers every declared type in the universe, then resolves field
// and supertype expressions. Two passes: all declarations must exist before
// any cross-file reference resolves.
func (p *Project) bind() {
	// Pass 1: register declarations, nested types included.
	for _, f := range p.Files {
		pkg := p.Universe.Package(f.Package)
		for _, rt := range f.Types {
			te := p.registerType(f, rt, pkg, qualify(f.Package, rt.Name))
			p.fileOf[te] = f.Path
		}
	}

	// Pass 2: resolve field types, supertypes and annotations per file.
	i := 0
	for _, f := range p.Files {
		scope := newFileScope(p.Universe, f)
		for _, rt := range f.Types {
			i = p.resolveType(f, rt, scope, i, nil)
		}
	}
}

// registerType creates the element for one declaration and recurses into its
// nested types. qname is the dotted source name.
func (p *Project) registerType(f *parser.SourceFile, rt *parser.RawType, enclosing model.Element, qname string) *model.TypeElement {
	te := model.NewTypeElement(qname, rt.Name, rt.Kind, enclosing)
	te.SetDoc(rt.Doc)
	te.SetTypeParams(rt.TypeParams)
	p.Universe.Register(te)
	p.typeElems = append(p.typeElems, te)
	for _, nested := range rt.Nested {
		p.registerType(f, nested, te, qname+"."+nested.Name)
	}
	return te
}

// resolveType fills in the element created in pass 1 for rt and recurses
// into nested declarations. The elements arrive in the same order they were
// registered, so idx walks typeElems in lockstep.
func (p *Project) resolveType(f *parser.SourceFile, rt *parser.RawType, fscope *fileScope, idx int, outer []string) int {
	te := p.typeElems[idx]
	idx++

	scope := &typeScope{file: fscope, classes: append([]string{te.QualifiedName()}, outer...), typeParams: rt.TypeParams}

	te.SetAnnotations(bindAnnotations(rt.Annotations))

	var supers []model.Type
	if rt.Superclass != "" {
		if t := p.Universe.ParseTypeExpr(rt.Superclass, scope); t != nil {
			supers = append(supers, t)
		}
	}
	for _, iface := range rt.Interfaces {
		if t := p.Universe.ParseTypeExpr(iface, scope); t != nil {
			supers = append(supers, t)
		}
	}
	te.SetSupertypes(supers)

	for _, rf := range rt.Fields {
		typ := p.Universe.ParseTypeExpr(rf.TypeExpr, scope)
		fe := model.NewFieldElement(rf.Name, te, typ, rf.Doc, rf.Init, rf.Modifiers)
		fe.SetAnnotations(bindAnnotations(rf.Annotations))
		te.AddField(fe)
	}

	for _, nested := range rt.Nested {
		idx = p.resolveType(f, nested, fscope, idx, scope.classes)
	}
	return idx
}

func bindAnnotations(raw []parser.RawAnnotation) []model.Annotation {
	if len(raw) == 0 {
		return nil
	}
	anns := make([]model.Annotation, len(raw))
	for i, a := range raw {
		anns[i] = model.Annotation{Name: a.Name, Args: a.Args}
	}
	return anns
}

// TypeElements returns every bound type element in declaration order.
func (p *Project) TypeElements() []*model.TypeElement {
	return p.typeElems
}

// FileOf returns the path of the file declaring te, walking up through
// enclosing types for nested declarations. "" when te is not from this load.
func (p *Project) FileOf(te *model.TypeElement) string {
	for te != nil {
		if path, ok := p.fileOf[te]; ok {
			return path
		}
		enclosing, _ := te.Enclosing().(*model.TypeElement)
		te = enclosing
	}
	return ""
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

// fileScope resolves simple names against one file's import table: explicit
// imports first, then wildcard packages (java.lang is always implicit), then
// the file's own package.
type fileScope struct {
	uni     *model.Universe
	pkg     string
	imports map[string]string // simple name -> qualified name
	stars   []string          // wildcard-imported packages
}

func newFileScope(uni *model.Universe, f *parser.SourceFile) *fileScope {
	s := &fileScope{
		uni:     uni,
		pkg:     f.Package,
		imports: map[string]string{},
		stars:   []string{"java.lang"},
	}
	for _, imp := range f.Imports {
		if imp.Static {
			continue
		}
		if imp.Wildcard {
			s.stars = append(s.stars, imp.Path)
			continue
		}
		if i := strings.LastIndex(imp.Path, "."); i >= 0 {
			s.imports[imp.Path[i+1:]] = imp.Path
		}
	}
	return s
}

func (s *fileScope) resolve(name string) *model.TypeElement {
	if qname, ok := s.imports[name]; ok {
		if te := s.uni.LookupType(qname); te != nil {
			return te
		}
		return s.uni.ExternalType(qname)
	}
	for _, pkg := range s.stars {
		if te := s.uni.LookupType(pkg + "." + name); te != nil {
			return te
		}
	}
	if te := s.uni.LookupType(qualify(s.pkg, name)); te != nil {
		return te
	}
	return nil
}

// typeScope layers the declaring class chain and its type parameters over
// the file scope, so sibling nested classes and type variables resolve.
type typeScope struct {
	file       *fileScope
	classes    []string // innermost first
	typeParams []string
}

func (s *typeScope) ResolveName(name string) *model.TypeElement {
	// A nested sibling or the class itself shadows imports.
	for _, c := range s.classes {
		if te := s.file.uni.LookupType(c + "." + name); te != nil {
			return te
		}
		if te := s.file.uni.LookupType(c); te != nil && te.SimpleName() == name {
			return te
		}
	}
	if te := s.file.resolve(name); te != nil {
		return te
	}
	// Same-package reference to a file not in this load.
	if !strings.Contains(name, ".") && s.file.pkg != "" {
		return s.file.uni.ExternalType(qualify(s.file.pkg, name))
	}
	return nil
}

func (s *typeScope) IsTypeVariable(name string) bool {
	for _, tp := range s.typeParams {
		if tp == name {
			return true
		}
	}
	return false
}
