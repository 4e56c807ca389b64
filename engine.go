package sprout

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jward/sprout/internal/model"
	"github.com/jward/sprout/internal/store"
)

// Engine orchestrates the sprout pipeline against a persistent index: file
// discovery, change detection, metadata extraction, and query access.
type Engine struct {
	store *store.Store
}

// schemaVersion is bumped whenever the derived-table layout or the
// extraction output changes incompatibly.
const schemaVersion = "1"

// New creates an Engine backed by a SQLite database at dbPath. A database
// written by an incompatible schema version is rejected; delete it and
// reindex.
func New(dbPath string) (*Engine, error) {
	s, err := store.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("sprout: create store: %w", err)
	}
	if err := s.Migrate(); err != nil {
		s.Close()
		return nil, fmt.Errorf("sprout: migrate: %w", err)
	}
	stored, err := s.GetMetadata("schema_version")
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("sprout: read schema version: %w", err)
	}
	if stored != "" && stored != schemaVersion {
		s.Close()
		return nil, fmt.Errorf("sprout: database schema version %s is not %s; delete %s and reindex", stored, schemaVersion, dbPath)
	}
	if stored == "" {
		if err := s.SetMetadata("schema_version", schemaVersion); err != nil {
			s.Close()
			return nil, fmt.Errorf("sprout: write schema version: %w", err)
		}
	}
	return &Engine{store: s}, nil
}

// Close releases the Engine's database resources.
func (e *Engine) Close() error {
	return e.store.Close()
}

// Store returns the underlying Store for direct access.
func (e *Engine) Store() *Store {
	return e.store
}

// Query returns a new QueryBuilder wrapping the Store.
func (e *Engine) Query() *QueryBuilder {
	return &QueryBuilder{store: e.store}
}

// IndexStats summarizes one Index run.
type IndexStats struct {
	FilesScanned int // discovered source files
	FilesIndexed int // files whose content changed since the last run
	FilesRemoved int // previously indexed files no longer present
	Groups       int
	Properties   int
	Duration     time.Duration
}

// Index discovers the .java sources under root and brings the index up to
// date. Unchanged trees (every file hash matches and nothing was removed)
// return without reloading anything. Any change triggers a full rebind and
// a full rewrite of the derived metadata tables: properties can cross file
// boundaries through nested groups, so per-file invalidation is not sound
// for them. The per-file types rows are rewritten only for changed files.
func (e *Engine) Index(ctx context.Context, root string) (*IndexStats, error) {
	start := time.Now()

	paths, err := DiscoverSources(root)
	if err != nil {
		return nil, fmt.Errorf("discover sources: %w", err)
	}
	stats := &IndexStats{FilesScanned: len(paths)}

	hashes := make(map[string]string, len(paths))
	changed := make(map[string]bool)
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		hash := fmt.Sprintf("%x", sha256.Sum256(content))
		hashes[path] = hash

		existing, err := e.store.FileByPath(path)
		if err != nil {
			return nil, fmt.Errorf("lookup %s: %w", path, err)
		}
		if existing == nil || existing.Hash != hash {
			changed[path] = true
		}
	}

	removed, err := e.removedFiles(hashes)
	if err != nil {
		return nil, err
	}
	stats.FilesIndexed = len(changed)
	stats.FilesRemoved = len(removed)

	if len(changed) == 0 && len(removed) == 0 {
		stats.Duration = time.Since(start)
		return stats, nil
	}

	for _, f := range removed {
		if err := e.store.DeleteFileData(f.ID); err != nil {
			return nil, fmt.Errorf("remove %s: %w", f.Path, err)
		}
	}

	proj, err := Load(ctx, paths)
	if err != nil {
		return nil, err
	}

	fileIDs, err := e.rewriteFiles(proj, hashes, changed)
	if err != nil {
		return nil, err
	}
	typeFiles, err := e.rewriteTypes(proj, fileIDs, changed)
	if err != nil {
		return nil, err
	}
	if err := e.rewriteMetadata(proj, typeFiles, stats); err != nil {
		return nil, err
	}

	stats.Duration = time.Since(start)
	return stats, nil
}

// removedFiles returns the indexed files whose path was not discovered this
// run.
func (e *Engine) removedFiles(present map[string]string) ([]*store.File, error) {
	files, err := e.store.Files()
	if err != nil {
		return nil, fmt.Errorf("list indexed files: %w", err)
	}
	var removed []*store.File
	for _, f := range files {
		if _, ok := present[f.Path]; !ok {
			removed = append(removed, f)
		}
	}
	return removed, nil
}

// rewriteFiles replaces the file rows for changed files and returns the ID
// of every current file row by path.
func (e *Engine) rewriteFiles(proj *Project, hashes map[string]string, changed map[string]bool) (map[string]int64, error) {
	pkgByPath := make(map[string]string, len(proj.Files))
	for _, f := range proj.Files {
		pkgByPath[f.Path] = f.Package
	}

	fileIDs := make(map[string]int64, len(hashes))
	for path, hash := range hashes {
		existing, err := e.store.FileByPath(path)
		if err != nil {
			return nil, fmt.Errorf("lookup %s: %w", path, err)
		}
		if !changed[path] && existing != nil {
			fileIDs[path] = existing.ID
			continue
		}
		if existing != nil {
			if err := e.store.DeleteFileData(existing.ID); err != nil {
				return nil, fmt.Errorf("delete old data %s: %w", path, err)
			}
		}
		id, err := e.store.InsertFile(&store.File{
			Path:        path,
			Package:     pkgByPath[path],
			Hash:        hash,
			LastIndexed: time.Now(),
		})
		if err != nil {
			return nil, fmt.Errorf("insert file %s: %w", path, err)
		}
		fileIDs[path] = id
	}
	return fileIDs, nil
}

// rewriteTypes writes the types rows for changed files and returns the file
// ID attributed to every binary name in the project, changed or not.
func (e *Engine) rewriteTypes(proj *Project, fileIDs map[string]int64, changed map[string]bool) (map[string]int64, error) {
	typeFiles := make(map[string]int64)
	rowIDs := make(map[*model.TypeElement]int64)

	for _, te := range proj.TypeElements() {
		binary, err := proj.Types.QualifiedName(te)
		if err != nil {
			return nil, fmt.Errorf("qualified name for %s: %w", te.QualifiedName(), err)
		}
		path := proj.FileOf(te)
		fileID, ok := fileIDs[path]
		if !ok {
			continue
		}
		typeFiles[binary] = fileID
		if !changed[path] {
			continue
		}

		var parentID *int64
		if enclosing, ok := te.Enclosing().(*model.TypeElement); ok {
			if id, ok := rowIDs[enclosing]; ok {
				parentID = &id
			}
		}
		decl := &store.TypeDecl{
			FileID:        fileID,
			QualifiedName: te.QualifiedName(),
			BinaryName:    binary,
			Kind:          te.ElemKind(),
			ParentTypeID:  parentID,
		}
		id, err := e.store.InsertType(decl)
		if err != nil {
			return nil, fmt.Errorf("insert type %s: %w", binary, err)
		}
		rowIDs[te] = id
	}
	return typeFiles, nil
}

// rewriteMetadata regenerates the derived tables from the bound project.
func (e *Engine) rewriteMetadata(proj *Project, typeFiles map[string]int64, stats *IndexStats) error {
	md, err := proj.Metadata()
	if err != nil {
		return fmt.Errorf("extract metadata: %w", err)
	}

	if err := e.store.ClearDerived(); err != nil {
		return err
	}

	for _, g := range md.Groups {
		if _, err := e.store.InsertGroup(&store.PropertyGroup{
			FileID:     fileRef(typeFiles, g.SourceType),
			Name:       g.Name,
			Type:       g.Type,
			SourceType: g.SourceType,
		}); err != nil {
			return err
		}
	}
	for _, p := range md.Properties {
		defaultValue := ""
		if p.DefaultValue != nil {
			b, err := json.Marshal(p.DefaultValue)
			if err != nil {
				return fmt.Errorf("encode default for %s: %w", p.Name, err)
			}
			defaultValue = string(b)
		}
		if _, err := e.store.InsertProperty(&store.Property{
			FileID:       fileRef(typeFiles, p.SourceType),
			GroupName:    groupName(p.Name),
			Name:         p.Name,
			Type:         p.Type,
			Description:  p.Description,
			DefaultValue: defaultValue,
			SourceType:   p.SourceType,
		}); err != nil {
			return err
		}
	}

	stats.Groups = len(md.Groups)
	stats.Properties = len(md.Properties)
	return nil
}

func fileRef(typeFiles map[string]int64, binary string) *int64 {
	if id, ok := typeFiles[binary]; ok {
		return &id
	}
	return nil
}

// groupName returns the group a property belongs to: everything before the
// last dot of its name. Dashed field segments never contain dots, so this
// matches the prefix the property was emitted under.
func groupName(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[:i]
		}
	}
	return ""
}
