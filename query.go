package sprout

import (
	"encoding/json"
	"fmt"

	"github.com/jward/sprout/internal/store"
)

// QueryBuilder provides a read API over an indexed Store.
type QueryBuilder struct {
	store *store.Store
}

// Properties returns the indexed properties, sorted by name. A non-empty
// prefix restricts the result to that prefix and everything under it.
func (q *QueryBuilder) Properties(prefix string) ([]*Property, error) {
	props, err := q.store.Properties(prefix)
	if err != nil {
		return nil, fmt.Errorf("properties: %w", err)
	}
	return props, nil
}

// Groups returns every indexed property group, sorted by name.
func (q *QueryBuilder) Groups() ([]*PropertyGroup, error) {
	groups, err := q.store.Groups()
	if err != nil {
		return nil, fmt.Errorf("groups: %w", err)
	}
	return groups, nil
}

// Files returns every indexed source file, sorted by path.
func (q *QueryBuilder) Files() ([]*File, error) {
	files, err := q.store.Files()
	if err != nil {
		return nil, fmt.Errorf("files: %w", err)
	}
	return files, nil
}

// TypeByName looks up an indexed type declaration by its dotted qualified
// name. Returns nil when the type is not indexed.
func (q *QueryBuilder) TypeByName(qname string) (*TypeDecl, error) {
	t, err := q.store.TypeByQualifiedName(qname)
	if err != nil {
		return nil, fmt.Errorf("type by name: %w", err)
	}
	return t, nil
}

// TypesInFile returns the type declarations extracted from the file at
// path, nil when the file is not indexed.
func (q *QueryBuilder) TypesInFile(path string) ([]*TypeDecl, error) {
	f, err := q.store.FileByPath(path)
	if err != nil {
		return nil, fmt.Errorf("types in file: lookup file: %w", err)
	}
	if f == nil {
		return nil, nil
	}
	types, err := q.store.TypesByFile(f.ID)
	if err != nil {
		return nil, fmt.Errorf("types in file: %w", err)
	}
	return types, nil
}

// Document reassembles the full metadata document from the index, in the
// same shape Project.Metadata produces. Stored default values are JSON
// encoded; undecodable values are carried as raw strings rather than
// dropped.
func (q *QueryBuilder) Document() (*Metadata, error) {
	groups, err := q.store.Groups()
	if err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	props, err := q.store.Properties("")
	if err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}

	md := &Metadata{}
	for _, g := range groups {
		md.Groups = append(md.Groups, ItemGroup{
			Name:       g.Name,
			Type:       g.Type,
			SourceType: g.SourceType,
		})
	}
	for _, p := range props {
		item := ItemProperty{
			Name:        p.Name,
			Type:        p.Type,
			Description: p.Description,
			SourceType:  p.SourceType,
		}
		if p.DefaultValue != "" {
			var v any
			if err := json.Unmarshal([]byte(p.DefaultValue), &v); err == nil {
				item.DefaultValue = v
			} else {
				item.DefaultValue = p.DefaultValue
			}
		}
		md.Properties = append(md.Properties, item)
	}
	return md, nil
}
