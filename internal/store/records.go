package store

import (
	"database/sql"
	"fmt"
)

// --- File operations ---

func (s *Store) InsertFile(f *File) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO files (path, package, hash, last_indexed) VALUES (?, ?, ?, ?)",
		f.Path, f.Package, f.Hash, f.LastIndexed,
	)
	if err != nil {
		return 0, fmt.Errorf("insert file: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	f.ID = id
	return id, nil
}

func (s *Store) FileByPath(path string) (*File, error) {
	f := &File{}
	err := s.db.QueryRow(
		"SELECT id, path, package, hash, last_indexed FROM files WHERE path = ?", path,
	).Scan(&f.ID, &f.Path, &f.Package, &f.Hash, &f.LastIndexed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file by path: %w", err)
	}
	return f, nil
}

func (s *Store) Files() ([]*File, error) {
	rows, err := s.db.Query("SELECT id, path, package, hash, last_indexed FROM files ORDER BY path")
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()
	var files []*File
	for rows.Next() {
		f := &File{}
		if err := rows.Scan(&f.ID, &f.Path, &f.Package, &f.Hash, &f.LastIndexed); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// --- Type operations ---

func (s *Store) InsertType(t *TypeDecl) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO types (file_id, qualified_name, binary_name, kind, parent_type_id)
		 VALUES (?, ?, ?, ?, ?)`,
		t.FileID, t.QualifiedName, t.BinaryName, t.Kind, t.ParentTypeID,
	)
	if err != nil {
		return 0, fmt.Errorf("insert type: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	t.ID = id
	return id, nil
}

const typeCols = "id, file_id, qualified_name, binary_name, kind, parent_type_id"

func (s *Store) queryTypes(query string, args ...any) ([]*TypeDecl, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var types []*TypeDecl
	for rows.Next() {
		t := &TypeDecl{}
		if err := rows.Scan(&t.ID, &t.FileID, &t.QualifiedName, &t.BinaryName, &t.Kind, &t.ParentTypeID); err != nil {
			return nil, fmt.Errorf("scan type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (s *Store) TypesByFile(fileID int64) ([]*TypeDecl, error) {
	return s.queryTypes("SELECT "+typeCols+" FROM types WHERE file_id = ? ORDER BY id", fileID)
}

func (s *Store) TypeByQualifiedName(qname string) (*TypeDecl, error) {
	types, err := s.queryTypes("SELECT "+typeCols+" FROM types WHERE qualified_name = ? LIMIT 1", qname)
	if err != nil {
		return nil, err
	}
	if len(types) == 0 {
		return nil, nil
	}
	return types[0], nil
}

// --- Derived metadata operations ---

func (s *Store) InsertGroup(g *PropertyGroup) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO property_groups (file_id, name, type, source_type) VALUES (?, ?, ?, ?)",
		g.FileID, g.Name, g.Type, g.SourceType,
	)
	if err != nil {
		return 0, fmt.Errorf("insert group: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	g.ID = id
	return id, nil
}

func (s *Store) InsertProperty(p *Property) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO properties (file_id, group_name, name, type, description, default_value, source_type)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.FileID, p.GroupName, p.Name, p.Type, p.Description, p.DefaultValue, p.SourceType,
	)
	if err != nil {
		return 0, fmt.Errorf("insert property: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	p.ID = id
	return id, nil
}

func (s *Store) Groups() ([]*PropertyGroup, error) {
	rows, err := s.db.Query("SELECT id, file_id, name, type, source_type FROM property_groups ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()
	var groups []*PropertyGroup
	for rows.Next() {
		g := &PropertyGroup{}
		if err := rows.Scan(&g.ID, &g.FileID, &g.Name, &g.Type, &g.SourceType); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

const propertyCols = "id, file_id, group_name, name, type, description, default_value, source_type"

// Properties returns derived properties ordered by name. A non-empty prefix
// restricts the result to properties under it ("app.server" matches
// "app.server.port" and "app.server" itself).
func (s *Store) Properties(prefix string) ([]*Property, error) {
	query := "SELECT " + propertyCols + " FROM properties ORDER BY name"
	args := []any{}
	if prefix != "" {
		query = "SELECT " + propertyCols + " FROM properties WHERE name = ? OR name LIKE ? ORDER BY name"
		args = []any{prefix, prefix + ".%"}
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()
	var props []*Property
	for rows.Next() {
		p := &Property{}
		if err := rows.Scan(&p.ID, &p.FileID, &p.GroupName, &p.Name, &p.Type, &p.Description, &p.DefaultValue, &p.SourceType); err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		props = append(props, p)
	}
	return props, rows.Err()
}
