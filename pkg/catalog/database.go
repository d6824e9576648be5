package catalog

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-catgen/pkg/table"
)

// StaticDatabase is a Database backed by an explicit table map. It is the
// usual way code-defined catalogs assemble their namespaces.
type StaticDatabase struct {
	mu          sync.RWMutex
	name        string
	description string
	tables      map[string]table.Table
}

// Ensure the implementation satisfies the interface.
var _ Database = (*StaticDatabase)(nil)

// NewStaticDatabase creates a database with the given tables registered.
func NewStaticDatabase(name string, tables ...table.Table) (*StaticDatabase, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("catalog: database name is required")
	}
	db := &StaticDatabase{
		name:   name,
		tables: make(map[string]table.Table, len(tables)),
	}
	for _, tbl := range tables {
		if err := db.Register(tbl); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// MustNewStaticDatabase panics on construction failure.
func MustNewStaticDatabase(name string, tables ...table.Table) *StaticDatabase {
	db, err := NewStaticDatabase(name, tables...)
	if err != nil {
		panic(err)
	}
	return db
}

// Name returns the database name.
func (d *StaticDatabase) Name() string {
	return d.name
}

// Description returns the database description.
func (d *StaticDatabase) Description() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.description
}

// SetDescription attaches a description shown on the site index.
func (d *StaticDatabase) SetDescription(description string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.description = strings.TrimSpace(description)
}

// Register adds a table by its Name(). Duplicate names return an error.
func (d *StaticDatabase) Register(tbl table.Table) error {
	if tbl == nil {
		return fmt.Errorf("catalog: table is required")
	}
	name := tbl.Name()
	if name == "" {
		return fmt.Errorf("catalog: table name is required")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.tables[name]; exists {
		return fmt.Errorf("catalog: table %q already registered in database %q", name, d.name)
	}

	d.tables[name] = tbl
	return nil
}

// Tables returns a sorted list of table names.
func (d *StaticDatabase) Tables() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.tables))
	for name := range d.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Table retrieves a table by name.
func (d *StaticDatabase) Table(name string) (table.Table, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	tbl, ok := d.tables[name]
	if !ok {
		return nil, fmt.Errorf("catalog: table %q not found in database %q", name, d.name)
	}
	return tbl, nil
}
