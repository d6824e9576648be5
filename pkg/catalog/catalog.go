// Package catalog holds the runtime registry for code-defined catalogs:
// named databases of live tables that can be scanned programmatically or
// described into the render model.
package catalog

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-catgen/pkg/model"
	"github.com/goliatone/go-catgen/pkg/table"
)

// Database exposes a namespace of tables.
type Database interface {
	Name() string
	Description() string
	Tables() []string
	Table(name string) (table.Table, error)
}

// Catalog stores databases by name, providing discovery and duplication
// safeguards.
type Catalog struct {
	mu          sync.RWMutex
	name        string
	description string
	databases   map[string]Database
}

// New creates a catalog with the given name.
func New(name string, databases ...Database) (*Catalog, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("catalog: name is required")
	}
	c := &Catalog{
		name:      name,
		databases: make(map[string]Database, len(databases)),
	}
	for _, db := range databases {
		if err := c.Register(db); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MustNew panics on construction failure. Useful for init-time wiring.
func MustNew(name string, databases ...Database) *Catalog {
	c, err := New(name, databases...)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the catalog name.
func (c *Catalog) Name() string {
	return c.name
}

// SetDescription attaches a catalog-level description shown on the site
// index.
func (c *Catalog) SetDescription(description string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.description = strings.TrimSpace(description)
}

// Register adds a database by its Name(). Duplicate names return an error.
func (c *Catalog) Register(db Database) error {
	if db == nil {
		return fmt.Errorf("catalog: database is required")
	}
	name := db.Name()
	if name == "" {
		return fmt.Errorf("catalog: database name is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.databases[name]; exists {
		return fmt.Errorf("catalog: database %q already registered", name)
	}

	c.databases[name] = db
	return nil
}

// Database retrieves a database by name.
func (c *Catalog) Database(name string) (Database, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	db, ok := c.databases[name]
	if !ok {
		return nil, fmt.Errorf("catalog: database %q not found", name)
	}
	return db, nil
}

// Databases returns a sorted list of database names.
func (c *Catalog) Databases() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.databases))
	for name := range c.databases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Table retrieves a table by database and table name.
func (c *Catalog) Table(database, name string) (table.Table, error) {
	db, err := c.Database(database)
	if err != nil {
		return nil, err
	}
	return db.Table(name)
}

// Describe flattens the live catalog into the render model, so code-defined
// catalogs feed the same pipeline as manifest-defined ones.
func (c *Catalog) Describe() model.CatalogModel {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := model.CatalogModel{
		Name:        c.name,
		Description: c.description,
	}

	names := make([]string, 0, len(c.databases))
	for name := range c.databases {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		db := c.databases[name]
		database := model.Database{
			Name:        db.Name(),
			Description: db.Description(),
		}
		for _, tableName := range db.Tables() {
			tbl, err := db.Table(tableName)
			if err != nil {
				continue
			}
			database.Tables = append(database.Tables, describeTable(tbl))
		}
		out.Databases = append(out.Databases, database)
	}

	return out
}

func describeTable(tbl table.Table) model.Table {
	schema := tbl.Schema()
	meta := tbl.Metadata()

	columns := make([]model.Column, 0, len(schema.Columns))
	for _, col := range schema.Columns {
		columns = append(columns, model.Column{
			Name:     col.Name,
			Type:     col.Type.String(),
			Nullable: col.Nullable,
		})
	}

	partitions := make([]model.Partition, 0, len(meta.Partitions))
	for _, partition := range meta.Partitions {
		partitions = append(partitions, model.Partition{
			Column: partition.Column,
			Type:   partition.Type.String(),
		})
	}

	filters := make([]model.Filter, 0, len(meta.DocsFilters))
	for _, filter := range meta.DocsFilters {
		filters = append(filters, model.Filter{
			Column:   filter.Column,
			Operator: string(filter.Operator),
			Value:    filter.Value,
		})
	}

	var roapi *model.Roapi
	if meta.Roapi != nil {
		roapi = &model.Roapi{
			UseMemoryTable:        meta.Roapi.UseMemoryTable,
			Disable:               meta.Roapi.Disable,
			OverrideName:          meta.Roapi.OverrideName,
			ReloadIntervalSeconds: meta.Roapi.ReloadIntervalSeconds,
		}
	}

	return model.Table{
		Name:               tbl.Name(),
		Kind:               string(tbl.Kind()),
		URI:                meta.URI,
		Description:        meta.Description,
		Columns:            columns,
		Partitions:         partitions,
		PartitioningScheme: string(meta.Scheme),
		DocsFilters:        filters,
		UniqueColumns:      meta.UniqueColumns,
		Roapi:              roapi,
	}
}
