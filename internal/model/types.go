package model

// CatalogModel is the renderer-facing description of a catalog: the exported
// dataset description renderers serialise or turn into doc pages. Struct
// fields are annotated so renderers can serialise them directly.
type CatalogModel struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Databases   []Database        `json:"databases"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Database groups tables under a namespace.
type Database struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Tables      []Table `json:"tables"`
}

// Table describes a single dataset: its physical location, schema, and the
// documentation attributes rendered on its page.
type Table struct {
	Name               string            `json:"name"`
	Kind               string            `json:"kind"`
	URI                string            `json:"uri,omitempty"`
	Description        string            `json:"description,omitempty"`
	Columns            []Column          `json:"columns"`
	Partitions         []Partition       `json:"partitions,omitempty"`
	PartitioningScheme string            `json:"partitioningScheme,omitempty"`
	DocsFilters        []Filter          `json:"docsFilters,omitempty"`
	UniqueColumns      []string          `json:"uniqueColumns,omitempty"`
	Roapi              *Roapi            `json:"roapi,omitempty"`
	Metadata           map[string]string `json:"metadata,omitempty"`
}

// Column is one schema entry. Type uses the canonical manifest notation
// (string, int64, list<string>, decimal(12,2), ...).
type Column struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable,omitempty"`
}

// Partition names a partition column in partitioning order.
type Partition struct {
	Column string `json:"column"`
	Type   string `json:"type"`
}

// Filter is a serialisable sample filter shown in generated docs.
type Filter struct {
	Column   string `json:"column"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

// Roapi mirrors the per-table ROAPI exposure settings.
type Roapi struct {
	UseMemoryTable        bool   `json:"useMemoryTable,omitempty"`
	Disable               bool   `json:"disable,omitempty"`
	OverrideName          string `json:"overrideName,omitempty"`
	ReloadIntervalSeconds int    `json:"reloadIntervalSeconds,omitempty"`
}

// Decorator mutates a catalog model after building but before rendering.
type Decorator interface {
	Decorate(*CatalogModel) error
}

// Table returns the named table in the named database.
func (m CatalogModel) Table(database, name string) (Table, bool) {
	for _, db := range m.Databases {
		if db.Name != database {
			continue
		}
		for _, tbl := range db.Tables {
			if tbl.Name == name {
				return tbl, true
			}
		}
	}
	return Table{}, false
}
