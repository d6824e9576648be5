package manifest

// Manifest is the decoded form of a catalog definition document. Field names
// follow the YAML notation used in catalog repos; the same structure decodes
// from JSON.
type Manifest struct {
	Catalog CatalogDef `yaml:"catalog" json:"catalog"`
}

// CatalogDef declares the catalog and its databases.
type CatalogDef struct {
	Name        string        `yaml:"name" json:"name"`
	Description string        `yaml:"description,omitempty" json:"description,omitempty"`
	Databases   []DatabaseDef `yaml:"databases" json:"databases"`
}

// DatabaseDef declares a namespace of tables.
type DatabaseDef struct {
	Name        string     `yaml:"name" json:"name"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Tables      []TableDef `yaml:"tables" json:"tables"`
}

// TableDef declares a single table. Parquet and delta tables carry a URI;
// static tables carry inline rows. Columns may be declared inline or imported
// from an OpenAPI component schema via SchemaFrom.
type TableDef struct {
	Name               string           `yaml:"name" json:"name"`
	Kind               string           `yaml:"kind" json:"kind"`
	URI                string           `yaml:"uri,omitempty" json:"uri,omitempty"`
	Description        string           `yaml:"description,omitempty" json:"description,omitempty"`
	Columns            []ColumnDef      `yaml:"columns,omitempty" json:"columns,omitempty"`
	SchemaFrom         *SchemaFrom      `yaml:"schema_from,omitempty" json:"schemaFrom,omitempty"`
	Partitions         []PartitionDef   `yaml:"partitions,omitempty" json:"partitions,omitempty"`
	PartitioningScheme string           `yaml:"partitioning_scheme,omitempty" json:"partitioningScheme,omitempty"`
	DocsFilters        []FilterDef      `yaml:"docs_filters,omitempty" json:"docsFilters,omitempty"`
	UniqueColumns      []string         `yaml:"unique_columns,omitempty" json:"uniqueColumns,omitempty"`
	Roapi              *RoapiDef        `yaml:"roapi,omitempty" json:"roapi,omitempty"`
	Rows               []map[string]any `yaml:"rows,omitempty" json:"rows,omitempty"`
}

// ColumnDef declares a schema column using the canonical type notation.
type ColumnDef struct {
	Name     string `yaml:"name" json:"name"`
	Type     string `yaml:"type" json:"type"`
	Nullable bool   `yaml:"nullable,omitempty" json:"nullable,omitempty"`
}

// SchemaFrom points at an OpenAPI document whose component schema supplies
// the table columns.
type SchemaFrom struct {
	// Source is a file path or URL of the OpenAPI document.
	Source string `yaml:"source" json:"source"`
	// Component names the entry under components.schemas.
	Component string `yaml:"component" json:"component"`
}

// PartitionDef declares a partition column, in partitioning order.
type PartitionDef struct {
	Column string `yaml:"column" json:"column"`
	Type   string `yaml:"type" json:"type"`
}

// FilterDef declares a sample filter rendered in generated docs.
type FilterDef struct {
	Column   string `yaml:"column" json:"column"`
	Operator string `yaml:"operator" json:"operator"`
	Value    any    `yaml:"value" json:"value"`
}

// RoapiDef declares per-table ROAPI exposure settings.
type RoapiDef struct {
	UseMemoryTable        bool   `yaml:"use_memory_table,omitempty" json:"useMemoryTable,omitempty"`
	Disable               bool   `yaml:"disable,omitempty" json:"disable,omitempty"`
	OverrideName          string `yaml:"override_name,omitempty" json:"overrideName,omitempty"`
	ReloadIntervalSeconds int    `yaml:"reload_interval_seconds,omitempty" json:"reloadIntervalSeconds,omitempty"`
}
