// Package export defines the exported dataset description: the data.json
// document the site generator emits and downstream clients load.
package export

// ExportedData is the top-level shape of data.json. Tables are flattened
// across databases so consumers can scan one list.
type ExportedData struct {
	Catalog     string          `json:"catalog,omitempty"`
	Description string          `json:"description,omitempty"`
	GeneratedAt string          `json:"generatedAt,omitempty"`
	Tables      []ExportedTable `json:"tables"`
}

// ExportedTable describes one table in the export.
type ExportedTable struct {
	Database           string           `json:"database"`
	Name               string           `json:"name"`
	Kind               string           `json:"kind"`
	URI                string           `json:"uri,omitempty"`
	Description        string           `json:"description,omitempty"`
	Columns            []ExportedColumn `json:"columns"`
	Partitions         []ExportedColumn `json:"partitions,omitempty"`
	PartitioningScheme string           `json:"partitioningScheme,omitempty"`
	UniqueColumns      []string         `json:"uniqueColumns,omitempty"`
	DocsFilters        []ExportedFilter `json:"docsFilters,omitempty"`
}

// ExportedColumn is a schema or partition column entry.
type ExportedColumn struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable,omitempty"`
}

// ExportedFilter is a docs sample filter entry.
type ExportedFilter struct {
	Column   string `json:"column"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}
