package table

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/reader"

	"github.com/goliatone/go-catgen/pkg/storage"
)

// ParquetTable is a table backed by parquet files under a URI prefix,
// optionally laid out in hive or directory partitions.
type ParquetTable struct {
	name   string
	uri    string
	schema Schema
	meta   Metadata
	store  storage.ObjectStore
}

// ParquetOption customises a ParquetTable.
type ParquetOption func(*ParquetTable)

// WithObjectStore injects the object store used to list and read data files.
// Scans fail without one; describe-only catalogs can omit it.
func WithObjectStore(store storage.ObjectStore) ParquetOption {
	return func(t *ParquetTable) {
		t.store = store
	}
}

// WithPartitions declares the partition columns and their storage scheme.
func WithPartitions(scheme PartitioningScheme, partitions ...Partition) ParquetOption {
	return func(t *ParquetTable) {
		t.meta.Scheme = scheme
		t.meta.Partitions = partitions
	}
}

// WithDescription attaches the human-readable table description shown on doc
// pages.
func WithDescription(description string) ParquetOption {
	return func(t *ParquetTable) {
		t.meta.Description = strings.TrimSpace(description)
	}
}

// WithDocsFilters attaches the sample filters rendered in generated docs.
func WithDocsFilters(filters ...Filter) ParquetOption {
	return func(t *ParquetTable) {
		t.meta.DocsFilters = filters
	}
}

// WithUniqueColumns declares the columns that uniquely identify a row.
func WithUniqueColumns(columns ...string) ParquetOption {
	return func(t *ParquetTable) {
		t.meta.UniqueColumns = columns
	}
}

// WithRoapiOptions attaches ROAPI exposure settings.
func WithRoapiOptions(options RoapiOptions) ParquetOption {
	return func(t *ParquetTable) {
		opts := options
		t.meta.Roapi = &opts
	}
}

// NewParquetTable constructs a parquet-backed table rooted at the given URI.
func NewParquetTable(name, uri string, schema Schema, options ...ParquetOption) (*ParquetTable, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("table: parquet table name is required")
	}
	if strings.TrimSpace(uri) == "" {
		return nil, fmt.Errorf("table: parquet table %q: uri is required", name)
	}
	if len(schema.Columns) == 0 {
		return nil, fmt.Errorf("table: parquet table %q: schema is required", name)
	}

	t := &ParquetTable{
		name:   name,
		uri:    strings.TrimRight(uri, "/"),
		schema: schema,
		meta:   Metadata{URI: strings.TrimRight(uri, "/")},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}
	t.meta.URI = t.uri

	for _, partition := range t.meta.Partitions {
		if _, ok := schema.Column(partition.Column); !ok {
			return nil, fmt.Errorf("table: parquet table %q: partition column %q not in schema", name, partition.Column)
		}
	}

	return t, nil
}

func (t *ParquetTable) Name() string       { return t.name }
func (t *ParquetTable) Kind() Kind         { return KindParquet }
func (t *ParquetTable) Schema() Schema     { return t.schema }
func (t *ParquetTable) Metadata() Metadata { return t.meta }

// Scan lists the table's data files, pruning partition directories when the
// filters pin a partition column with a single equality filter, and reads the
// matching parquet files.
func (t *ParquetTable) Scan(ctx context.Context, options ...ScanOption) ([]Row, error) {
	cfg := newScanConfig(options)
	if err := cfg.Err(); err != nil {
		return nil, fmt.Errorf("table: scan %s: %w", t.name, err)
	}
	if t.store == nil {
		return nil, fmt.Errorf("table: scan %s: no object store configured", t.name)
	}

	prefix := prunePrefix(t.uri, t.meta.Scheme, t.meta.Partitions, conjunctionFilters(cfg))

	files, err := t.store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("table: scan %s: %w", t.name, err)
	}

	return readParquetFiles(ctx, t.store, t.schema, dataFiles(files), cfg.Limit)
}

// prunePrefix extends the table URI with path segments for every leading
// partition pinned by exactly one equality filter. The first unpinned
// partition stops the descent. The prefix ends with a separator so object
// listings match whole path segments: "device_id=1" must not pick up
// "device_id=11".
func prunePrefix(uri string, scheme PartitioningScheme, partitions []Partition, filters []Filter) string {
	prefix := strings.TrimRight(uri, "/")
	for _, partition := range partitions {
		match, ok := ExactlyOneEqualityFilter(partition, filters)
		if !ok {
			break
		}
		segment := fmt.Sprintf("%v", match.Value)
		if scheme == PartitioningHive {
			segment = partition.Column + "=" + segment
		}
		prefix += "/" + segment
	}
	return prefix + "/"
}

// dataFiles keeps parquet objects and drops checkpoints, logs, and markers.
func dataFiles(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		if !strings.HasSuffix(path, ".parquet") {
			continue
		}
		if strings.Contains(path, "/_delta_log/") {
			continue
		}
		out = append(out, path)
	}
	return out
}

func readParquetFiles(ctx context.Context, store storage.ObjectStore, schema Schema, paths []string, limit int) ([]Row, error) {
	rows := make([]Row, 0)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if limit > 0 && len(rows) >= limit {
			break
		}

		data, err := store.Get(ctx, path)
		if err != nil {
			return nil, err
		}

		fileRows, err := readParquet(data, schema)
		if err != nil {
			return nil, fmt.Errorf("table: read %q: %w", path, err)
		}
		rows = append(rows, fileRows...)
	}

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// readParquet decodes a parquet payload into rows keyed by schema column
// names. The reader materialises records as generated structs; a JSON
// round-trip flattens them into maps, and keys are matched to schema columns
// case-insensitively because parquet-go exports field names title-cased.
func readParquet(data []byte, schema Schema) ([]Row, error) {
	fr, err := buffer.NewBufferFile(data)
	if err != nil {
		return nil, fmt.Errorf("open parquet buffer: %w", err)
	}
	pr, err := reader.NewParquetReader(fr, nil, 1)
	if err != nil {
		return nil, fmt.Errorf("open parquet reader: %w", err)
	}
	defer pr.ReadStop()

	count := int(pr.GetNumRows())
	if count == 0 {
		return nil, nil
	}

	records, err := pr.ReadByNumber(count)
	if err != nil {
		return nil, fmt.Errorf("read parquet rows: %w", err)
	}

	encoded, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("decode parquet rows: %w", err)
	}
	var raw []map[string]any
	if err := json.Unmarshal(encoded, &raw); err != nil {
		return nil, fmt.Errorf("decode parquet rows: %w", err)
	}

	lookup := make(map[string]string, len(schema.Columns))
	for _, col := range schema.Columns {
		lookup[strings.ToLower(col.Name)] = col.Name
	}

	rows := make([]Row, 0, len(raw))
	for _, record := range raw {
		row := make(Row, len(record))
		for key, value := range record {
			name, ok := lookup[strings.ToLower(key)]
			if !ok {
				name = key
			}
			row[name] = value
		}
		rows = append(rows, row)
	}
	return rows, nil
}
