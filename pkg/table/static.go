package table

import (
	"context"
	"fmt"
	"reflect"
	"strings"
)

// StaticTable holds its rows in memory. It is the catalog's rendition of
// code-defined tables: small reference datasets that ship with the catalog
// instead of living in object storage.
type StaticTable struct {
	name   string
	schema Schema
	rows   []Row
	meta   Metadata
}

// StaticOption customises a StaticTable.
type StaticOption func(*StaticTable)

// WithStaticDescription attaches the table description shown on doc pages.
func WithStaticDescription(description string) StaticOption {
	return func(t *StaticTable) {
		t.meta.Description = strings.TrimSpace(description)
	}
}

// WithStaticDocsFilters attaches sample filters rendered in generated docs.
func WithStaticDocsFilters(filters ...Filter) StaticOption {
	return func(t *StaticTable) {
		t.meta.DocsFilters = filters
	}
}

// NewStaticTable constructs an in-memory table. Rows may only reference
// schema columns.
func NewStaticTable(name string, schema Schema, rows []Row, options ...StaticOption) (*StaticTable, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("table: static table name is required")
	}
	if len(schema.Columns) == 0 {
		return nil, fmt.Errorf("table: static table %q: schema is required", name)
	}
	for i, row := range rows {
		if err := validateRow(schema, row); err != nil {
			return nil, fmt.Errorf("table: static table %q row %d: %w", name, i, err)
		}
	}

	t := &StaticTable{name: name, schema: schema, rows: rows}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}
	return t, nil
}

func (t *StaticTable) Name() string       { return t.name }
func (t *StaticTable) Kind() Kind         { return KindStatic }
func (t *StaticTable) Schema() Schema     { return t.schema }
func (t *StaticTable) Metadata() Metadata { return t.meta }

// Scan returns the in-memory rows. Only equality filters are evaluated; the
// other operators target external engines and report an error here.
func (t *StaticTable) Scan(_ context.Context, options ...ScanOption) ([]Row, error) {
	cfg := newScanConfig(options)
	if err := cfg.Err(); err != nil {
		return nil, fmt.Errorf("table: scan %s: %w", t.name, err)
	}

	filters := conjunctionFilters(cfg)
	for _, f := range filters {
		if f.Operator != OpEqual {
			return nil, fmt.Errorf("table: scan %s: static tables only evaluate equality filters, got %q", t.name, f.Operator)
		}
		if _, ok := t.schema.Column(f.Column); !ok {
			return nil, fmt.Errorf("table: scan %s: invalid column name %s", t.name, f.Column)
		}
	}

	out := make([]Row, 0, len(t.rows))
	for _, row := range t.rows {
		if !rowMatches(row, filters) {
			continue
		}
		out = append(out, row)
		if cfg.Limit > 0 && len(out) >= cfg.Limit {
			break
		}
	}
	return out, nil
}

func rowMatches(row Row, filters []Filter) bool {
	for _, f := range filters {
		value, ok := row[f.Column]
		if !ok {
			return false
		}
		if !looseEqual(value, f.Value) {
			return false
		}
	}
	return true
}

// looseEqual compares across the numeric kinds JSON and manifests blur
// together, falling back to DeepEqual for everything else.
func looseEqual(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	return aok && bok && af == bf
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
