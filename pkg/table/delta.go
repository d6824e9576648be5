package table

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-catgen/pkg/storage"
)

// DeltaTable is a table backed by a delta lake directory: parquet data files
// plus a _delta_log of JSON commit files that determines which data files are
// live.
type DeltaTable struct {
	name   string
	uri    string
	schema Schema
	meta   Metadata
	store  storage.ObjectStore
}

// DeltaOption customises a DeltaTable.
type DeltaOption func(*DeltaTable)

// WithDeltaObjectStore injects the object store backing the table.
func WithDeltaObjectStore(store storage.ObjectStore) DeltaOption {
	return func(t *DeltaTable) {
		t.store = store
	}
}

// WithDeltaDescription attaches the table description shown on doc pages.
func WithDeltaDescription(description string) DeltaOption {
	return func(t *DeltaTable) {
		t.meta.Description = strings.TrimSpace(description)
	}
}

// WithDeltaDocsFilters attaches sample filters rendered in generated docs.
func WithDeltaDocsFilters(filters ...Filter) DeltaOption {
	return func(t *DeltaTable) {
		t.meta.DocsFilters = filters
	}
}

// WithDeltaUniqueColumns declares the columns that uniquely identify a row.
func WithDeltaUniqueColumns(columns ...string) DeltaOption {
	return func(t *DeltaTable) {
		t.meta.UniqueColumns = columns
	}
}

// WithDeltaRoapiOptions attaches ROAPI exposure settings. Delta defaults
// apply when this option is omitted.
func WithDeltaRoapiOptions(options RoapiOptions) DeltaOption {
	return func(t *DeltaTable) {
		opts := options
		t.meta.Roapi = &opts
	}
}

// NewDeltaTable constructs a delta-backed table rooted at the given URI.
func NewDeltaTable(name, uri string, schema Schema, options ...DeltaOption) (*DeltaTable, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("table: delta table name is required")
	}
	if strings.TrimSpace(uri) == "" {
		return nil, fmt.Errorf("table: delta table %q: uri is required", name)
	}
	if len(schema.Columns) == 0 {
		return nil, fmt.Errorf("table: delta table %q: schema is required", name)
	}

	t := &DeltaTable{
		name:   name,
		uri:    strings.TrimRight(uri, "/"),
		schema: schema,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}
	t.meta.URI = t.uri
	if t.meta.Roapi == nil {
		defaults := DeltaRoapiOptions()
		t.meta.Roapi = &defaults
	}

	return t, nil
}

func (t *DeltaTable) Name() string       { return t.name }
func (t *DeltaTable) Kind() Kind         { return KindDelta }
func (t *DeltaTable) Schema() Schema     { return t.schema }
func (t *DeltaTable) Metadata() Metadata { return t.meta }

// Scan resolves the live file set from the delta log and reads the parquet
// payloads.
func (t *DeltaTable) Scan(ctx context.Context, options ...ScanOption) ([]Row, error) {
	cfg := newScanConfig(options)
	if err := cfg.Err(); err != nil {
		return nil, fmt.Errorf("table: scan %s: %w", t.name, err)
	}
	if t.store == nil {
		return nil, fmt.Errorf("table: scan %s: no object store configured", t.name)
	}

	files, err := t.liveFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("table: scan %s: %w", t.name, err)
	}

	return readParquetFiles(ctx, t.store, t.schema, files, cfg.Limit)
}

type deltaAction struct {
	Add *struct {
		Path string `json:"path"`
	} `json:"add"`
	Remove *struct {
		Path string `json:"path"`
	} `json:"remove"`
}

// liveFiles folds the add/remove actions of every commit, in version order,
// into the set of currently live data files.
func (t *DeltaTable) liveFiles(ctx context.Context) ([]string, error) {
	commits, err := t.store.List(ctx, t.uri+"/_delta_log/")
	if err != nil {
		return nil, err
	}

	var logs []string
	for _, path := range commits {
		if strings.HasSuffix(path, ".json") {
			logs = append(logs, path)
		}
	}
	if len(logs) == 0 {
		return nil, fmt.Errorf("no delta log found under %s", t.uri)
	}
	sort.Strings(logs)

	live := make(map[string]struct{})
	for _, path := range logs {
		data, err := t.store.Get(ctx, path)
		if err != nil {
			return nil, err
		}
		if err := foldDeltaCommit(data, live); err != nil {
			return nil, fmt.Errorf("commit %q: %w", path, err)
		}
	}

	files := make([]string, 0, len(live))
	for path := range live {
		files = append(files, t.uri+"/"+path)
	}
	sort.Strings(files)
	return files, nil
}

func foldDeltaCommit(data []byte, live map[string]struct{}) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var action deltaAction
		if err := json.Unmarshal(line, &action); err != nil {
			return fmt.Errorf("parse action: %w", err)
		}
		if action.Add != nil && action.Add.Path != "" {
			live[action.Add.Path] = struct{}{}
		}
		if action.Remove != nil && action.Remove.Path != "" {
			delete(live, action.Remove.Path)
		}
	}
	return scanner.Err()
}
