package table

import (
	"context"
	"fmt"
)

// Kind identifies the physical format backing a table.
type Kind string

const (
	KindParquet Kind = "parquet"
	KindDelta   Kind = "delta"
	KindStatic  Kind = "static"
)

// Row is a single record keyed by column name.
type Row = map[string]any

// RoapiOptions control how a table is exposed through a generated ROAPI
// configuration.
type RoapiOptions struct {
	UseMemoryTable        bool
	Disable               bool
	OverrideName          string
	ReloadIntervalSeconds int
}

// DeltaRoapiOptions returns the ROAPI defaults for delta tables, which reload
// periodically to pick up new commits.
func DeltaRoapiOptions() RoapiOptions {
	return RoapiOptions{ReloadIntervalSeconds: 60}
}

// Metadata carries the descriptive attributes shared by every table kind.
type Metadata struct {
	URI           string
	Description   string
	Partitions    []Partition
	Scheme        PartitioningScheme
	DocsFilters   []Filter
	UniqueColumns []string
	Roapi         *RoapiOptions
}

// Table is a named, typed dataset registered in a catalog database.
type Table interface {
	Name() string
	Kind() Kind
	Schema() Schema
	Metadata() Metadata
	Scan(ctx context.Context, options ...ScanOption) ([]Row, error)
}

// ScanOption customises a table scan.
type ScanOption func(*ScanConfig)

// ScanConfig is the resolved scan configuration.
type ScanConfig struct {
	Filters NormalizedFilters
	Limit   int

	err error
}

// Err reports configuration errors collected while applying options. Scans
// check it before doing any work.
func (c ScanConfig) Err() error {
	return c.err
}

// WithFilters applies filters to the scan. Accepts the same shapes as
// NormalizeFilters; invalid input surfaces when the scan runs.
func WithFilters(filters any) ScanOption {
	return func(cfg *ScanConfig) {
		normalized, err := NormalizeFilters(filters)
		if err != nil {
			cfg.err = err
			return
		}
		cfg.Filters = normalized
	}
}

// WithNormalizedFilters applies already-normalized filters to the scan.
func WithNormalizedFilters(filters NormalizedFilters) ScanOption {
	return func(cfg *ScanConfig) {
		cfg.Filters = filters
	}
}

// WithLimit caps the number of rows returned by the scan. Zero means no
// limit.
func WithLimit(limit int) ScanOption {
	return func(cfg *ScanConfig) {
		if limit > 0 {
			cfg.Limit = limit
		}
	}
}

func newScanConfig(options []ScanOption) ScanConfig {
	cfg := ScanConfig{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// conjunctionFilters returns the filters usable for partition pruning: the
// single AND-group when the scan has exactly one, nil otherwise. Pruning
// across OR-groups would require per-group listing and is not worth the
// complexity for doc and preview scans.
func conjunctionFilters(cfg ScanConfig) []Filter {
	if len(cfg.Filters) != 1 {
		return nil
	}
	return cfg.Filters[0]
}

func validateRow(schema Schema, row Row) error {
	for column := range row {
		if _, ok := schema.Column(column); !ok {
			return fmt.Errorf("table: row references unknown column %q", column)
		}
	}
	return nil
}
