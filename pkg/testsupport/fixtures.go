// Package testsupport holds fixture helpers shared by the package test
// suites: manifest loading, golden files, and a canonical sample catalog.
package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-catgen/pkg/manifest"
	pkgmodel "github.com/goliatone/go-catgen/pkg/model"
)

// LoadDocument reads a fixture and builds a manifest.Document using a file
// source. Testing helpers fail the test on error to keep contract tests
// concise.
func LoadDocument(t *testing.T, path string) manifest.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T,
// allowing callers to wire fixtures in setup functions.
func LoadDocumentFromPath(path string) (manifest.Document, error) {
	if path == "" {
		return manifest.Document{}, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return manifest.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := manifest.NewDocument(manifest.SourceFromFile(path), data)
	if err != nil {
		return manifest.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// MustLoadCatalogModel loads a JSON golden file into a CatalogModel.
func MustLoadCatalogModel(t *testing.T, path string) pkgmodel.CatalogModel {
	t.Helper()

	cat, err := LoadCatalogModel(path)
	if err != nil {
		t.Fatalf("load catalog model: %v", err)
	}
	return cat
}

// LoadCatalogModel reads a JSON fixture into a CatalogModel, returning an
// error for callers managing setup outside of *testing.T.
func LoadCatalogModel(path string) (pkgmodel.CatalogModel, error) {
	if path == "" {
		return pkgmodel.CatalogModel{}, errors.New("testsupport: catalog model path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return pkgmodel.CatalogModel{}, fmt.Errorf("testsupport: read catalog model: %w", err)
	}
	var out pkgmodel.CatalogModel
	if err := json.Unmarshal(data, &out); err != nil {
		return pkgmodel.CatalogModel{}, fmt.Errorf("testsupport: unmarshal catalog model: %w", err)
	}
	return out, nil
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is
// set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// SampleManifestYAML is a small but complete catalog manifest covering the
// three table kinds, partitions, and docs filters. Parser, builder, and
// renderer tests share it.
const SampleManifestYAML = `catalog:
  name: demo
  description: Demo catalog
  databases:
    - name: analytics
      description: Derived datasets
      tables:
        - name: events
          kind: delta
          uri: s3://lake/analytics/events
          description: Clickstream events
          columns:
            - name: event_id
              type: string
            - name: user_id
              type: int64
            - name: ts
              type: timestamp
            - name: tags
              type: list<string>
              nullable: true
          partitions:
            - column: event_id
              type: string
          partitioning_scheme: hive
          docs_filters:
            - column: user_id
              operator: "="
              value: 42
          unique_columns: [event_id]
          roapi:
            use_memory_table: true
    - name: reference
      tables:
        - name: countries
          kind: static
          columns:
            - name: code
              type: string
            - name: population
              type: int64
          rows:
            - code: AR
              population: 45000000
            - code: NZ
              population: 5000000
`

// SampleManifestDocument wraps SampleManifestYAML in a Document suitable for
// the parser.
func SampleManifestDocument(t *testing.T) manifest.Document {
	t.Helper()
	doc, err := manifest.NewDocument(manifest.SourceFromFile("sample-catalog.yaml"), []byte(SampleManifestYAML))
	if err != nil {
		t.Fatalf("sample manifest document: %v", err)
	}
	return doc
}

// SampleCatalogModel returns the canonical built model used across renderer
// tests.
func SampleCatalogModel() pkgmodel.CatalogModel {
	return pkgmodel.CatalogModel{
		Name:        "demo",
		Description: "Demo catalog",
		Databases: []pkgmodel.Database{
			{
				Name:        "analytics",
				Description: "Derived datasets",
				Tables: []pkgmodel.Table{
					{
						Name:        "events",
						Kind:        "delta",
						URI:         "s3://lake/analytics/events",
						Description: "Clickstream events",
						Columns: []pkgmodel.Column{
							{Name: "event_id", Type: "string"},
							{Name: "user_id", Type: "int64"},
							{Name: "ts", Type: "timestamp"},
							{Name: "tags", Type: "list<string>", Nullable: true},
						},
						Partitions:         []pkgmodel.Partition{{Column: "event_id", Type: "string"}},
						PartitioningScheme: "hive",
						DocsFilters:        []pkgmodel.Filter{{Column: "user_id", Operator: "=", Value: 42}},
						UniqueColumns:      []string{"event_id"},
						Roapi:              &pkgmodel.Roapi{UseMemoryTable: true, ReloadIntervalSeconds: 60},
					},
				},
			},
			{
				Name: "reference",
				Tables: []pkgmodel.Table{
					{
						Name: "countries",
						Kind: "static",
						Columns: []pkgmodel.Column{
							{Name: "code", Type: "string"},
							{Name: "population", Type: "int64"},
						},
					},
				},
			},
		},
	}
}
