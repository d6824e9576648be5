package parser_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-catgen/internal/manifest/parser"
	"github.com/goliatone/go-catgen/pkg/manifest"
	"github.com/goliatone/go-catgen/pkg/testsupport"
)

func parseManifest(t *testing.T, payload string) (manifest.Manifest, error) {
	t.Helper()
	doc, err := manifest.NewDocument(manifest.SourceFromFile("catalog.yaml"), []byte(payload))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	return parser.New().Parse(context.Background(), doc)
}

func TestParserParsesSampleManifest(t *testing.T) {
	m, err := parser.New().Parse(testsupport.Context(), testsupport.SampleManifestDocument(t))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if m.Catalog.Name != "demo" {
		t.Fatalf("unexpected catalog name: %q", m.Catalog.Name)
	}
	if len(m.Catalog.Databases) != 2 {
		t.Fatalf("expected 2 databases, got %d", len(m.Catalog.Databases))
	}

	events := m.Catalog.Databases[0].Tables[0]
	if events.Kind != "delta" || events.URI != "s3://lake/analytics/events" {
		t.Fatalf("unexpected events table: %+v", events)
	}
	if len(events.Columns) != 4 || events.Columns[3].Type != "list<string>" {
		t.Fatalf("unexpected columns: %+v", events.Columns)
	}
	if events.PartitioningScheme != "hive" {
		t.Fatalf("unexpected scheme: %q", events.PartitioningScheme)
	}
	if events.Roapi == nil || !events.Roapi.UseMemoryTable {
		t.Fatalf("unexpected roapi options: %+v", events.Roapi)
	}

	countries := m.Catalog.Databases[1].Tables[0]
	if countries.Kind != "static" || len(countries.Rows) != 2 {
		t.Fatalf("unexpected countries table: %+v", countries)
	}
}

func TestParserParsesJSONManifests(t *testing.T) {
	payload := `{"catalog": {"name": "demo", "databases": [{"name": "db", "tables": [
		{"name": "t", "kind": "parquet", "uri": "s3://lake/t", "columns": [{"name": "a", "type": "int64"}]}
	]}]}}`

	m, err := parseManifest(t, payload)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m.Catalog.Databases[0].Tables[0].Columns[0].Name != "a" {
		t.Fatalf("unexpected manifest: %+v", m)
	}
}

func TestParserValidation(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		wantErr string
	}{
		{
			name:    "missing catalog name",
			payload: "catalog:\n  databases: []\n",
			wantErr: "catalog name is required",
		},
		{
			name: "duplicate database",
			payload: `catalog:
  name: demo
  databases:
    - name: db
    - name: db
`,
			wantErr: `duplicate database "db"`,
		},
		{
			name: "duplicate table",
			payload: `catalog:
  name: demo
  databases:
    - name: db
      tables:
        - name: t
          kind: static
          columns: [{name: a, type: string}]
        - name: t
          kind: static
          columns: [{name: a, type: string}]
`,
			wantErr: `duplicate table "t"`,
		},
		{
			name: "parquet without uri",
			payload: `catalog:
  name: demo
  databases:
    - name: db
      tables:
        - name: t
          kind: parquet
          columns: [{name: a, type: string}]
`,
			wantErr: "require a uri",
		},
		{
			name: "static with uri",
			payload: `catalog:
  name: demo
  databases:
    - name: db
      tables:
        - name: t
          kind: static
          uri: s3://lake/t
          columns: [{name: a, type: string}]
`,
			wantErr: "do not take a uri",
		},
		{
			name: "rows on parquet table",
			payload: `catalog:
  name: demo
  databases:
    - name: db
      tables:
        - name: t
          kind: parquet
          uri: s3://lake/t
          columns: [{name: a, type: string}]
          rows:
            - a: x
`,
			wantErr: "only valid for static tables",
		},
		{
			name: "unknown kind",
			payload: `catalog:
  name: demo
  databases:
    - name: db
      tables:
        - name: t
          kind: iceberg
          uri: s3://lake/t
          columns: [{name: a, type: string}]
`,
			wantErr: `unknown kind "iceberg"`,
		},
		{
			name: "no columns and no schema_from",
			payload: `catalog:
  name: demo
  databases:
    - name: db
      tables:
        - name: t
          kind: parquet
          uri: s3://lake/t
`,
			wantErr: "columns or schema_from is required",
		},
		{
			name: "columns and schema_from together",
			payload: `catalog:
  name: demo
  databases:
    - name: db
      tables:
        - name: t
          kind: parquet
          uri: s3://lake/t
          columns: [{name: a, type: string}]
          schema_from: {source: api.yaml, component: Thing}
`,
			wantErr: "mutually exclusive",
		},
		{
			name: "invalid column type",
			payload: `catalog:
  name: demo
  databases:
    - name: db
      tables:
        - name: t
          kind: parquet
          uri: s3://lake/t
          columns: [{name: a, type: varchar}]
`,
			wantErr: "unknown data type",
		},
		{
			name: "partitions without scheme",
			payload: `catalog:
  name: demo
  databases:
    - name: db
      tables:
        - name: t
          kind: parquet
          uri: s3://lake/t
          columns: [{name: a, type: string}]
          partitions: [{column: a, type: string}]
`,
			wantErr: "require a partitioning_scheme",
		},
		{
			name: "partition column not in schema",
			payload: `catalog:
  name: demo
  databases:
    - name: db
      tables:
        - name: t
          kind: parquet
          uri: s3://lake/t
          columns: [{name: a, type: string}]
          partitioning_scheme: hive
          partitions: [{column: b, type: string}]
`,
			wantErr: `partition column "b" not in schema`,
		},
		{
			name: "invalid docs filter operator",
			payload: `catalog:
  name: demo
  databases:
    - name: db
      tables:
        - name: t
          kind: parquet
          uri: s3://lake/t
          columns: [{name: a, type: string}]
          docs_filters: [{column: a, operator: between, value: 1}]
`,
			wantErr: `invalid operator "between"`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseManifest(t, tc.payload)
			if err == nil {
				t.Fatalf("expected error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error mismatch: want substring %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestParserRejectsMalformedYAML(t *testing.T) {
	_, err := parseManifest(t, "catalog: [unbalanced")
	if err == nil || !strings.Contains(err.Error(), "decode document") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestParserHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := parser.New().Parse(ctx, testsupport.SampleManifestDocument(t))
	if err == nil {
		t.Fatal("expected context error")
	}
}
