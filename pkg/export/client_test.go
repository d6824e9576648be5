package export_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-catgen/pkg/export"
)

const sampleExport = `{
  "catalog": "demo",
  "description": "Demo catalog",
  "generatedAt": "2024-06-01T12:00:00Z",
  "tables": [
    {
      "database": "analytics",
      "name": "events",
      "kind": "delta",
      "uri": "s3://lake/analytics/events",
      "columns": [
        {"name": "event_id", "type": "string"},
        {"name": "user_id", "type": "int64"}
      ],
      "partitions": [{"name": "event_id", "type": "string"}],
      "partitioningScheme": "hive",
      "uniqueColumns": ["event_id"]
    },
    {
      "database": "reference",
      "name": "countries",
      "kind": "static"
    }
  ]
}`

func newExportServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != export.DataPath {
			t.Errorf("unexpected request path %q", r.URL.Path)
		}
		if accept := r.Header.Get("Accept"); accept != "application/json" {
			t.Errorf("unexpected accept header %q", accept)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func TestClientLoadDecodesExport(t *testing.T) {
	server, _ := newExportServer(t, http.StatusOK, sampleExport)

	client, err := export.NewClient(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	data, err := client.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := export.ExportedData{
		Catalog:     "demo",
		Description: "Demo catalog",
		GeneratedAt: "2024-06-01T12:00:00Z",
		Tables: []export.ExportedTable{
			{
				Database:           "analytics",
				Name:               "events",
				Kind:               "delta",
				URI:                "s3://lake/analytics/events",
				Columns:            []export.ExportedColumn{{Name: "event_id", Type: "string"}, {Name: "user_id", Type: "int64"}},
				Partitions:         []export.ExportedColumn{{Name: "event_id", Type: "string"}},
				PartitioningScheme: "hive",
				UniqueColumns:      []string{"event_id"},
			},
			{Database: "reference", Name: "countries", Kind: "static"},
		},
	}
	if diff := cmp.Diff(want, data); diff != "" {
		t.Fatalf("export mismatch (-want +got):\n%s", diff)
	}
}

func TestClientLoadIsMemoized(t *testing.T) {
	server, hits := newExportServer(t, http.StatusOK, sampleExport)

	client, err := export.NewClient(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	first, err := client.Load(context.Background())
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	second, err := client.Load(context.Background())
	if err != nil {
		t.Fatalf("second load: %v", err)
	}

	if hits.Load() != 1 {
		t.Fatalf("expected one request, server saw %d", hits.Load())
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("memoized result differs (-first +second):\n%s", diff)
	}
}

func TestClientLoadReportsStatusText(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusNotFound, "Failed to load data: Not Found"},
		{http.StatusInternalServerError, "Failed to load data: Internal Server Error"},
		{http.StatusMovedPermanently, "Failed to load data: Moved Permanently"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			server, _ := newExportServer(t, tc.status, "")

			client, err := export.NewClient(server.URL)
			if err != nil {
				t.Fatalf("new client: %v", err)
			}

			_, err = client.Load(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tc.want {
				t.Fatalf("error = %q, want %q", err, tc.want)
			}
		})
	}
}

type statusLineTransport struct {
	code   int
	status string
}

func (tr statusLineTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: tr.code,
		Status:     tr.status,
		Body:       io.NopCloser(strings.NewReader("")),
		Header:     make(http.Header),
	}, nil
}

func TestClientLoadKeepsNonStandardReasonPhrase(t *testing.T) {
	client, err := export.NewClient("http://catalog.example.com",
		export.WithHTTPClient(&http.Client{Transport: statusLineTransport{code: 599, status: "599 Upstream Melted"}}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.Load(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if got, want := err.Error(), "Failed to load data: Upstream Melted"; got != want {
		t.Fatalf("error = %q, want %q", got, want)
	}
}

func TestClientLoadMemoizesErrors(t *testing.T) {
	server, hits := newExportServer(t, http.StatusNotFound, "")

	client, err := export.NewClient(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := client.Load(context.Background()); err == nil {
		t.Fatal("expected error on first load")
	}
	if _, err := client.Load(context.Background()); err == nil {
		t.Fatal("expected error on second load")
	}
	if hits.Load() != 1 {
		t.Fatalf("expected one request, server saw %d", hits.Load())
	}
}

func TestClientLoadRejectsMalformedJSON(t *testing.T) {
	server, _ := newExportServer(t, http.StatusOK, "{not json")

	client, err := export.NewClient(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.Load(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode export") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestClientTable(t *testing.T) {
	server, _ := newExportServer(t, http.StatusOK, sampleExport)

	client, err := export.NewClient(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	tbl, err := client.Table(context.Background(), "analytics", "events")
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	if tbl.URI != "s3://lake/analytics/events" {
		t.Fatalf("unexpected table uri %q", tbl.URI)
	}

	if _, err := client.Table(context.Background(), "analytics", "missing"); err == nil {
		t.Fatal("expected error for unknown table")
	}
}

func TestNewClientValidatesBaseURL(t *testing.T) {
	for _, raw := range []string{"ftp://example.com", "example.com", ""} {
		if _, err := export.NewClient(raw); err == nil {
			t.Fatalf("expected error for base url %q", raw)
		}
	}
}
