package table_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-catgen/pkg/table"
)

func countriesTable(t *testing.T) *table.StaticTable {
	t.Helper()

	schema := table.MustNewSchema(
		table.Column{Name: "code", Type: table.Scalar(table.TypeString)},
		table.Column{Name: "population", Type: table.Scalar(table.TypeInt64)},
	)
	tbl, err := table.NewStaticTable("countries", schema, []table.Row{
		{"code": "AR", "population": int64(45000000)},
		{"code": "NZ", "population": int64(5000000)},
		{"code": "UY", "population": int64(3500000)},
	}, table.WithStaticDescription("Country reference data"))
	if err != nil {
		t.Fatalf("new static table: %v", err)
	}
	return tbl
}

func TestStaticTableScan(t *testing.T) {
	ctx := context.Background()
	tbl := countriesTable(t)

	t.Run("unfiltered scan returns every row", func(t *testing.T) {
		rows, err := tbl.Scan(ctx)
		if err != nil {
			t.Fatalf("scan: %v", err)
		}
		if len(rows) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(rows))
		}
	})

	t.Run("equality filter selects matching rows", func(t *testing.T) {
		rows, err := tbl.Scan(ctx, table.WithFilters(table.NewFilter("code", table.OpEqual, "NZ")))
		if err != nil {
			t.Fatalf("scan: %v", err)
		}
		want := []table.Row{{"code": "NZ", "population": int64(5000000)}}
		if diff := cmp.Diff(want, rows); diff != "" {
			t.Fatalf("rows mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("numeric values compare across int widths", func(t *testing.T) {
		rows, err := tbl.Scan(ctx, table.WithFilters(table.NewFilter("population", table.OpEqual, 3500000)))
		if err != nil {
			t.Fatalf("scan: %v", err)
		}
		if len(rows) != 1 || rows[0]["code"] != "UY" {
			t.Fatalf("unexpected rows: %v", rows)
		}
	})

	t.Run("limit caps results", func(t *testing.T) {
		rows, err := tbl.Scan(ctx, table.WithLimit(2))
		if err != nil {
			t.Fatalf("scan: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(rows))
		}
	})

	t.Run("non-equality operator errors", func(t *testing.T) {
		_, err := tbl.Scan(ctx, table.WithFilters(table.NewFilter("population", table.OpGreater, 0)))
		if err == nil || !strings.Contains(err.Error(), "only evaluate equality filters") {
			t.Fatalf("expected equality-only error, got %v", err)
		}
	})

	t.Run("unknown column errors", func(t *testing.T) {
		_, err := tbl.Scan(ctx, table.WithFilters(table.NewFilter("continent", table.OpEqual, "SA")))
		if err == nil || !strings.Contains(err.Error(), "invalid column name continent") {
			t.Fatalf("expected invalid column error, got %v", err)
		}
	})

	t.Run("invalid filter shape surfaces on scan", func(t *testing.T) {
		_, err := tbl.Scan(ctx, table.WithFilters("code = 'AR'"))
		if err == nil {
			t.Fatal("expected error for invalid filter input")
		}
	})
}

func TestNewStaticTableValidation(t *testing.T) {
	schema := table.MustNewSchema(
		table.Column{Name: "code", Type: table.Scalar(table.TypeString)},
	)

	t.Run("row with unknown column", func(t *testing.T) {
		_, err := table.NewStaticTable("bad", schema, []table.Row{{"nope": 1}})
		if err == nil || !strings.Contains(err.Error(), "unknown column") {
			t.Fatalf("expected unknown column error, got %v", err)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		if _, err := table.NewStaticTable(" ", schema, nil); err == nil {
			t.Fatal("expected name error")
		}
	})

	t.Run("missing schema", func(t *testing.T) {
		if _, err := table.NewStaticTable("x", table.Schema{}, nil); err == nil {
			t.Fatal("expected schema error")
		}
	})

	t.Run("metadata carries description", func(t *testing.T) {
		tbl := countriesTable(t)
		if tbl.Metadata().Description != "Country reference data" {
			t.Fatalf("unexpected description: %q", tbl.Metadata().Description)
		}
		if tbl.Kind() != table.KindStatic {
			t.Fatalf("unexpected kind: %s", tbl.Kind())
		}
	})
}
