// Package jsonexport renders a catalog model as a machine readable
// data.json document describing every table in the catalog.
package jsonexport

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-catgen/pkg/export"
	"github.com/goliatone/go-catgen/pkg/model"
	"github.com/goliatone/go-catgen/pkg/render"
)

// RendererName identifies this renderer in the registry.
const RendererName = "jsonexport"

// ArtifactPath is where the exported document lands relative to the
// output root.
const ArtifactPath = "data.json"

// Renderer emits the exported dataset description consumed by
// export.Client and by the generated site itself.
type Renderer struct{}

// New returns a json export renderer.
func New() *Renderer {
	return &Renderer{}
}

// Name implements render.Renderer.
func (r *Renderer) Name() string {
	return RendererName
}

// Render implements render.Renderer. It flattens the catalog into a
// single table list ordered by database then table name.
func (r *Renderer) Render(ctx context.Context, cat model.CatalogModel, opts render.RenderOptions) ([]render.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("jsonexport renderer: %w", err)
	}

	data := export.ExportedData{
		Catalog:     cat.Name,
		Description: cat.Description,
		GeneratedAt: opts.GeneratedAt,
		Tables:      make([]export.ExportedTable, 0),
	}
	for _, db := range cat.Databases {
		for _, tbl := range db.Tables {
			data.Tables = append(data.Tables, exportTable(db.Name, tbl))
		}
	}

	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("jsonexport renderer: marshal export: %w", err)
	}
	payload = append(payload, '\n')

	return []render.Artifact{{
		Path:        ArtifactPath,
		ContentType: "application/json; charset=utf-8",
		Data:        payload,
	}}, nil
}

func exportTable(database string, tbl model.Table) export.ExportedTable {
	out := export.ExportedTable{
		Database:           database,
		Name:               tbl.Name,
		Kind:               tbl.Kind,
		URI:                tbl.URI,
		Description:        tbl.Description,
		Columns:            make([]export.ExportedColumn, 0, len(tbl.Columns)),
		PartitioningScheme: tbl.PartitioningScheme,
		UniqueColumns:      tbl.UniqueColumns,
	}
	for _, col := range tbl.Columns {
		out.Columns = append(out.Columns, export.ExportedColumn{
			Name:     col.Name,
			Type:     col.Type,
			Nullable: col.Nullable,
		})
	}
	for _, part := range tbl.Partitions {
		out.Partitions = append(out.Partitions, export.ExportedColumn{
			Name: part.Column,
			Type: part.Type,
		})
	}
	for _, flt := range tbl.DocsFilters {
		out.DocsFilters = append(out.DocsFilters, export.ExportedFilter{
			Column:   flt.Column,
			Operator: flt.Operator,
			Value:    flt.Value,
		})
	}
	return out
}
