// Package site renders a catalog model into a static documentation site: an
// index page, one page per table, and the stylesheet.
package site

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-catgen/pkg/model"
	"github.com/goliatone/go-catgen/pkg/render"
	rendertemplate "github.com/goliatone/go-catgen/pkg/render/template"
	gotemplate "github.com/goliatone/go-catgen/pkg/render/template/gotemplate"
)

// RendererName identifies this renderer in the registry.
const RendererName = "site"

// Option customises the site renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer emits the static HTML site.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

// New constructs the site renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("site renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return RendererName
}

// Render produces the index page, a page per table, and the stylesheet.
func (r *Renderer) Render(ctx context.Context, catalog model.CatalogModel, options render.RenderOptions) ([]render.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("site renderer: template renderer is nil")
	}

	base := strings.TrimRight(options.BaseURL, "/")

	var artifacts []render.Artifact

	index, err := r.templates.RenderTemplate("templates/index.html.tmpl", map[string]any{
		"catalog": indexContext(catalog),
		"base":    base,
		"tokens":  options.ThemeTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("site renderer: render index: %w", err)
	}
	artifacts = append(artifacts, render.Artifact{
		Path:        "index.html",
		ContentType: "text/html; charset=utf-8",
		Data:        []byte(index),
	})

	for _, db := range catalog.Databases {
		for _, tbl := range db.Tables {
			page, err := r.templates.RenderTemplate("templates/table.html.tmpl", map[string]any{
				"catalog":  catalog.Name,
				"database": db.Name,
				"table":    tableContext(tbl),
				"base":     base,
				"tokens":   options.ThemeTokens,
			})
			if err != nil {
				return nil, fmt.Errorf("site renderer: render table %s.%s: %w", db.Name, tbl.Name, err)
			}
			artifacts = append(artifacts, render.Artifact{
				Path:        tablePagePath(db.Name, tbl.Name),
				ContentType: "text/html; charset=utf-8",
				Data:        []byte(page),
			})
		}
	}

	artifacts = append(artifacts, render.Artifact{
		Path:        "assets/" + StylesheetName,
		ContentType: "text/css; charset=utf-8",
		Data:        []byte(stylesheet(options.ThemeTokens)),
	})

	if options.Minify {
		minified, err := minifyArtifacts(artifacts)
		if err != nil {
			return nil, fmt.Errorf("site renderer: minify: %w", err)
		}
		artifacts = minified
	}

	return artifacts, nil
}

func tablePagePath(database, table string) string {
	return "tables/" + database + "/" + table + ".html"
}

// indexContext reshapes the model for the index template: per-database table
// summaries plus page links.
func indexContext(catalog model.CatalogModel) map[string]any {
	databases := make([]map[string]any, 0, len(catalog.Databases))
	for _, db := range catalog.Databases {
		tables := make([]map[string]any, 0, len(db.Tables))
		for _, tbl := range db.Tables {
			tables = append(tables, map[string]any{
				"name":    tbl.Name,
				"kind":    tbl.Kind,
				"href":    tablePagePath(db.Name, tbl.Name),
				"summary": summarize(tbl.Description),
			})
		}
		databases = append(databases, map[string]any{
			"name":        db.Name,
			"description": sanitizeHTML(db.Description),
			"tables":      tables,
		})
	}

	return map[string]any{
		"name":        catalog.Name,
		"description": sanitizeHTML(catalog.Description),
		"databases":   databases,
	}
}

// tableContext reshapes a table for its doc page, attaching a sample query
// derived from the docs filters when they compile cleanly.
func tableContext(tbl model.Table) map[string]any {
	columns := make([]map[string]any, 0, len(tbl.Columns))
	for _, col := range tbl.Columns {
		columns = append(columns, map[string]any{
			"name":     col.Name,
			"type":     col.Type,
			"nullable": col.Nullable,
		})
	}

	partitions := make([]map[string]any, 0, len(tbl.Partitions))
	for _, partition := range tbl.Partitions {
		partitions = append(partitions, map[string]any{
			"column": partition.Column,
			"type":   partition.Type,
		})
	}

	return map[string]any{
		"name":          tbl.Name,
		"kind":          tbl.Kind,
		"uri":           tbl.URI,
		"description":   sanitizeHTML(tbl.Description),
		"columns":       columns,
		"partitions":    partitions,
		"scheme":        tbl.PartitioningScheme,
		"uniqueColumns": tbl.UniqueColumns,
		"sampleQuery":   sampleQuery(tbl),
	}
}

func summarize(description string) string {
	text := sanitizeText(description)
	if idx := strings.IndexAny(text, ".\n"); idx > 0 {
		text = text[:idx+1]
	}
	return strings.TrimSpace(text)
}
