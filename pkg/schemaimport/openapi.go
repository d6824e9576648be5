// Package schemaimport fills table columns from OpenAPI component schemas so
// catalogs can stay in sync with the services that publish the data.
package schemaimport

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	internalloader "github.com/goliatone/go-catgen/internal/manifest/loader"
	"github.com/goliatone/go-catgen/pkg/manifest"
)

// Importer resolves schema_from references into inline column definitions.
type Importer struct {
	loader manifest.Loader
}

// Option customises the importer.
type Option func(*Importer)

// WithLoader injects the document loader used to fetch OpenAPI sources.
func WithLoader(loader manifest.Loader) Option {
	return func(i *Importer) {
		if loader != nil {
			i.loader = loader
		}
	}
}

// New constructs an Importer. Without options it loads files and, when a
// source is a URL, falls back to HTTP.
func New(options ...Option) *Importer {
	i := &Importer{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(i)
	}
	if i.loader == nil {
		i.loader = internalloader.New(manifest.NewLoaderOptions(
			manifest.WithHTTPFallback(0),
		))
	}
	return i
}

// Resolve replaces every schema_from reference in the manifest with the
// imported columns. Documents are fetched once per distinct source.
func (i *Importer) Resolve(ctx context.Context, m *manifest.Manifest) error {
	if m == nil {
		return errors.New("schemaimport: manifest is nil")
	}

	docs := make(map[string]*openapi3.T)

	for d := range m.Catalog.Databases {
		db := &m.Catalog.Databases[d]
		for t := range db.Tables {
			tbl := &db.Tables[t]
			if tbl.SchemaFrom == nil {
				continue
			}

			doc, ok := docs[tbl.SchemaFrom.Source]
			if !ok {
				loaded, err := i.loadDocument(ctx, tbl.SchemaFrom.Source)
				if err != nil {
					return fmt.Errorf("schemaimport: table %q: %w", tbl.Name, err)
				}
				doc = loaded
				docs[tbl.SchemaFrom.Source] = doc
			}

			columns, err := componentColumns(doc, tbl.SchemaFrom.Component)
			if err != nil {
				return fmt.Errorf("schemaimport: table %q: %w", tbl.Name, err)
			}
			tbl.Columns = columns
			tbl.SchemaFrom = nil
		}
	}

	return nil
}

func (i *Importer) loadDocument(ctx context.Context, source string) (*openapi3.T, error) {
	src := sourceFor(source)
	doc, err := i.loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", source, err)
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(doc.Raw())
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", source, err)
	}
	return spec, nil
}

func sourceFor(raw string) manifest.Source {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return manifest.SourceFromURL(raw)
	}
	return manifest.SourceFromFile(raw)
}

func componentColumns(doc *openapi3.T, component string) ([]manifest.ColumnDef, error) {
	if doc.Components == nil || doc.Components.Schemas == nil {
		return nil, fmt.Errorf("document declares no component schemas")
	}
	ref, ok := doc.Components.Schemas[component]
	if !ok || ref.Value == nil {
		return nil, fmt.Errorf("component schema %q not found", component)
	}

	schema := ref.Value
	if !schema.Type.Is(openapi3.TypeObject) {
		return nil, fmt.Errorf("component schema %q is not an object", component)
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	columns := make([]manifest.ColumnDef, 0, len(names))
	for _, name := range names {
		prop := schema.Properties[name]
		if prop == nil || prop.Value == nil {
			return nil, fmt.Errorf("component schema %q: property %q has no schema", component, name)
		}
		columnType, err := columnType(prop.Value)
		if err != nil {
			return nil, fmt.Errorf("component schema %q: property %q: %w", component, name, err)
		}
		_, isRequired := required[name]
		columns = append(columns, manifest.ColumnDef{
			Name:     name,
			Type:     columnType,
			Nullable: !isRequired,
		})
	}

	return columns, nil
}

func columnType(schema *openapi3.Schema) (string, error) {
	switch {
	case schema.Type.Is(openapi3.TypeString):
		switch schema.Format {
		case "date":
			return "date", nil
		case "date-time":
			return "timestamp", nil
		default:
			return "string", nil
		}
	case schema.Type.Is(openapi3.TypeInteger):
		if schema.Format == "int32" {
			return "int32", nil
		}
		return "int64", nil
	case schema.Type.Is(openapi3.TypeNumber):
		if schema.Format == "float" {
			return "float32", nil
		}
		return "float64", nil
	case schema.Type.Is(openapi3.TypeBoolean):
		return "bool", nil
	case schema.Type.Is(openapi3.TypeArray):
		if schema.Items == nil || schema.Items.Value == nil {
			return "", fmt.Errorf("array property requires items")
		}
		elem, err := columnType(schema.Items.Value)
		if err != nil {
			return "", err
		}
		return "list<" + elem + ">", nil
	default:
		return "", fmt.Errorf("unsupported schema type %v", schema.Type)
	}
}
