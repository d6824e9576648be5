// Package roapi renders a catalog model as a ROAPI tables configuration,
// so the same manifest that documents a catalog can also serve it.
package roapi

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-catgen/pkg/model"
	"github.com/goliatone/go-catgen/pkg/render"
)

// RendererName identifies this renderer in the registry.
const RendererName = "roapi"

// ArtifactPath is the emitted config file relative to the output root.
const ArtifactPath = "roapi/tables.yaml"

// Config is the document shape ROAPI loads.
type Config struct {
	Tables []TableConfig `yaml:"tables"`
}

// TableConfig is one ROAPI table entry.
type TableConfig struct {
	Name           string       `yaml:"name"`
	URI            string       `yaml:"uri"`
	Option         *TableOption `yaml:"option,omitempty"`
	ReloadInterval *Duration    `yaml:"reload_interval,omitempty"`
}

// TableOption selects the ROAPI loader for a table.
type TableOption struct {
	Format         string `yaml:"format"`
	UseMemoryTable bool   `yaml:"use_memory_table"`
}

// Duration serialises as ROAPI's {secs, nanos} pair.
type Duration struct {
	Secs  int `yaml:"secs"`
	Nanos int `yaml:"nanos"`
}

// Renderer emits the ROAPI tables config for a catalog.
type Renderer struct{}

// New returns a ROAPI config renderer.
func New() *Renderer {
	return &Renderer{}
}

// Name implements render.Renderer.
func (r *Renderer) Name() string {
	return RendererName
}

// Render implements render.Renderer. Tables with Roapi.Disable set, and
// tables without a physical URI, are left out of the config.
func (r *Renderer) Render(ctx context.Context, cat model.CatalogModel, _ render.RenderOptions) ([]render.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("roapi renderer: %w", err)
	}

	cfg := Config{Tables: make([]TableConfig, 0)}
	for _, db := range cat.Databases {
		for _, tbl := range db.Tables {
			entry, ok := tableConfig(tbl)
			if !ok {
				continue
			}
			cfg.Tables = append(cfg.Tables, entry)
		}
	}

	payload, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("roapi renderer: marshal config: %w", err)
	}

	return []render.Artifact{{
		Path:        ArtifactPath,
		ContentType: "application/yaml",
		Data:        payload,
	}}, nil
}

func tableConfig(tbl model.Table) (TableConfig, bool) {
	if tbl.URI == "" {
		return TableConfig{}, false
	}
	opts := tbl.Roapi
	if opts != nil && opts.Disable {
		return TableConfig{}, false
	}

	entry := TableConfig{
		Name: tbl.Name,
		URI:  tbl.URI,
	}
	format := roapiFormat(tbl.Kind)
	if format == "" {
		return TableConfig{}, false
	}
	entry.Option = &TableOption{Format: format}

	if opts != nil {
		if opts.OverrideName != "" {
			entry.Name = opts.OverrideName
		}
		entry.Option.UseMemoryTable = opts.UseMemoryTable
		if opts.ReloadIntervalSeconds > 0 {
			entry.ReloadInterval = &Duration{Secs: opts.ReloadIntervalSeconds}
		}
	}
	return entry, true
}

func roapiFormat(kind string) string {
	switch kind {
	case "parquet":
		return "parquet"
	case "delta":
		return "delta"
	default:
		return ""
	}
}
