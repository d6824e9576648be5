package catgen_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	catgen "github.com/goliatone/go-catgen"
	"github.com/goliatone/go-catgen/pkg/export"
	"github.com/goliatone/go-catgen/pkg/manifest"
	"github.com/goliatone/go-catgen/pkg/orchestrator"
	"github.com/goliatone/go-catgen/pkg/testsupport"
)

func TestGenerateSiteWritesAllArtifacts(t *testing.T) {
	fsys := fstest.MapFS{
		"catalog.yaml": &fstest.MapFile{Data: []byte(testsupport.SampleManifestYAML)},
	}
	dir := t.TempDir()

	err := catgen.GenerateSite(
		context.Background(),
		manifest.SourceFromFS("catalog.yaml"),
		dir,
		orchestrator.WithLoader(catgen.NewLoader(manifest.WithFileSystem(fsys))),
	)
	if err != nil {
		t.Fatalf("generate site: %v", err)
	}

	for _, name := range []string{
		"index.html",
		filepath.Join("tables", "analytics", "events.html"),
		filepath.Join("tables", "reference", "countries.html"),
		filepath.Join("assets", "catgen-site.css"),
		"data.json",
		filepath.Join("roapi", "tables.yaml"),
	} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("missing artifact %s: %v", name, err)
		}
	}

	raw, err := os.ReadFile(filepath.Join(dir, "data.json"))
	if err != nil {
		t.Fatalf("read data.json: %v", err)
	}
	var data export.ExportedData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("decode data.json: %v", err)
	}
	if data.Catalog != "demo" || len(data.Tables) != 2 {
		t.Fatalf("unexpected export payload: %+v", data)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	files := catgen.EmbeddedTemplates()
	for _, name := range []string{"templates/index.html.tmpl", "templates/table.html.tmpl"} {
		if _, err := files.Open(name); err != nil {
			t.Fatalf("missing embedded template %s: %v", name, err)
		}
	}
}
