package orchestrator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	internalloader "github.com/goliatone/go-catgen/internal/manifest/loader"
	"github.com/goliatone/go-catgen/pkg/catalog"
	"github.com/goliatone/go-catgen/pkg/manifest"
	"github.com/goliatone/go-catgen/pkg/model"
	"github.com/goliatone/go-catgen/pkg/render"
	"github.com/goliatone/go-catgen/pkg/table"
	"github.com/goliatone/go-catgen/pkg/testsupport"
)

type captureRenderer struct {
	name      string
	artifacts []render.Artifact
	err       error

	catalog model.CatalogModel
	options render.RenderOptions
	calls   int
}

func (r *captureRenderer) Name() string {
	return r.name
}

func (r *captureRenderer) Render(_ context.Context, cat model.CatalogModel, options render.RenderOptions) ([]render.Artifact, error) {
	r.calls++
	r.catalog = cat
	r.options = options
	return r.artifacts, r.err
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	name      string
	variant   string
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.name = name
	s.variant = variant
	return s.selection, s.err
}

type descriptionDecorator struct {
	suffix string
}

func (d descriptionDecorator) Decorate(cat *model.CatalogModel) error {
	cat.Description += d.suffix
	return nil
}

func fsOrchestrator(renderer render.Renderer, options ...Option) *Orchestrator {
	fsys := fstest.MapFS{
		"catalog.yaml": &fstest.MapFile{Data: []byte(testsupport.SampleManifestYAML)},
	}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	base := []Option{
		WithLoader(internalloader.New(manifest.NewLoaderOptions(manifest.WithFileSystem(fsys)))),
		WithRegistry(registry),
		WithDefaultRenderer(renderer.Name()),
	}
	return New(append(base, options...)...)
}

func TestGenerateFromManifestSource(t *testing.T) {
	renderer := &captureRenderer{
		name:      "capture",
		artifacts: []render.Artifact{{Path: "index.html", Data: []byte("ok")}},
	}
	orch := fsOrchestrator(renderer)

	artifacts, err := orch.Generate(context.Background(), Request{
		Source: manifest.SourceFromFS("catalog.yaml"),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(artifacts) != 1 || artifacts[0].Path != "index.html" {
		t.Fatalf("unexpected artifacts: %+v", artifacts)
	}
	if renderer.calls != 1 {
		t.Fatalf("renderer called %d times", renderer.calls)
	}
	if diff := cmp.Diff(testsupport.SampleCatalogModel(), renderer.catalog); diff != "" {
		t.Fatalf("rendered model mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateRunsRenderersInRequestOrder(t *testing.T) {
	first := &captureRenderer{name: "alpha", artifacts: []render.Artifact{{Path: "a.out"}}}
	second := &captureRenderer{name: "beta", artifacts: []render.Artifact{{Path: "b.out"}}}

	fsys := fstest.MapFS{
		"catalog.yaml": &fstest.MapFile{Data: []byte(testsupport.SampleManifestYAML)},
	}
	registry := render.NewRegistry()
	registry.MustRegister(first)
	registry.MustRegister(second)

	orch := New(
		WithLoader(internalloader.New(manifest.NewLoaderOptions(manifest.WithFileSystem(fsys)))),
		WithRegistry(registry),
	)

	artifacts, err := orch.Generate(context.Background(), Request{
		Source:    manifest.SourceFromFS("catalog.yaml"),
		Renderers: []string{"beta", "alpha"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	var paths []string
	for _, artifact := range artifacts {
		paths = append(paths, artifact.Path)
	}
	if diff := cmp.Diff([]string{"b.out", "a.out"}, paths); diff != "" {
		t.Fatalf("artifact order mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateUnknownRenderer(t *testing.T) {
	renderer := &captureRenderer{name: "capture"}
	orch := fsOrchestrator(renderer)

	_, err := orch.Generate(context.Background(), Request{
		Source:    manifest.SourceFromFS("catalog.yaml"),
		Renderers: []string{"nope"},
	})
	if err == nil || !strings.Contains(err.Error(), `renderer "nope"`) {
		t.Fatalf("expected unknown renderer error, got %v", err)
	}
}

func TestGenerateAppliesDecorators(t *testing.T) {
	renderer := &captureRenderer{name: "capture"}
	orch := fsOrchestrator(renderer, WithDecorators(descriptionDecorator{suffix: " (decorated)"}))

	if _, err := orch.Generate(context.Background(), Request{
		Source: manifest.SourceFromFS("catalog.yaml"),
	}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !strings.HasSuffix(renderer.catalog.Description, " (decorated)") {
		t.Fatalf("decorator did not run: %q", renderer.catalog.Description)
	}
}

func TestGenerateMergesThemeTokens(t *testing.T) {
	selector := &stubThemeSelector{
		selection: &theme.Selection{
			Theme:   "acme",
			Variant: "dark",
			Manifest: &theme.Manifest{
				Name: "acme",
				Tokens: map[string]string{
					"brand":   "#111111",
					"surface": "#ffffff",
				},
				Variants: map[string]theme.Variant{
					"dark": {Tokens: map[string]string{"surface": "#000000"}},
				},
			},
		},
	}

	renderer := &captureRenderer{name: "capture"}
	orch := fsOrchestrator(renderer, WithThemeSelector(selector))

	_, err := orch.Generate(context.Background(), Request{
		Source:       manifest.SourceFromFS("catalog.yaml"),
		ThemeName:    "acme",
		ThemeVariant: "dark",
		RenderOptions: render.RenderOptions{
			ThemeTokens: map[string]string{"brand": "#222222"},
		},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if selector.name != "acme" || selector.variant != "dark" {
		t.Fatalf("selector saw %q/%q", selector.name, selector.variant)
	}

	want := map[string]string{
		"brand":   "#222222", // request token wins over the theme
		"surface": "#000000", // variant token wins over the base
	}
	if diff := cmp.Diff(want, renderer.options.ThemeTokens); diff != "" {
		t.Fatalf("theme tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateThemeWithoutSelector(t *testing.T) {
	renderer := &captureRenderer{name: "capture"}
	orch := fsOrchestrator(renderer)

	_, err := orch.Generate(context.Background(), Request{
		Source:    manifest.SourceFromFS("catalog.yaml"),
		ThemeName: "acme",
	})
	if err == nil || !strings.Contains(err.Error(), "no theme selector configured") {
		t.Fatalf("expected theme selector error, got %v", err)
	}
}

func TestGenerateFromCatalog(t *testing.T) {
	schema := table.MustNewSchema(
		table.Column{Name: "code", Type: table.Scalar(table.TypeString)},
	)
	tbl, err := table.NewStaticTable("countries", schema, []table.Row{{"code": "AR"}})
	if err != nil {
		t.Fatalf("new table: %v", err)
	}
	cat := catalog.MustNew("demo", catalog.MustNewStaticDatabase("reference", tbl))

	renderer := &captureRenderer{name: "capture"}
	orch := fsOrchestrator(renderer)

	if _, err := orch.Generate(context.Background(), Request{Catalog: cat}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, ok := renderer.catalog.Table("reference", "countries"); !ok {
		t.Fatalf("catalog-backed model missing table: %+v", renderer.catalog)
	}
}

func TestGenerateRequiresAnInput(t *testing.T) {
	renderer := &captureRenderer{name: "capture"}
	orch := fsOrchestrator(renderer)

	_, err := orch.Generate(context.Background(), Request{})
	if err == nil || !strings.Contains(err.Error(), "source, document, or catalog is required") {
		t.Fatalf("expected input error, got %v", err)
	}
}

func TestGenerateRendererFailure(t *testing.T) {
	renderer := &captureRenderer{name: "capture", err: errors.New("boom")}
	orch := fsOrchestrator(renderer)

	_, err := orch.Generate(context.Background(), Request{
		Source: manifest.SourceFromFS("catalog.yaml"),
	})
	if err == nil || !strings.Contains(err.Error(), "render capture: boom") {
		t.Fatalf("expected renderer failure, got %v", err)
	}
}

func TestDescribeSkipsRendering(t *testing.T) {
	renderer := &captureRenderer{name: "capture"}
	orch := fsOrchestrator(renderer, WithDecorators(descriptionDecorator{suffix: "!"}))

	cat, err := orch.Describe(context.Background(), Request{
		Source: manifest.SourceFromFS("catalog.yaml"),
	})
	if err != nil {
		t.Fatalf("describe: %v", err)
	}

	if renderer.calls != 0 {
		t.Fatalf("describe invoked the renderer %d times", renderer.calls)
	}
	if !strings.HasSuffix(cat.Description, "!") {
		t.Fatalf("decorator did not run: %q", cat.Description)
	}
	if len(cat.Databases) != 2 {
		t.Fatalf("unexpected databases: %+v", cat.Databases)
	}
}

func TestExportWritesArtifacts(t *testing.T) {
	renderer := &captureRenderer{
		name: "capture",
		artifacts: []render.Artifact{
			{Path: "index.html", Data: []byte("<html>")},
			{Path: "tables/analytics/events.html", Data: []byte("<html>")},
		},
	}
	orch := fsOrchestrator(renderer)

	dir := t.TempDir()
	err := orch.Export(context.Background(), Request{
		Source: manifest.SourceFromFS("catalog.yaml"),
	}, dir)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	for _, name := range []string{"index.html", filepath.Join("tables", "analytics", "events.html")} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("missing exported artifact %s: %v", name, err)
		}
	}
}

func TestExportRejectsEscapingPaths(t *testing.T) {
	renderer := &captureRenderer{
		name:      "capture",
		artifacts: []render.Artifact{{Path: "../outside.html", Data: []byte("x")}},
	}
	orch := fsOrchestrator(renderer)

	err := orch.Export(context.Background(), Request{
		Source: manifest.SourceFromFS("catalog.yaml"),
	}, t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "escapes output directory") {
		t.Fatalf("expected path escape error, got %v", err)
	}
}
