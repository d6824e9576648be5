package orchestrator

import (
	"context"
	"errors"
	"fmt"

	internalLoader "github.com/goliatone/go-catgen/internal/manifest/loader"
	internalParser "github.com/goliatone/go-catgen/internal/manifest/parser"
	"github.com/goliatone/go-catgen/pkg/catalog"
	"github.com/goliatone/go-catgen/pkg/manifest"
	"github.com/goliatone/go-catgen/pkg/model"
	"github.com/goliatone/go-catgen/pkg/render"
	"github.com/goliatone/go-catgen/pkg/renderers/jsonexport"
	"github.com/goliatone/go-catgen/pkg/renderers/roapi"
	"github.com/goliatone/go-catgen/pkg/renderers/site"
	"github.com/goliatone/go-catgen/pkg/schemaimport"
)

const defaultRendererName = site.RendererName

// SchemaImporter resolves schema_from references in a manifest before the
// model is built.
type SchemaImporter interface {
	Resolve(ctx context.Context, m *manifest.Manifest) error
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom manifest loader.
func WithLoader(loader manifest.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom manifest parser.
func WithParser(parser manifest.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithModelBuilder injects a custom catalog model builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithSchemaImporter injects the resolver for schema_from references.
// Pass nil to disable schema imports entirely.
func WithSchemaImporter(importer SchemaImporter) Option {
	return func(o *Orchestrator) {
		o.importer = importer
		o.importerSpecified = true
	}
}

// WithDecorators registers decorators that run against the built catalog
// model before rendering.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithThemeSelector injects the theme lookup used when a request names a
// theme.
func WithThemeSelector(selector ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themes = selector
	}
}

// Orchestrator coordinates the full pipeline from manifest document to
// rendered artifacts. Missing dependencies are initialised with the
// built-in implementations.
type Orchestrator struct {
	loader            manifest.Loader
	parser            manifest.Parser
	builder           model.Builder
	registry          *render.Registry
	importer          SchemaImporter
	importerSpecified bool
	themes            ThemeSelector
	decorators        []model.Decorator
	defaultRenderer   string
	initialiseErr     error
	defaultsApplied   bool
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a catalog.
type Request struct {
	// Source identifies where the manifest lives. Optional when Document
	// or Catalog is supplied.
	Source manifest.Source

	// Document allows callers to bypass the loader when they already have
	// the manifest payload.
	Document *manifest.Document

	// Catalog bypasses the manifest stages entirely and renders a
	// programmatically assembled catalog.
	Catalog *catalog.Catalog

	// Renderers names the renderers to run, in order. Empty means the
	// configured default renderer.
	Renderers []string

	// ThemeName and ThemeVariant select design tokens for HTML output.
	ThemeName    string
	ThemeVariant string

	// RenderOptions carries per-request rendering instructions. When
	// omitted, renderers receive the zero-value struct.
	RenderOptions render.RenderOptions
}

// Generate executes the loader → parser → schema import → model builder →
// renderer sequence and returns every produced artifact.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]render.Artifact, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		if err := o.initialiseErr; err != nil {
			return nil, err
		}
	}

	cat, err := o.resolveModel(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := o.applyDecorators(&cat); err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	if err := o.applyTheme(req, &opts); err != nil {
		return nil, err
	}

	renderers, err := o.renderersFor(req.Renderers)
	if err != nil {
		return nil, err
	}

	var artifacts []render.Artifact
	for _, renderer := range renderers {
		out, err := renderer.Render(ctx, cat, opts)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: render %s: %w", renderer.Name(), err)
		}
		artifacts = append(artifacts, out...)
	}
	return artifacts, nil
}

// Describe runs the pipeline up to the built catalog model without
// rendering. Decorators still apply, so callers see what renderers see.
func (o *Orchestrator) Describe(ctx context.Context, req Request) (model.CatalogModel, error) {
	if ctx == nil {
		return model.CatalogModel{}, errors.New("orchestrator: context is required")
	}
	if err := o.initialiseErr; err != nil {
		return model.CatalogModel{}, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		if err := o.initialiseErr; err != nil {
			return model.CatalogModel{}, err
		}
	}

	cat, err := o.resolveModel(ctx, req)
	if err != nil {
		return model.CatalogModel{}, err
	}
	if err := o.applyDecorators(&cat); err != nil {
		return model.CatalogModel{}, err
	}
	return cat, nil
}

func (o *Orchestrator) resolveModel(ctx context.Context, req Request) (model.CatalogModel, error) {
	if req.Catalog != nil {
		return req.Catalog.Describe(), nil
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return model.CatalogModel{}, err
	}

	parsed, err := o.parser.Parse(ctx, doc)
	if err != nil {
		return model.CatalogModel{}, fmt.Errorf("orchestrator: parse manifest: %w", err)
	}

	if o.importer != nil {
		if err := o.importer.Resolve(ctx, &parsed); err != nil {
			return model.CatalogModel{}, fmt.Errorf("orchestrator: resolve schema imports: %w", err)
		}
	}

	cat, err := o.builder.Build(parsed)
	if err != nil {
		return model.CatalogModel{}, fmt.Errorf("orchestrator: build catalog model: %w", err)
	}
	return cat, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (manifest.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return manifest.Document{}, errors.New("orchestrator: source, document, or catalog is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return manifest.Document{}, fmt.Errorf("orchestrator: load manifest: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) renderersFor(names []string) ([]render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	if len(names) == 0 {
		names = []string{o.defaultRenderer}
	}

	renderers := make([]render.Renderer, 0, len(names))
	for _, name := range names {
		target := name
		if target == "" {
			target = o.defaultRenderer
		}
		renderer, err := o.registry.Get(target)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", target, err)
		}
		renderers = append(renderers, renderer)
	}
	return renderers, nil
}

func (o *Orchestrator) applyDecorators(cat *model.CatalogModel) error {
	if len(o.decorators) == 0 || cat == nil {
		return nil
	}
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(cat); err != nil {
			return fmt.Errorf("orchestrator: decorate catalog: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalLoader.New(manifest.NewLoaderOptions(manifest.WithHTTPFallback(0)))
	}
	if o.parser == nil {
		o.parser = internalParser.New()
	}
	if o.builder == nil {
		o.builder = model.NewBuilder()
	}
	if o.importer == nil && !o.importerSpecified {
		o.importer = schemaimport.New()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		siteRenderer, err := site.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(siteRenderer)
		}
		o.registry.MustRegister(jsonexport.New())
		o.registry.MustRegister(roapi.New())
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}
