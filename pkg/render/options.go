package render

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the catalog model pipeline.
type RenderOptions struct {
	// BaseURL prefixes links between generated pages so the site can live
	// under a sub-path. Empty means relative links.
	BaseURL string

	// Minify asks renderers that emit text artifacts to minify them.
	Minify bool

	// ThemeTokens carries resolved design tokens (colors, spacing) from the
	// selected theme. Renderers expose them to templates; missing tokens fall
	// back to the built-in stylesheet defaults.
	ThemeTokens map[string]string

	// GeneratedAt is an optional timestamp stamped into artifacts that carry
	// provenance (the JSON export). Renderers leave it out when empty.
	GeneratedAt string
}
