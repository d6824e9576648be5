package orchestrator

import (
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-catgen/pkg/render"
)

// ThemeSelector resolves a theme name and variant into a selection whose
// manifest carries the design tokens renderers consume.
type ThemeSelector interface {
	Select(name, variant string, opts ...theme.QueryOption) (*theme.Selection, error)
}

// applyTheme resolves the requested theme and merges its tokens into the
// render options. Variant tokens override base tokens; tokens already set
// on the request win over both.
func (o *Orchestrator) applyTheme(req Request, opts *render.RenderOptions) error {
	if req.ThemeName == "" {
		return nil
	}
	if o.themes == nil {
		return fmt.Errorf("orchestrator: theme %q requested but no theme selector configured", req.ThemeName)
	}

	selection, err := o.themes.Select(req.ThemeName, req.ThemeVariant)
	if err != nil {
		return fmt.Errorf("orchestrator: select theme %q: %w", req.ThemeName, err)
	}
	if selection == nil || selection.Manifest == nil {
		return nil
	}

	tokens := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
	}
	for key, value := range opts.ThemeTokens {
		tokens[key] = value
	}
	opts.ThemeTokens = tokens
	return nil
}
