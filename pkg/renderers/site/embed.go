package site

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

// StylesheetName is the filename of the generated stylesheet artifact.
const StylesheetName = "catgen-site.css"

// TemplatesFS exposes the embedded template bundle for consumers that want to
// use the built-in site rendering out of the box.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded asset bundle so callers can serve it over
// HTTP or copy it into their own pipeline.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		// Should never happen, but fall back to raw FS so assets remain usable.
		return embeddedAssets
	}
	return sub
}

// stylesheet returns the base stylesheet with theme tokens appended as CSS
// custom properties, so a selected theme overrides the defaults.
func stylesheet(tokens map[string]string) string {
	base, err := fs.ReadFile(embeddedAssets, "assets/"+StylesheetName)
	if err != nil {
		return ""
	}
	if len(tokens) == 0 {
		return string(base)
	}

	names := make([]string, 0, len(tokens))
	for name := range tokens {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.Write(base)
	b.WriteString("\n:root {\n")
	for _, name := range names {
		b.WriteString("  --" + name + ": " + tokens[name] + ";\n")
	}
	b.WriteString("}\n")
	return b.String()
}
