package site

import (
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"

	"github.com/goliatone/go-catgen/pkg/render"
)

var minifier = func() *minify.M {
	m := minify.New()
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/css", css.Minify)
	return m
}()

func minifyArtifacts(artifacts []render.Artifact) ([]render.Artifact, error) {
	out := make([]render.Artifact, 0, len(artifacts))
	for _, artifact := range artifacts {
		mediatype, _, _ := strings.Cut(artifact.ContentType, ";")
		data, err := minifier.Bytes(strings.TrimSpace(mediatype), artifact.Data)
		if err != nil {
			if err == minify.ErrNotExist {
				out = append(out, artifact)
				continue
			}
			return nil, err
		}
		artifact.Data = data
		out = append(out, artifact)
	}
	return out, nil
}
