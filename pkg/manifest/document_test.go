package manifest_test

import (
	"testing"

	"github.com/goliatone/go-catgen/pkg/manifest"
)

func TestNewDocumentValidatesInputs(t *testing.T) {
	src := manifest.SourceFromFile("catalog.yaml")

	if _, err := manifest.NewDocument(nil, []byte("x")); err == nil {
		t.Fatal("expected error for nil source")
	}
	if _, err := manifest.NewDocument(src, nil); err == nil {
		t.Fatal("expected error for empty payload")
	}

	doc, err := manifest.NewDocument(src, []byte("catalog: {}"))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	if doc.Location() != "catalog.yaml" {
		t.Fatalf("unexpected location: %s", doc.Location())
	}
	if doc.Source().Kind() != manifest.SourceKindFile {
		t.Fatalf("unexpected kind: %s", doc.Source().Kind())
	}
}

func TestDocumentRawIsDefensivelyCopied(t *testing.T) {
	payload := []byte("catalog: {}")
	doc := manifest.MustNewDocument(manifest.SourceFromFile("catalog.yaml"), payload)

	payload[0] = 'X'
	if raw := doc.Raw(); raw[0] != 'c' {
		t.Fatal("document aliases caller buffer")
	}

	raw := doc.Raw()
	raw[0] = 'X'
	if again := doc.Raw(); again[0] != 'c' {
		t.Fatal("Raw exposes internal buffer")
	}
}

func TestSourceKinds(t *testing.T) {
	if src := manifest.SourceFromFile("./a/../catalog.yaml"); src.Location() != "catalog.yaml" {
		t.Fatalf("expected cleaned path, got %s", src.Location())
	}
	if src := manifest.SourceFromFS("manifests/catalog.yaml"); src.Kind() != manifest.SourceKindFS {
		t.Fatalf("unexpected kind: %s", src.Kind())
	}
	if src := manifest.SourceFromURL("https://example.com/catalog.yaml"); src.Kind() != manifest.SourceKindURL {
		t.Fatalf("unexpected kind: %s", src.Kind())
	}
}

func TestSourceFromURLPanicsOnInvalidInput(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for invalid URL")
		}
	}()
	manifest.SourceFromURL("://nope")
}
