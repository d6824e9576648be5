package manifest

import "errors"

// Document pairs a raw manifest payload with the source it was loaded
// from. The payload is copied on the way in and on the way out, so a
// Document never aliases caller-owned bytes.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument validates and wraps a loaded manifest payload.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("manifest: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("manifest: raw document is empty")
	}
	return Document{source: src, raw: append([]byte(nil), raw...)}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source reports where the document came from.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location is a shorthand for the source location; empty for a zero
// Document.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}
