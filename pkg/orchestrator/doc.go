// Package orchestrator wires the catalog pipeline end to end: manifest
// loading, parsing, schema imports, model building, decoration, and
// rendering. It applies working defaults so a single constructor call
// yields a usable generator, while every stage stays injectable.
package orchestrator
