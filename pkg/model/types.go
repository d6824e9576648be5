// Package model re-exports the catalog model so consumers depend on a stable
// public path while the implementation lives under internal.
package model

import internalmodel "github.com/goliatone/go-catgen/internal/model"

// CatalogModel re-exports the renderer-facing catalog description.
type CatalogModel = internalmodel.CatalogModel

// Database re-exports the database grouping.
type Database = internalmodel.Database

// Table re-exports the table description.
type Table = internalmodel.Table

// Column re-exports a schema column entry.
type Column = internalmodel.Column

// Partition re-exports a partition declaration.
type Partition = internalmodel.Partition

// Filter re-exports a docs sample filter.
type Filter = internalmodel.Filter

// Roapi re-exports ROAPI exposure settings.
type Roapi = internalmodel.Roapi

// Decorator re-exports the model decoration hook.
type Decorator = internalmodel.Decorator

// Builder re-exports the manifest-to-model builder contract.
type Builder = internalmodel.Builder

// NewBuilder constructs the default catalog model builder.
func NewBuilder() Builder {
	return internalmodel.NewBuilder()
}
