package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	catgen "github.com/goliatone/go-catgen"
	"github.com/goliatone/go-catgen/pkg/manifest"
	"github.com/goliatone/go-catgen/pkg/model"
	"github.com/goliatone/go-catgen/pkg/orchestrator"
	"github.com/goliatone/go-catgen/pkg/render"
)

func main() {
	source := flag.String("manifest", "catalog.yaml", "catalog manifest path or URL")
	out := flag.String("out", "site", "output directory for generated artifacts")
	renderers := flag.String("renderers", "site,jsonexport,roapi", "comma separated renderer names")
	baseURL := flag.String("base-url", "", "base URL stamped into generated pages")
	minify := flag.Bool("minify", false, "minify HTML and CSS artifacts")
	interactive := flag.Bool("interactive", false, "browse the catalog instead of exporting")
	flag.Parse()

	ctx := context.Background()

	src := parseSource(*source)
	if src == nil {
		log.Fatalf("invalid manifest source: %q", *source)
	}

	gen := orchestrator.New(
		orchestrator.WithLoader(catgen.NewLoader(manifest.WithHTTPFallback(0))),
	)

	req := orchestrator.Request{
		Source:    src,
		Renderers: splitRenderers(*renderers),
		RenderOptions: render.RenderOptions{
			BaseURL: *baseURL,
			Minify:  *minify,
		},
	}

	if *interactive {
		if err := browse(ctx, gen, req); err != nil {
			log.Fatalf("Failed to browse catalog: %v", err)
		}
		return
	}

	if err := gen.Export(ctx, req, *out); err != nil {
		log.Fatalf("Failed to generate site: %v", err)
	}
	fmt.Printf("Catalog site written to %s\n", *out)
}

// browse walks the catalog with interactive prompts: pick a database, pick
// a table, print its description.
func browse(ctx context.Context, gen *orchestrator.Orchestrator, req orchestrator.Request) error {
	cat, err := gen.Describe(ctx, req)
	if err != nil {
		return err
	}
	if len(cat.Databases) == 0 {
		fmt.Println("Catalog has no databases.")
		return nil
	}

	dbNames := make([]string, 0, len(cat.Databases))
	for _, db := range cat.Databases {
		dbNames = append(dbNames, db.Name)
	}

	var dbName string
	if err := survey.AskOne(&survey.Select{
		Message: "Database:",
		Options: dbNames,
	}, &dbName); err != nil {
		return err
	}

	var db model.Database
	for _, candidate := range cat.Databases {
		if candidate.Name == dbName {
			db = candidate
			break
		}
	}
	if len(db.Tables) == 0 {
		fmt.Printf("Database %s has no tables.\n", dbName)
		return nil
	}

	tableNames := make([]string, 0, len(db.Tables))
	for _, tbl := range db.Tables {
		tableNames = append(tableNames, tbl.Name)
	}

	var tableName string
	if err := survey.AskOne(&survey.Select{
		Message: "Table:",
		Options: tableNames,
	}, &tableName); err != nil {
		return err
	}

	tbl, ok := cat.Table(dbName, tableName)
	if !ok {
		return fmt.Errorf("unknown table %s.%s", dbName, tableName)
	}
	printTable(dbName, tbl)
	return nil
}

func printTable(database string, tbl model.Table) {
	fmt.Printf("%s.%s (%s)\n", database, tbl.Name, tbl.Kind)
	if tbl.URI != "" {
		fmt.Printf("  uri: %s\n", tbl.URI)
	}
	if tbl.Description != "" {
		fmt.Printf("  %s\n", tbl.Description)
	}
	fmt.Println("  columns:")
	for _, col := range tbl.Columns {
		nullable := ""
		if col.Nullable {
			nullable = " nullable"
		}
		fmt.Printf("    %-24s %s%s\n", col.Name, col.Type, nullable)
	}
	if len(tbl.Partitions) > 0 {
		parts := make([]string, 0, len(tbl.Partitions))
		for _, part := range tbl.Partitions {
			parts = append(parts, part.Column)
		}
		fmt.Printf("  partitions (%s): %s\n", tbl.PartitioningScheme, strings.Join(parts, ", "))
	}
	if len(tbl.UniqueColumns) > 0 {
		fmt.Printf("  unique: %s\n", strings.Join(tbl.UniqueColumns, ", "))
	}
}

func parseSource(raw string) manifest.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return manifest.SourceFromURL(path)
	}
	return manifest.SourceFromFile(path)
}

func splitRenderers(raw string) []string {
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}
