package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/yourorg/hr-field-resolver/internal/alias"
	"github.com/yourorg/hr-field-resolver/internal/config"
	"github.com/yourorg/hr-field-resolver/internal/embedding"
	"github.com/yourorg/hr-field-resolver/internal/facade"
	"github.com/yourorg/hr-field-resolver/internal/resolver"
	"github.com/yourorg/hr-field-resolver/internal/schemaregistry"
	"github.com/yourorg/hr-field-resolver/internal/storage"
	"github.com/yourorg/hr-field-resolver/internal/transform"
)

const (
	version = "1.0.0"
	usage   = `resolvectl - Resolve HR exports against Eightfold entity schemas

Usage:
  resolvectl <command> [options]

Commands:
  ingest           Parse a file and print its ParseMetadata
  detect           Ingest a file and guess its entity type
  map              Ingest a file and auto-map its columns against an entity
  validate         Ingest, auto-map (or load mappings), and validate
  transform        Ingest, auto-map (or load mappings), validate, and emit CSV/XML
  warm-embeddings  Pre-build and persist the Embedding Index for every schema
  version          Print version information

Run 'resolvectl <command> --help' for more information on a command.

Examples:
  resolvectl ingest --input roster.csv
  resolvectl detect --input roster.csv
  resolvectl map --input roster.csv --entity Employee
  resolvectl transform --input roster.csv --entity Employee --format csv --output out.csv
`
)

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "ingest":
		runIngest(os.Args[2:])
	case "detect":
		runDetect(os.Args[2:])
	case "map":
		runMap(os.Args[2:])
	case "validate":
		runValidate(os.Args[2:])
	case "transform":
		runTransform(os.Args[2:])
	case "warm-embeddings":
		runWarmEmbeddings(os.Args[2:])
	case "version", "-v", "--version":
		fmt.Printf("resolvectl version %s\n", version)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		fmt.Print(usage)
		os.Exit(1)
	}
}

// newFacade builds an offline Facade against a fresh registry, default
// aliases, and in-memory storage. The embedding index only activates when
// OPENAI_API_KEY is set; otherwise the Resolver degrades to stages A+C.
func newFacade(cfg *config.Config) *facade.Facade {
	registry, err := schemaregistry.NewRegistryWithPath(cfg.SchemaDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading schema registry: %v\n", err)
		os.Exit(1)
	}
	aliases, err := alias.NewWithDefaultsAndDir(cfg.AliasDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading alias dictionary: %v\n", err)
		os.Exit(1)
	}

	var encoder embedding.TextEncoder
	if cfg.EmbeddingEnabled {
		encoder, err = embedding.NewOpenAIEncoder(cfg.OpenAIAPIKey, cfg.EmbeddingModel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: embedding encoder unavailable, running degraded: %v\n", err)
			encoder = nil
		}
	}
	idx := embedding.NewIndex(encoder, registry, aliases, cfg.EmbeddingCacheDir)

	f := facade.New(storage.New(time.Hour), registry, aliases, idx, cfg.MaxUploadBytes)
	f.UseValueStatistics = cfg.UseValueStatistics
	return f
}

func readInputFile(path string) []byte {
	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
		os.Exit(1)
	}
	return raw
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func runIngest(args []string) {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	input := fs.String("input", "", "Input file path (required)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *input == "" {
		fmt.Fprintln(os.Stderr, "Error: --input is required")
		os.Exit(1)
	}

	cfg := config.LoadConfig()
	f := newFacade(cfg)

	_, meta, err := f.Ingest(readInputFile(*input), *input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error ingesting file: %v\n", err)
		os.Exit(1)
	}
	printJSON(meta)
}

func runDetect(args []string) {
	fs := flag.NewFlagSet("detect", flag.ExitOnError)
	input := fs.String("input", "", "Input file path (required)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *input == "" {
		fmt.Fprintln(os.Stderr, "Error: --input is required")
		os.Exit(1)
	}

	cfg := config.LoadConfig()
	f := newFacade(cfg)

	fileID, _, err := f.Ingest(readInputFile(*input), *input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error ingesting file: %v\n", err)
		os.Exit(1)
	}
	result, err := f.DetectEntity(context.Background(), fileID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error detecting entity: %v\n", err)
		os.Exit(1)
	}
	printJSON(result)
}

func runMap(args []string) {
	fs := flag.NewFlagSet("map", flag.ExitOnError)
	input := fs.String("input", "", "Input file path (required)")
	entity := fs.String("entity", "", "Target entity name (required)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *input == "" || *entity == "" {
		fmt.Fprintln(os.Stderr, "Error: --input and --entity are required")
		os.Exit(1)
	}

	cfg := config.LoadConfig()
	f := newFacade(cfg)

	fileID, _, err := f.Ingest(readInputFile(*input), *input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error ingesting file: %v\n", err)
		os.Exit(1)
	}
	report, err := f.AutoMap(context.Background(), fileID, *entity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error mapping columns: %v\n", err)
		os.Exit(1)
	}
	printJSON(report)
}

func runValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	input := fs.String("input", "", "Input file path (required)")
	entity := fs.String("entity", "", "Target entity name (required)")
	mappingsPath := fs.String("mappings", "", "Path to a mappings JSON file (default: auto-map)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *input == "" || *entity == "" {
		fmt.Fprintln(os.Stderr, "Error: --input and --entity are required")
		os.Exit(1)
	}

	cfg := config.LoadConfig()
	f := newFacade(cfg)

	fileID, _, err := f.Ingest(readInputFile(*input), *input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error ingesting file: %v\n", err)
		os.Exit(1)
	}

	mappings, err := loadOrAutoMap(f, fileID, *entity, *mappingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving mappings: %v\n", err)
		os.Exit(1)
	}

	report, err := f.Validate(fileID, *entity, mappings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error validating: %v\n", err)
		os.Exit(1)
	}
	printJSON(report)
	if !report.IsValid {
		os.Exit(2)
	}
}

func runTransform(args []string) {
	fs := flag.NewFlagSet("transform", flag.ExitOnError)
	input := fs.String("input", "", "Input file path (required)")
	entity := fs.String("entity", "", "Target entity name (required)")
	format := fs.String("format", "csv", "Output format: csv or xml")
	output := fs.String("output", "", "Output file path (default: stdout)")
	mappingsPath := fs.String("mappings", "", "Path to a mappings JSON file (default: auto-map)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *input == "" || *entity == "" {
		fmt.Fprintln(os.Stderr, "Error: --input and --entity are required")
		os.Exit(1)
	}

	cfg := config.LoadConfig()
	f := newFacade(cfg)

	fileID, _, err := f.Ingest(readInputFile(*input), *input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error ingesting file: %v\n", err)
		os.Exit(1)
	}

	mappings, err := loadOrAutoMap(f, fileID, *entity, *mappingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving mappings: %v\n", err)
		os.Exit(1)
	}

	out, err := f.Transform(fileID, *entity, mappings, transform.Format(*format))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error transforming: %v\n", err)
		os.Exit(1)
	}

	if *output == "" {
		os.Stdout.Write(out)
		return
	}
	if err := os.WriteFile(*output, out, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Written to %s\n", *output)
}

func runWarmEmbeddings(args []string) {
	fs := flag.NewFlagSet("warm-embeddings", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg := config.LoadConfig()
	if !cfg.EmbeddingEnabled {
		fmt.Fprintln(os.Stderr, "OPENAI_API_KEY not set; nothing to warm")
		return
	}

	registry, err := schemaregistry.NewRegistryWithPath(cfg.SchemaDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading schema registry: %v\n", err)
		os.Exit(1)
	}
	aliases, err := alias.NewWithDefaultsAndDir(cfg.AliasDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading alias dictionary: %v\n", err)
		os.Exit(1)
	}
	encoder, err := embedding.NewOpenAIEncoder(cfg.OpenAIAPIKey, cfg.EmbeddingModel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error constructing embedding encoder: %v\n", err)
		os.Exit(1)
	}
	idx := embedding.NewIndex(encoder, registry, aliases, cfg.EmbeddingCacheDir)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.EmbeddingBuildTimeout*time.Duration(len(registry.Entities())))
	defer cancel()

	for _, entity := range registry.Entities() {
		fmt.Fprintf(os.Stderr, "Building embedding index for %s...\n", entity)
		if err := idx.Ensure(ctx, entity); err != nil {
			fmt.Fprintf(os.Stderr, "Error building index for %s: %v\n", entity, err)
			os.Exit(1)
		}
	}
	fmt.Fprintln(os.Stderr, "Done.")
}

// loadOrAutoMap loads a client-edited mapping set from disk, or runs
// AutoMap when none was given.
func loadOrAutoMap(f *facade.Facade, fileID, entity, mappingsPath string) ([]resolver.Mapping, error) {
	if mappingsPath == "" {
		report, err := f.AutoMap(context.Background(), fileID, entity)
		if err != nil {
			return nil, err
		}
		return report.Mappings, nil
	}

	raw, err := os.ReadFile(mappingsPath)
	if err != nil {
		return nil, err
	}
	var mappings []resolver.Mapping
	if err := json.Unmarshal(raw, &mappings); err != nil {
		return nil, err
	}
	return mappings, nil
}
