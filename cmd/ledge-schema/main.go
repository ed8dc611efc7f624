package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
	"github.com/plus3/ledge/config"
)

func main() {
	var outPath string
	var defaults bool
	flag.StringVar(&outPath, "out", "", "path to write the JSON schema (stdout when empty)")
	flag.BoolVar(&defaults, "defaults", false, "print the default world config as YAML instead")
	flag.Parse()

	if defaults {
		if err := config.Default().Write(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write defaults: %v\n", err)
			os.Exit(1)
		}
		return
	}

	schema := buildSchema()

	if outPath == "" {
		if err := encodeSchema(os.Stdout, schema); err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode schema: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := writeSchema(outPath, schema); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
		os.Exit(1)
	}
}

func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}
	schema := reflector.Reflect(new(config.Config))
	schema.Title = "Ledge World Config"
	schema.Description = "Validates YAML world files loaded with config.Load"
	return schema
}

func encodeSchema(w io.Writer, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp schema: %w", err)
	}
	if err := encodeSchema(f, schema); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}

	return nil
}
