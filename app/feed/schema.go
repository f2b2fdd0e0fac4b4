package feed

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// SchemaCache holds the property mapping loaded from the schema file. A
// missing file yields the default mapping.
type SchemaCache struct {
	schemaFile string
	schema     *Schema
	mu         sync.RWMutex
}

func NewSchemaCache(schemaFile string) *SchemaCache {
	return &SchemaCache{
		schemaFile: schemaFile,
		schema:     &Schema{Properties: DefaultProperties()},
	}
}

func (sc *SchemaCache) Run() error {
	schema, err := sc.LoadSchema()
	if err != nil {
		return err
	}

	slog.Debug("Schema loaded",
		"file", sc.schemaFile,
		"title", schema.Properties.Title,
		"description", schema.Properties.Description,
		"date", schema.Properties.Date,
		"media", schema.Properties.Media,
		"filters", len(schema.Filters))

	return nil
}

// LoadSchema re-reads the schema file and replaces the cached schema only
// when the new one is valid.
func (sc *SchemaCache) LoadSchema() (*Schema, error) {
	schema, err := sc.parseSchema()
	if err != nil {
		return nil, err
	}

	if err := sc.validateSchema(schema); err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", sc.schemaFile, err)
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.schema = schema

	return schema, nil
}

func (sc *SchemaCache) GetSchema() *Schema {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.schema
}

func (sc *SchemaCache) GetSchemaFile() string {
	return sc.schemaFile
}

func (sc *SchemaCache) parseSchema() (*Schema, error) {
	schema := &Schema{}

	if sc.schemaFile != "" {
		data, err := os.ReadFile(sc.schemaFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}

		if err == nil {
			if err := yaml.Unmarshal(data, schema); err != nil {
				return nil, fmt.Errorf("failed to parse YAML: %w", err)
			}
		} else {
			slog.Debug("Schema file not found, using defaults", "file", sc.schemaFile)
		}
	}

	defaults := DefaultProperties()
	if schema.Properties.Title == "" {
		schema.Properties.Title = defaults.Title
	}
	if schema.Properties.Description == "" {
		schema.Properties.Description = defaults.Description
	}
	if schema.Properties.Date == "" {
		schema.Properties.Date = defaults.Date
	}
	if schema.Properties.Media == "" {
		schema.Properties.Media = defaults.Media
	}

	return schema, nil
}

func (sc *SchemaCache) validateSchema(schema *Schema) error {
	if schema == nil {
		return fmt.Errorf("schema is nil")
	}

	validFields := map[string]bool{
		"name":        true,
		"description": true,
	}

	for i, filter := range schema.Filters {
		if !validFields[filter.Field] {
			return fmt.Errorf("invalid filter field at index %d: %s", i, filter.Field)
		}
		if len(filter.Includes) == 0 && len(filter.Excludes) == 0 {
			return fmt.Errorf("filter at index %d must have at least one include or exclude rule", i)
		}
	}

	return nil
}
