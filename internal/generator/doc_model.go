package generator

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"docmark/internal/doc"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	docModelSchemaVersion = "v1.0.0"
	docModelSchemaURL     = "doc_model.schema.json"
)

//go:embed doc_model.schema.json
var docModelSchema string

// ErrSchema is returned when a model does not satisfy the embedded JSON schema.
var ErrSchema = errors.New("doc model schema validation failed")

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// DocModel is the machine-readable counterpart of a rendered page.
type DocModel struct {
	SchemaVersion string       `json:"schema_version"`
	Package       string       `json:"package"`
	GeneratedAt   string       `json:"generated_at"`
	Records       []doc.Record `json:"records"`
}

func BuildDocModel(pkg string, records []doc.Record, now time.Time) *DocModel {
	if records == nil {
		records = []doc.Record{}
	}
	return &DocModel{
		SchemaVersion: docModelSchemaVersion,
		Package:       pkg,
		GeneratedAt:   now.UTC().Format(time.RFC3339),
		Records:       records,
	}
}

// LoadDocModel reads and validates a model written by SaveDocModel.
func LoadDocModel(path string) (*DocModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m DocModel
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to decode doc model %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveDocModel validates m and writes it as indented JSON.
func SaveDocModel(path string, m *DocModel) error {
	if err := m.Validate(); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode doc model: %w", err)
	}
	return os.WriteFile(path, append(raw, '\n'), 0644)
}

// Validate checks m against the embedded JSON schema.
func (m *DocModel) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: doc model is nil", ErrSchema)
	}

	schema, err := loadSchema()
	if err != nil {
		return fmt.Errorf("failed to compile doc model schema: %w", err)
	}

	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal doc model for schema validation: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("failed to normalize doc model for schema validation: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return nil
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(docModelSchemaURL, strings.NewReader(docModelSchema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile(docModelSchemaURL)
	})
	return compiledSchema, schemaErr
}
