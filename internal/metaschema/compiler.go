// Package metaschema checks that a schema document is itself a well-formed
// JSON Schema for its draft, before the engine's loader builds nodes from it.
package metaschema

// Draft represents a JSON Schema draft version.
type Draft string

const (
	// Draft4 represents JSON Schema Draft 4.
	Draft4 Draft = "http://json-schema.org/draft-04/schema#"
	// Draft6 represents JSON Schema Draft 6.
	Draft6 Draft = "http://json-schema.org/draft-06/schema#"
	// Draft7 represents JSON Schema Draft 7.
	Draft7 Draft = "http://json-schema.org/draft-07/schema#"
	// Draft2019_09 represents JSON Schema Draft 2019-09.
	Draft2019_09 Draft = "https://json-schema.org/draft/2019-09/schema"
	// Draft2020_12 represents JSON Schema Draft 2020-12.
	Draft2020_12 Draft = "https://json-schema.org/draft/2020-12/schema"
)

// A JSONDocument is a parsed JSON document - i.e. the result of json.Unmarshal().
type JSONDocument interface{}

// A JSONSchema is a parsed JSON document representing a JSON Schema.
type JSONSchema JSONDocument

// Compiler compiles schema documents against their metaschema. A successful
// Compile means the document is a well-formed schema.
type Compiler interface {
	// AddSchema registers a JSONSchema with the compiler.
	AddSchema(id string, data JSONSchema) error

	// Compile compiles the JSONSchema previously added with the given ID.
	// An error is produced if the JSONSchema is not a well-formed schema.
	Compile(id string) error

	// SetDefaultDraft sets the draft assumed for documents without $schema.
	SetDefaultDraft(d Draft) error

	// SupportedSchemaVersions returns a slice of Draft representing the supported schema versions.
	SupportedSchemaVersions() []Draft

	// Clear resets the compiler state, removing all registered schemas.
	Clear()
}
