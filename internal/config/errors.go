package config

import (
	"fmt"

	"github.com/andyballingall/json-schema-validator/internal/metaschema"
)

type MissingConfigError struct {
	Path string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("config file %s does not exist", e.Path)
}

type InvalidYAMLError struct {
	Wrapped error
}

func (e *InvalidYAMLError) Error() string {
	return fmt.Sprintf("%s is not a valid yaml document: %v", ConfigFile, e.Wrapped)
}

type InvalidValueError struct {
	Property string
	Value    string
	Allowed  string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%s property %s has invalid value '%s' - must be %s", ConfigFile, e.Property, e.Value, e.Allowed)
}

type InvalidDefaultDraftError struct {
	Value     string
	Supported []metaschema.Draft
}

func (e *InvalidDefaultDraftError) Error() string {
	return fmt.Sprintf(
		"%s property defaultDraft has invalid value '%s'. Supported versions are: %v",
		ConfigFile,
		e.Value,
		e.Supported,
	)
}
