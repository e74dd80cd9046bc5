// Package config reads the optional jsv-config.yml file which sets defaults
// for the jsv command line.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/andyballingall/json-schema-validator/internal/engine"
	jsvfs "github.com/andyballingall/json-schema-validator/internal/fs"
	"github.com/andyballingall/json-schema-validator/internal/metaschema"
)

const (
	ConfigFile   = "jsv-config.yml"
	ConfigEnvVar = "JSV_CONFIG"
)

const DefaultConfigContent = `# jsv configuration

# OUTPUT FORMAT
#
# The format of validation reports: "text" (default) or "json".
output: text

# BRANCH ERRORS
#
# When an instance fails a composition keyword (oneOf, anyOf, allOf), jsv reports
# a single error for the keyword. Set this to "flatten" to also report the errors
# explaining why each alternative failed.
branchErrors: suppress

# PARALLELISM
#
# The number of composition alternatives evaluated concurrently. 1 evaluates
# them one after another. Reports are identical either way.
parallelism: 1

# METASCHEMA CHECK
#
# Check every schema against its draft metaschema before using it.
metaCheck: true

# DEFAULT JSON SCHEMA VERSION
#
# The draft assumed for schemas without $schema. Supported versions:
# - http://json-schema.org/draft-04/schema#
# - http://json-schema.org/draft-06/schema#
# - http://json-schema.org/draft-07/schema# (Default)
# - https://json-schema.org/draft/2019-09/schema
# - https://json-schema.org/draft/2020-12/schema
defaultDraft: "http://json-schema.org/draft-07/schema#"
`

// OutputFormat is the format of validation reports.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
)

type Config struct {
	Output       OutputFormat     `yaml:"output"`
	BranchErrors string           `yaml:"branchErrors"`
	Parallelism  int              `yaml:"parallelism"`
	MetaCheck    *bool            `yaml:"metaCheck"`
	DefaultDraft metaschema.Draft `yaml:"defaultDraft"`
	Path         string           `yaml:"-"` // the file the config was read from, if any
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// New reads the config file named by JSV_CONFIG, or else jsv-config.yml in
// dir. A missing jsv-config.yml in dir is not an error: defaults are used.
func New(dir string, env jsvfs.EnvProvider, compiler metaschema.Compiler) (*Config, error) {
	if p := env.Get(ConfigEnvVar); p != "" {
		return NewFromFile(p, compiler)
	}

	c, err := NewFromFile(filepath.Join(dir, ConfigFile), compiler)
	var missing *MissingConfigError
	if errors.As(err, &missing) {
		return Default(), nil
	}
	return c, err
}

// NewFromFile reads the config file at path, which must exist.
func NewFromFile(path string, compiler metaschema.Compiler) (*Config, error) {
	//nolint:gosec // Path comes from the user's environment, flags or working directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingConfigError{Path: path}
		}
		return nil, err
	}

	var config Config
	if err = yaml.Unmarshal(data, &config); err != nil {
		return nil, &InvalidYAMLError{Wrapped: err}
	}
	config.Path = path

	if vErr := config.Validate(compiler); vErr != nil {
		return nil, vErr
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Output == "" {
		c.Output = OutputText
	}
	if c.BranchErrors == "" {
		c.BranchErrors = engine.SuppressBranches.String()
	}
	if c.Parallelism == 0 {
		c.Parallelism = 1
	}
	if c.MetaCheck == nil {
		on := true
		c.MetaCheck = &on
	}
	if c.DefaultDraft == "" {
		c.DefaultDraft = metaschema.Draft7
	}
}

// Validate fills in defaults and checks every property.
func (c *Config) Validate(compiler metaschema.Compiler) error {
	c.applyDefaults()

	if c.Output != OutputText && c.Output != OutputJSON {
		return &InvalidValueError{Property: "output", Value: string(c.Output), Allowed: "text, json"}
	}

	if _, err := engine.ParseBranchMode(c.BranchErrors); err != nil {
		return &InvalidValueError{Property: "branchErrors", Value: c.BranchErrors, Allowed: "suppress, flatten"}
	}

	if c.Parallelism < 1 {
		return &InvalidValueError{
			Property: "parallelism",
			Value:    fmt.Sprint(c.Parallelism),
			Allowed:  "a positive integer",
		}
	}

	supported := compiler.SupportedSchemaVersions()
	if !slices.Contains(supported, c.DefaultDraft) {
		return &InvalidDefaultDraftError{
			Value:     string(c.DefaultDraft),
			Supported: supported,
		}
	}

	return nil
}

// BranchMode returns the engine branch mode selected by branchErrors.
func (c *Config) BranchMode() engine.BranchMode {
	m, _ := engine.ParseBranchMode(c.BranchErrors)
	return m
}

// MetaCheckEnabled reports whether schemas are checked against their metaschema.
func (c *Config) MetaCheckEnabled() bool {
	return c.MetaCheck == nil || *c.MetaCheck
}
