package app

import (
	"fmt"

	"github.com/andyballingall/json-schema-validator/internal/config"
	"github.com/andyballingall/json-schema-validator/internal/engine"
)

// formatValue is a pflag.Value restricted to the report formats.
type formatValue config.OutputFormat

func (f *formatValue) String() string {
	return string(*f)
}

func (f *formatValue) Set(v string) error {
	if v != string(config.OutputJSON) && v != string(config.OutputText) {
		return fmt.Errorf("must be 'text' or 'json'")
	}
	*f = formatValue(v)
	return nil
}

func (f *formatValue) Type() string {
	return "<format>"
}

// branchModeValue is a pflag.Value for --branch-errors.
type branchModeValue engine.BranchMode

func (b *branchModeValue) String() string {
	return engine.BranchMode(*b).String()
}

func (b *branchModeValue) Set(v string) error {
	m, err := engine.ParseBranchMode(v)
	if err != nil {
		return fmt.Errorf("must be 'suppress' or 'flatten'")
	}
	*b = branchModeValue(m)
	return nil
}

func (b *branchModeValue) Type() string {
	return "<mode>"
}

// pathValue is a pflag.Value that only changes the type name shown in help.
type pathValue string

func (p *pathValue) String() string {
	return string(*p)
}

func (p *pathValue) Set(v string) error {
	*p = pathValue(v)
	return nil
}

func (p *pathValue) Type() string {
	return "<path>"
}
