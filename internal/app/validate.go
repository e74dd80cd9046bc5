package app

import (
	"github.com/spf13/cobra"

	"github.com/andyballingall/json-schema-validator/internal/config"
	"github.com/andyballingall/json-schema-validator/internal/engine"
)

func NewValidateCmd(mgr Manager) *cobra.Command {
	var verbose bool
	var watch bool
	var selector string
	var schemaPath pathValue
	outputVal := formatValue(config.OutputText)
	branchVal := branchModeValue(engine.SuppressBranches)

	cmd := &cobra.Command{
		Use:   "validate --schema <schema> <instance>...",
		Short: "Validate JSON documents against a schema",
		Args:  cobra.MinimumNArgs(1),
		Example: `
VALIDATE DOCUMENTS
  jsv validate --schema person.schema.json alice.json bob.json
  jsv validate -s person.schema.json ./people      - every .json file beneath ./people

VALIDATE PARTS OF A DOCUMENT
  jsv validate -s person.schema.json --select '$.people[*]' people.json

SHOW WHY EACH oneOf / anyOf / allOf ALTERNATIVE FAILED
  jsv validate -s body.schema.json --branch-errors flatten body.json

RERUN WHEN FILES CHANGE
  jsv validate -s person.schema.json --watch ./people`,
	}

	cmd.Flags().VarP(&schemaPath, "schema", "s", "Schema to validate against")
	_ = cmd.MarkFlagRequired("schema")
	cmd.Flags().StringVar(&selector, "select", "", "JSONPath expression selecting the sub-documents to validate")
	cmd.Flags().VarP(&outputVal, "output", "o", "Output format (text, json)")
	cmd.Flags().Var(&branchVal, "branch-errors", "Composition alternative errors (suppress, flatten)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show run details in the text report")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Watch for changes and revalidate")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg := mgr.Config()
		if !cmd.Flags().Changed("output") {
			outputVal = formatValue(cfg.Output)
		}
		if !cmd.Flags().Changed("branch-errors") {
			branchVal = branchModeValue(cfg.BranchMode())
		}

		noColour, _ := cmd.Flags().GetBool("nocolour")

		req := ValidateRequest{
			SchemaPath: string(schemaPath),
			Inputs:     args,
			Selector:   selector,
			Format:     config.OutputFormat(outputVal),
			BranchMode: engine.BranchMode(branchVal),
			Verbose:    verbose,
			UseColour:  !noColour,
		}

		if watch {
			return mgr.WatchValidation(cmd.Context(), req, nil)
		}
		return mgr.Validate(cmd.Context(), req)
	}

	return cmd
}
