package app

import (
	"github.com/spf13/cobra"
)

func NewCheckSchemaCmd(mgr Manager) *cobra.Command {
	return &cobra.Command{
		Use:   "check-schema <schema>",
		Short: "Check that a schema is well formed and all its references resolve",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mgr.CheckSchema(cmd.Context(), args[0])
		},
	}
}
