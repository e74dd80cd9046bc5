package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/andyballingall/json-schema-validator/internal/config"
	"github.com/andyballingall/json-schema-validator/internal/fs"
	"github.com/andyballingall/json-schema-validator/internal/metaschema"
	"github.com/andyballingall/json-schema-validator/internal/schema"
)

// Version is the current version of jsv, set at build time.
var Version = "dev"

var Banner = "\033[32m" + `
       _______    __
      / / ___/   / /
 __  / /\__ \ | / /
/ /_/ /___/ / |/ /
\____//____/|___/
` + "\033[0m"

var LongDescription = `
jsv validates JSON documents against a JSON Schema and explains every failure
with the path of the offending value. For oneOf, anyOf and allOf it reports one
error naming the alternatives, and can also show why each alternative failed.
`

// NewRootCmd creates the root command and wires up dependencies.
func NewRootCmd(lazy *LazyManager, ll *slog.LevelVar, stdout, stderr io.Writer, env fs.EnvProvider) *cobra.Command {
	var debug bool
	var noColour bool
	var configPath pathValue

	rootCmd := &cobra.Command{
		Use:           "jsv",
		Short:         "Validate JSON documents against JSON Schemas",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Long:          Banner + "\n" + LongDescription,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if debug {
				ll.Set(slog.LevelDebug)
			}

			if cmd.Name() == "help" || isCompletionCommand(cmd) || lazy.HasInner() {
				return nil
			}

			wd, err := os.Getwd()
			if err != nil {
				return err
			}

			logger, closer, logErr := setupLogger(stderr, ll, env, wd)
			lazy.closer = closer
			if logErr != nil {
				logger.Warn("logging to file disabled", "error", logErr)
			}

			compiler := metaschema.NewSanthoshCompiler()

			var cfg *config.Config
			if configPath != "" {
				cfg, err = config.NewFromFile(string(configPath), compiler)
			} else {
				cfg, err = config.New(wd, env, compiler)
			}
			if err != nil {
				return fmt.Errorf("configuration failed: %w", err)
			}
			logger.Debug("configuration loaded", "path", cfg.Path, "output", cfg.Output,
				"branchErrors", cfg.BranchErrors, "parallelism", cfg.Parallelism)

			if err = compiler.SetDefaultDraft(cfg.DefaultDraft); err != nil {
				return err
			}

			opts := []schema.LoaderOption{schema.WithLogger(logger)}
			if cfg.MetaCheckEnabled() {
				opts = append(opts, schema.WithMetaSchema(compiler))
			}

			lazy.SetInner(NewCLIManager(logger, cfg, schema.NewLoader(opts...), stdout))
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().Var(&configPath, "config", "Config file (default ./"+config.ConfigFile+" or $"+
		config.ConfigEnvVar+")")

	rootCmd.PersistentFlags().BoolVarP(&noColour, "nocolour", "c", false, "Disable colour in output")
	// Support alternate spellings
	for _, alias := range []string{"nocolor", "noColor", "noColour"} {
		rootCmd.PersistentFlags().BoolVar(&noColour, alias, false, "")
		_ = rootCmd.PersistentFlags().MarkHidden(alias)
	}

	rootCmd.AddCommand(NewValidateCmd(lazy))
	rootCmd.AddCommand(NewCheckSchemaCmd(lazy))

	return rootCmd
}

// isCompletionCommand returns true if the command or any of its parents is the "completion" command.
func isCompletionCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "completion" {
			return true
		}
	}
	return false
}
