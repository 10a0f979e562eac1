package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vinforge/forgedfate/internal/config"
	"github.com/vinforge/forgedfate/internal/models"
)

func NewValidateCommand(cfg *config.Configuration) *cobra.Command {
	validateCmd := &cobra.Command{
		Use:   "validate KIND",
		Short: "Check the configuration of a destination",
		Long:  "Check the configuration of a destination. Exits with a non-zero status when the configuration has errors.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKindArg(args[0])
			if err != nil {
				return err
			}

			st, configSrv, err := loadConfigs(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			result, err := configSrv.Validate(kind)
			if err != nil {
				return err
			}

			printValidation(cmd.OutOrStdout(), result)

			if result.HasErrors() {
				return fmt.Errorf("%s configuration has %d error(s)", kind, len(result.Errors))
			}
			return nil
		},
	}

	registerStoreFlags(validateCmd, cfg)

	return validateCmd
}

func printValidation(w io.Writer, result models.ValidationResult) {
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)
	green := color.New(color.FgGreen)

	for _, e := range result.Errors {
		red.Fprint(w, "error: ")
		fmt.Fprintln(w, e)
	}
	for _, warning := range result.Warnings {
		yellow.Fprint(w, "warning: ")
		fmt.Fprintln(w, warning)
	}
	if !result.HasErrors() && len(result.Warnings) == 0 {
		green.Fprintln(w, "configuration is valid")
	}
}
