package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vinforge/forgedfate/internal/config"
	"github.com/vinforge/forgedfate/internal/models"
)

const (
	outputYAML = "yaml"
	outputJSON = "json"
)

func NewConfigCommand(cfg *config.Configuration) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the export configurations",
	}

	configCmd.AddCommand(newConfigShowCommand(cfg), newConfigSetCommand(cfg))

	return configCmd
}

func newConfigShowCommand(cfg *config.Configuration) *cobra.Command {
	var output string

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the export configurations of every destination",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, configSrv, err := loadConfigs(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			return writeConfigSet(cmd.OutOrStdout(), configSrv.Snapshot(), output)
		},
	}

	showCmd.Flags().StringVarP(&output, "output", "o", outputYAML, "Output format: yaml or json")
	registerStoreFlags(showCmd, cfg)

	return showCmd
}

func newConfigSetCommand(cfg *config.Configuration) *cobra.Command {
	setCmd := &cobra.Command{
		Use:   "set KIND FIELD VALUE",
		Short: "Change one field of a destination configuration",
		Long: `Change one field of a destination configuration and print the resulting command line.

VALUE is read as JSON when it parses, as a plain string otherwise:
  forgedfate config set tcp server_port 9000
  forgedfate config set mqtt enabled true
  forgedfate config set elasticsearch hosts https://es.example.com:9200`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Agent.DataFolder == "" {
				return errors.New("data-folder must be set to persist the configuration")
			}

			kind, err := parseKindArg(args[0])
			if err != nil {
				return err
			}

			st, configSrv, err := loadConfigs(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			view, err := configSrv.Update(cmd.Context(), kind, args[1], parseValueArg(args[2]))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), view.Command)
			printValidation(cmd.OutOrStdout(), view.Validation)

			return nil
		},
	}

	registerStoreFlags(setCmd, cfg)

	return setCmd
}

func parseValueArg(arg string) any {
	var v any
	if err := json.Unmarshal([]byte(arg), &v); err != nil {
		return arg
	}
	return v
}

func writeConfigSet(w io.Writer, configs models.ConfigSet, output string) error {
	switch output {
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(configs); err != nil {
			return err
		}
		return enc.Close()
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(configs)
	default:
		return fmt.Errorf("invalid output format: %s", output)
	}
}
