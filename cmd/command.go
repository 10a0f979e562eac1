package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vinforge/forgedfate/internal/config"
)

func NewCommandCommand(cfg *config.Configuration) *cobra.Command {
	commandCmd := &cobra.Command{
		Use:   "command KIND",
		Short: "Print the exporter command line of a destination",
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

			line, err := configSrv.Command(kind)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}

	registerStoreFlags(commandCmd, cfg)

	return commandCmd
}
