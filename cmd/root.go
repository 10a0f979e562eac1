package cmd

import (
	"fmt"

	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vinforge/forgedfate/internal/config"
)

const envPrefix = "FORGEDFATE"

// NewRootCommand returns the forgedfate command with every subcommand attached.
// Flags can also be set with FORGEDFATE_ prefixed environment variables,
// e.g. --server-http-port is read from FORGEDFATE_SERVER_HTTP_PORT.
func NewRootCommand() *cobra.Command {
	cfg := config.NewConfigurationWithOptionsAndDefaults()

	rootCmd := &cobra.Command{
		Use:   "forgedfate",
		Short: "Configure, test and diagnose the real-time export destinations of a capture server",
		PersistentPreRunE: cobrautil.CommandStack(
			cobrautil.SyncViperPreRunE(envPrefix),
			setupLogger(cfg),
		),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfg.Agent.LogLevel, "log-level", cfg.Agent.LogLevel, "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&cfg.Agent.LogFormat, "log-format", cfg.Agent.LogFormat, "Log format: console or json")

	rootCmd.AddCommand(
		NewRunCommand(cfg),
		NewConfigCommand(cfg),
		NewCommandCommand(cfg),
		NewValidateCommand(cfg),
		NewReportCommand(cfg),
	)

	return rootCmd
}

func setupLogger(cfg *config.Configuration) cobrautil.CobraRunFunc {
	return func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cfg.Agent.LogLevel, cfg.Agent.LogFormat)
		if err != nil {
			return err
		}
		zap.ReplaceGlobals(logger)
		return nil
	}
}

func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log-level: %w", err)
	}

	var zc zap.Config
	switch format {
	case config.LogFormatJSON:
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	case config.LogFormatConsole:
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("invalid log-format: %s", format)
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)

	return zc.Build()
}
