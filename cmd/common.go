package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vinforge/forgedfate/internal/config"
	"github.com/vinforge/forgedfate/internal/models"
	"github.com/vinforge/forgedfate/internal/services"
	"github.com/vinforge/forgedfate/internal/store"
	"github.com/vinforge/forgedfate/internal/store/migrations"
	"github.com/vinforge/forgedfate/pkg/command"
	"github.com/vinforge/forgedfate/pkg/tester"
)

func registerStoreFlags(cmd *cobra.Command, cfg *config.Configuration) {
	cmd.Flags().StringVar(&cfg.Agent.DataFolder, "data-folder", cfg.Agent.DataFolder, "Folder of the agent database. Empty keeps everything in memory")
	cmd.Flags().StringVar(&cfg.Agent.RealtimeCommand, "realtime-command", cfg.Agent.RealtimeCommand, "Base invocation of the tcp, udp and mqtt exporter")
	cmd.Flags().StringVar(&cfg.Agent.ElasticsearchCommand, "elasticsearch-command", cfg.Agent.ElasticsearchCommand, "Base invocation of the elasticsearch exporter")
}

func registerTesterFlags(cmd *cobra.Command, cfg *config.Configuration) {
	cmd.Flags().StringVar(&cfg.Tester.URL, "tester-url", cfg.Tester.URL, "Base url of the connectivity test service")
	cmd.Flags().BoolVar(&cfg.Auth.Enabled, "authentication-enabled", cfg.Auth.Enabled, "Send a bearer token to the connectivity test service")
	cmd.Flags().StringVar(&cfg.Auth.JWTFilePath, "authentication-jwt-filepath", cfg.Auth.JWTFilePath, "Path of the file holding the bearer token")
}

// openStore opens the agent database and brings its schema up to date.
func openStore(ctx context.Context, cfg *config.Configuration) (*store.Store, error) {
	db, err := store.NewDB(store.PathIn(cfg.Agent.DataFolder))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := migrations.Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store.NewStore(db), nil
}

// loadConfigs opens the store and loads the persisted export configurations.
// The caller closes the returned store.
func loadConfigs(ctx context.Context, cfg *config.Configuration) (*store.Store, *services.ConfigService, error) {
	st, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	configSrv := services.NewConfigService(st.Settings(), newCommandBuilder(cfg))
	configSrv.Load(ctx)

	return st, configSrv, nil
}

func newCommandBuilder(cfg *config.Configuration) *command.Builder {
	return command.NewBuilder(
		command.WithRealtimeBase(cfg.Agent.RealtimeCommand),
		command.WithElasticsearchBase(cfg.Agent.ElasticsearchCommand),
	)
}

func newTesterClient(cfg *config.Configuration) (*tester.Client, error) {
	var opts []tester.Option

	if cfg.Auth.Enabled {
		token, err := tester.LoadToken(cfg.Auth.JWTFilePath)
		if err != nil {
			return nil, err
		}
		if token.Expired(time.Now()) {
			zap.S().Named("tester_client").Warnw("bearer token is expired", "path", cfg.Auth.JWTFilePath, "expired_at", *token.ExpiresAt)
		}
		opts = append(opts, tester.WithToken(token.Raw))
	}

	return tester.NewClient(cfg.Tester.URL, opts...)
}

func parseKindArg(arg string) (models.DestinationKind, error) {
	kind, err := models.ParseDestinationKind(arg)
	if err != nil {
		return "", fmt.Errorf("%w (expected one of %v)", err, models.Kinds)
	}
	return kind, nil
}
