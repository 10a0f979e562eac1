package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	v1 "github.com/vinforge/forgedfate/api/v1"
	"github.com/vinforge/forgedfate/internal/config"
	"github.com/vinforge/forgedfate/internal/handlers"
	"github.com/vinforge/forgedfate/internal/server"
	"github.com/vinforge/forgedfate/internal/services"
	"github.com/vinforge/forgedfate/pkg/notify"
	"github.com/vinforge/forgedfate/pkg/scheduler"
)

const (
	shutdownTimeout = 10 * time.Second
	pruneEvery      = time.Hour
)

func NewRunCommand(cfg *config.Configuration) *cobra.Command {
	runCmd := &cobra.Command{
		Use:          "run",
		Short:        "Run the export agent",
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return validateConfiguration(cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg)
		},
	}

	registerRunFlags(runCmd, cfg)

	return runCmd
}

func registerRunFlags(cmd *cobra.Command, cfg *config.Configuration) {
	// server
	cmd.Flags().IntVar(&cfg.Server.HTTPPort, "server-http-port", cfg.Server.HTTPPort, "Port of the http server")
	cmd.Flags().StringVar(&cfg.Server.ServerMode, "server-mode", cfg.Server.ServerMode, "Server mode: dev or prod. prod serves the panel over https")
	cmd.Flags().StringVar(&cfg.Server.StaticsFolder, "server-statics-folder", cfg.Server.StaticsFolder, "Folder of the panel static files")
	cmd.Flags().StringSliceVar(&cfg.Server.Hosts, "server-hosts", cfg.Server.Hosts, "Extra host names and addresses of the prod server certificate")

	// agent
	cmd.Flags().StringVar(&cfg.Agent.Version, "version", cfg.Agent.Version, "Version reported by the agent")
	cmd.Flags().IntVar(&cfg.Agent.NumWorkers, "num-workers", cfg.Agent.NumWorkers, "Number of workers running probes")
	cmd.Flags().DurationVar(&cfg.Agent.HistoryRetention, "history-retention", cfg.Agent.HistoryRetention, "How long test results are kept. 0 keeps them forever")
	registerStoreFlags(cmd, cfg)

	// tester
	registerTesterFlags(cmd, cfg)
	cmd.Flags().DurationVar(&cfg.Tester.InteractiveTimeout, "tester-interactive-timeout", cfg.Tester.InteractiveTimeout, "Timeout sent to the test service for operator probes")
	cmd.Flags().DurationVar(&cfg.Tester.InteractiveDeadline, "tester-interactive-deadline", cfg.Tester.InteractiveDeadline, "Deadline of operator probe requests")
	cmd.Flags().DurationVar(&cfg.Tester.SilentTimeout, "tester-silent-timeout", cfg.Tester.SilentTimeout, "Timeout sent to the test service for monitor probes")
	cmd.Flags().DurationVar(&cfg.Tester.SilentDeadline, "tester-silent-deadline", cfg.Tester.SilentDeadline, "Deadline of monitor probe requests")

	// monitor
	cmd.Flags().DurationVar(&cfg.Monitor.Interval, "monitor-interval", cfg.Monitor.Interval, "Interval between two monitor cycles")
	cmd.Flags().DurationVar(&cfg.Monitor.WarmUp, "monitor-warm-up", cfg.Monitor.WarmUp, "Delay before the first monitor cycle")
	cmd.Flags().BoolVar(&cfg.Monitor.AutoStart, "monitor-autostart", cfg.Monitor.AutoStart, "Start the monitor when the agent starts")

	// notify
	cmd.Flags().StringVar(&cfg.Notify.RedisAddr, "notify-redis-addr", cfg.Notify.RedisAddr, "Address of a redis server receiving the live events. Empty disables it")
	cmd.Flags().StringVar(&cfg.Notify.RedisChannel, "notify-redis-channel", cfg.Notify.RedisChannel, "Redis channel of the live events")
}

func run(ctx context.Context, cfg *config.Configuration) error {
	logger := zap.S().Named("run")

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, configSrv, err := loadConfigs(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	client, err := newTesterClient(cfg)
	if err != nil {
		return err
	}

	sched := scheduler.NewScheduler(cfg.Agent.NumWorkers)
	defer sched.Close()

	hub := notify.NewHub()
	defer hub.Close()

	publishers := notify.Multi{hub}
	if cfg.Notify.RedisAddr != "" {
		redisPublisher, err := notify.NewRedisPublisher(ctx, cfg.Notify.RedisAddr, cfg.Notify.RedisChannel)
		if err != nil {
			return err
		}
		defer redisPublisher.Close()
		publishers = append(publishers, redisPublisher)
		logger.Infow("publishing events to redis", "addr", cfg.Notify.RedisAddr, "channel", cfg.Notify.RedisChannel)
	}

	badges := services.NewBadgeBoard(publishers)

	probeSrv := services.NewProbeService(sched, client, badges).
		WithTimeouts(
			services.ProbeTimeouts{Timeout: cfg.Tester.InteractiveTimeout, Deadline: cfg.Tester.InteractiveDeadline},
			services.ProbeTimeouts{Timeout: cfg.Tester.SilentTimeout, Deadline: cfg.Tester.SilentDeadline},
		).
		WithRecorder(st.Results()).
		WithPublisher(publishers)

	monitorSrv, err := services.NewMonitorService(probeSrv, configSrv, badges,
		services.WithMonitorInterval(cfg.Monitor.Interval),
		services.WithMonitorWarmUp(cfg.Monitor.WarmUp),
		services.WithMonitorPublisher(publishers),
	)
	if err != nil {
		return fmt.Errorf("failed to create the monitor: %w", err)
	}
	defer func() {
		if err := monitorSrv.Close(); err != nil {
			logger.Warnw("failed to close the monitor", "error", err)
		}
	}()

	if cfg.Monitor.AutoStart {
		if err := monitorSrv.Start(); err != nil {
			return fmt.Errorf("failed to start the monitor: %w", err)
		}
	}

	historySrv := services.NewHistoryService(st)
	diagnosticSrv := services.NewDiagnosticService(client, configSrv, monitorSrv)

	pruner, err := newHistoryPruner(ctx, historySrv, cfg.Agent.HistoryRetention)
	if err != nil {
		return err
	}
	if pruner != nil {
		defer func() { _ = pruner.Shutdown() }()
	}

	srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
		v1.RegisterHandlers(router, handlers.New(configSrv, probeSrv, badges, monitorSrv, historySrv, diagnosticSrv, hub))
	})
	if err != nil {
		return err
	}

	logger.Infow("agent started", "version", cfg.Agent.Version, "tester", cfg.Tester.URL, "data_folder", cfg.Agent.DataFolder, "monitor_autostart", cfg.Monitor.AutoStart)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(gctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		srv.Stop(shutdownCtx)
		return nil
	})

	return g.Wait()
}

// newHistoryPruner deletes expired test results at start and then every hour.
// It returns nil when results are kept forever.
func newHistoryPruner(ctx context.Context, historySrv *services.HistoryService, retention time.Duration) (gocron.Scheduler, error) {
	if retention == 0 {
		return nil, nil
	}

	logger := zap.S().Named("history_pruner")

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create the history pruner: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(pruneEvery),
		gocron.NewTask(func() {
			if _, err := historySrv.Prune(ctx, retention); err != nil {
				logger.Warnw("failed to prune test results", "error", err)
			}
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to schedule the history pruner: %w", err)
	}

	s.Start()
	return s, nil
}

func validateConfiguration(cfg *config.Configuration) error {
	if cfg.Server.HTTPPort < 1 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http-port: %d", cfg.Server.HTTPPort)
	}

	if cfg.Agent.NumWorkers < 1 {
		return fmt.Errorf("invalid num-workers: %d", cfg.Agent.NumWorkers)
	}

	switch cfg.Server.ServerMode {
	case config.ServerModeDev:
	case config.ServerModeProd:
		if cfg.Server.StaticsFolder == "" {
			return errors.New("statics folder must be set when server mode is prod")
		}
	default:
		return fmt.Errorf("invalid server mode: %s", cfg.Server.ServerMode)
	}

	if cfg.Auth.Enabled && cfg.Auth.JWTFilePath == "" {
		return errors.New("authentication-jwt-filepath must be set when authentication is enabled")
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}
