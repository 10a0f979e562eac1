package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vinforge/forgedfate/internal/models"
	srvErrors "github.com/vinforge/forgedfate/pkg/errors"
	"github.com/vinforge/forgedfate/pkg/notify"
	"github.com/vinforge/forgedfate/pkg/scheduler"
	"github.com/vinforge/forgedfate/pkg/tester"
)

var transportSuggestions = []string{"Check if the Kismet server is running", "Verify network connectivity"}

type TesterClient interface {
	Test(ctx context.Context, kind models.DestinationKind, payload any) (*tester.RemoteResult, error)
}

type ResultRecorder interface {
	Insert(ctx context.Context, result models.TestResult) error
}

// ProbeTimeouts are the timeouts of one probe mode.
// Timeout is sent to the test service, Deadline bounds the request.
type ProbeTimeouts struct {
	Timeout  time.Duration
	Deadline time.Duration
}

type ProbeService struct {
	scheduler   *scheduler.Scheduler
	client      TesterClient
	recorder    ResultRecorder
	publisher   notify.Publisher
	badges      *BadgeBoard
	interactive ProbeTimeouts
	silent      ProbeTimeouts
	logger      *zap.SugaredLogger
}

func NewProbeService(s *scheduler.Scheduler, client TesterClient, badges *BadgeBoard) *ProbeService {
	return &ProbeService{
		scheduler:   s,
		client:      client,
		publisher:   notify.Nop{},
		badges:      badges,
		interactive: ProbeTimeouts{Timeout: 10 * time.Second, Deadline: 15 * time.Second},
		silent:      ProbeTimeouts{Timeout: 5 * time.Second, Deadline: 8 * time.Second},
		logger:      zap.S().Named("probe_service"),
	}
}

func (p *ProbeService) WithTimeouts(interactive, silent ProbeTimeouts) *ProbeService {
	p.interactive = interactive
	p.silent = silent
	return p
}

// WithRecorder keeps every result in the history.
func (p *ProbeService) WithRecorder(r ResultRecorder) *ProbeService {
	p.recorder = r
	return p
}

func (p *ProbeService) WithPublisher(pub notify.Publisher) *ProbeService {
	if pub != nil {
		p.publisher = pub
	}
	return p
}

// Test asks the test service to probe the destination described by config.
//
// Transport failures are returned as error results, never as errors. An error
// is only returned for an unknown kind or, in interactive mode, when a test
// of the same kind is already running.
//
// Interactive tests drive the kind's badge. Silent tests leave it alone; the
// caller decides whether to apply the result with BadgeBoard.ApplyBackground.
func (p *ProbeService) Test(ctx context.Context, kind models.DestinationKind, config models.ExportConfig, mode models.ProbeMode) (models.TestResult, error) {
	if !kind.Valid() {
		return models.TestResult{}, srvErrors.NewInvalidKindError(string(kind))
	}

	timeouts := p.silent
	if mode == models.ProbeModeInteractive {
		timeouts = p.interactive
		if !p.badges.BeginTest(kind) {
			return models.TestResult{}, srvErrors.NewProbeInProgressError(string(kind))
		}
	}

	payload, err := buildPayload(kind, config, timeouts.Timeout)
	if err != nil {
		result := failureResult(kind, mode, err)
		p.finish(kind, mode, result)
		return result, nil
	}

	future := p.scheduler.AddWork(func(ctx context.Context) (any, error) {
		reqCtx, cancel := context.WithTimeout(ctx, timeouts.Deadline)
		defer cancel()
		return p.client.Test(reqCtx, kind, payload)
	})

	var result models.TestResult
	select {
	case <-ctx.Done():
		future.Stop()
		result = failureResult(kind, mode, ctx.Err())
	case r := <-future.C():
		if r.Err != nil {
			result = failureResult(kind, mode, r.Err)
			break
		}
		remote, ok := r.Data.(*tester.RemoteResult)
		if !ok || remote == nil {
			result = failureResult(kind, mode, fmt.Errorf("unexpected response %T", r.Data))
			break
		}
		result = fromRemote(kind, mode, remote)
	}

	p.finish(kind, mode, result)
	return result, nil
}

func (p *ProbeService) finish(kind models.DestinationKind, mode models.ProbeMode, result models.TestResult) {
	if mode == models.ProbeModeInteractive {
		p.badges.CompleteTest(kind, result.Status)
	}

	p.logger.Debugw("connectivity test finished", "kind", kind, "mode", mode, "status", result.Status)

	// The history and the stream must not fail a probe.
	ctx := context.Background()
	if p.recorder != nil {
		if err := p.recorder.Insert(ctx, result); err != nil {
			p.logger.Warnw("failed to record test result", "kind", kind, "error", err)
		}
	}
	event := models.Event{Type: models.EventResult, Kind: kind, Result: &result, Timestamp: result.Timestamp}
	if err := p.publisher.Publish(ctx, event); err != nil {
		p.logger.Warnw("failed to publish test result", "kind", kind, "error", err)
	}
}

func buildPayload(kind models.DestinationKind, config models.ExportConfig, timeout time.Duration) (any, error) {
	seconds := int(timeout / time.Second)

	switch cfg := config.(type) {
	case models.StreamConfig:
		if kind != models.KindTCP && kind != models.KindUDP {
			break
		}
		return tester.StreamProbe{Host: cfg.ServerHost, Port: cfg.ServerPort, Timeout: seconds}, nil
	case models.ElasticsearchConfig:
		if kind != models.KindElasticsearch {
			break
		}
		return tester.ElasticsearchProbe{URL: cfg.Hosts, Username: cfg.Username, Password: cfg.Password, Timeout: seconds}, nil
	case models.MQTTConfig:
		if kind != models.KindMQTT {
			break
		}
		return tester.MQTTProbe{Host: cfg.BrokerHost, Port: cfg.BrokerPort, Username: cfg.Username, Password: cfg.Password, Timeout: seconds}, nil
	}
	return nil, fmt.Errorf("configuration %T cannot be used for %s", config, kind)
}

func fromRemote(kind models.DestinationKind, mode models.ProbeMode, remote *tester.RemoteResult) models.TestResult {
	ts := time.Now()
	if remote.Timestamp > 0 {
		ts = time.Unix(remote.Timestamp, 0)
	}

	result := models.TestResult{
		Kind:           kind,
		Mode:           mode,
		Status:         models.ParseTestStatus(remote.Status),
		ResponseTimeMs: remote.ResponseTimeMs,
		Details:        remote.Details,
		Errors:         remote.Errors,
		Suggestions:    remote.Suggestions,
		Timestamp:      ts,
	}
	if result.Details == nil {
		result.Details = models.Details{}
	}
	if result.Errors == nil {
		result.Errors = []string{}
	}
	if result.Suggestions == nil {
		result.Suggestions = []string{}
	}
	return result
}

// failureResult is the result of a probe that got no answer from the test service.
// Both modes report the failure the same way.
func failureResult(kind models.DestinationKind, mode models.ProbeMode, err error) models.TestResult {
	suggestions := make([]string, len(transportSuggestions))
	copy(suggestions, transportSuggestions)

	return models.TestResult{
		Kind:        kind,
		Mode:        mode,
		Status:      models.TestStatusError,
		Details:     models.Details{},
		Errors:      []string{fmt.Sprintf("Request failed: %v", err)},
		Suggestions: suggestions,
		Timestamp:   time.Now(),
	}
}
