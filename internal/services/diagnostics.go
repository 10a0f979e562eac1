package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vinforge/forgedfate/internal/models"
	"github.com/vinforge/forgedfate/pkg/report"
	"github.com/vinforge/forgedfate/pkg/tester"
)

const (
	ReportTypeFull = "full_system"

	reportFailurePrefix     = "Failed to generate diagnostic report: "
	reportFailureSuggestion = "Please check that the Kismet server is running and try again."
)

type ReportClient interface {
	DiagnosticReport(ctx context.Context, kind *models.DestinationKind) (*tester.RemoteReport, error)
}

type ResultsSource interface {
	LastResults() map[models.DestinationKind]models.TestResult
}

// DiagnosticService assembles the diagnostic report from the remote test
// service, the current configurations and the monitor results.
type DiagnosticService struct {
	client  ReportClient
	configs ConfigSnapshotter
	results ResultsSource
	logger  *zap.SugaredLogger
}

func NewDiagnosticService(client ReportClient, configs ConfigSnapshotter, results ResultsSource) *DiagnosticService {
	return &DiagnosticService{
		client:  client,
		configs: configs,
		results: results,
		logger:  zap.S().Named("diagnostic_service"),
	}
}

// GenerateReport fetches the remote report, optionally restricted to one kind.
// A failure is part of the returned document; the request is not retried.
func (d *DiagnosticService) GenerateReport(ctx context.Context, kind *models.DestinationKind) models.DiagnosticReport {
	doc := models.DiagnosticReport{
		ID:            uuid.New(),
		GeneratedAt:   time.Now(),
		ReportType:    ReportTypeFull,
		Configs:       d.configs.Snapshot(),
		RecentResults: d.results.LastResults(),
	}
	if doc.RecentResults == nil {
		doc.RecentResults = map[models.DestinationKind]models.TestResult{}
	}
	if kind != nil {
		doc.ReportType = kind.String()
	}

	remote, err := d.client.DiagnosticReport(ctx, kind)
	if err != nil {
		d.logger.Warnw("failed to generate diagnostic report", "kind", kind, "error", err)
		doc.Error = &models.ReportError{
			Message:    fmt.Sprintf("%s%v", reportFailurePrefix, err),
			Suggestion: reportFailureSuggestion,
		}
		return doc
	}

	if remote.ReportType != "" {
		doc.ReportType = remote.ReportType
	}
	if remote.Timestamp > 0 {
		ts := time.Unix(remote.Timestamp, 0)
		doc.RemoteTimestamp = &ts
	}
	doc.SystemInfo = remote.SystemInfo
	doc.NetworkDiagnostics = remote.NetworkDiagnostics

	for _, k := range models.Kinds {
		if facts := remote.Diagnostics(k); len(facts) > 0 {
			doc.KindDiagnostics = append(doc.KindDiagnostics, models.KindDiagnostics{Kind: k, Facts: facts})
		}
	}

	for _, entry := range remote.TroubleshootingGuide {
		doc.TroubleshootingGuide = append(doc.TroubleshootingGuide, models.TroubleshootingItem{
			Issue: entry.Key,
			Steps: entry.Strings(),
		})
	}

	d.logger.Infow("diagnostic report generated", "id", doc.ID, "report_type", doc.ReportType)

	return doc
}

// ExportText renders the report as the downloadable text file.
func (d *DiagnosticService) ExportText(doc models.DiagnosticReport) (name string, content []byte) {
	return report.FileName(doc.GeneratedAt, "txt"), []byte(report.Text(doc))
}

// ExportXLSX renders the report as a workbook.
func (d *DiagnosticService) ExportXLSX(doc models.DiagnosticReport) (string, []byte, error) {
	var buf bytes.Buffer
	if err := report.XLSX(&buf, doc); err != nil {
		return "", nil, fmt.Errorf("failed to render report workbook: %w", err)
	}
	return report.FileName(doc.GeneratedAt, "xlsx"), buf.Bytes(), nil
}
