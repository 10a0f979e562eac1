package handlers

import (
	"context"

	"github.com/vinforge/forgedfate/internal/models"
	"github.com/vinforge/forgedfate/internal/services"
)

type ConfigService interface {
	Views() ([]models.ExportView, error)
	View(kind models.DestinationKind) (*models.ExportView, error)
	Update(ctx context.Context, kind models.DestinationKind, field string, value any) (*models.ExportView, error)
	Replace(ctx context.Context, kind models.DestinationKind, partial []byte) (*models.ExportView, error)
	Snapshot() models.ConfigSet
}

type ProbeService interface {
	Test(ctx context.Context, kind models.DestinationKind, config models.ExportConfig, mode models.ProbeMode) (models.TestResult, error)
}

type BadgeService interface {
	All() []models.Badge
}

type MonitorService interface {
	Start() error
	Stop() error
	Status() models.MonitorStatus
}

type HistoryService interface {
	List(ctx context.Context, params services.HistoryParams) ([]models.TestResult, int, error)
}

type DiagnosticService interface {
	GenerateReport(ctx context.Context, kind *models.DestinationKind) models.DiagnosticReport
	ExportText(doc models.DiagnosticReport) (string, []byte)
	ExportXLSX(doc models.DiagnosticReport) (string, []byte, error)
}

type EventSource interface {
	Subscribe() (<-chan models.Event, func())
}

type Handler struct {
	configSrv     ConfigService
	probeSrv      ProbeService
	badgeSrv      BadgeService
	monitorSrv    MonitorService
	historySrv    HistoryService
	diagnosticSrv DiagnosticService
	events        EventSource
}

func New(configSrv ConfigService, probeSrv ProbeService, badgeSrv BadgeService, monitorSrv MonitorService, historySrv HistoryService, diagnosticSrv DiagnosticService, events EventSource) *Handler {
	return &Handler{
		configSrv:     configSrv,
		probeSrv:      probeSrv,
		badgeSrv:      badgeSrv,
		monitorSrv:    monitorSrv,
		historySrv:    historySrv,
		diagnosticSrv: diagnosticSrv,
		events:        events,
	}
}
