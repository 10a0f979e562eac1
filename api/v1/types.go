package v1

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for ExportKind.
const (
	ExportKindElasticsearch ExportKind = "elasticsearch"
	ExportKindMqtt          ExportKind = "mqtt"
	ExportKindTcp           ExportKind = "tcp"
	ExportKindUdp           ExportKind = "udp"
)

// Defines values for BadgeState.
const (
	BadgeStateError     BadgeState = "error"
	BadgeStateNotTested BadgeState = "not_tested"
	BadgeStateSuccess   BadgeState = "success"
	BadgeStateTesting   BadgeState = "testing"
	BadgeStateUnknown   BadgeState = "unknown"
	BadgeStateWarning   BadgeState = "warning"
)

// Defines values for TestResultStatus.
const (
	TestResultStatusError   TestResultStatus = "error"
	TestResultStatusSuccess TestResultStatus = "success"
	TestResultStatusTimeout TestResultStatus = "timeout"
	TestResultStatusUnknown TestResultStatus = "unknown"
	TestResultStatusWarning TestResultStatus = "warning"
)

// Defines values for TestResultMode.
const (
	TestResultModeInteractive TestResultMode = "interactive"
	TestResultModeSilent      TestResultMode = "silent"
)

// Defines values for ExportDiagnosticReportParamsFormat.
const (
	ExportDiagnosticReportParamsFormatText ExportDiagnosticReportParamsFormat = "text"
	ExportDiagnosticReportParamsFormatXlsx ExportDiagnosticReportParamsFormat = "xlsx"
)

// ExportKind defines model for ExportKind.
type ExportKind string

// BadgeState defines model for Badge.State.
type BadgeState string

// TestResultStatus defines model for TestResult.Status.
type TestResultStatus string

// TestResultMode defines model for TestResult.Mode.
type TestResultMode string

// Validation defines model for Validation.
type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ExportView defines model for ExportView.
type ExportView struct {
	Command    string                 `json:"command"`
	Config     map[string]interface{} `json:"config"`
	Kind       ExportKind             `json:"kind"`
	Validation Validation             `json:"validation"`
}

// ExportList defines model for ExportList.
type ExportList struct {
	Exports []ExportView `json:"exports"`
}

// ExportFieldUpdate defines model for ExportFieldUpdate.
type ExportFieldUpdate struct {
	Field string      `json:"field" binding:"required"`
	Value interface{} `json:"value"`
}

// ExportCommand defines model for ExportCommand.
type ExportCommand struct {
	Command string     `json:"command"`
	Kind    ExportKind `json:"kind"`
}

// Detail defines model for Detail.
type Detail struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// TestResult defines model for TestResult.
type TestResult struct {
	Details        []Detail         `json:"details"`
	Errors         []string         `json:"errors"`
	Kind           ExportKind       `json:"kind"`
	Mode           TestResultMode   `json:"mode"`
	ResponseTimeMs *int             `json:"responseTimeMs,omitempty"`
	Status         TestResultStatus `json:"status"`
	Suggestions    []string         `json:"suggestions"`
	Timestamp      time.Time        `json:"timestamp"`
}

// TestResultList defines model for TestResultList.
type TestResultList struct {
	Results []TestResult `json:"results"`
	Total   int          `json:"total"`
}

// Badge defines model for Badge.
type Badge struct {
	Auto      bool       `json:"auto"`
	InFlight  bool       `json:"inFlight"`
	Kind      ExportKind `json:"kind"`
	State     BadgeState `json:"state"`
	Text      string     `json:"text"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// BadgeList defines model for BadgeList.
type BadgeList struct {
	Badges []Badge `json:"badges"`
}

// MonitorStatus defines model for MonitorStatus.
type MonitorStatus struct {
	Enabled         bool                  `json:"enabled"`
	IntervalSeconds int                   `json:"intervalSeconds"`
	LastResults     map[string]TestResult `json:"lastResults"`
	NextRun         *time.Time            `json:"nextRun,omitempty"`
	WarmUpSeconds   int                   `json:"warmUpSeconds"`
}

// Fact defines model for Fact.
type Fact struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// DiagnosticSection defines model for DiagnosticSection.
type DiagnosticSection struct {
	Facts []Fact `json:"facts"`
	Name  string `json:"name"`
}

// TroubleshootingItem defines model for TroubleshootingItem.
type TroubleshootingItem struct {
	Issue string   `json:"issue"`
	Steps []string `json:"steps"`
}

// ReportError defines model for ReportError.
type ReportError struct {
	Message    string `json:"message"`
	Suggestion string `json:"suggestion"`
}

// DiagnosticReport defines model for DiagnosticReport.
type DiagnosticReport struct {
	Error                *ReportError          `json:"error,omitempty"`
	Exports              []ExportView          `json:"exports"`
	GeneratedAt          time.Time             `json:"generatedAt"`
	Id                   openapi_types.UUID    `json:"id"`
	RecentResults        map[string]TestResult `json:"recentResults"`
	RemoteTimestamp      *time.Time            `json:"remoteTimestamp,omitempty"`
	ReportType           string                `json:"reportType"`
	Sections             []DiagnosticSection   `json:"sections"`
	TroubleshootingGuide []TroubleshootingItem `json:"troubleshootingGuide"`
}

// GetMonitorResultsParams defines parameters for GetMonitorResults.
type GetMonitorResultsParams struct {
	Kind  *ExportKind `form:"kind,omitempty" json:"kind,omitempty"`
	Limit *int        `form:"limit,omitempty" json:"limit,omitempty"`
}

// GetDiagnosticReportParams defines parameters for GetDiagnosticReport.
type GetDiagnosticReportParams struct {
	Kind *ExportKind `form:"kind,omitempty" json:"kind,omitempty"`
}

// ExportDiagnosticReportParamsFormat defines parameters for ExportDiagnosticReport.
type ExportDiagnosticReportParamsFormat string

// ExportDiagnosticReportParams defines parameters for ExportDiagnosticReport.
type ExportDiagnosticReportParams struct {
	Kind   *ExportKind                         `form:"kind,omitempty" json:"kind,omitempty"`
	Format *ExportDiagnosticReportParamsFormat `form:"format,omitempty" json:"format,omitempty"`
}

// StreamEvent defines model for StreamEvent.
type StreamEvent struct {
	Badge     *Badge         `json:"badge,omitempty"`
	Kind      *ExportKind    `json:"kind,omitempty"`
	Monitor   *MonitorStatus `json:"monitor,omitempty"`
	Result    *TestResult    `json:"result,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Type      string         `json:"type"`
}
