package models

import (
	"time"

	"github.com/google/uuid"
)

type TroubleshootingItem struct {
	Issue string   `json:"issue"`
	Steps []string `json:"steps"`
}

// KindDiagnostics are the remote diagnostics for one destination kind.
type KindDiagnostics struct {
	Kind  DestinationKind `json:"kind"`
	Facts OrderedMap      `json:"facts"`
}

type ReportError struct {
	Message    string `json:"message"`
	Suggestion string `json:"suggestion"`
}

// DiagnosticReport is the consolidated diagnostic document.
// Either Error is set or the remote sections are filled.
type DiagnosticReport struct {
	ID                   uuid.UUID                      `json:"id"`
	GeneratedAt          time.Time                      `json:"generated_at"`
	ReportType           string                         `json:"report_type"`
	RemoteTimestamp      *time.Time                     `json:"remote_timestamp,omitempty"`
	SystemInfo           OrderedMap                     `json:"system_info,omitempty"`
	NetworkDiagnostics   OrderedMap                     `json:"network_diagnostics,omitempty"`
	KindDiagnostics      []KindDiagnostics              `json:"kind_diagnostics,omitempty"`
	TroubleshootingGuide []TroubleshootingItem          `json:"troubleshooting_guide,omitempty"`
	Configs              ConfigSet                      `json:"configs"`
	RecentResults        map[DestinationKind]TestResult `json:"recent_results"`
	Error                *ReportError                   `json:"error,omitempty"`
}
