package v1

import (
	"github.com/vinforge/forgedfate/internal/models"
)

func NewExportView(v models.ExportView) ExportView {
	config := map[string]interface{}{"enabled": v.Config.IsEnabled()}
	for _, f := range v.Config.Fields() {
		config[f.Name] = f.Value
	}

	return ExportView{
		Kind:       ExportKind(v.Kind),
		Config:     config,
		Command:    v.Command,
		Validation: NewValidation(v.Validation),
	}
}

func NewValidation(v models.ValidationResult) Validation {
	out := Validation{Errors: v.Errors, Warnings: v.Warnings}
	if out.Errors == nil {
		out.Errors = []string{}
	}
	if out.Warnings == nil {
		out.Warnings = []string{}
	}
	return out
}

func NewTestResult(r models.TestResult) TestResult {
	result := TestResult{
		Kind:        ExportKind(r.Kind),
		Mode:        TestResultMode(r.Mode),
		Status:      TestResultStatus(r.Status),
		Details:     make([]Detail, 0, len(r.Details)),
		Errors:      r.Errors,
		Suggestions: r.Suggestions,
		Timestamp:   r.Timestamp,
	}
	if r.ResponseTimeMs != nil {
		ms := int(*r.ResponseTimeMs)
		result.ResponseTimeMs = &ms
	}
	for _, d := range r.Details {
		result.Details = append(result.Details, Detail{Key: d.Key, Value: d.Value})
	}
	if result.Errors == nil {
		result.Errors = []string{}
	}
	if result.Suggestions == nil {
		result.Suggestions = []string{}
	}
	return result
}

// NewTestResults converts a result map keyed by kind.
func NewTestResults(results map[models.DestinationKind]models.TestResult) map[string]TestResult {
	out := make(map[string]TestResult, len(results))
	for kind, r := range results {
		out[string(kind)] = NewTestResult(r)
	}
	return out
}

func NewBadge(b models.Badge) Badge {
	badge := Badge{
		Kind:     ExportKind(b.Kind),
		State:    BadgeState(b.State),
		Text:     b.Text,
		Auto:     b.Auto,
		InFlight: b.InFlight,
	}
	if !b.UpdatedAt.IsZero() {
		t := b.UpdatedAt
		badge.UpdatedAt = &t
	}
	return badge
}

func NewMonitorStatus(s models.MonitorStatus) MonitorStatus {
	return MonitorStatus{
		Enabled:         s.Enabled,
		IntervalSeconds: int(s.Interval.Seconds()),
		WarmUpSeconds:   int(s.WarmUp.Seconds()),
		NextRun:         s.NextRun,
		LastResults:     NewTestResults(s.LastResults),
	}
}

// NewDiagnosticReport converts a report. views holds the derived view of every
// configured kind, in display order.
func NewDiagnosticReport(r models.DiagnosticReport, views []models.ExportView) DiagnosticReport {
	report := DiagnosticReport{
		Id:                   r.ID,
		GeneratedAt:          r.GeneratedAt,
		ReportType:           r.ReportType,
		RemoteTimestamp:      r.RemoteTimestamp,
		Exports:              make([]ExportView, 0, len(views)),
		RecentResults:        NewTestResults(r.RecentResults),
		Sections:             []DiagnosticSection{},
		TroubleshootingGuide: []TroubleshootingItem{},
	}

	for _, v := range views {
		report.Exports = append(report.Exports, NewExportView(v))
	}

	if r.Error != nil {
		report.Error = &ReportError{Message: r.Error.Message, Suggestion: r.Error.Suggestion}
		return report
	}

	report.appendSection("system_info", r.SystemInfo)
	report.appendSection("network_diagnostics", r.NetworkDiagnostics)
	for _, d := range r.KindDiagnostics {
		report.appendSection(string(d.Kind)+"_diagnostics", d.Facts)
	}
	for _, item := range r.TroubleshootingGuide {
		report.TroubleshootingGuide = append(report.TroubleshootingGuide, TroubleshootingItem{Issue: item.Issue, Steps: item.Steps})
	}

	return report
}

func (r *DiagnosticReport) appendSection(name string, m models.OrderedMap) {
	if len(m) == 0 {
		return
	}
	section := DiagnosticSection{Name: name, Facts: make([]Fact, 0, len(m))}
	for _, e := range m {
		section.Facts = append(section.Facts, Fact{Key: e.Key, Value: e.Text()})
	}
	r.Sections = append(r.Sections, section)
}

func NewStreamEvent(e models.Event) StreamEvent {
	event := StreamEvent{Type: string(e.Type), Timestamp: e.Timestamp}
	if e.Kind != "" {
		kind := ExportKind(e.Kind)
		event.Kind = &kind
	}
	if e.Badge != nil {
		b := NewBadge(*e.Badge)
		event.Badge = &b
	}
	if e.Result != nil {
		r := NewTestResult(*e.Result)
		event.Result = &r
	}
	if e.Monitor != nil {
		m := NewMonitorStatus(*e.Monitor)
		event.Monitor = &m
	}
	return event
}
