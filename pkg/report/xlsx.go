package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/vinforge/forgedfate/internal/models"
)

const (
	sheetConfiguration   = "Configuration"
	sheetResults         = "Recent Results"
	sheetDiagnostics     = "Diagnostics"
	sheetTroubleshooting = "Troubleshooting"
)

// XLSX writes the report as a workbook with one sheet per section.
func XLSX(w io.Writer, r models.DiagnosticReport) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetConfiguration); err != nil {
		return err
	}
	for _, name := range []string{sheetResults, sheetDiagnostics, sheetTroubleshooting} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	sw := sheetWriter{f: f, header: header}

	sw.start(sheetConfiguration, "Kind", "Field", "Value")
	for _, kind := range models.Kinds {
		cfg, _ := r.Configs.Get(kind)
		sw.row(sheetConfiguration, string(kind), "enabled", fmt.Sprintf("%t", cfg.IsEnabled()))
		for _, field := range cfg.Fields() {
			sw.row(sheetConfiguration, string(kind), field.Name, fmt.Sprintf("%v", field.Value))
		}
	}

	sw.start(sheetResults, "Kind", "Status", "Response Time (ms)", "Errors", "Suggestions", "Tested At")
	for _, kind := range models.Kinds {
		result, ok := r.RecentResults[kind]
		if !ok {
			continue
		}
		var responseTime any
		if result.ResponseTimeMs != nil {
			responseTime = *result.ResponseTimeMs
		}
		sw.row(sheetResults,
			string(kind),
			string(result.Status),
			responseTime,
			strings.Join(result.Errors, ", "),
			strings.Join(result.Suggestions, ", "),
			result.Timestamp.UTC().Format(timeLayout),
		)
	}

	sw.start(sheetDiagnostics, "Section", "Key", "Value")
	sw.row(sheetDiagnostics, "report", "generated", r.GeneratedAt.UTC().Format(timeLayout))
	sw.row(sheetDiagnostics, "report", "report_type", r.ReportType)
	if r.Error != nil {
		sw.row(sheetDiagnostics, "error", "message", r.Error.Message)
		sw.row(sheetDiagnostics, "error", "suggestion", r.Error.Suggestion)
	}
	for _, e := range r.SystemInfo {
		sw.row(sheetDiagnostics, "system_info", e.Key, e.Text())
	}
	for _, e := range r.NetworkDiagnostics {
		sw.row(sheetDiagnostics, "network_diagnostics", e.Key, e.Text())
	}
	for _, d := range r.KindDiagnostics {
		for _, e := range d.Facts {
			sw.row(sheetDiagnostics, string(d.Kind)+"_diagnostics", e.Key, e.Text())
		}
	}

	sw.start(sheetTroubleshooting, "Issue", "Step")
	for _, item := range r.TroubleshootingGuide {
		for _, step := range item.Steps {
			sw.row(sheetTroubleshooting, issueTitle(item.Issue), step)
		}
	}

	if sw.err != nil {
		return sw.err
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

// sheetWriter appends rows to sheets and keeps the first error.
type sheetWriter struct {
	f      *excelize.File
	header int
	rows   map[string]int
	err    error
}

func (s *sheetWriter) start(sheet string, columns ...string) {
	if s.rows == nil {
		s.rows = make(map[string]int)
	}
	values := make([]any, 0, len(columns))
	for _, c := range columns {
		values = append(values, c)
	}
	s.row(sheet, values...)
	if s.err != nil {
		return
	}

	last, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		s.err = err
		return
	}
	if err := s.f.SetCellStyle(sheet, "A1", last, s.header); err != nil {
		s.err = err
		return
	}
	lastCol, _, err := excelize.SplitCellName(last)
	if err != nil {
		s.err = err
		return
	}
	s.err = s.f.SetColWidth(sheet, "A", lastCol, 28)
}

func (s *sheetWriter) row(sheet string, values ...any) {
	if s.err != nil {
		return
	}
	s.rows[sheet]++
	cell, err := excelize.CoordinatesToCellName(1, s.rows[sheet])
	if err != nil {
		s.err = err
		return
	}
	s.err = s.f.SetSheetRow(sheet, cell, &values)
}
