// Package report renders diagnostic reports for download.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/vinforge/forgedfate/internal/models"
)

const (
	title          = "FORGEDFATE CONNECTIVITY DIAGNOSTIC REPORT"
	fileNamePrefix = "forgedfate-connectivity-diagnostic-"
	timeLayout     = "2006-01-02 15:04:05 MST"
	fileTimeLayout = "2006-01-02T15-04-05"
)

// FileName returns the download name of a report generated at t.
// ext is the file extension without the dot.
func FileName(t time.Time, ext string) string {
	return fileNamePrefix + t.UTC().Format(fileTimeLayout) + "." + ext
}

// Text renders the report as flat text. The output only depends on the report.
// Configuration values, credentials included, are shown verbatim.
func Text(r models.DiagnosticReport) string {
	var sb strings.Builder

	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("=", len(title)) + "\n\n")
	fmt.Fprintf(&sb, "Generated: %s\n", r.GeneratedAt.UTC().Format(timeLayout))
	if r.ReportType != "" {
		fmt.Fprintf(&sb, "Report Type: %s\n", r.ReportType)
	}
	sb.WriteString("\n")

	sb.WriteString("CURRENT EXPORT CONFIGURATIONS:\n")
	for _, kind := range models.Kinds {
		cfg, _ := r.Configs.Get(kind)
		fmt.Fprintf(&sb, "\n%s:\n", strings.ToUpper(string(kind)))
		fmt.Fprintf(&sb, "  Enabled: %t\n", cfg.IsEnabled())
		for _, f := range cfg.Fields() {
			fmt.Fprintf(&sb, "  %s: %v\n", f.Name, f.Value)
		}
	}

	if len(r.RecentResults) > 0 {
		sb.WriteString("\nRECENT TEST RESULTS:\n")
		for _, kind := range models.Kinds {
			result, ok := r.RecentResults[kind]
			if !ok {
				continue
			}
			fmt.Fprintf(&sb, "\n%s:\n", strings.ToUpper(string(kind)))
			fmt.Fprintf(&sb, "  Status: %s\n", result.Status)
			if result.ResponseTimeMs != nil && *result.ResponseTimeMs > 0 {
				fmt.Fprintf(&sb, "  Response Time: %dms\n", *result.ResponseTimeMs)
			}
			if len(result.Errors) > 0 {
				fmt.Fprintf(&sb, "  Errors: %s\n", strings.Join(result.Errors, ", "))
			}
		}
	}

	if r.Error != nil {
		sb.WriteString("\nREPORT ERROR:\n")
		fmt.Fprintf(&sb, "  %s\n", r.Error.Message)
		fmt.Fprintf(&sb, "  %s\n", r.Error.Suggestion)
		return sb.String()
	}

	writeSection(&sb, "SYSTEM INFORMATION", r.SystemInfo)
	writeSection(&sb, "NETWORK DIAGNOSTICS", r.NetworkDiagnostics)
	for _, d := range r.KindDiagnostics {
		writeSection(&sb, strings.ToUpper(string(d.Kind))+" DIAGNOSTICS", d.Facts)
	}

	if len(r.TroubleshootingGuide) > 0 {
		sb.WriteString("\nTROUBLESHOOTING GUIDE:\n")
		for _, item := range r.TroubleshootingGuide {
			fmt.Fprintf(&sb, "\n%s:\n", issueTitle(item.Issue))
			for _, step := range item.Steps {
				fmt.Fprintf(&sb, "  - %s\n", step)
			}
		}
	}

	return sb.String()
}

func writeSection(sb *strings.Builder, name string, m models.OrderedMap) {
	if len(m) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s:\n", name)
	for _, e := range m {
		fmt.Fprintf(sb, "  %s: %s\n", e.Key, e.Text())
	}
}

// issueTitle turns "connection_refused" into "Connection Refused".
func issueTitle(issue string) string {
	words := strings.Split(issue, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
