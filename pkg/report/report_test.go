package report_test

import (
	"bytes"
	"encoding/json"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	"github.com/vinforge/forgedfate/internal/models"
	"github.com/vinforge/forgedfate/pkg/report"
)

var _ = Describe("Report", func() {
	var doc models.DiagnosticReport

	BeforeEach(func() {
		ms := uint32(42)
		configs := models.DefaultConfigSet()
		configs.MQTT.Enabled = true
		configs.MQTT.Password = "hunter2"

		doc = models.DiagnosticReport{
			GeneratedAt: time.Date(2026, 5, 4, 10, 30, 15, 0, time.UTC),
			ReportType:  "full_system",
			Configs:     configs,
			RecentResults: map[models.DestinationKind]models.TestResult{
				models.KindMQTT: {Kind: models.KindMQTT, Status: models.TestStatusError, Errors: []string{"Connection refused", "Broker down"}},
				models.KindTCP:  {Kind: models.KindTCP, Status: models.TestStatusSuccess, ResponseTimeMs: &ms},
			},
			SystemInfo: models.OrderedMap{{Key: "platform", Value: json.RawMessage(`"linux"`)}},
			KindDiagnostics: []models.KindDiagnostics{
				{Kind: models.KindTCP, Facts: models.OrderedMap{{Key: "common_ports", Value: json.RawMessage(`[80,443]`)}}},
			},
			TroubleshootingGuide: []models.TroubleshootingItem{
				{Issue: "connection_refused", Steps: []string{"Check if target service is running"}},
			},
		}
	})

	Context("Text", func() {
		// Given a report with configuration and results
		// When we render it twice
		// Then the output is identical
		It("should be deterministic", func() {
			Expect(report.Text(doc)).To(Equal(report.Text(doc)))
		})

		It("should render the configuration and the results", func() {
			// Act
			text := report.Text(doc)

			// Assert
			Expect(text).To(HavePrefix("FORGEDFATE CONNECTIVITY DIAGNOSTIC REPORT\n=========================================\n\nGenerated: 2026-05-04 10:30:15 UTC\n"))
			Expect(text).To(ContainSubstring("CURRENT EXPORT CONFIGURATIONS:\n\nTCP:\n  Enabled: false\n  server_host: 172.18.18.20\n  server_port: 8685\n  data_format: json\n  update_rate: 5\n"))
			Expect(text).To(ContainSubstring("\nMQTT:\n  Enabled: true\n  broker_host: localhost\n"))
			Expect(text).To(ContainSubstring("  password: hunter2\n"))
			Expect(text).To(ContainSubstring("RECENT TEST RESULTS:\n\nTCP:\n  Status: success\n  Response Time: 42ms\n\nMQTT:\n  Status: error\n  Errors: Connection refused, Broker down\n"))
			Expect(text).To(ContainSubstring("TCP DIAGNOSTICS:\n  common_ports: 80, 443\n"))
			Expect(text).To(ContainSubstring("Connection Refused:\n  - Check if target service is running\n"))
		})

		It("should skip the results section when nothing was tested", func() {
			doc.RecentResults = nil

			Expect(report.Text(doc)).NotTo(ContainSubstring("RECENT TEST RESULTS"))
		})

		It("should render the error of a failed report", func() {
			// Arrange
			doc.Error = &models.ReportError{
				Message:    "Failed to generate diagnostic report: connection refused",
				Suggestion: "Please check that the Kismet server is running and try again.",
			}

			// Act
			text := report.Text(doc)

			// Assert
			Expect(text).To(ContainSubstring("REPORT ERROR:\n  Failed to generate diagnostic report: connection refused\n"))
			Expect(text).To(ContainSubstring("CURRENT EXPORT CONFIGURATIONS:"))
			Expect(text).NotTo(ContainSubstring("SYSTEM INFORMATION"))
		})
	})

	It("should name the download after the generation time", func() {
		Expect(report.FileName(doc.GeneratedAt, "txt")).To(Equal("forgedfate-connectivity-diagnostic-2026-05-04T10-30-15.txt"))
	})

	Context("XLSX", func() {
		It("should write one sheet per section", func() {
			// Arrange
			var buf bytes.Buffer

			// Act
			err := report.XLSX(&buf, doc)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			f, err := excelize.OpenReader(&buf)
			Expect(err).NotTo(HaveOccurred())
			defer f.Close()

			Expect(f.GetSheetList()).To(Equal([]string{"Configuration", "Recent Results", "Diagnostics", "Troubleshooting"}))

			rows, err := f.GetRows("Configuration")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows[0]).To(Equal([]string{"Kind", "Field", "Value"}))
			Expect(rows[1]).To(Equal([]string{"tcp", "enabled", "false"}))

			results, err := f.GetRows("Recent Results")
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(3))
			Expect(results[1][0]).To(Equal("tcp"))
			Expect(results[1][2]).To(Equal("42"))
		})
	})
})
