package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vinforge/forgedfate/internal/models"
	"github.com/vinforge/forgedfate/internal/services"
	"github.com/vinforge/forgedfate/pkg/tester"
)

const remoteReportJSON = `{
	"timestamp": 1700000000,
	"report_type": "full_system",
	"system_info": {"hostname": "sensor-01", "kismet_version": "2023-07-R1"},
	"network_diagnostics": {"interfaces": ["eth0", "wlan0"], "default_route": "172.18.18.1"},
	"tcp_diagnostics": {"common_ports": [8685, 9000]},
	"mqtt_diagnostics": {"common_ports": [1883, 8883]},
	"troubleshooting_guide": {
		"connection_refused": ["Check that the receiver is listening", "Check the firewall"],
		"timeout": ["Check the route to the destination"]
	}
}`

var _ = Describe("DiagnosticService", func() {
	var (
		ctx     context.Context
		fake    *fakeTester
		configs models.ConfigSet
		results staticResults
		srv     *services.DiagnosticService
	)

	BeforeEach(func() {
		ctx = context.Background()
		fake = newFakeTester()
		configs = models.DefaultConfigSet()
		configs.MQTT.Password = "s3cret"
		results = staticResults{
			models.KindTCP: {Kind: models.KindTCP, Status: models.TestStatusSuccess, ResponseTimeMs: uint32p(7)},
		}
		srv = services.NewDiagnosticService(fake, staticConfigs{set: configs}, results)

		var remote tester.RemoteReport
		Expect(json.Unmarshal([]byte(remoteReportJSON), &remote)).To(Succeed())
		fake.report = &remote
	})

	Describe("GenerateReport", func() {
		// Given a remote service returning a full report
		// When we generate the report
		// Then the remote sections are kept in order next to the local state
		It("should merge the remote report with the local state", func() {
			// Act
			doc := srv.GenerateReport(ctx, nil)

			// Assert
			Expect(doc.Error).To(BeNil())
			Expect(doc.ReportType).To(Equal("full_system"))
			Expect(*doc.RemoteTimestamp).To(Equal(time.Unix(1700000000, 0)))
			Expect(doc.SystemInfo[0].Key).To(Equal("hostname"))
			Expect(doc.SystemInfo[1].Key).To(Equal("kismet_version"))
			Expect(doc.KindDiagnostics).To(HaveLen(2))
			Expect(doc.KindDiagnostics[0].Kind).To(Equal(models.KindTCP))
			Expect(doc.KindDiagnostics[1].Kind).To(Equal(models.KindMQTT))
			Expect(doc.TroubleshootingGuide).To(Equal([]models.TroubleshootingItem{
				{Issue: "connection_refused", Steps: []string{"Check that the receiver is listening", "Check the firewall"}},
				{Issue: "timeout", Steps: []string{"Check the route to the destination"}},
			}))
			Expect(doc.Configs).To(Equal(configs))
			Expect(doc.RecentResults).To(HaveKey(models.KindTCP))
			Expect(fake.reportFor).To(Equal([]*models.DestinationKind{nil}))
		})

		// Given a kind filter
		// When we generate the report
		// Then the filter is forwarded to the remote service
		It("should forward the kind filter", func() {
			// Arrange
			kind := models.KindMQTT
			fake.report.ReportType = ""

			// Act
			doc := srv.GenerateReport(ctx, &kind)

			// Assert
			Expect(doc.ReportType).To(Equal("mqtt"))
			Expect(fake.reportFor).To(HaveLen(1))
			Expect(*fake.reportFor[0]).To(Equal(models.KindMQTT))
		})

		// Given an unreachable remote service
		// When we generate the report
		// Then an error document is returned with the local state
		It("should return an error document when the remote service fails", func() {
			// Arrange
			fake.reportErr = errors.New("connection refused")

			// Act
			doc := srv.GenerateReport(ctx, nil)

			// Assert
			Expect(doc.Error).NotTo(BeNil())
			Expect(doc.Error.Message).To(Equal("Failed to generate diagnostic report: connection refused"))
			Expect(doc.Error.Suggestion).To(Equal("Please check that the Kismet server is running and try again."))
			Expect(doc.SystemInfo).To(BeNil())
			Expect(doc.Configs).To(Equal(configs))
			Expect(fake.reportFor).To(HaveLen(1))
		})
	})

	Describe("ExportText", func() {
		// Given a generated report
		// When we export it twice
		// Then the output is identical and names the file after the generation time
		It("should be deterministic", func() {
			// Arrange
			doc := srv.GenerateReport(ctx, nil)
			doc.GeneratedAt = time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)

			// Act
			name, first := srv.ExportText(doc)
			_, second := srv.ExportText(doc)

			// Assert
			Expect(name).To(Equal("forgedfate-connectivity-diagnostic-2024-03-01T12-30-45.txt"))
			Expect(first).To(Equal(second))
			text := string(first)
			Expect(text).To(ContainSubstring("password: s3cret"))
			Expect(text).To(ContainSubstring("Response Time: 7ms"))
			Expect(strings.Index(text, "SYSTEM INFORMATION")).To(BeNumerically("<", strings.Index(text, "TROUBLESHOOTING GUIDE")))
			Expect(text).To(ContainSubstring("Connection Refused:"))
		})
	})

	Describe("ExportXLSX", func() {
		// Given a generated report
		// When we export it as a workbook
		// Then a zip archive should be produced
		It("should render a workbook", func() {
			// Arrange
			doc := srv.GenerateReport(ctx, nil)

			// Act
			name, data, err := srv.ExportXLSX(doc)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(name).To(HaveSuffix(".xlsx"))
			Expect(data[:2]).To(Equal([]byte("PK")))
		})
	})
})
