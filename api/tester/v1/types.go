// Package v1 provides primitives to interact with the connectivity test API of the capture server.
package v1

import (
	externalRef0 "github.com/vinforge/forgedfate/internal/models"
)

// Defines values for TestKind.
const (
	TestKindElasticsearch TestKind = "elasticsearch"
	TestKindMqtt          TestKind = "mqtt"
	TestKindTcp           TestKind = "tcp"
	TestKindUdp           TestKind = "udp"
)

// DiagnosticReport defines model for DiagnosticReport.
type DiagnosticReport struct {
	ElasticsearchDiagnostics externalRef0.OrderedMap `json:"elasticsearch_diagnostics"`
	MQTTDiagnostics          externalRef0.OrderedMap `json:"mqtt_diagnostics"`
	NetworkDiagnostics       externalRef0.OrderedMap `json:"network_diagnostics"`
	ReportType               string                  `json:"report_type"`
	SystemInfo               externalRef0.OrderedMap `json:"system_info"`
	TCPDiagnostics           externalRef0.OrderedMap `json:"tcp_diagnostics"`
	Timestamp                int64                   `json:"timestamp"`
	TroubleshootingGuide     externalRef0.OrderedMap `json:"troubleshooting_guide"`
	UDPDiagnostics           externalRef0.OrderedMap `json:"udp_diagnostics"`
}

// DiagnosticReportRequest defines model for DiagnosticReportRequest.
type DiagnosticReportRequest struct {
	ExportType TestKind `json:"export_type"`
}

// ElasticsearchTestRequest defines model for ElasticsearchTestRequest.
type ElasticsearchTestRequest struct {
	Password string `json:"password"`
	Timeout  int    `json:"timeout"`
	URL      string `json:"url"`
	Username string `json:"username"`
}

// Error defines model for Error.
type Error struct {
	Error string `json:"error"`
}

// MqttTestRequest defines model for MqttTestRequest.
type MqttTestRequest struct {
	Host     string `json:"host"`
	Password string `json:"password"`
	Port     int    `json:"port"`
	Timeout  int    `json:"timeout"`
	Username string `json:"username"`
}

// StreamTestRequest defines model for StreamTestRequest.
type StreamTestRequest struct {
	Host    string `json:"host"`
	Port    int    `json:"port"`
	Timeout int    `json:"timeout"`
}

// TestKind defines model for TestKind.
type TestKind string

// TestResult defines model for TestResult.
type TestResult struct {
	Details        externalRef0.Details `json:"details"`
	Errors         []string             `json:"errors"`
	ResponseTimeMs *uint32              `json:"response_time_ms"`
	Status         string               `json:"status"`
	Suggestions    []string             `json:"suggestions"`
	TargetHost     string               `json:"target_host"`
	TargetPort     int                  `json:"target_port"`
	Timestamp      int64                `json:"timestamp"`
}

// PostDiagnosticReportJSONRequestBody defines body for PostDiagnosticReport for application/json ContentType.
type PostDiagnosticReportJSONRequestBody = DiagnosticReportRequest
