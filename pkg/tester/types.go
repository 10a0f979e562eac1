package tester

import (
	testerClient "github.com/vinforge/forgedfate/api/tester/v1"
	"github.com/vinforge/forgedfate/internal/models"
)

// StreamProbe is the payload of the tcp and udp tests.
type StreamProbe = testerClient.StreamTestRequest

type ElasticsearchProbe = testerClient.ElasticsearchTestRequest

type MQTTProbe = testerClient.MqttTestRequest

// RemoteResult is the answer of POST /api/v1/connectivity/test/{kind}.
type RemoteResult = testerClient.TestResult

// RemoteReport is the answer of /api/v1/connectivity/diagnostics/report.
type RemoteReport testerClient.DiagnosticReport

// Diagnostics returns the section of the given kind, nil when the report has none.
func (r RemoteReport) Diagnostics(kind models.DestinationKind) models.OrderedMap {
	switch kind {
	case models.KindTCP:
		return r.TCPDiagnostics
	case models.KindUDP:
		return r.UDPDiagnostics
	case models.KindElasticsearch:
		return r.ElasticsearchDiagnostics
	case models.KindMQTT:
		return r.MQTTDiagnostics
	default:
		return nil
	}
}
