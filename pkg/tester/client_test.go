package tester_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vinforge/forgedfate/internal/models"
	srvErrors "github.com/vinforge/forgedfate/pkg/errors"
	"github.com/vinforge/forgedfate/pkg/tester"
)

var _ = Describe("Client", func() {
	var (
		server   *httptest.Server
		handler  http.HandlerFunc
		client   *tester.Client
		ctx      context.Context
		lastReq  *http.Request
		lastBody []byte
	)

	BeforeEach(func() {
		ctx = context.Background()
		lastReq = nil
		lastBody = nil
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lastReq = r
			lastBody, _ = io.ReadAll(r.Body)
			handler(w, r)
		}))

		var err error
		client, err = tester.NewClient(server.URL+"/", tester.WithToken("secret-token"))
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		server.Close()
	})

	Context("Test", func() {
		// Given a service answering with a tcp result
		// When we test a tcp destination
		// Then the payload reaches the kind endpoint and the result is decoded
		It("should post the payload and decode the result", func() {
			// Arrange
			handler = func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"status":"success","response_time_ms":42,"target_host":"10.0.0.1","target_port":8685,"timestamp":1760000000,"details":{"protocol":"TCP","latency_quality":"excellent"},"errors":[],"suggestions":[]}`))
			}

			// Act
			result, err := client.Test(ctx, models.KindTCP, tester.StreamProbe{Host: "10.0.0.1", Port: 8685, Timeout: 10})

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(lastReq.Method).To(Equal(http.MethodPost))
			Expect(lastReq.URL.Path).To(Equal("/api/v1/connectivity/test/tcp"))
			Expect(lastReq.Header.Get("Authorization")).To(Equal("Bearer secret-token"))
			Expect(lastReq.Header.Get("X-Request-ID")).NotTo(BeEmpty())
			Expect(lastBody).To(MatchJSON(`{"host":"10.0.0.1","port":8685,"timeout":10}`))

			Expect(result.Status).To(Equal("success"))
			Expect(*result.ResponseTimeMs).To(Equal(uint32(42)))
			Expect(result.Details).To(Equal(models.Details{
				{Key: "protocol", Value: "TCP"},
				{Key: "latency_quality", Value: "excellent"},
			}))
		})

		It("should send the elasticsearch payload", func() {
			handler = func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"status":"warning","details":{},"errors":[],"suggestions":["Check cluster health"]}`))
			}

			result, err := client.Test(ctx, models.KindElasticsearch, tester.ElasticsearchProbe{URL: "http://es:9200", Username: "u", Password: "p", Timeout: 5})

			Expect(err).NotTo(HaveOccurred())
			Expect(lastReq.URL.Path).To(Equal("/api/v1/connectivity/test/elasticsearch"))
			Expect(lastBody).To(MatchJSON(`{"url":"http://es:9200","username":"u","password":"p","timeout":5}`))
			Expect(result.ResponseTimeMs).To(BeNil())
			Expect(result.Suggestions).To(ConsistOf("Check cluster health"))
		})

		// Given a service rejecting the request
		// When we test a destination
		// Then a TesterClientError carries the status and the remote message
		It("should return a TesterClientError on non 2xx", func() {
			// Arrange
			handler = func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "Missing required parameters: host and port"})
			}

			// Act
			_, err := client.Test(ctx, models.KindMQTT, tester.MQTTProbe{})

			// Assert
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsTesterClientError(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("Missing required parameters"))
		})

		It("should read the error of a json labeled rejection", func() {
			handler = func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"error":"Kismet is restarting"}`))
			}

			_, err := client.Test(ctx, models.KindTCP, tester.StreamProbe{})

			Expect(srvErrors.IsTesterClientError(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("Kismet is restarting"))
		})

		// Given two consecutive tests
		// When both reach the service
		// Then each request carries its own request id
		It("should send a fresh request id on every request", func() {
			// Arrange
			ids := []string{}
			handler = func(w http.ResponseWriter, r *http.Request) {
				ids = append(ids, r.Header.Get("X-Request-ID"))
				_, _ = w.Write([]byte(`{"status":"success"}`))
			}

			// Act
			_, err := client.Test(ctx, models.KindTCP, tester.StreamProbe{})
			Expect(err).NotTo(HaveOccurred())
			_, err = client.Test(ctx, models.KindUDP, tester.StreamProbe{})
			Expect(err).NotTo(HaveOccurred())

			// Assert
			Expect(ids).To(HaveLen(2))
			Expect(ids[0]).NotTo(BeEmpty())
			Expect(ids[0]).NotTo(Equal(ids[1]))
			Expect(lastReq.URL.Path).To(Equal("/api/v1/connectivity/test/udp"))
		})

		It("should fail on an unparsable body", func() {
			handler = func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>`))
			}

			_, err := client.Test(ctx, models.KindUDP, tester.StreamProbe{})

			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsTesterClientError(err)).To(BeFalse())
		})

		It("should fail when the service is down", func() {
			handler = func(w http.ResponseWriter, r *http.Request) {}
			server.Close()

			_, err := client.Test(ctx, models.KindTCP, tester.StreamProbe{})

			Expect(err).To(HaveOccurred())
		})
	})

	Context("DiagnosticReport", func() {
		const report = `{"timestamp":1760000000,"report_type":"full_system","system_info":{"platform":"linux","kismet_version":"2025.01.17"},"tcp_diagnostics":{"common_ports":[80,443]},"troubleshooting_guide":{"timeout_errors":["Check network connectivity","Verify DNS resolution"]}}`

		It("should get the full report", func() {
			// Arrange
			handler = func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(report))
			}

			// Act
			result, err := client.DiagnosticReport(ctx, nil)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(lastReq.Method).To(Equal(http.MethodGet))
			Expect(lastReq.URL.Path).To(Equal("/api/v1/connectivity/diagnostics/report"))
			Expect(result.ReportType).To(Equal("full_system"))
			Expect(result.SystemInfo[0].Key).To(Equal("platform"))
			Expect(result.Diagnostics(models.KindTCP)[0].Text()).To(Equal("80, 443"))
			Expect(result.Diagnostics(models.KindMQTT)).To(BeNil())
			Expect(result.TroubleshootingGuide[0].Strings()).To(HaveLen(2))
		})

		It("should post the kind filter", func() {
			handler = func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"timestamp":1,"report_type":"mqtt"}`))
			}
			kind := models.KindMQTT

			result, err := client.DiagnosticReport(ctx, &kind)

			Expect(err).NotTo(HaveOccurred())
			Expect(lastReq.Method).To(Equal(http.MethodPost))
			Expect(lastBody).To(MatchJSON(`{"export_type":"mqtt"}`))
			Expect(result.ReportType).To(Equal("mqtt"))
		})
	})

	It("should reject a base url without http scheme", func() {
		_, err := tester.NewClient("ftp://capture:2501")
		Expect(err).To(HaveOccurred())
	})
})
