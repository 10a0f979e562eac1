// Package tester is a client of the connectivity test service exposed by the capture server.
package tester

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	testerClient "github.com/vinforge/forgedfate/api/tester/v1"
	"github.com/vinforge/forgedfate/internal/models"
	srvErrors "github.com/vinforge/forgedfate/pkg/errors"
)

const maxErrorBody = 4096

type Client struct {
	httpClient testerClient.ClientWithResponsesInterface
	logger     *zap.SugaredLogger
}

type options struct {
	token string
	doer  testerClient.HttpRequestDoer
}

type Option func(*options)

// WithToken sends the token as a bearer token on every request.
func WithToken(token string) Option {
	return func(o *options) {
		o.token = token
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		if hc != nil {
			o.doer = hc
		}
	}
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tester client: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("failed to initialize tester client: unsupported scheme %q", u.Scheme)
	}

	o := options{doer: &http.Client{}}
	for _, opt := range opts {
		opt(&o)
	}

	httpClient, err := testerClient.NewClientWithResponses(baseURL,
		testerClient.WithHTTPClient(o.doer),
		testerClient.WithRequestEditorFn(func(ctx context.Context, req *http.Request) error {
			req.Header.Set("Accept", "application/json")
			req.Header.Set("X-Request-ID", uuid.NewString())
			if o.token == "" {
				return nil
			}
			req.Header.Set("Authorization", "Bearer "+o.token)
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tester client: %w", err)
	}

	return &Client{
		httpClient: httpClient,
		logger:     zap.S().Named("tester_client"),
	}, nil
}

// Test asks the service to test the destination.
// POST /api/v1/connectivity/test/{kind}
// Deadlines are taken from ctx.
func (c *Client) Test(ctx context.Context, kind models.DestinationKind, payload any) (*RemoteResult, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.TestConnectivityWithBodyWithResponse(ctx, testerClient.TestKind(kind), "application/json", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	c.logResponse(resp.HTTPResponse)

	return decode(resp.HTTPResponse, resp.Body, resp.JSON200, resp.JSONDefault)
}

// DiagnosticReport fetches the diagnostic report.
// GET /api/v1/connectivity/diagnostics/report, or POST {export_type} when kind is set.
func (c *Client) DiagnosticReport(ctx context.Context, kind *models.DestinationKind) (*RemoteReport, error) {
	var (
		report *testerClient.DiagnosticReport
		err    error
	)

	if kind == nil {
		resp, getErr := c.httpClient.GetDiagnosticReportWithResponse(ctx)
		if getErr != nil {
			return nil, getErr
		}
		c.logResponse(resp.HTTPResponse)
		report, err = decode(resp.HTTPResponse, resp.Body, resp.JSON200, resp.JSONDefault)
	} else {
		body := testerClient.DiagnosticReportRequest{ExportType: testerClient.TestKind(*kind)}
		resp, postErr := c.httpClient.PostDiagnosticReportWithResponse(ctx, body)
		if postErr != nil {
			return nil, postErr
		}
		c.logResponse(resp.HTTPResponse)
		report, err = decode(resp.HTTPResponse, resp.Body, resp.JSON200, resp.JSONDefault)
	}
	if err != nil {
		return nil, err
	}

	return (*RemoteReport)(report), nil
}

func (c *Client) logResponse(resp *http.Response) {
	var method, path, requestID string
	if resp.Request != nil {
		method = resp.Request.Method
		path = resp.Request.URL.Path
		requestID = resp.Request.Header.Get("X-Request-ID")
	}
	c.logger.Debugw("tester request", "method", method, "path", path, "status", resp.StatusCode, "request_id", requestID)
}

// decode picks the typed payload of a response. The service does not always
// label its answers as json, so an unlabeled body is decoded here.
func decode[T any](resp *http.Response, body []byte, parsed *T, failure *testerClient.Error) (*T, error) {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, srvErrors.NewTesterClientError(resp.StatusCode, errorMessage(resp, body, failure))
	}
	if parsed != nil {
		return parsed, nil
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode tester response: %w", err)
	}
	return &out, nil
}

func errorMessage(resp *http.Response, body []byte, failure *testerClient.Error) string {
	if failure != nil && failure.Error != "" {
		return failure.Error
	}
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}

	var eb testerClient.Error
	if err := json.Unmarshal(body, &eb); err == nil && eb.Error != "" {
		return eb.Error
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return resp.Status
}
