package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/oapi-codegen/runtime"
)

// RequestEditorFn  is the function signature for the RequestEditor callback function
type RequestEditorFn func(ctx context.Context, req *http.Request) error

// Doer performs HTTP requests.
//
// The standard http.Client implements this interface.
type HttpRequestDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client which conforms to the OpenAPI3 document of the connectivity test service.
type Client struct {
	// The endpoint of the server conforming to this interface, with scheme,
	// https://api.deepmap.com for example. This can contain a path relative
	// to the server, such as https://api.deepmap.com/dev-test, and all the
	// paths in the OpenAPI document will be appended to the server.
	Server string

	// Doer for performing requests, typically a *http.Client with any
	// customized settings, such as certificate chains.
	Client HttpRequestDoer

	// A list of callbacks for modifying requests which are generated before sending over
	// the network.
	RequestEditors []RequestEditorFn
}

// ClientOption allows setting custom parameters during construction
type ClientOption func(*Client) error

// Creates a new Client, with reasonable defaults
func NewClient(server string, opts ...ClientOption) (*Client, error) {
	// create a client with sane default values
	client := Client{
		Server: server,
	}
	// mutate client and add all optional params
	for _, o := range opts {
		if err := o(&client); err != nil {
			return nil, err
		}
	}
	// ensure the server URL always has a trailing slash
	if !strings.HasSuffix(client.Server, "/") {
		client.Server += "/"
	}
	// create httpClient, if not already present
	if client.Client == nil {
		client.Client = &http.Client{}
	}
	return &client, nil
}

// WithHTTPClient allows overriding the default Doer, which is
// automatically created using http.Client. This is useful for tests.
func WithHTTPClient(doer HttpRequestDoer) ClientOption {
	return func(c *Client) error {
		c.Client = doer
		return nil
	}
}

// WithRequestEditorFn allows setting up a callback function, which will be
// called right before sending the request. This can be used to mutate the request.
func WithRequestEditorFn(fn RequestEditorFn) ClientOption {
	return func(c *Client) error {
		c.RequestEditors = append(c.RequestEditors, fn)
		return nil
	}
}

// The interface specification for the client above.
type ClientInterface interface {
	// GetDiagnosticReport request
	GetDiagnosticReport(ctx context.Context, reqEditors ...RequestEditorFn) (*http.Response, error)

	// PostDiagnosticReportWithBody request with any body
	PostDiagnosticReportWithBody(ctx context.Context, contentType string, body io.Reader, reqEditors ...RequestEditorFn) (*http.Response, error)

	PostDiagnosticReport(ctx context.Context, body PostDiagnosticReportJSONRequestBody, reqEditors ...RequestEditorFn) (*http.Response, error)

	// TestConnectivityWithBody request with any body
	TestConnectivityWithBody(ctx context.Context, kind TestKind, contentType string, body io.Reader, reqEditors ...RequestEditorFn) (*http.Response, error)
}

func (c *Client) GetDiagnosticReport(ctx context.Context, reqEditors ...RequestEditorFn) (*http.Response, error) {
	req, err := NewGetDiagnosticReportRequest(c.Server)
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)
	if err := c.applyEditors(ctx, req, reqEditors); err != nil {
		return nil, err
	}
	return c.Client.Do(req)
}

func (c *Client) PostDiagnosticReportWithBody(ctx context.Context, contentType string, body io.Reader, reqEditors ...RequestEditorFn) (*http.Response, error) {
	req, err := NewPostDiagnosticReportRequestWithBody(c.Server, contentType, body)
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)
	if err := c.applyEditors(ctx, req, reqEditors); err != nil {
		return nil, err
	}
	return c.Client.Do(req)
}

func (c *Client) PostDiagnosticReport(ctx context.Context, body PostDiagnosticReportJSONRequestBody, reqEditors ...RequestEditorFn) (*http.Response, error) {
	req, err := NewPostDiagnosticReportRequest(c.Server, body)
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)
	if err := c.applyEditors(ctx, req, reqEditors); err != nil {
		return nil, err
	}
	return c.Client.Do(req)
}

func (c *Client) TestConnectivityWithBody(ctx context.Context, kind TestKind, contentType string, body io.Reader, reqEditors ...RequestEditorFn) (*http.Response, error) {
	req, err := NewTestConnectivityRequestWithBody(c.Server, kind, contentType, body)
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)
	if err := c.applyEditors(ctx, req, reqEditors); err != nil {
		return nil, err
	}
	return c.Client.Do(req)
}

// NewGetDiagnosticReportRequest generates requests for GetDiagnosticReport
func NewGetDiagnosticReportRequest(server string) (*http.Request, error) {
	var err error

	serverURL, err := url.Parse(server)
	if err != nil {
		return nil, err
	}

	operationPath := fmt.Sprintf("/api/v1/connectivity/diagnostics/report")
	if operationPath[0] == '/' {
		operationPath = "." + operationPath
	}

	queryURL, err := serverURL.Parse(operationPath)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("GET", queryURL.String(), nil)
	if err != nil {
		return nil, err
	}

	return req, nil
}

// NewPostDiagnosticReportRequest calls the generic PostDiagnosticReport builder with application/json body
func NewPostDiagnosticReportRequest(server string, body PostDiagnosticReportJSONRequestBody) (*http.Request, error) {
	var bodyReader io.Reader
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	bodyReader = bytes.NewReader(buf)
	return NewPostDiagnosticReportRequestWithBody(server, "application/json", bodyReader)
}

// NewPostDiagnosticReportRequestWithBody generates requests for PostDiagnosticReport with any type of body
func NewPostDiagnosticReportRequestWithBody(server string, contentType string, body io.Reader) (*http.Request, error) {
	var err error

	serverURL, err := url.Parse(server)
	if err != nil {
		return nil, err
	}

	operationPath := fmt.Sprintf("/api/v1/connectivity/diagnostics/report")
	if operationPath[0] == '/' {
		operationPath = "." + operationPath
	}

	queryURL, err := serverURL.Parse(operationPath)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", queryURL.String(), body)
	if err != nil {
		return nil, err
	}

	req.Header.Add("Content-Type", contentType)

	return req, nil
}

// NewTestConnectivityRequestWithBody generates requests for TestConnectivity with any type of body
func NewTestConnectivityRequestWithBody(server string, kind TestKind, contentType string, body io.Reader) (*http.Request, error) {
	var err error

	var pathParam0 string

	pathParam0, err = runtime.StyleParamWithLocation("simple", false, "kind", runtime.ParamLocationPath, kind)
	if err != nil {
		return nil, err
	}

	serverURL, err := url.Parse(server)
	if err != nil {
		return nil, err
	}

	operationPath := fmt.Sprintf("/api/v1/connectivity/test/%s", pathParam0)
	if operationPath[0] == '/' {
		operationPath = "." + operationPath
	}

	queryURL, err := serverURL.Parse(operationPath)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", queryURL.String(), body)
	if err != nil {
		return nil, err
	}

	req.Header.Add("Content-Type", contentType)

	return req, nil
}

func (c *Client) applyEditors(ctx context.Context, req *http.Request, additionalEditors []RequestEditorFn) error {
	for _, r := range c.RequestEditors {
		if err := r(ctx, req); err != nil {
			return err
		}
	}
	for _, r := range additionalEditors {
		if err := r(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

// ClientWithResponses builds on ClientInterface to offer response payloads
type ClientWithResponses struct {
	ClientInterface
}

// NewClientWithResponses creates a new ClientWithResponses, which wraps
// Client with return type handling
func NewClientWithResponses(server string, opts ...ClientOption) (*ClientWithResponses, error) {
	client, err := NewClient(server, opts...)
	if err != nil {
		return nil, err
	}
	return &ClientWithResponses{client}, nil
}

// ClientWithResponsesInterface is the interface specification for the client with responses above.
type ClientWithResponsesInterface interface {
	// GetDiagnosticReportWithResponse request
	GetDiagnosticReportWithResponse(ctx context.Context, reqEditors ...RequestEditorFn) (*GetDiagnosticReportResponse, error)

	// PostDiagnosticReportWithBodyWithResponse request with any body
	PostDiagnosticReportWithBodyWithResponse(ctx context.Context, contentType string, body io.Reader, reqEditors ...RequestEditorFn) (*PostDiagnosticReportResponse, error)

	PostDiagnosticReportWithResponse(ctx context.Context, body PostDiagnosticReportJSONRequestBody, reqEditors ...RequestEditorFn) (*PostDiagnosticReportResponse, error)

	// TestConnectivityWithBodyWithResponse request with any body
	TestConnectivityWithBodyWithResponse(ctx context.Context, kind TestKind, contentType string, body io.Reader, reqEditors ...RequestEditorFn) (*TestConnectivityResponse, error)
}

type GetDiagnosticReportResponse struct {
	Body         []byte
	HTTPResponse *http.Response
	JSON200      *DiagnosticReport
	JSONDefault  *Error
}

// Status returns HTTPResponse.Status
func (r GetDiagnosticReportResponse) Status() string {
	if r.HTTPResponse != nil {
		return r.HTTPResponse.Status
	}
	return http.StatusText(0)
}

// StatusCode returns HTTPResponse.StatusCode
func (r GetDiagnosticReportResponse) StatusCode() int {
	if r.HTTPResponse != nil {
		return r.HTTPResponse.StatusCode
	}
	return 0
}

type PostDiagnosticReportResponse struct {
	Body         []byte
	HTTPResponse *http.Response
	JSON200      *DiagnosticReport
	JSONDefault  *Error
}

// Status returns HTTPResponse.Status
func (r PostDiagnosticReportResponse) Status() string {
	if r.HTTPResponse != nil {
		return r.HTTPResponse.Status
	}
	return http.StatusText(0)
}

// StatusCode returns HTTPResponse.StatusCode
func (r PostDiagnosticReportResponse) StatusCode() int {
	if r.HTTPResponse != nil {
		return r.HTTPResponse.StatusCode
	}
	return 0
}

type TestConnectivityResponse struct {
	Body         []byte
	HTTPResponse *http.Response
	JSON200      *TestResult
	JSONDefault  *Error
}

// Status returns HTTPResponse.Status
func (r TestConnectivityResponse) Status() string {
	if r.HTTPResponse != nil {
		return r.HTTPResponse.Status
	}
	return http.StatusText(0)
}

// StatusCode returns HTTPResponse.StatusCode
func (r TestConnectivityResponse) StatusCode() int {
	if r.HTTPResponse != nil {
		return r.HTTPResponse.StatusCode
	}
	return 0
}

// GetDiagnosticReportWithResponse request returning *GetDiagnosticReportResponse
func (c *ClientWithResponses) GetDiagnosticReportWithResponse(ctx context.Context, reqEditors ...RequestEditorFn) (*GetDiagnosticReportResponse, error) {
	rsp, err := c.GetDiagnosticReport(ctx, reqEditors...)
	if err != nil {
		return nil, err
	}
	return ParseGetDiagnosticReportResponse(rsp)
}

// PostDiagnosticReportWithBodyWithResponse request with arbitrary body returning *PostDiagnosticReportResponse
func (c *ClientWithResponses) PostDiagnosticReportWithBodyWithResponse(ctx context.Context, contentType string, body io.Reader, reqEditors ...RequestEditorFn) (*PostDiagnosticReportResponse, error) {
	rsp, err := c.PostDiagnosticReportWithBody(ctx, contentType, body, reqEditors...)
	if err != nil {
		return nil, err
	}
	return ParsePostDiagnosticReportResponse(rsp)
}

func (c *ClientWithResponses) PostDiagnosticReportWithResponse(ctx context.Context, body PostDiagnosticReportJSONRequestBody, reqEditors ...RequestEditorFn) (*PostDiagnosticReportResponse, error) {
	rsp, err := c.PostDiagnosticReport(ctx, body, reqEditors...)
	if err != nil {
		return nil, err
	}
	return ParsePostDiagnosticReportResponse(rsp)
}

// TestConnectivityWithBodyWithResponse request with arbitrary body returning *TestConnectivityResponse
func (c *ClientWithResponses) TestConnectivityWithBodyWithResponse(ctx context.Context, kind TestKind, contentType string, body io.Reader, reqEditors ...RequestEditorFn) (*TestConnectivityResponse, error) {
	rsp, err := c.TestConnectivityWithBody(ctx, kind, contentType, body, reqEditors...)
	if err != nil {
		return nil, err
	}
	return ParseTestConnectivityResponse(rsp)
}

// ParseGetDiagnosticReportResponse parses an HTTP response from a GetDiagnosticReportWithResponse call
func ParseGetDiagnosticReportResponse(rsp *http.Response) (*GetDiagnosticReportResponse, error) {
	bodyBytes, err := io.ReadAll(rsp.Body)
	defer func() { _ = rsp.Body.Close() }()
	if err != nil {
		return nil, err
	}

	response := &GetDiagnosticReportResponse{
		Body:         bodyBytes,
		HTTPResponse: rsp,
	}

	switch {
	case strings.Contains(rsp.Header.Get("Content-Type"), "json") && rsp.StatusCode == 200:
		var dest DiagnosticReport
		if err := json.Unmarshal(bodyBytes, &dest); err != nil {
			return nil, err
		}
		response.JSON200 = &dest

	case strings.Contains(rsp.Header.Get("Content-Type"), "json") && true:
		var dest Error
		if err := json.Unmarshal(bodyBytes, &dest); err != nil {
			return nil, err
		}
		response.JSONDefault = &dest

	}

	return response, nil
}

// ParsePostDiagnosticReportResponse parses an HTTP response from a PostDiagnosticReportWithResponse call
func ParsePostDiagnosticReportResponse(rsp *http.Response) (*PostDiagnosticReportResponse, error) {
	bodyBytes, err := io.ReadAll(rsp.Body)
	defer func() { _ = rsp.Body.Close() }()
	if err != nil {
		return nil, err
	}

	response := &PostDiagnosticReportResponse{
		Body:         bodyBytes,
		HTTPResponse: rsp,
	}

	switch {
	case strings.Contains(rsp.Header.Get("Content-Type"), "json") && rsp.StatusCode == 200:
		var dest DiagnosticReport
		if err := json.Unmarshal(bodyBytes, &dest); err != nil {
			return nil, err
		}
		response.JSON200 = &dest

	case strings.Contains(rsp.Header.Get("Content-Type"), "json") && true:
		var dest Error
		if err := json.Unmarshal(bodyBytes, &dest); err != nil {
			return nil, err
		}
		response.JSONDefault = &dest

	}

	return response, nil
}

// ParseTestConnectivityResponse parses an HTTP response from a TestConnectivityWithResponse call
func ParseTestConnectivityResponse(rsp *http.Response) (*TestConnectivityResponse, error) {
	bodyBytes, err := io.ReadAll(rsp.Body)
	defer func() { _ = rsp.Body.Close() }()
	if err != nil {
		return nil, err
	}

	response := &TestConnectivityResponse{
		Body:         bodyBytes,
		HTTPResponse: rsp,
	}

	switch {
	case strings.Contains(rsp.Header.Get("Content-Type"), "json") && rsp.StatusCode == 200:
		var dest TestResult
		if err := json.Unmarshal(bodyBytes, &dest); err != nil {
			return nil, err
		}
		response.JSON200 = &dest

	case strings.Contains(rsp.Header.Get("Content-Type"), "json") && true:
		var dest Error
		if err := json.Unmarshal(bodyBytes, &dest); err != nil {
			return nil, err
		}
		response.JSONDefault = &dest

	}

	return response, nil
}
