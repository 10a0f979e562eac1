// Package handlers implements the HTTP API layer of the forgedfate agent.
//
// Handlers delegate to the services layer and only deal with parameter
// parsing, error mapping and the conversion to the API types of api/v1.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Parameter parsing                                            │
//	│  - Error mapping to HTTP status codes                           │
//	│  - Model-to-API conversion                                      │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Services Layer                             │
//	│  Config │ Probe │ Badges │ Monitor │ History │ Diagnostics      │
//	└─────────────────────────────────────────────────────────────────┘
//
// The Handler implements v1.ServerInterface and is registered with:
//
//	v1.RegisterHandlers(router, handler)
//
// # API Endpoints
//
// Export Endpoints (exports.go):
//
//	┌────────┬───────────────────────────┬──────────────────────────────────┐
//	│ Method │ Endpoint                  │ Description                      │
//	├────────┼───────────────────────────┼──────────────────────────────────┤
//	│ GET    │ /exports                  │ All destinations with derived    │
//	│ GET    │ /exports/{kind}           │ One destination                  │
//	│ PUT    │ /exports/{kind}           │ Merge a partial record           │
//	│ PATCH  │ /exports/{kind}           │ Set one field                    │
//	│ GET    │ /exports/{kind}/command   │ Export command line              │
//	│ GET    │ /exports/{kind}/validation│ Errors and warnings              │
//	│ POST   │ /exports/{kind}/test      │ Interactive connectivity test    │
//	│ GET    │ /badges                   │ Status badge of every kind       │
//	└────────┴───────────────────────────┴──────────────────────────────────┘
//
// Monitor Endpoints (monitor.go, stream.go):
//
//	┌────────┬──────────────────┬───────────────────────────────────────┐
//	│ Method │ Endpoint         │ Description                           │
//	├────────┼──────────────────┼───────────────────────────────────────┤
//	│ GET    │ /monitor         │ Monitor status and last results       │
//	│ POST   │ /monitor         │ Start the monitor                     │
//	│ DELETE │ /monitor         │ Stop the monitor                      │
//	│ GET    │ /monitor/results │ Result history (kind, limit)          │
//	│ GET    │ /monitor/stream  │ Websocket of badge and result events  │
//	└────────┴──────────────────┴───────────────────────────────────────┘
//
// Diagnostic Endpoints (diagnostics.go):
//
//	┌────────┬────────────────────────────┬─────────────────────────────┐
//	│ Method │ Endpoint                   │ Description                 │
//	├────────┼────────────────────────────┼─────────────────────────────┤
//	│ GET    │ /diagnostics/report        │ Report document (kind)      │
//	│ GET    │ /diagnostics/report/export │ Download (format=text|xlsx) │
//	└────────┴────────────────────────────┴─────────────────────────────┘
//
// PATCH /exports/{kind} request:
//
//	{ "field": "server_port", "value": 9000 }
//
// A connectivity test always answers 200 with a test result. Failures of the
// remote test service are results with status "error":
//
//	{
//	    "kind": "tcp",
//	    "mode": "interactive",
//	    "status": "error",
//	    "details": [],
//	    "errors": ["Request failed: ..."],
//	    "suggestions": ["Check if the Kismet server is running", "Verify network connectivity"]
//	}
//
// # Error Handling
//
// Errors use the format:
//
//	{ "error": "error message" }
//
// HTTP Status Code Mapping:
//
//	┌─────────────────────────────┬────────┬──────────────────────────────┐
//	│ Error Type                  │ Status │ When                         │
//	├─────────────────────────────┼────────┼──────────────────────────────┤
//	│ Validation error            │ 400    │ Invalid request params       │
//	│ InvalidKindError            │ 400    │ Unknown destination kind     │
//	│ InvalidFieldError           │ 400    │ Unknown field or bad value   │
//	│ ResourceNotFoundError       │ 404    │ Resource doesn't exist       │
//	│ ProbeInProgressError        │ 409    │ Test of the kind running     │
//	│ MonitorStateError           │ 409    │ Monitor closed               │
//	│ TesterClientError           │ 502    │ Remote test service refused  │
//	│ Internal error              │ 500    │ Unexpected service errors    │
//	└─────────────────────────────┴────────┴──────────────────────────────┘
package handlers
