package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /badges)
	GetBadges(c *gin.Context)
	// (GET /diagnostics/report)
	GetDiagnosticReport(c *gin.Context, params GetDiagnosticReportParams)
	// (GET /diagnostics/report/export)
	ExportDiagnosticReport(c *gin.Context, params ExportDiagnosticReportParams)
	// (GET /exports)
	ListExports(c *gin.Context)
	// (GET /exports/{kind})
	GetExport(c *gin.Context, kind ExportKind)
	// (PUT /exports/{kind})
	ReplaceExport(c *gin.Context, kind ExportKind)
	// (PATCH /exports/{kind})
	UpdateExportField(c *gin.Context, kind ExportKind)
	// (GET /exports/{kind}/command)
	GetExportCommand(c *gin.Context, kind ExportKind)
	// (POST /exports/{kind}/test)
	TestExport(c *gin.Context, kind ExportKind)
	// (GET /exports/{kind}/validation)
	GetExportValidation(c *gin.Context, kind ExportKind)
	// (GET /monitor)
	GetMonitorStatus(c *gin.Context)
	// (POST /monitor)
	StartMonitor(c *gin.Context)
	// (DELETE /monitor)
	StopMonitor(c *gin.Context)
	// (GET /monitor/results)
	GetMonitorResults(c *gin.Context, params GetMonitorResultsParams)
	// (GET /monitor/stream)
	StreamMonitor(c *gin.Context)
}

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandler       func(*gin.Context, error, int)
}

type MiddlewareFunc func(c *gin.Context)

func (siw *ServerInterfaceWrapper) runMiddlewares(c *gin.Context) bool {
	for _, middleware := range siw.HandlerMiddlewares {
		middleware(c)
		if c.IsAborted() {
			return false
		}
	}
	return true
}

func (siw *ServerInterfaceWrapper) bindKind(c *gin.Context) (ExportKind, bool) {
	var kind ExportKind
	err := runtime.BindStyledParameterWithOptions("simple", "kind", c.Param("kind"), &kind, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandler(c, fmt.Errorf("Invalid format for parameter kind: %w", err), http.StatusBadRequest)
		return "", false
	}
	return kind, true
}

// GetBadges operation middleware
func (siw *ServerInterfaceWrapper) GetBadges(c *gin.Context) {
	if !siw.runMiddlewares(c) {
		return
	}
	siw.Handler.GetBadges(c)
}

// GetDiagnosticReport operation middleware
func (siw *ServerInterfaceWrapper) GetDiagnosticReport(c *gin.Context) {
	var params GetDiagnosticReportParams

	err := runtime.BindQueryParameter("form", true, false, "kind", c.Request.URL.Query(), &params.Kind)
	if err != nil {
		siw.ErrorHandler(c, fmt.Errorf("Invalid format for parameter kind: %w", err), http.StatusBadRequest)
		return
	}

	if !siw.runMiddlewares(c) {
		return
	}
	siw.Handler.GetDiagnosticReport(c, params)
}

// ExportDiagnosticReport operation middleware
func (siw *ServerInterfaceWrapper) ExportDiagnosticReport(c *gin.Context) {
	var params ExportDiagnosticReportParams

	err := runtime.BindQueryParameter("form", true, false, "kind", c.Request.URL.Query(), &params.Kind)
	if err != nil {
		siw.ErrorHandler(c, fmt.Errorf("Invalid format for parameter kind: %w", err), http.StatusBadRequest)
		return
	}

	err = runtime.BindQueryParameter("form", true, false, "format", c.Request.URL.Query(), &params.Format)
	if err != nil {
		siw.ErrorHandler(c, fmt.Errorf("Invalid format for parameter format: %w", err), http.StatusBadRequest)
		return
	}

	if !siw.runMiddlewares(c) {
		return
	}
	siw.Handler.ExportDiagnosticReport(c, params)
}

// ListExports operation middleware
func (siw *ServerInterfaceWrapper) ListExports(c *gin.Context) {
	if !siw.runMiddlewares(c) {
		return
	}
	siw.Handler.ListExports(c)
}

// GetExport operation middleware
func (siw *ServerInterfaceWrapper) GetExport(c *gin.Context) {
	kind, ok := siw.bindKind(c)
	if !ok || !siw.runMiddlewares(c) {
		return
	}
	siw.Handler.GetExport(c, kind)
}

// ReplaceExport operation middleware
func (siw *ServerInterfaceWrapper) ReplaceExport(c *gin.Context) {
	kind, ok := siw.bindKind(c)
	if !ok || !siw.runMiddlewares(c) {
		return
	}
	siw.Handler.ReplaceExport(c, kind)
}

// UpdateExportField operation middleware
func (siw *ServerInterfaceWrapper) UpdateExportField(c *gin.Context) {
	kind, ok := siw.bindKind(c)
	if !ok || !siw.runMiddlewares(c) {
		return
	}
	siw.Handler.UpdateExportField(c, kind)
}

// GetExportCommand operation middleware
func (siw *ServerInterfaceWrapper) GetExportCommand(c *gin.Context) {
	kind, ok := siw.bindKind(c)
	if !ok || !siw.runMiddlewares(c) {
		return
	}
	siw.Handler.GetExportCommand(c, kind)
}

// TestExport operation middleware
func (siw *ServerInterfaceWrapper) TestExport(c *gin.Context) {
	kind, ok := siw.bindKind(c)
	if !ok || !siw.runMiddlewares(c) {
		return
	}
	siw.Handler.TestExport(c, kind)
}

// GetExportValidation operation middleware
func (siw *ServerInterfaceWrapper) GetExportValidation(c *gin.Context) {
	kind, ok := siw.bindKind(c)
	if !ok || !siw.runMiddlewares(c) {
		return
	}
	siw.Handler.GetExportValidation(c, kind)
}

// GetMonitorStatus operation middleware
func (siw *ServerInterfaceWrapper) GetMonitorStatus(c *gin.Context) {
	if !siw.runMiddlewares(c) {
		return
	}
	siw.Handler.GetMonitorStatus(c)
}

// StartMonitor operation middleware
func (siw *ServerInterfaceWrapper) StartMonitor(c *gin.Context) {
	if !siw.runMiddlewares(c) {
		return
	}
	siw.Handler.StartMonitor(c)
}

// StopMonitor operation middleware
func (siw *ServerInterfaceWrapper) StopMonitor(c *gin.Context) {
	if !siw.runMiddlewares(c) {
		return
	}
	siw.Handler.StopMonitor(c)
}

// GetMonitorResults operation middleware
func (siw *ServerInterfaceWrapper) GetMonitorResults(c *gin.Context) {
	var params GetMonitorResultsParams

	err := runtime.BindQueryParameter("form", true, false, "kind", c.Request.URL.Query(), &params.Kind)
	if err != nil {
		siw.ErrorHandler(c, fmt.Errorf("Invalid format for parameter kind: %w", err), http.StatusBadRequest)
		return
	}

	err = runtime.BindQueryParameter("form", true, false, "limit", c.Request.URL.Query(), &params.Limit)
	if err != nil {
		siw.ErrorHandler(c, fmt.Errorf("Invalid format for parameter limit: %w", err), http.StatusBadRequest)
		return
	}

	if !siw.runMiddlewares(c) {
		return
	}
	siw.Handler.GetMonitorResults(c, params)
}

// StreamMonitor operation middleware
func (siw *ServerInterfaceWrapper) StreamMonitor(c *gin.Context) {
	if !siw.runMiddlewares(c) {
		return
	}
	siw.Handler.StreamMonitor(c)
}

// GinServerOptions provides options for the Gin server.
type GinServerOptions struct {
	BaseURL      string
	Middlewares  []MiddlewareFunc
	ErrorHandler func(*gin.Context, error, int)
}

// RegisterHandlers creates http.Handler with routing matching the OpenAPI document.
func RegisterHandlers(router gin.IRouter, si ServerInterface) {
	RegisterHandlersWithOptions(router, si, GinServerOptions{})
}

// RegisterHandlersWithOptions creates http.Handler with additional options
func RegisterHandlersWithOptions(router gin.IRouter, si ServerInterface, options GinServerOptions) {
	errorHandler := options.ErrorHandler
	if errorHandler == nil {
		errorHandler = func(c *gin.Context, err error, statusCode int) {
			c.JSON(statusCode, gin.H{"error": err.Error()})
		}
	}

	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandler:       errorHandler,
	}

	router.GET(options.BaseURL+"/badges", wrapper.GetBadges)
	router.GET(options.BaseURL+"/diagnostics/report", wrapper.GetDiagnosticReport)
	router.GET(options.BaseURL+"/diagnostics/report/export", wrapper.ExportDiagnosticReport)
	router.GET(options.BaseURL+"/exports", wrapper.ListExports)
	router.GET(options.BaseURL+"/exports/:kind", wrapper.GetExport)
	router.PUT(options.BaseURL+"/exports/:kind", wrapper.ReplaceExport)
	router.PATCH(options.BaseURL+"/exports/:kind", wrapper.UpdateExportField)
	router.GET(options.BaseURL+"/exports/:kind/command", wrapper.GetExportCommand)
	router.POST(options.BaseURL+"/exports/:kind/test", wrapper.TestExport)
	router.GET(options.BaseURL+"/exports/:kind/validation", wrapper.GetExportValidation)
	router.GET(options.BaseURL+"/monitor", wrapper.GetMonitorStatus)
	router.POST(options.BaseURL+"/monitor", wrapper.StartMonitor)
	router.DELETE(options.BaseURL+"/monitor", wrapper.StopMonitor)
	router.GET(options.BaseURL+"/monitor/results", wrapper.GetMonitorResults)
	router.GET(options.BaseURL+"/monitor/stream", wrapper.StreamMonitor)
}
