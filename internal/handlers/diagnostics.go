package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/vinforge/forgedfate/api/v1"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GetDiagnosticReport returns the consolidated diagnostic report.
// A failure of the remote service is reported inside the document.
// (GET /diagnostics/report)
func (h *Handler) GetDiagnosticReport(c *gin.Context, params v1.GetDiagnosticReportParams) {
	kind, err := parseOptionalKind(params.Kind)
	if err != nil {
		abortWithError(c, err, "")
		return
	}

	doc := h.diagnosticSrv.GenerateReport(c.Request.Context(), kind)

	views, err := h.configSrv.Views()
	if err != nil {
		abortWithError(c, err, "failed to read export configurations")
		return
	}

	c.JSON(http.StatusOK, v1.NewDiagnosticReport(doc, views))
}

// ExportDiagnosticReport downloads the diagnostic report
// (GET /diagnostics/report/export)
func (h *Handler) ExportDiagnosticReport(c *gin.Context, params v1.ExportDiagnosticReportParams) {
	kind, err := parseOptionalKind(params.Kind)
	if err != nil {
		abortWithError(c, err, "")
		return
	}

	format := v1.ExportDiagnosticReportParamsFormatText
	if params.Format != nil {
		format = *params.Format
	}
	if format != v1.ExportDiagnosticReportParamsFormatText && format != v1.ExportDiagnosticReportParamsFormatXlsx {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid format: must be 'text' or 'xlsx'"})
		return
	}

	doc := h.diagnosticSrv.GenerateReport(c.Request.Context(), kind)

	var (
		name        string
		content     []byte
		contentType = "text/plain; charset=utf-8"
	)
	switch format {
	case v1.ExportDiagnosticReportParamsFormatXlsx:
		name, content, err = h.diagnosticSrv.ExportXLSX(doc)
		if err != nil {
			abortWithError(c, err, "failed to export diagnostic report")
			return
		}
		contentType = xlsxContentType
	default:
		name, content = h.diagnosticSrv.ExportText(doc)
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, contentType, content)
}
