package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/vinforge/forgedfate/api/v1"
	"github.com/vinforge/forgedfate/internal/models"
)

const maxExportBodySize = 64 << 10

// ListExports returns every export destination with its command line and validation
// (GET /exports)
func (h *Handler) ListExports(c *gin.Context) {
	views, err := h.configSrv.Views()
	if err != nil {
		abortWithError(c, err, "failed to list exports")
		return
	}

	resp := v1.ExportList{Exports: make([]v1.ExportView, 0, len(views))}
	for _, v := range views {
		resp.Exports = append(resp.Exports, v1.NewExportView(v))
	}
	c.JSON(http.StatusOK, resp)
}

// GetExport returns one export destination
// (GET /exports/{kind})
func (h *Handler) GetExport(c *gin.Context, kind v1.ExportKind) {
	view, ok := h.view(c, kind)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, v1.NewExportView(*view))
}

// ReplaceExport merges a partial record onto the destination
// (PUT /exports/{kind})
func (h *Handler) ReplaceExport(c *gin.Context, kind v1.ExportKind) {
	k, err := parseKind(kind)
	if err != nil {
		abortWithError(c, err, "")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxExportBodySize))
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	view, err := h.configSrv.Replace(c.Request.Context(), k, body)
	if err != nil {
		abortWithError(c, err, "failed to save export configuration")
		return
	}
	c.JSON(http.StatusOK, v1.NewExportView(*view))
}

// UpdateExportField sets a single field of the destination
// (PATCH /exports/{kind})
func (h *Handler) UpdateExportField(c *gin.Context, kind v1.ExportKind) {
	k, err := parseKind(kind)
	if err != nil {
		abortWithError(c, err, "")
		return
	}

	var req v1.ExportFieldUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	view, err := h.configSrv.Update(c.Request.Context(), k, req.Field, req.Value)
	if err != nil {
		abortWithError(c, err, "failed to save export configuration")
		return
	}
	c.JSON(http.StatusOK, v1.NewExportView(*view))
}

// GetExportCommand returns the command line of the destination
// (GET /exports/{kind}/command)
func (h *Handler) GetExportCommand(c *gin.Context, kind v1.ExportKind) {
	view, ok := h.view(c, kind)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, v1.ExportCommand{Kind: kind, Command: view.Command})
}

// GetExportValidation returns the validation of the destination
// (GET /exports/{kind}/validation)
func (h *Handler) GetExportValidation(c *gin.Context, kind v1.ExportKind) {
	view, ok := h.view(c, kind)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, v1.NewValidation(view.Validation))
}

// TestExport probes the destination with its current configuration.
// A failed probe is still a 200 with an error result.
// (POST /exports/{kind}/test)
func (h *Handler) TestExport(c *gin.Context, kind v1.ExportKind) {
	k, err := parseKind(kind)
	if err != nil {
		abortWithError(c, err, "")
		return
	}

	cfg, err := h.configSrv.Snapshot().Get(k)
	if err != nil {
		abortWithError(c, err, "failed to read export configuration")
		return
	}

	result, err := h.probeSrv.Test(c.Request.Context(), k, cfg, models.ProbeModeInteractive)
	if err != nil {
		abortWithError(c, err, "failed to test export")
		return
	}
	c.JSON(http.StatusOK, v1.NewTestResult(result))
}

// GetBadges returns the connection status badge of every destination
// (GET /badges)
func (h *Handler) GetBadges(c *gin.Context) {
	badges := h.badgeSrv.All()
	resp := v1.BadgeList{Badges: make([]v1.Badge, 0, len(badges))}
	for _, b := range badges {
		resp.Badges = append(resp.Badges, v1.NewBadge(b))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) view(c *gin.Context, kind v1.ExportKind) (*models.ExportView, bool) {
	k, err := parseKind(kind)
	if err != nil {
		abortWithError(c, err, "")
		return nil, false
	}

	view, err := h.configSrv.View(k)
	if err != nil {
		abortWithError(c, err, "failed to read export configuration")
		return nil, false
	}
	return view, true
}
