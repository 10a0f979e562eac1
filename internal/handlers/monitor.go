package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/vinforge/forgedfate/api/v1"
	"github.com/vinforge/forgedfate/internal/models"
	"github.com/vinforge/forgedfate/internal/services"
)

const maxResultsLimit = 500

// GetMonitorStatus returns the monitor status
// (GET /monitor)
func (h *Handler) GetMonitorStatus(c *gin.Context) {
	c.JSON(http.StatusOK, v1.NewMonitorStatus(h.monitorSrv.Status()))
}

// StartMonitor starts the background monitor. Starting a running monitor changes nothing.
// (POST /monitor)
func (h *Handler) StartMonitor(c *gin.Context) {
	if err := h.monitorSrv.Start(); err != nil {
		abortWithError(c, err, "failed to start monitor")
		return
	}
	c.JSON(http.StatusAccepted, v1.NewMonitorStatus(h.monitorSrv.Status()))
}

// StopMonitor stops the background monitor
// (DELETE /monitor)
func (h *Handler) StopMonitor(c *gin.Context) {
	if err := h.monitorSrv.Stop(); err != nil {
		abortWithError(c, err, "failed to stop monitor")
		return
	}
	c.JSON(http.StatusOK, v1.NewMonitorStatus(h.monitorSrv.Status()))
}

// GetMonitorResults returns the recorded test results, newest first
// (GET /monitor/results)
func (h *Handler) GetMonitorResults(c *gin.Context, params v1.GetMonitorResultsParams) {
	kind, err := parseOptionalKind(params.Kind)
	if err != nil {
		abortWithError(c, err, "")
		return
	}

	var svcParams services.HistoryParams
	if kind != nil {
		svcParams.Kinds = []models.DestinationKind{*kind}
	}
	if params.Limit != nil {
		if *params.Limit <= 0 || *params.Limit > maxResultsLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 500"})
			return
		}
		svcParams.Limit = uint64(*params.Limit)
	}

	results, total, err := h.historySrv.List(c.Request.Context(), svcParams)
	if err != nil {
		abortWithError(c, err, "failed to list test results")
		return
	}

	resp := v1.TestResultList{Total: total, Results: make([]v1.TestResult, 0, len(results))}
	for _, r := range results {
		resp.Results = append(resp.Results, v1.NewTestResult(r))
	}
	c.JSON(http.StatusOK, resp)
}
