package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/vinforge/forgedfate/api/v1"
	"github.com/vinforge/forgedfate/internal/models"
	srvErrors "github.com/vinforge/forgedfate/pkg/errors"
)

func parseKind(kind v1.ExportKind) (models.DestinationKind, error) {
	k := models.DestinationKind(kind)
	if !k.Valid() {
		return "", srvErrors.NewInvalidKindError(string(kind))
	}
	return k, nil
}

func parseOptionalKind(kind *v1.ExportKind) (*models.DestinationKind, error) {
	if kind == nil || *kind == "" {
		return nil, nil
	}
	k, err := parseKind(*kind)
	if err != nil {
		return nil, err
	}
	return &k, nil
}

// abortWithError maps service errors to HTTP status codes.
// Unexpected errors are logged and hidden behind msg.
func abortWithError(c *gin.Context, err error, msg string) {
	switch {
	case srvErrors.IsResourceNotFoundError(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case srvErrors.IsInvalidKindError(err), srvErrors.IsInvalidFieldError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case srvErrors.IsProbeInProgressError(err), srvErrors.IsMonitorStateError(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case srvErrors.IsTesterClientError(err):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		zap.S().Named("handlers").Errorw(msg, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
