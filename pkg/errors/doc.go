// Package errors provides custom error types for the forgedfate agent.
//
// Each error type includes a constructor, Error() method, and a type-checking
// helper using errors.As for proper error unwrapping.
//
// # Error Types Overview
//
//	┌──────────────────────────┬────────┬─────────────────────────────────────┐
//	│ Error Type               │ HTTP   │ Description                         │
//	├──────────────────────────┼────────┼─────────────────────────────────────┤
//	│ ResourceNotFoundError    │ 404    │ Requested resource doesn't exist    │
//	│ InvalidKindError         │ 400    │ Unknown destination kind            │
//	│ InvalidFieldError        │ 400    │ Unknown field or wrong value type   │
//	│ ProbeInProgressError     │ 409    │ Interactive test already running    │
//	│ MonitorStateError        │ 409    │ Monitor cannot change state         │
//	│ ConfigCorruptedError     │ -      │ Stored configs unreadable (logged)  │
//	│ TesterClientError        │ 502    │ HTTP error from the test service    │
//	└──────────────────────────┴────────┴─────────────────────────────────────┘
//
// # InvalidFieldError
//
// Returned by configuration writes. Reads never fail on unknown keys; they are
// dropped while the stored snapshot is merged onto the defaults.
//
// Constructor:
//   - NewInvalidFieldError(kind, field, reason string)
//
// Usage:
//
//	if errors.IsInvalidFieldError(err) {
//	    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
//	}
//
// # ProbeInProgressError
//
// An interactive test holds the in-flight indicator of its kind until the
// result arrives. A second interactive test for the same kind is rejected.
// Silent tests from the monitor are never rejected.
//
// Constructor:
//   - NewProbeInProgressError(kind string)
//
// # ConfigCorruptedError
//
// Never reaches a caller of the configuration service. Loading fails open to
// the defaults and the error is only logged.
//
// # TesterClientError
//
// Wraps non 2xx answers of the remote connectivity test service. The probe
// turns it into an error result; the report turns it into an error document.
//
// Constructor:
//   - NewTesterClientError(statusCode int, message string)
//
// # Type Checking Pattern
//
// All error types provide Is* helper functions that use errors.As
// for proper error chain unwrapping:
//
//	wrapped := fmt.Errorf("update failed: %w", errors.NewInvalidKindError("ftp"))
//	errors.IsInvalidKindError(wrapped) // returns true
//
// # Handler Error Mapping
//
//	switch {
//	case errors.IsInvalidKindError(err), errors.IsInvalidFieldError(err):
//	    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
//	case errors.IsProbeInProgressError(err):
//	    c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
//	default:
//	    c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
//	}
package errors
