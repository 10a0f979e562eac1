package models

import "time"

type TestStatus string

const (
	TestStatusSuccess TestStatus = "success"
	TestStatusWarning TestStatus = "warning"
	TestStatusError   TestStatus = "error"
	TestStatusTimeout TestStatus = "timeout"
	TestStatusUnknown TestStatus = "unknown"
)

// ParseTestStatus maps the status reported by the remote service.
// Anything it does not recognize is unknown.
func ParseTestStatus(s string) TestStatus {
	switch TestStatus(s) {
	case TestStatusSuccess, TestStatusWarning, TestStatusError, TestStatusTimeout:
		return TestStatus(s)
	default:
		return TestStatusUnknown
	}
}

// ProbeMode tells whether a probe was requested by the operator or by the monitor.
type ProbeMode string

const (
	ProbeModeInteractive ProbeMode = "interactive"
	ProbeModeSilent      ProbeMode = "silent"
)

type TestResult struct {
	Kind           DestinationKind `json:"kind"`
	Mode           ProbeMode       `json:"mode"`
	Status         TestStatus      `json:"status"`
	ResponseTimeMs *uint32         `json:"response_time_ms,omitempty"`
	Details        Details         `json:"details"`
	Errors         []string        `json:"errors"`
	Suggestions    []string        `json:"suggestions"`
	Timestamp      time.Time       `json:"timestamp"`
}

// ValidationResult holds the outcome of the local validation of a configuration record.
// An empty Errors list means the record is usable.
type ValidationResult struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v ValidationResult) HasErrors() bool {
	return len(v.Errors) > 0
}

// ExportView is a configuration record with everything derived from it.
type ExportView struct {
	Kind       DestinationKind  `json:"kind"`
	Config     ExportConfig     `json:"config"`
	Command    string           `json:"command"`
	Validation ValidationResult `json:"validation"`
}
