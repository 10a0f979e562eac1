package errors

import (
	"errors"
	"fmt"
)

// ResourceNotFoundError indicates a resource was not found.
type ResourceNotFoundError struct {
	Kind string
}

func NewResourceNotFoundError(kind string) *ResourceNotFoundError {
	return &ResourceNotFoundError{Kind: kind}
}

func NewExportConfigNotFoundError() *ResourceNotFoundError {
	return NewResourceNotFoundError("export configuration")
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Kind)
}

func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return errors.As(err, &e)
}

// InvalidKindError indicates an unknown destination kind.
type InvalidKindError struct {
	Kind string
}

func NewInvalidKindError(kind string) *InvalidKindError {
	return &InvalidKindError{Kind: kind}
}

func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("unknown destination kind %q: must be one of tcp, udp, elasticsearch, mqtt", e.Kind)
}

func IsInvalidKindError(err error) bool {
	var e *InvalidKindError
	return errors.As(err, &e)
}

// InvalidFieldError indicates a write to a field that does not exist or a value of the wrong type.
type InvalidFieldError struct {
	Kind   string
	Field  string
	Reason string
}

func NewInvalidFieldError(kind, field, reason string) *InvalidFieldError {
	return &InvalidFieldError{Kind: kind, Field: field, Reason: reason}
}

func (e *InvalidFieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid %s configuration: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("invalid field %q for %s: %s", e.Field, e.Kind, e.Reason)
}

func IsInvalidFieldError(err error) bool {
	var e *InvalidFieldError
	return errors.As(err, &e)
}

// ProbeInProgressError indicates an interactive probe is already running for the kind.
type ProbeInProgressError struct {
	Kind string
}

func NewProbeInProgressError(kind string) *ProbeInProgressError {
	return &ProbeInProgressError{Kind: kind}
}

func (e *ProbeInProgressError) Error() string {
	return fmt.Sprintf("connectivity test already in progress for %s", e.Kind)
}

func IsProbeInProgressError(err error) bool {
	var e *ProbeInProgressError
	return errors.As(err, &e)
}

// MonitorStateError indicates the monitor cannot perform the operation.
type MonitorStateError struct {
	Reason string
}

func NewMonitorStateError(reason string) *MonitorStateError {
	return &MonitorStateError{Reason: reason}
}

func (e *MonitorStateError) Error() string {
	return fmt.Sprintf("monitor: %s", e.Reason)
}

func IsMonitorStateError(err error) bool {
	var e *MonitorStateError
	return errors.As(err, &e)
}

// ConfigCorruptedError indicates the persisted export configuration could not be decoded.
type ConfigCorruptedError struct {
	Err error
}

func NewConfigCorruptedError(err error) *ConfigCorruptedError {
	return &ConfigCorruptedError{Err: err}
}

func (e *ConfigCorruptedError) Error() string {
	return fmt.Sprintf("persisted export configuration is corrupted: %v", e.Err)
}

func (e *ConfigCorruptedError) Unwrap() error {
	return e.Err
}

func IsConfigCorruptedError(err error) bool {
	var e *ConfigCorruptedError
	return errors.As(err, &e)
}

// TesterClientError indicates the connectivity test service answered with a non 2xx status.
type TesterClientError struct {
	StatusCode int
	Message    string
}

func NewTesterClientError(statusCode int, message string) *TesterClientError {
	return &TesterClientError{StatusCode: statusCode, Message: message}
}

func (e *TesterClientError) Error() string {
	return fmt.Sprintf("tester service returned status %d: %s", e.StatusCode, e.Message)
}

func IsTesterClientError(err error) bool {
	var e *TesterClientError
	return errors.As(err, &e)
}
