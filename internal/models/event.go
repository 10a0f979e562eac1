package models

import "time"

type EventType string

const (
	EventBadge   EventType = "badge"
	EventResult  EventType = "result"
	EventMonitor EventType = "monitor"
)

// Event is published to the live stream whenever a badge, a result or the monitor changes.
type Event struct {
	Type      EventType       `json:"type"`
	Kind      DestinationKind `json:"kind,omitempty"`
	Badge     *Badge          `json:"badge,omitempty"`
	Result    *TestResult     `json:"result,omitempty"`
	Monitor   *MonitorStatus  `json:"monitor,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}
