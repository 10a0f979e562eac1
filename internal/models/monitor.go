package models

import "time"

type BadgeState string

const (
	BadgeStateNotTested BadgeState = "not_tested"
	BadgeStateTesting   BadgeState = "testing"
	BadgeStateSuccess   BadgeState = "success"
	BadgeStateWarning   BadgeState = "warning"
	BadgeStateError     BadgeState = "error"
	BadgeStateUnknown   BadgeState = "unknown"
)

// Badge is the connection status indicator shown next to a destination.
type Badge struct {
	Kind      DestinationKind `json:"kind"`
	State     BadgeState      `json:"state"`
	Text      string          `json:"text"`
	Auto      bool            `json:"auto"`
	InFlight  bool            `json:"in_flight"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func NewBadge(kind DestinationKind) Badge {
	return Badge{
		Kind:  kind,
		State: BadgeStateNotTested,
		Text:  "Not tested",
	}
}

type MonitorStatus struct {
	Enabled     bool                           `json:"enabled"`
	Interval    time.Duration                  `json:"interval"`
	WarmUp      time.Duration                  `json:"warm_up"`
	NextRun     *time.Time                     `json:"next_run,omitempty"`
	LastResults map[DestinationKind]TestResult `json:"last_results"`
}
