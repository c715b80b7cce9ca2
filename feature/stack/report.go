package stack

import "time"

// Actions.
const (
	ActionUp   = "up"
	ActionDown = "down"
	ActionDiff = "diff"
)

// Result statuses. Up and down results are ok or failed; diff results are
// in-sync, drifted, missing or failed.
const (
	StatusOK      = "ok"
	StatusFailed  = "failed"
	StatusInSync  = "in-sync"
	StatusDrifted = "drifted"
	StatusMissing = "missing"
)

// Result is the outcome of one action on one resource.
type Result struct {
	Kind     string        `json:"kind"`
	Name     string        `json:"name"`
	Status   string        `json:"status"`
	Error    string        `json:"error,omitempty"`
	Drift    []string      `json:"drift,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Report collects the results of one invocation.
type Report struct {
	RunID     string   `json:"run_id"`
	Namespace string   `json:"namespace"`
	Action    string   `json:"action"`
	Results   []Result `json:"results"`
}

// Failed reports whether any result failed.
func (r *Report) Failed() bool {
	for _, result := range r.Results {
		if result.Status == StatusFailed {
			return true
		}
	}
	return false
}

// Drifted reports whether any declared resource is missing or differs.
func (r *Report) Drifted() bool {
	for _, result := range r.Results {
		if result.Status == StatusDrifted || result.Status == StatusMissing {
			return true
		}
	}
	return false
}
