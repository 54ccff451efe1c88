package types

import "time"

// FindingStatus is the lifecycle state of a vulnerability finding.
type FindingStatus string

const (
	FindingQueued        FindingStatus = "queued"
	FindingNeedsHuman    FindingStatus = "needs_human"
	FindingReadyToSubmit FindingStatus = "ready_to_submit"
	FindingApproved      FindingStatus = "approved"
	FindingSubmitted     FindingStatus = "submitted"
	FindingPaid          FindingStatus = "paid"
)

// FindingStatuses lists every lifecycle state, in progression order.
// Summaries report a count for each of these even when it is zero.
var FindingStatuses = []FindingStatus{
	FindingQueued,
	FindingNeedsHuman,
	FindingReadyToSubmit,
	FindingApproved,
	FindingSubmitted,
	FindingPaid,
}

// Finding is a discovered vulnerability tied to a program. Findings are
// append-only; the only mutation is the approval status transition.
type Finding struct {
	ID         string        `json:"id"`
	ProgramID  string        `json:"programId"`
	Type       string        `json:"type"`
	Severity   float64       `json:"severity"`
	Status     FindingStatus `json:"status"`
	PayoutEst  int           `json:"payoutEst"`
	Timestamp  time.Time     `json:"timestamp"`
	Evidence   []string      `json:"evidence,omitempty"`
	ActivityID string        `json:"activityId,omitempty"`
	UpdatedAt  *time.Time    `json:"updatedAt,omitempty"`
}

// ClampSeverity bounds a severity score to the CVSS-style [0, 10] range.
func ClampSeverity(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 10 {
		return 10
	}
	return s
}

// SeverityLabel maps a numeric severity to its display bucket. Buckets are
// half-open except critical, which includes 10.0.
func SeverityLabel(s float64) string {
	switch {
	case s >= 9.0:
		return "Critical"
	case s >= 7.0:
		return "High"
	case s >= 4.0:
		return "Medium"
	case s >= 0.1:
		return "Low"
	default:
		return "Info"
	}
}
