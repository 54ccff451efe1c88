package types

import "time"

// ActivityStatus is the lifecycle state of a tracked activity.
type ActivityStatus string

const (
	ActivityQueued     ActivityStatus = "queued"
	ActivityInProgress ActivityStatus = "in_progress"
	ActivityCompleted  ActivityStatus = "completed"
	ActivityFailed     ActivityStatus = "failed"
	ActivityCancelled  ActivityStatus = "cancelled"
)

// Terminal reports whether the activity has reached a final state.
func (s ActivityStatus) Terminal() bool {
	return s == ActivityCompleted || s == ActivityFailed || s == ActivityCancelled
}

// Conclusion is the outcome recorded when an activity or run finishes.
type Conclusion string

const (
	ConclusionSuccess   Conclusion = "success"
	ConclusionFailure   Conclusion = "failure"
	ConclusionCancelled Conclusion = "cancelled"
	ConclusionSkipped   Conclusion = "skipped"
)

// Activity is the audit envelope for one unit of triggered work, such as
// a scan. It owns runs, logs, and artifacts; status moves monotonically
// toward a terminal state and records are never deleted.
type Activity struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	ProgramID   string         `json:"programId,omitempty"`
	TriggeredBy string         `json:"triggeredBy"`
	Status      ActivityStatus `json:"status"`
	StartTime   time.Time      `json:"startTime"`
	EndTime     *time.Time     `json:"endTime"`
	Duration    *int           `json:"duration"`
	Conclusion  Conclusion     `json:"conclusion,omitempty"`
	Artifacts   []string       `json:"artifacts"`
	RunCount    int            `json:"runCount"`
}

// RunStatus is the lifecycle state of a run within an activity.
type RunStatus string

const (
	RunQueued    RunStatus = "queued"
	RunCompleted RunStatus = "completed"
)

// Run is one stage or job within an activity.
type Run struct {
	ID         string     `json:"id"`
	ActivityID string     `json:"activityId"`
	JobName    string     `json:"jobName"`
	StepName   string     `json:"stepName,omitempty"`
	Status     RunStatus  `json:"status"`
	StartTime  time.Time  `json:"startTime"`
	EndTime    *time.Time `json:"endTime"`
	Duration   *int       `json:"duration"`
	Conclusion Conclusion `json:"conclusion,omitempty"`
}

// LogLevel classifies an activity log line.
type LogLevel string

const (
	LogInfo    LogLevel = "info"
	LogWarning LogLevel = "warning"
	LogError   LogLevel = "error"
	LogSuccess LogLevel = "success"
)

// LogEntry is one append-only log line scoped to an activity and,
// optionally, a run.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     LogLevel  `json:"level"`
	Message   string    `json:"message"`
	RunID     string    `json:"runId,omitempty"`
}

// ArtifactType tags the content of an artifact blob.
type ArtifactType string

const (
	ArtifactText        ArtifactType = "text"
	ArtifactImage       ArtifactType = "image"
	ArtifactJSON        ArtifactType = "json"
	ArtifactHTTPRequest ArtifactType = "http_request"
	ArtifactScreenshot  ArtifactType = "screenshot"
)

// Artifact is an immutable output blob attached to an activity.
type Artifact struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Type      ArtifactType `json:"type"`
	Content   string       `json:"content"`
	Size      int          `json:"size"`
	CreatedAt time.Time    `json:"createdAt"`
	RunID     string       `json:"runId,omitempty"`
}
