package types

import "time"

// ScanStatus is the lifecycle state of a simulated scan.
type ScanStatus string

const (
	ScanQueued     ScanStatus = "queued"
	ScanScanning   ScanStatus = "scanning"
	ScanAnalyzing  ScanStatus = "analyzing"
	ScanExploiting ScanStatus = "exploiting"
	ScanReporting  ScanStatus = "reporting"
	ScanCompleted  ScanStatus = "completed"
	ScanStopped    ScanStatus = "stopped"
	ScanFailed     ScanStatus = "failed"
)

// Terminal reports whether the scan can no longer make progress.
func (s ScanStatus) Terminal() bool {
	return s == ScanCompleted || s == ScanStopped || s == ScanFailed
}

// Scan is one unit of simulated vulnerability-scanning work against a
// program. Mutated only by the simulation engine and by stop requests.
type Scan struct {
	ID                   string     `json:"id"`
	ProgramID            string     `json:"programId"`
	Status               ScanStatus `json:"status"`
	Progress             int        `json:"progress"`
	AssetsFound          int        `json:"assetsFound"`
	VulnerabilitiesFound int        `json:"vulnerabilitiesFound"`
	StartTime            time.Time  `json:"startTime"`
	ActivityID           string     `json:"activityId,omitempty"`
}

// AssetsForProgress derives the asset counter from scan progress.
func AssetsForProgress(progress int) int {
	n := progress / 10
	if n > 15 {
		n = 15
	}
	return n
}

// VulnerabilitiesForProgress derives the vulnerability counter from scan
// progress.
func VulnerabilitiesForProgress(progress int) int {
	n := (progress - 30) / 20
	if n < 0 {
		n = 0
	}
	return n
}
