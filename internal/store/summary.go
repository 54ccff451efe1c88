package store

import (
	"time"

	"github.com/bountyops/bountyops/pkg/types"
)

// StatusSummary is the operational dashboard snapshot.
type StatusSummary struct {
	ActiveScans    int       `json:"activeScans"`
	PendingReviews int       `json:"pendingReviews"`
	TotalRevenue   int       `json:"totalRevenue"`
	SystemHealth   string    `json:"systemHealth"`
	LastUpdate     time.Time `json:"lastUpdate"`
}

// FindingsSummary aggregates findings by status and type.
type FindingsSummary struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"byStatus"`
	ByType     map[string]int `json:"byType"`
	TotalValue int            `json:"totalValue"`
}

// RevenuePoint is one month of sample revenue analytics.
type RevenuePoint struct {
	Month       string `json:"month"`
	Revenue     int    `json:"revenue"`
	Submissions int    `json:"submissions"`
}

// VulnTypeStat is one vulnerability class in the analytics breakdown.
type VulnTypeStat struct {
	Name   string `json:"name"`
	Value  int    `json:"value"`
	Payout int    `json:"payout"`
}

// Status computes the live system summary. Revenue counts findings that
// passed human review (approved or already submitted).
func (s *Store) Status() StatusSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := StatusSummary{
		SystemHealth: "operational",
		LastUpdate:   time.Now(),
	}
	for _, scan := range s.scans {
		if !scan.Status.Terminal() {
			sum.ActiveScans++
		}
	}
	for _, f := range s.findings {
		switch f.Status {
		case types.FindingNeedsHuman:
			sum.PendingReviews++
		case types.FindingApproved, types.FindingSubmitted, types.FindingPaid:
			sum.TotalRevenue += f.PayoutEst
		}
	}
	return sum
}

// SummarizeFindings aggregates the findings registry. Every lifecycle
// status appears in byStatus even at zero; byType grows dynamically.
func (s *Store) SummarizeFindings() FindingsSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := FindingsSummary{
		Total:    len(s.findings),
		ByStatus: make(map[string]int, len(types.FindingStatuses)),
		ByType:   make(map[string]int),
	}
	for _, status := range types.FindingStatuses {
		sum.ByStatus[string(status)] = 0
	}
	for _, f := range s.findings {
		sum.ByStatus[string(f.Status)]++
		sum.ByType[f.Type]++
		sum.TotalValue += f.PayoutEst
	}
	return sum
}

// RevenueTrend returns the sample monthly revenue series shown on the
// dashboard. Static demo data.
func RevenueTrend() []RevenuePoint {
	return []RevenuePoint{
		{Month: "Jan", Revenue: 42000, Submissions: 11},
		{Month: "Feb", Revenue: 38500, Submissions: 9},
		{Month: "Mar", Revenue: 61000, Submissions: 14},
		{Month: "Apr", Revenue: 55000, Submissions: 12},
		{Month: "May", Revenue: 73500, Submissions: 17},
	}
}

// VulnTypeBreakdown returns the sample vulnerability-class analytics.
// Static demo data.
func VulnTypeBreakdown() []VulnTypeStat {
	return []VulnTypeStat{
		{Name: "XSS", Value: 32, Payout: 48000},
		{Name: "IDOR", Value: 21, Payout: 84000},
		{Name: "SSRF", Value: 12, Payout: 96000},
		{Name: "AuthZ bypass", Value: 9, Payout: 72000},
		{Name: "Open redirect", Value: 18, Payout: 13500},
	}
}
