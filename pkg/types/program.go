package types

// Program is a static bug bounty engagement definition. Programs are
// loaded once at startup and never mutated by the core.
type Program struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Platform   string   `json:"platform"`
	PayoutMax  int      `json:"payoutMax"`
	RPS        float64  `json:"rps"`
	AutoOK     bool     `json:"autoOK"`
	TriageDays int      `json:"triageDays"`
	AssetCount int      `json:"assetCount"`
	Tags       []string `json:"tags"`
}
