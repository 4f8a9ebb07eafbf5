package models

// CheckRequest carries the command-line inputs for a verification run.
// The *Set fields record whether a numeric flag was given explicitly.
type CheckRequest struct {
	ConfigPath     string
	Trials         int
	TrialsSet      bool
	Seed           uint64
	SeedSet        bool
	Subject        string
	LogLevel       string
	PushgatewayURL string
	Target         string
}

// NewCheckRequest returns an empty request; unset fields fall back to configuration
func NewCheckRequest() *CheckRequest {
	return &CheckRequest{}
}
