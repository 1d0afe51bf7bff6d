package audit

import "time"

const (
	statusPassed = "passed"
	statusFailed = "failed"
)

// CheckResult records the outcome of one model check.
type CheckResult struct {
	Name       string  `json:"name"`
	Status     string  `json:"status"`
	Detail     string  `json:"detail,omitempty"`
	DurationMS float64 `json:"duration_ms"`
}

// Report is the structured summary of a verification run.
type Report struct {
	Suite      string        `json:"suite"`
	ExecutedAt time.Time     `json:"executed_at"`
	Store      string        `json:"store"`
	Status     string        `json:"status"`
	Total      int           `json:"total_checks"`
	Passed     int           `json:"passed"`
	Failed     int           `json:"failed"`
	Checks     []CheckResult `json:"checks"`
}

func (r *Report) summarize() {
	r.Total = len(r.Checks)
	r.Passed = 0
	r.Failed = 0
	for _, c := range r.Checks {
		if c.Status == statusPassed {
			r.Passed++
		} else {
			r.Failed++
		}
	}
	r.Status = statusPassed
	if r.Failed > 0 {
		r.Status = statusFailed
	}
}
