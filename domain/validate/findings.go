package validate

// Status is the top-level outcome of one validation category. Every
// category renders a clear Pass or Fail line before any detail, so a scan
// of statuses tells the operator what needs attention.
type Status string

const (
	StatusPass Status = "Passed"
	StatusFail Status = "Failed"
)

// Detail is one piece of supporting evidence for a finding: either a
// single cell value or a list-valued cell (a target list), with the
// 1-based display row it came from.
type Detail struct {
	Value  string   `json:"value,omitempty"`
	Values []string `json:"values,omitempty"`
	Row    int      `json:"row"`
}

// Finding is one keyed failure inside a category. Findings are produced
// fresh each pass and only ever appended, never mutated.
type Finding struct {
	Key     string   `json:"key"`
	Details []Detail `json:"details"`
}

// StatusFor collapses a finding list to a category status.
func StatusFor(findings []Finding) Status {
	if len(findings) == 0 {
		return StatusPass
	}
	return StatusFail
}
