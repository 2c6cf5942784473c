package harness

// Status classifies one case's outcome.
type Status string

const (
	StatusPass             Status = "pass"
	StatusExecutionFailure Status = "execution_failure"
	StatusArtifactMissing  Status = "artifact_missing"
	StatusMismatch         Status = "mismatch"
	StatusMalformedRecord  Status = "malformed_record"

	// StatusUnstorable is a generate-only outcome: the artifacts could not
	// be stored as text.
	StatusUnstorable Status = "unstorable_artifact"
)

// CaseResult is the outcome of a single case.
type CaseResult struct {
	// Ordinal is the 1-based position in the run.
	Ordinal int `json:"ordinal"`

	// Index is the case ordinal encoded in the record name (-1 if none).
	Index int `json:"index"`

	Corpus      string   `json:"corpus,omitempty"`
	File        string   `json:"file,omitempty"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	Errors      []string `json:"errors,omitempty"`
}

// Pass reports whether the case succeeded.
func (c CaseResult) Pass() bool {
	return c.Status == StatusPass
}

// Name identifies the case in reports: corpus/file when loaded from a record.
func (c CaseResult) Name() string {
	if c.Corpus == "" {
		return c.File
	}
	return c.Corpus + "/" + c.File
}

// fail marks the result failed with status and adds a message.
func (c *CaseResult) fail(status Status, msg string) {
	c.Status = status
	c.Errors = append(c.Errors, msg)
}

// VerifyReport aggregates a verify run.
type VerifyReport struct {
	RunID  string       `json:"run_id"`
	Cases  []CaseResult `json:"cases"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
	Total  int          `json:"total"`
}

// OK is true iff no case failed.
func (r *VerifyReport) OK() bool {
	return r.Failed == 0
}

// Failures returns the failed cases in run order.
func (r *VerifyReport) Failures() []CaseResult {
	var out []CaseResult
	for _, c := range r.Cases {
		if !c.Pass() {
			out = append(out, c)
		}
	}
	return out
}

func (r *VerifyReport) add(c CaseResult) {
	r.Cases = append(r.Cases, c)
	if c.Pass() {
		r.Passed++
	} else {
		r.Failed++
	}
}

// GenerateReport aggregates a generate run.
type GenerateReport struct {
	Total    int          `json:"total"`
	Written  int          `json:"written"`
	Failures []CaseResult `json:"failures,omitempty"`
}

// OK is true iff every case was persisted.
func (r *GenerateReport) OK() bool {
	return len(r.Failures) == 0
}
