package harness

// TraceEvent records the outcome of one step.
type TraceEvent struct {
	Step  int      `json:"step"`
	Op    string   `json:"op"`
	Query string   `json:"query"`
	IDs   []string `json:"ids"`
	Count int      `json:"count"`
	Error string   `json:"error,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expect clause matched.
	Pass bool `json:"pass"`

	// Snapshot is the snapshot id of the queried table.
	Snapshot string `json:"snapshot"`

	// Rows is the size of the queried table.
	Rows int `json:"rows"`

	// Trace holds one event per step, in step order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
