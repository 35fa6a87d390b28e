package harness

import (
	"fmt"
	"slices"
)

// checkExpect compares a step's event against its expect clause and records
// every mismatch on the result.
func checkExpect(result *Result, index int, expect *Expect, event TraceEvent) {
	if expect == nil {
		if event.Error != "" {
			result.AddError(fmt.Sprintf("steps[%d]: unexpected error %s", index, event.Error))
		}
		return
	}

	if expect.Error != "" {
		if event.Error != expect.Error {
			result.AddError(fmt.Sprintf("steps[%d]: expected error %s, got %s", index, expect.Error, describeError(event.Error)))
		}
		return
	}

	if event.Error != "" {
		result.AddError(fmt.Sprintf("steps[%d]: unexpected error %s", index, event.Error))
		return
	}

	if expect.IDs != nil && !slices.Equal(expect.IDs, event.IDs) {
		result.AddError(fmt.Sprintf("steps[%d]: expected ids %v, got %v", index, expect.IDs, event.IDs))
	}

	if expect.Count != nil && *expect.Count != event.Count {
		result.AddError(fmt.Sprintf("steps[%d]: expected count %d, got %d", index, *expect.Count, event.Count))
	}
}

func describeError(code string) string {
	if code == "" {
		return "success"
	}
	return code
}
