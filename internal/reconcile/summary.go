package reconcile

import (
	"github.com/hashicorp/go-multierror"

	"github.com/jenquist/shared-agent-skills/internal/catalog"
)

// Result is the outcome of reconciling a single entry.
type Result struct {
	Entry   catalog.Entry
	Outcome Outcome

	// Prior is the state of the link before the run touched it.
	Prior State

	// Dest is the stored target of the prior link, when Prior is StateSymlink.
	Dest string

	// Err is set for OutcomeError and OutcomeMismatch.
	Err error
}

// Summary collects the results of one run in catalog order.
type Summary struct {
	Mode      Mode
	TargetDir string
	Results   []Result

	// CreatedTarget is set when apply had to create TargetDir.
	CreatedTarget bool
}

// Count returns the number of results with the given outcome.
func (s *Summary) Count(o Outcome) int {
	n := 0
	for _, r := range s.Results {
		if r.Outcome == o {
			n++
		}
	}
	return n
}

// Counts folds the results into a count per outcome.
func (s *Summary) Counts() map[Outcome]int {
	counts := make(map[Outcome]int)
	for _, r := range s.Results {
		counts[r.Outcome]++
	}
	return counts
}

// HasErrors reports whether the run should be treated as a failure.
// For check, mismatches count as failures.
func (s *Summary) HasErrors() bool {
	if s.Count(OutcomeError) > 0 {
		return true
	}
	return s.Mode == ModeCheck && s.Count(OutcomeMismatch) > 0
}

// Err combines the per-entry errors into a single error, or nil.
func (s *Summary) Err() error {
	var result *multierror.Error
	for _, r := range s.Results {
		if r.Err != nil {
			result = multierror.Append(result, r.Err)
		}
	}
	return result.ErrorOrNil()
}
