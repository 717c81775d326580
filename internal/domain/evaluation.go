package domain

// Candidate is a course a student has taken or plans to take, optionally
// pinned to a specific section for term and instructor context. Lab and
// Writing II credit is carried on the course row.
type Candidate struct {
	Course  Course   `json:"course"`
	Section *Section `json:"section,omitempty"`
}

// RequirementStatus is the outcome of evaluating one requirement.
type RequirementStatus string

const (
	StatusSatisfied   RequirementStatus = "SATISFIED"
	StatusOutstanding RequirementStatus = "OUTSTANDING"
)

// RequirementResult pairs a requirement with its evaluation outcome.
// Reason is empty when the requirement is satisfied; otherwise it names
// the first sub-check that failed.
type RequirementResult struct {
	Requirement GERequirement     `json:"requirement"`
	Status      RequirementStatus `json:"status"`
	Reason      string            `json:"reason,omitempty"`
}

// Satisfied reports whether this single requirement is satisfied.
func (r RequirementResult) Satisfied() bool {
	return r.Status == StatusSatisfied
}

// Satisfied reports whether every result in the slice is satisfied.
func Satisfied(results []RequirementResult) bool {
	for _, r := range results {
		if r.Status != StatusSatisfied {
			return false
		}
	}
	return true
}
