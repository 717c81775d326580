package ge

import (
	"fmt"
	"sort"
	"strings"

	"github.com/geasyapp/geasy-server/internal/domain"
)

// Mappings is an area-label lookup built from the ge_area_mappings table.
// Lookups are case-insensitive and whitespace-tolerant; area labels that
// were never mapped simply resolve to nothing, which the evaluator
// tolerates (the label acts as its own subgroup, with no foundation).
type Mappings struct {
	byArea map[string]domain.AreaMapping
}

// NewMappings builds the lookup from mapping rows.
func NewMappings(rows []domain.AreaMapping) *Mappings {
	m := &Mappings{byArea: make(map[string]domain.AreaMapping, len(rows))}
	for _, row := range rows {
		m.byArea[normalizeArea(row.GEArea)] = row
	}
	return m
}

// Lookup returns the mapping for an area label, if one exists.
func (m *Mappings) Lookup(area string) (domain.AreaMapping, bool) {
	row, ok := m.byArea[normalizeArea(area)]
	return row, ok
}

// Foundation returns the foundation area for an area label, or "" when
// the label is unmapped.
func (m *Mappings) Foundation(area string) string {
	if row, ok := m.Lookup(area); ok {
		return row.FoundationArea
	}
	return ""
}

// Subgroup returns the subgroup for an area label. Unmapped labels fall
// back to the normalized label itself so diversity rules still behave
// deterministically on inconsistent data.
func (m *Mappings) Subgroup(area string) string {
	if row, ok := m.Lookup(area); ok {
		return row.Subgroup
	}
	return normalizeArea(area)
}

// normalizeArea canonicalizes an area label for comparison: lowercased,
// trimmed, inner whitespace collapsed.
func normalizeArea(area string) string {
	return strings.Join(strings.Fields(strings.ToLower(area)), " ")
}

// Evaluate checks each requirement against the candidate courses and
// returns one result per requirement, ordered by requirement id. The
// same candidate may count toward multiple requirements; requirements
// are evaluated independently.
func Evaluate(reqs []domain.GERequirement, mappings *Mappings, candidates []domain.Candidate) []domain.RequirementResult {
	ordered := make([]domain.GERequirement, len(reqs))
	copy(ordered, reqs)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	results := make([]domain.RequirementResult, 0, len(ordered))
	for _, req := range ordered {
		results = append(results, evaluateOne(req, mappings, candidates))
	}
	return results
}

func evaluateOne(req domain.GERequirement, mappings *Mappings, candidates []domain.Candidate) domain.RequirementResult {
	rules, scope := ParseNotes(req)
	matching := matchCandidates(req, scope, mappings, candidates)

	for _, rule := range rules {
		if reason := checkRule(rule, mappings, matching); reason != "" {
			return domain.RequirementResult{
				Requirement: req,
				Status:      domain.StatusOutstanding,
				Reason:      reason,
			}
		}
	}

	return domain.RequirementResult{Requirement: req, Status: domain.StatusSatisfied}
}

// matchCandidates selects the candidates that count toward a requirement.
// Candidates with no GE area never match anything.
func matchCandidates(req domain.GERequirement, scope Scope, mappings *Mappings, candidates []domain.Candidate) []domain.Candidate {
	var foundation string
	if scope == ScopeFoundation {
		foundation = mappings.Foundation(req.GEArea)
		if foundation == "" {
			foundation = foundationFromNotes(req.SpecialNotes)
		}
	}

	var matched []domain.Candidate
	for _, c := range candidates {
		if c.Course.GEArea == "" {
			continue
		}
		switch {
		case scope == ScopeFoundation && foundation != "":
			if mappings.Foundation(c.Course.GEArea) == foundation {
				matched = append(matched, c)
			}
		default:
			// Literal area match, also the fallback when the requirement's
			// foundation cannot be resolved.
			if normalizeArea(c.Course.GEArea) == normalizeArea(req.GEArea) {
				matched = append(matched, c)
			}
		}
	}
	return matched
}

func checkRule(rule Rule, mappings *Mappings, matching []domain.Candidate) string {
	switch rule.Kind {
	case RuleMinCount:
		if len(matching) < rule.N {
			return fmt.Sprintf("need %d matching course(s), have %d", rule.N, len(matching))
		}
	case RuleMinUnits:
		units := 0
		for _, c := range matching {
			units += c.Course.Units
		}
		if units < rule.N {
			return fmt.Sprintf("need %d units, have %d", rule.N, units)
		}
	case RuleDistinctSubgroups:
		seen := make(map[string]bool)
		for _, c := range matching {
			seen[mappings.Subgroup(c.Course.GEArea)] = true
		}
		if len(seen) < rule.N {
			return fmt.Sprintf("courses must come from %d different subgroups, have %d", rule.N, len(seen))
		}
	case RuleMaxPerSubgroup:
		perSubgroup := make(map[string]int)
		for _, c := range matching {
			sub := mappings.Subgroup(c.Course.GEArea)
			perSubgroup[sub]++
			if perSubgroup[sub] > rule.N {
				return fmt.Sprintf("no more than %d courses may come from subgroup %q", rule.N, sub)
			}
		}
	case RuleRequiresFlag:
		for _, c := range matching {
			if hasFlag(c, rule.Flag) {
				return ""
			}
		}
		return "at least one course must have " + flagLabel(rule.Flag)
	}
	return ""
}

// hasFlag reports whether a candidate carries the required credit.
// Flags live on the course row.
func hasFlag(c domain.Candidate, flag Flag) bool {
	switch flag {
	case FlagLab:
		return c.Course.HasLab
	case FlagWritingII:
		return c.Course.HasWritingII
	case FlagLabOrWritingII:
		return c.Course.HasLab || c.Course.HasWritingII
	}
	return false
}

func flagLabel(flag Flag) string {
	switch flag {
	case FlagLab:
		return "lab credit"
	case FlagWritingII:
		return "Writing II credit"
	default:
		return "lab, demo, or Writing II credit"
	}
}
