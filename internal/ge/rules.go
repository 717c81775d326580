// Package ge implements GE requirement rule evaluation: deriving structured
// rules from a requirement's special notes and checking candidate courses
// against them.
package ge

import (
	"strings"

	"github.com/geasyapp/geasy-server/internal/domain"
)

// Scope determines which candidate courses count toward a requirement.
type Scope int

const (
	// ScopeArea matches candidates by literal GE area label.
	ScopeArea Scope = iota
	// ScopeFoundation matches any candidate whose GE area maps to the
	// requirement's foundation area. Used when the notes reference
	// subgroups or "any <foundation> course", since subgroup rules only
	// make sense across areas within one foundation.
	ScopeFoundation
)

// RuleKind identifies a rule variant.
type RuleKind string

const (
	RuleMinCount          RuleKind = "min_count"
	RuleMinUnits          RuleKind = "min_units"
	RuleDistinctSubgroups RuleKind = "distinct_subgroups"
	RuleMaxPerSubgroup    RuleKind = "max_per_subgroup"
	RuleRequiresFlag      RuleKind = "requires_flag"
)

// Flag identifies which course/section credit a RuleRequiresFlag demands.
type Flag string

const (
	FlagLab            Flag = "lab"
	FlagWritingII      Flag = "writing_ii"
	FlagLabOrWritingII Flag = "lab_or_writing_ii"
)

// Rule is a single machine-checkable constraint on a requirement's
// matching courses. N carries the numeric parameter for count, unit, and
// subgroup rules; Flag is set only for RuleRequiresFlag.
type Rule struct {
	Kind RuleKind
	N    int
	Flag Flag
}

// numberWords covers the counts that appear in requirement notes.
var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
}

// ParseNotes derives the full rule set for a requirement. The count and
// unit rules always come from the row's columns; additional rules and the
// matching scope are recognized from the special notes text. Notes that
// encode nothing machine-checkable (or a NULL note) add no rules.
func ParseNotes(req domain.GERequirement) ([]Rule, Scope) {
	rules := []Rule{
		{Kind: RuleMinCount, N: req.CoursesRequired},
		{Kind: RuleMinUnits, N: req.UnitsRequired},
	}
	scope := ScopeArea

	notes := strings.ToLower(req.SpecialNotes)
	if notes == "" {
		return rules, scope
	}

	if strings.Contains(notes, "different subgroup") {
		rules = append(rules, Rule{Kind: RuleDistinctSubgroups, N: req.CoursesRequired})
		scope = ScopeFoundation
	}

	if (strings.Contains(notes, "no more than") || strings.Contains(notes, "not more than")) &&
		strings.Contains(notes, "subgroup") {
		rules = append(rules, Rule{Kind: RuleMaxPerSubgroup, N: capFromNotes(notes)})
		scope = ScopeFoundation
	}

	// "A third course from any Society and Culture subgroup" and the like:
	// the requirement draws from a whole foundation rather than one area.
	if strings.Contains(notes, "any") && strings.Contains(notes, "subgroup") {
		scope = ScopeFoundation
	}

	hasLab := strings.Contains(notes, "lab")
	hasWriting := strings.Contains(notes, "writing ii")
	switch {
	case hasLab && hasWriting:
		rules = append(rules, Rule{Kind: RuleRequiresFlag, Flag: FlagLabOrWritingII})
	case hasLab:
		rules = append(rules, Rule{Kind: RuleRequiresFlag, Flag: FlagLab})
	case hasWriting:
		rules = append(rules, Rule{Kind: RuleRequiresFlag, Flag: FlagWritingII})
	}

	return rules, scope
}

// capFromNotes extracts the per-subgroup cap from a "no more than ..."
// note. Falls back to 2, the only cap appearing in the seeded policy.
func capFromNotes(notes string) int {
	for word, n := range numberWords {
		if strings.Contains(notes, "than "+word) {
			return n
		}
	}
	return 2
}

// foundationFromNotes finds a foundation area named in notes text, for
// requirements whose own area label is not in the mapping table.
func foundationFromNotes(notes string) string {
	for _, f := range []string{
		domain.FoundationArtsHumanities,
		domain.FoundationSocietyCulture,
		domain.FoundationScientificInquiry,
	} {
		if strings.Contains(strings.ToLower(notes), strings.ToLower(f)) {
			return f
		}
	}
	return ""
}
