// Package rules holds the per-program eligibility thresholds and document
// requirements. The table is loaded once at startup and is immutable at
// runtime; lookups for unknown programs fail loudly because thresholds
// materially affect legal eligibility decisions.
package rules

import (
	"errors"
	"fmt"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
)

// ErrProgramNotConfigured indicates the rule table has no entry for a
// requested housing program. This is a deployment defect, not a business
// outcome, and is never silently defaulted.
var ErrProgramNotConfigured = errors.New("housing program not configured in rule table")

// Criteria holds the eligibility thresholds for one housing program
type Criteria struct {
	MaxIncome                float64            `json:"max_income"`
	MinResidencyYears        int                `json:"min_residency_years"`
	MinFamilySize            int                `json:"min_family_size"`
	MaxFamilySize            *int               `json:"max_family_size"`
	RequiresExistingProperty bool               `json:"requires_existing_property"`
	PriorityMultipliers      map[string]float64 `json:"priority_multipliers"`
}

// Table is the immutable rule configuration for every housing program
type Table struct {
	criteria          map[string]Criteria
	requiredDocuments map[string][]string
	mandatoryFields   []string
	nameSimilarity    float64
}

// CriteriaFor returns the thresholds for a program, or ErrProgramNotConfigured
func (t *Table) CriteriaFor(program string) (Criteria, error) {
	c, ok := t.criteria[program]
	if !ok {
		return Criteria{}, fmt.Errorf("%w: %q", ErrProgramNotConfigured, program)
	}
	return c, nil
}

// RequiredDocumentsFor returns the ordered document types a program demands.
// An empty list is valid and means no document gating. Unknown programs are
// a configuration error, same as CriteriaFor.
func (t *Table) RequiredDocumentsFor(program string) ([]string, error) {
	if _, ok := t.criteria[program]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrProgramNotConfigured, program)
	}
	docs := t.requiredDocuments[program]
	out := make([]string, len(docs))
	copy(out, docs)
	return out, nil
}

// MandatoryFields returns the field names every application must populate
// before administrative review.
func (t *Table) MandatoryFields() []string {
	out := make([]string, len(t.mandatoryFields))
	copy(out, t.mandatoryFields)
	return out
}

// Programs returns every program name the table has criteria for
func (t *Table) Programs() []string {
	out := make([]string, 0, len(t.criteria))
	for name := range t.criteria {
		out = append(out, name)
	}
	return out
}

// NameSimilarityThreshold returns the fuzzy name-match cutoff in [0,1]
func (t *Table) NameSimilarityThreshold() float64 {
	return t.nameSimilarity
}

// PriorityWeightFor resolves the ranking multiplier for a priority category.
// Categories without a configured multiplier weigh 1.0; the weight affects
// waitlist ordering only, never pass/fail thresholds.
func (c Criteria) PriorityWeightFor(priorityStatus string) float64 {
	if priorityStatus == "" || priorityStatus == models.PriorityStatusNone {
		return 1.0
	}
	if w, ok := c.PriorityMultipliers[priorityStatus]; ok {
		return w
	}
	return 1.0
}
