package services

import (
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/rules"
)

// Criterion names reported in FailedCriteria
const (
	CriterionIncome           = "income"
	CriterionResidency        = "residency"
	CriterionFamilySize       = "family_size"
	CriterionExistingProperty = "existing_property"
	CriterionDocuments        = "documents"
)

// Determination values
const (
	DeterminationEligible    = models.EligibilityStatusEligible
	DeterminationNotEligible = models.EligibilityStatusNotEligible
	// conditional exists in the enum but no current rule produces it;
	// reserved for a future partial-pass policy
	DeterminationConditional = models.EligibilityStatusConditional
)

// EligibilityResult is the outcome of evaluating one application against
// its program's rule entry
type EligibilityResult struct {
	IsEligible     bool     `json:"is_eligible"`
	Determination  string   `json:"determination"`
	FailedCriteria []string `json:"failed_criteria"`
	PriorityWeight float64  `json:"priority_weight"`
}

// EligibilityService evaluates applications against the configured rule
// table. Every criterion is checked independently and every failure is
// recorded by name; an ineligible outcome is a result value, not an error.
// The service never writes anything: eligibility_status is the caller's job.
type EligibilityService struct {
	rules *rules.Table
}

// NewEligibilityService creates a new eligibility service
func NewEligibilityService(ruleTable *rules.Table) *EligibilityService {
	return &EligibilityService{rules: ruleTable}
}

// Evaluate runs all eligibility criteria for one application. The
// beneficiary must carry its household members. Returns an error only for
// configuration defects (unknown program), never for business outcomes.
func (s *EligibilityService) Evaluate(beneficiary *models.Beneficiary, application *models.BeneficiaryApplication, documents []models.Document) (*EligibilityResult, error) {
	criteria, err := s.rules.CriteriaFor(application.HousingProgram)
	if err != nil {
		return nil, err
	}

	// fixed evaluation order keeps FailedCriteria deterministic
	var failed []string

	if beneficiary.HouseholdIncome() > criteria.MaxIncome {
		failed = append(failed, CriterionIncome)
	}

	if beneficiary.YearsOfResidency < criteria.MinResidencyYears {
		failed = append(failed, CriterionResidency)
	}

	householdSize := beneficiary.HouseholdSize()
	if householdSize < criteria.MinFamilySize ||
		(criteria.MaxFamilySize != nil && householdSize > *criteria.MaxFamilySize) {
		failed = append(failed, CriterionFamilySize)
	}

	// a program that does not accept existing owners excludes them outright
	if !criteria.RequiresExistingProperty && beneficiary.HasExistingProperty {
		failed = append(failed, CriterionExistingProperty)
	}

	missing, err := s.MissingDocuments(beneficiary, application.HousingProgram, documents)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		failed = append(failed, CriterionDocuments)
	}

	result := &EligibilityResult{
		IsEligible:     len(failed) == 0,
		Determination:  DeterminationNotEligible,
		FailedCriteria: failed,
		// ranking metadata only; never bends the thresholds above
		PriorityWeight: criteria.PriorityWeightFor(beneficiary.PriorityStatus),
	}
	if result.IsEligible {
		result.Determination = DeterminationEligible
	}

	return result, nil
}

// RequiredDocuments resolves the document types an application must carry:
// the program's base list, the priority-status ID when the beneficiary claims
// a category, and a marriage certificate for married applicants.
func (s *EligibilityService) RequiredDocuments(beneficiary *models.Beneficiary, program string) ([]string, error) {
	required, err := s.rules.RequiredDocumentsFor(program)
	if err != nil {
		return nil, err
	}

	if beneficiary.HasPriorityStatus() {
		if docType, ok := models.PriorityDocumentType(beneficiary.PriorityStatus); ok && !containsString(required, docType) {
			required = append(required, docType)
		}
	}
	if beneficiary.CivilStatus == models.CivilStatusMarried && !containsString(required, models.DocumentTypeMarriageCertificate) {
		required = append(required, models.DocumentTypeMarriageCertificate)
	}

	return required, nil
}

// MissingDocuments returns every required document type without a current
// verified upload. Invalid documents never satisfy a requirement; among
// multiple uploads of one type only the newest counts.
func (s *EligibilityService) MissingDocuments(beneficiary *models.Beneficiary, program string, documents []models.Document) ([]string, error) {
	required, err := s.RequiredDocuments(beneficiary, program)
	if err != nil {
		return nil, err
	}

	current := currentDocuments(documents)
	var missing []string
	for _, docType := range required {
		doc, ok := current[docType]
		if !ok || !doc.IsVerified() {
			missing = append(missing, docType)
		}
	}
	return missing, nil
}

// currentDocuments picks the newest document per type
func currentDocuments(documents []models.Document) map[string]*models.Document {
	current := make(map[string]*models.Document)
	for i := range documents {
		doc := &documents[i]
		existing, ok := current[doc.DocumentType]
		if !ok || doc.CreatedAt.After(existing.CreatedAt) {
			current[doc.DocumentType] = doc
		}
	}
	return current
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
