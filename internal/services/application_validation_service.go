package services

import (
	"context"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/rules"
)

// Readiness status constants, in precedence order
const (
	ReadinessIncomplete       = "incomplete"
	ReadinessMissingDocuments = "missing_documents"
	ReadinessHasDuplicates    = "has_duplicates"
	ReadinessReady            = "ready"
)

// ValidationResult collects every issue found on one application. All checks
// run; nothing short-circuits.
type ValidationResult struct {
	IsValid           bool             `json:"is_valid"`
	ReadinessStatus   string           `json:"readiness_status"`
	MissingFields     []string         `json:"missing_fields"`
	MissingDocuments  []string         `json:"missing_documents"`
	DuplicateWarnings []DuplicateMatch `json:"duplicate_warnings"`
}

// ApplicationValidationService is the single gate asked "can this
// application proceed to administrative review".
type ApplicationValidationService struct {
	rules          *rules.Table
	eligibilitySvc *EligibilityService
	duplicateSvc   *DuplicateCheckService
}

// NewApplicationValidationService creates a new validation service
func NewApplicationValidationService(ruleTable *rules.Table, eligibilitySvc *EligibilityService, duplicateSvc *DuplicateCheckService) *ApplicationValidationService {
	return &ApplicationValidationService{
		rules:          ruleTable,
		eligibilitySvc: eligibilitySvc,
		duplicateSvc:   duplicateSvc,
	}
}

// Validate runs the mandatory-field, document-completeness and duplicate
// checks, then buckets the verdict. Structural completeness is checked
// before trusting duplicate signals: an incomplete record makes duplicate
// evidence unreliable, so the precedence order is fixed.
func (s *ApplicationValidationService) Validate(ctx context.Context, beneficiary *models.Beneficiary, application *models.BeneficiaryApplication, documents []models.Document) (*ValidationResult, error) {
	result := &ValidationResult{}

	for _, field := range s.rules.MandatoryFields() {
		if !fieldPresent(beneficiary, application, field) {
			result.MissingFields = append(result.MissingFields, field)
		}
	}

	missing, err := s.eligibilitySvc.MissingDocuments(beneficiary, application.HousingProgram, documents)
	if err != nil {
		return nil, err
	}
	result.MissingDocuments = missing

	duplicates, err := s.duplicateSvc.CheckForDuplicates(ctx, beneficiary)
	if err != nil {
		return nil, err
	}
	result.DuplicateWarnings = duplicates.PotentialDuplicates

	switch {
	case len(result.MissingFields) > 0:
		result.ReadinessStatus = ReadinessIncomplete
	case len(result.MissingDocuments) > 0:
		result.ReadinessStatus = ReadinessMissingDocuments
	case len(result.DuplicateWarnings) > 0:
		result.ReadinessStatus = ReadinessHasDuplicates
	default:
		result.ReadinessStatus = ReadinessReady
	}
	result.IsValid = result.ReadinessStatus == ReadinessReady

	return result, nil
}

// fieldPresent checks one mandatory field on the combined
// beneficiary+application view
func fieldPresent(beneficiary *models.Beneficiary, application *models.BeneficiaryApplication, field string) bool {
	switch field {
	case "first_name":
		return beneficiary.FirstName != ""
	case "last_name":
		return beneficiary.LastName != ""
	case "birth_date":
		return !beneficiary.BirthDate.IsZero()
	case "gender":
		return beneficiary.Gender != ""
	case "civil_status":
		return beneficiary.CivilStatus != ""
	case "contact_number":
		return beneficiary.ContactNumber != nil && *beneficiary.ContactNumber != ""
	case "email":
		return beneficiary.Email != nil && *beneficiary.Email != ""
	case "current_address":
		return beneficiary.CurrentAddress != ""
	case "barangay":
		return beneficiary.Barangay != ""
	case "employment_status":
		return beneficiary.EmploymentStatus != ""
	case "monthly_income":
		return beneficiary.MonthlyIncome > 0
	case "housing_program":
		return application.HousingProgram != ""
	default:
		// an unknown configured field can never be satisfied; surface it
		// as missing instead of passing silently
		return false
	}
}
