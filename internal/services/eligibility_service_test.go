package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/rules"
)

func eligibleBeneficiary() *models.Beneficiary {
	return &models.Beneficiary{
		ID:                  1,
		FirstName:           "Juan",
		LastName:            "Dela Cruz",
		BirthDate:           time.Date(1985, 3, 15, 0, 0, 0, 0, time.UTC),
		CivilStatus:         models.CivilStatusSingle,
		CurrentAddress:      "45 Rizal Ave",
		Barangay:            "Poblacion",
		YearsOfResidency:    6,
		MonthlyIncome:       25000,
		HasExistingProperty: false,
		PriorityStatus:      models.PriorityStatusNone,
	}
}

func socializedApplication() *models.BeneficiaryApplication {
	return &models.BeneficiaryApplication{
		ID:             10,
		BeneficiaryID:  1,
		HousingProgram: models.ProgramSocializedHousing,
	}
}

func verifiedDocuments(types ...string) []models.Document {
	docs := make([]models.Document, 0, len(types))
	for i, dt := range types {
		docs = append(docs, models.Document{
			ID:                 uint(i + 1),
			ApplicationID:      10,
			DocumentType:       dt,
			VerificationStatus: models.VerificationStatusVerified,
			CreatedAt:          time.Now(),
		})
	}
	return docs
}

func allBaseDocuments() []models.Document {
	return verifiedDocuments(
		models.DocumentTypeValidID,
		models.DocumentTypeBirthCertificate,
		models.DocumentTypeIncomeProof,
		models.DocumentTypeBarangayCertificate,
		models.DocumentTypeTaxDeclaration,
	)
}

func TestFullyQualifiedApplicantIsEligible(t *testing.T) {
	svc := NewEligibilityService(rules.Default())

	result, err := svc.Evaluate(eligibleBeneficiary(), socializedApplication(), allBaseDocuments())
	require.NoError(t, err)
	assert.True(t, result.IsEligible)
	assert.Equal(t, DeterminationEligible, result.Determination)
	assert.Empty(t, result.FailedCriteria)
	assert.Equal(t, 1.0, result.PriorityWeight)
}

func TestIncomeAboveThresholdFails(t *testing.T) {
	svc := NewEligibilityService(rules.Default())
	beneficiary := eligibleBeneficiary()
	beneficiary.MonthlyIncome = 35000

	result, err := svc.Evaluate(beneficiary, socializedApplication(), allBaseDocuments())
	require.NoError(t, err)
	assert.False(t, result.IsEligible)
	assert.Equal(t, DeterminationNotEligible, result.Determination)
	assert.Contains(t, result.FailedCriteria, CriterionIncome)
}

func TestResidencyBelowMinimumFails(t *testing.T) {
	svc := NewEligibilityService(rules.Default())
	beneficiary := eligibleBeneficiary()
	beneficiary.YearsOfResidency = 3

	result, err := svc.Evaluate(beneficiary, socializedApplication(), allBaseDocuments())
	require.NoError(t, err)
	assert.Contains(t, result.FailedCriteria, CriterionResidency)
}

func TestHouseholdIncomeAggregatesNonDependentsOnly(t *testing.T) {
	svc := NewEligibilityService(rules.Default())
	beneficiary := eligibleBeneficiary()
	beneficiary.MonthlyIncome = 20000
	beneficiary.HouseholdMembers = []models.HouseholdMember{
		{FullName: "Spouse", IsDependent: false, MonthlyIncome: floatPtr(15000)},
		{FullName: "Child", IsDependent: true, MonthlyIncome: floatPtr(99999)},
		{FullName: "Parent", IsDependent: false, MonthlyIncome: nil},
	}

	// 20000 + 15000 = 35000 > 30000; the dependent child and the
	// no-income parent contribute nothing
	result, err := svc.Evaluate(beneficiary, socializedApplication(), allBaseDocuments())
	require.NoError(t, err)
	assert.Contains(t, result.FailedCriteria, CriterionIncome)
}

func TestExistingPropertyExcludedByProgram(t *testing.T) {
	svc := NewEligibilityService(rules.Default())
	beneficiary := eligibleBeneficiary()
	beneficiary.HasExistingProperty = true

	result, err := svc.Evaluate(beneficiary, socializedApplication(), allBaseDocuments())
	require.NoError(t, err)
	assert.Contains(t, result.FailedCriteria, CriterionExistingProperty)

	// housing_loan accepts existing owners
	loanApp := socializedApplication()
	loanApp.HousingProgram = models.ProgramHousingLoan
	beneficiary.YearsOfResidency = 6
	result, err = svc.Evaluate(beneficiary, loanApp, allBaseDocuments())
	require.NoError(t, err)
	assert.NotContains(t, result.FailedCriteria, CriterionExistingProperty)
}

func TestMissingVerifiedDocumentsFail(t *testing.T) {
	svc := NewEligibilityService(rules.Default())

	result, err := svc.Evaluate(eligibleBeneficiary(), socializedApplication(), nil)
	require.NoError(t, err)
	assert.Contains(t, result.FailedCriteria, CriterionDocuments)
}

func TestInvalidDocumentNeverSatisfiesRequirement(t *testing.T) {
	svc := NewEligibilityService(rules.Default())
	docs := allBaseDocuments()
	docs[0].VerificationStatus = models.VerificationStatusInvalid

	result, err := svc.Evaluate(eligibleBeneficiary(), socializedApplication(), docs)
	require.NoError(t, err)
	assert.Contains(t, result.FailedCriteria, CriterionDocuments)
}

func TestNewestDocumentPerTypeWins(t *testing.T) {
	svc := NewEligibilityService(rules.Default())
	docs := allBaseDocuments()
	// an older invalid upload of valid_id must not shadow the newer verified one
	docs = append(docs, models.Document{
		ID:                 99,
		ApplicationID:      10,
		DocumentType:       models.DocumentTypeValidID,
		VerificationStatus: models.VerificationStatusInvalid,
		CreatedAt:          time.Now().Add(-48 * time.Hour),
	})

	result, err := svc.Evaluate(eligibleBeneficiary(), socializedApplication(), docs)
	require.NoError(t, err)
	assert.NotContains(t, result.FailedCriteria, CriterionDocuments)
}

func TestMarriedApplicantRequiresMarriageCertificate(t *testing.T) {
	svc := NewEligibilityService(rules.Default())
	beneficiary := eligibleBeneficiary()
	beneficiary.CivilStatus = models.CivilStatusMarried

	result, err := svc.Evaluate(beneficiary, socializedApplication(), allBaseDocuments())
	require.NoError(t, err)
	assert.Contains(t, result.FailedCriteria, CriterionDocuments)

	docs := append(allBaseDocuments(), verifiedDocuments(models.DocumentTypeMarriageCertificate)...)
	result, err = svc.Evaluate(beneficiary, socializedApplication(), docs)
	require.NoError(t, err)
	assert.Empty(t, result.FailedCriteria)
}

func TestPriorityStatusRequiresProofDocument(t *testing.T) {
	svc := NewEligibilityService(rules.Default())
	beneficiary := eligibleBeneficiary()
	beneficiary.PriorityStatus = models.PriorityStatusPWD

	result, err := svc.Evaluate(beneficiary, socializedApplication(), allBaseDocuments())
	require.NoError(t, err)
	assert.Contains(t, result.FailedCriteria, CriterionDocuments)

	docs := append(allBaseDocuments(), verifiedDocuments(models.DocumentTypePWDID)...)
	result, err = svc.Evaluate(beneficiary, socializedApplication(), docs)
	require.NoError(t, err)
	assert.Empty(t, result.FailedCriteria)
	// multiplier surfaces as ranking metadata only
	assert.Equal(t, 1.5, result.PriorityWeight)
}

func TestPriorityWeightNeverAltersThresholds(t *testing.T) {
	svc := NewEligibilityService(rules.Default())
	beneficiary := eligibleBeneficiary()
	beneficiary.PriorityStatus = models.PriorityStatusDisasterVictim
	beneficiary.MonthlyIncome = 35000

	docs := append(allBaseDocuments(), verifiedDocuments(models.DocumentTypeDisasterCertificate)...)
	result, err := svc.Evaluate(beneficiary, socializedApplication(), docs)
	require.NoError(t, err)
	assert.Contains(t, result.FailedCriteria, CriterionIncome)
	assert.Equal(t, 1.6, result.PriorityWeight)
}

func TestAllFailuresCollectedNotJustFirst(t *testing.T) {
	svc := NewEligibilityService(rules.Default())
	beneficiary := eligibleBeneficiary()
	beneficiary.MonthlyIncome = 50000
	beneficiary.YearsOfResidency = 1
	beneficiary.HasExistingProperty = true

	result, err := svc.Evaluate(beneficiary, socializedApplication(), nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		CriterionIncome,
		CriterionResidency,
		CriterionExistingProperty,
		CriterionDocuments,
	}, result.FailedCriteria)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	svc := NewEligibilityService(rules.Default())
	beneficiary := eligibleBeneficiary()
	beneficiary.MonthlyIncome = 50000
	beneficiary.YearsOfResidency = 1

	first, err := svc.Evaluate(beneficiary, socializedApplication(), nil)
	require.NoError(t, err)
	second, err := svc.Evaluate(beneficiary, socializedApplication(), nil)
	require.NoError(t, err)
	assert.Equal(t, first.FailedCriteria, second.FailedCriteria)
	assert.Equal(t, first.IsEligible, second.IsEligible)
}

func TestUnknownProgramIsConfigurationError(t *testing.T) {
	svc := NewEligibilityService(rules.Default())
	app := socializedApplication()
	app.HousingProgram = "transitional_shelter"

	_, err := svc.Evaluate(eligibleBeneficiary(), app, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, rules.ErrProgramNotConfigured)
}
