package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/rules"
)

func newValidationService(beneficiaryRepo *mockBeneficiaryRepository) *ApplicationValidationService {
	table := rules.Default()
	return NewApplicationValidationService(
		table,
		NewEligibilityService(table),
		NewDuplicateCheckService(beneficiaryRepo, table),
	)
}

func TestCompleteApplicationIsReady(t *testing.T) {
	svc := newValidationService(&mockBeneficiaryRepository{})

	result, err := svc.Validate(context.Background(), eligibleBeneficiary(), socializedApplication(), allBaseDocuments())
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Equal(t, ReadinessReady, result.ReadinessStatus)
	assert.Empty(t, result.MissingFields)
	assert.Empty(t, result.MissingDocuments)
	assert.Empty(t, result.DuplicateWarnings)
}

func TestMissingFieldsTakePrecedence(t *testing.T) {
	// candidates that share the applicant's name, so the duplicate check
	// would also fire if consulted for the verdict
	repo := &mockBeneficiaryRepository{
		mockFindAllExcept: func(ctx context.Context, excludeID uint) ([]models.Beneficiary, error) {
			twin := *eligibleBeneficiary()
			twin.ID = 7
			return []models.Beneficiary{twin}, nil
		},
	}
	svc := newValidationService(repo)

	beneficiary := eligibleBeneficiary()
	beneficiary.Barangay = ""
	beneficiary.MonthlyIncome = 0

	result, err := svc.Validate(context.Background(), beneficiary, socializedApplication(), nil)
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Equal(t, ReadinessIncomplete, result.ReadinessStatus)

	// every issue is still reported even though the verdict is incomplete
	assert.ElementsMatch(t, []string{"barangay", "monthly_income"}, result.MissingFields)
	assert.NotEmpty(t, result.MissingDocuments)
	assert.NotEmpty(t, result.DuplicateWarnings)
}

func TestMissingDocumentsBeforeDuplicates(t *testing.T) {
	repo := &mockBeneficiaryRepository{
		mockFindAllExcept: func(ctx context.Context, excludeID uint) ([]models.Beneficiary, error) {
			twin := *eligibleBeneficiary()
			twin.ID = 7
			return []models.Beneficiary{twin}, nil
		},
	}
	svc := newValidationService(repo)

	result, err := svc.Validate(context.Background(), eligibleBeneficiary(), socializedApplication(), nil)
	require.NoError(t, err)
	assert.Equal(t, ReadinessMissingDocuments, result.ReadinessStatus)
	assert.NotEmpty(t, result.DuplicateWarnings)
}

func TestDuplicatesBlockOtherwiseCompleteApplication(t *testing.T) {
	repo := &mockBeneficiaryRepository{
		mockFindAllExcept: func(ctx context.Context, excludeID uint) ([]models.Beneficiary, error) {
			twin := *eligibleBeneficiary()
			twin.ID = 7
			return []models.Beneficiary{twin}, nil
		},
	}
	svc := newValidationService(repo)

	result, err := svc.Validate(context.Background(), eligibleBeneficiary(), socializedApplication(), allBaseDocuments())
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Equal(t, ReadinessHasDuplicates, result.ReadinessStatus)
	assert.Empty(t, result.MissingFields)
	assert.Empty(t, result.MissingDocuments)
	require.Len(t, result.DuplicateWarnings, 1)
	assert.Equal(t, uint(7), result.DuplicateWarnings[0].BeneficiaryID)
}

func TestUnknownMandatoryFieldAlwaysMissing(t *testing.T) {
	assert.False(t, fieldPresent(eligibleBeneficiary(), socializedApplication(), "middle_initial"))
}

func TestMandatoryFieldPresenceChecks(t *testing.T) {
	beneficiary := eligibleBeneficiary()
	application := socializedApplication()

	for _, field := range rules.Default().MandatoryFields() {
		assert.True(t, fieldPresent(beneficiary, application, field), "field %s should be present", field)
	}

	empty := &models.Beneficiary{}
	for _, field := range rules.Default().MandatoryFields() {
		if field == "housing_program" {
			continue
		}
		assert.False(t, fieldPresent(empty, application, field), "field %s should be missing", field)
	}
	assert.False(t, fieldPresent(beneficiary, &models.BeneficiaryApplication{}, "housing_program"))
}
