package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/rules"
)

func newDuplicateService(existing []models.Beneficiary) *DuplicateCheckService {
	repo := &mockBeneficiaryRepository{
		mockFindAllExcept: func(ctx context.Context, excludeID uint) ([]models.Beneficiary, error) {
			var out []models.Beneficiary
			for _, b := range existing {
				if b.ID != excludeID {
					out = append(out, b)
				}
			}
			return out, nil
		},
	}
	return NewDuplicateCheckService(repo, rules.Default())
}

func TestCheckForDuplicatesNeverReportsSelf(t *testing.T) {
	candidate := &models.Beneficiary{
		ID:        1,
		FirstName: "Maria",
		LastName:  "Santos",
		Email:     strPtr("maria.santos@example.com"),
	}
	svc := newDuplicateService([]models.Beneficiary{*candidate})

	result, err := svc.CheckForDuplicates(context.Background(), candidate)
	require.NoError(t, err)
	assert.False(t, result.HasDuplicates)
	assert.Equal(t, 0, result.TotalMatches)
	assert.Empty(t, result.PotentialDuplicates)
}

func TestSharedNameAndEmailExceedsHighConfidence(t *testing.T) {
	candidate := &models.Beneficiary{
		ID:        1,
		FirstName: "Maria",
		LastName:  "Santos",
		Email:     strPtr("maria.santos@example.com"),
	}
	other := models.Beneficiary{
		ID:        2,
		FirstName: "Maria",
		LastName:  "Santos",
		Email:     strPtr("MARIA.SANTOS@example.com"),
	}
	svc := newDuplicateService([]models.Beneficiary{other})

	result, err := svc.CheckForDuplicates(context.Background(), candidate)
	require.NoError(t, err)
	require.True(t, result.HasDuplicates)
	require.Equal(t, 1, result.TotalMatches)

	match := result.PotentialDuplicates[0]
	assert.Equal(t, uint(2), match.BeneficiaryID)
	assert.Contains(t, match.MatchTypes, MatchTypeFullName)
	assert.Contains(t, match.MatchTypes, MatchTypeEmail)
	assert.Greater(t, match.Confidence, 0.9)
}

func TestFuzzyNameOnlyStaysBelowExactIdentifiers(t *testing.T) {
	candidate := &models.Beneficiary{
		ID:        1,
		FirstName: "Jonathan",
		LastName:  "Delacruz",
	}
	fuzzyOnly := models.Beneficiary{
		ID:        2,
		FirstName: "Jonathon",
		LastName:  "Delacruz",
	}
	contactOnly := models.Beneficiary{
		ID:            3,
		FirstName:     "Pedro",
		LastName:      "Reyes",
		ContactNumber: strPtr("09171234567"),
	}
	candidate.ContactNumber = strPtr("09171234567")
	svc := newDuplicateService([]models.Beneficiary{fuzzyOnly, contactOnly})

	result, err := svc.CheckForDuplicates(context.Background(), candidate)
	require.NoError(t, err)
	require.Equal(t, 2, result.TotalMatches)

	// ordered highest confidence first: the exact contact match dominates
	assert.Equal(t, uint(3), result.PotentialDuplicates[0].BeneficiaryID)
	assert.Equal(t, uint(2), result.PotentialDuplicates[1].BeneficiaryID)
	assert.Greater(t, result.PotentialDuplicates[0].Confidence, result.PotentialDuplicates[1].Confidence)
	assert.Equal(t, []string{MatchTypeNameSimilarity}, result.PotentialDuplicates[1].MatchTypes)
}

func TestPriorityIDOnlyComparedWithinSameCategory(t *testing.T) {
	candidate := &models.Beneficiary{
		ID:               1,
		FirstName:        "Ana",
		LastName:         "Lopez",
		PriorityStatus:   models.PriorityStatusPWD,
		PriorityIDNumber: strPtr("PWD-001"),
	}
	sameCategory := models.Beneficiary{
		ID:               2,
		FirstName:        "Anna",
		LastName:         "Lopes",
		PriorityStatus:   models.PriorityStatusPWD,
		PriorityIDNumber: strPtr("PWD-001"),
	}
	differentCategory := models.Beneficiary{
		ID:               3,
		FirstName:        "Carmen",
		LastName:         "Diaz",
		PriorityStatus:   models.PriorityStatusSeniorCitizen,
		PriorityIDNumber: strPtr("PWD-001"),
	}
	svc := newDuplicateService([]models.Beneficiary{sameCategory, differentCategory})

	result, err := svc.CheckForDuplicates(context.Background(), candidate)
	require.NoError(t, err)
	require.Equal(t, 1, result.TotalMatches)
	assert.Equal(t, uint(2), result.PotentialDuplicates[0].BeneficiaryID)
	assert.Contains(t, result.PotentialDuplicates[0].MatchTypes, MatchTypePriorityID)
}

func TestNilOptionalFieldsNeverMatch(t *testing.T) {
	candidate := &models.Beneficiary{
		ID:        1,
		FirstName: "Jose",
		LastName:  "Ramos",
	}
	other := models.Beneficiary{
		ID:        2,
		FirstName: "Luis",
		LastName:  "Garcia",
	}
	svc := newDuplicateService([]models.Beneficiary{other})

	result, err := svc.CheckForDuplicates(context.Background(), candidate)
	require.NoError(t, err)
	assert.False(t, result.HasDuplicates)
}

func TestMultipleMatchTypesConsolidatedPerCandidate(t *testing.T) {
	candidate := &models.Beneficiary{
		ID:             1,
		FirstName:      "Rosa",
		LastName:       "Mendoza",
		Email:          strPtr("rosa@example.com"),
		ContactNumber:  strPtr("09998887766"),
		CurrentAddress: "123 Mabini St, Zone 4",
	}
	other := models.Beneficiary{
		ID:             2,
		FirstName:      "Rosa",
		LastName:       "Mendoza",
		Email:          strPtr("rosa@example.com"),
		ContactNumber:  strPtr("0999 888 7766"),
		CurrentAddress: "123 mabini st,  zone 4",
	}
	svc := newDuplicateService([]models.Beneficiary{other})

	result, err := svc.CheckForDuplicates(context.Background(), candidate)
	require.NoError(t, err)
	require.Equal(t, 1, result.TotalMatches)

	match := result.PotentialDuplicates[0]
	assert.Contains(t, match.MatchTypes, MatchTypeFullName)
	assert.Contains(t, match.MatchTypes, MatchTypeEmail)
	assert.Contains(t, match.MatchTypes, MatchTypeAddress)
	// contact number normalization keeps internal spacing differences apart
	assert.Greater(t, match.Confidence, 0.9)
	assert.LessOrEqual(t, match.Confidence, 0.99)
}

func TestAggregateConfidenceProperties(t *testing.T) {
	single := aggregateConfidence([]string{MatchTypeNameSimilarity})
	exact := aggregateConfidence([]string{MatchTypeEmail})
	combined := aggregateConfidence([]string{MatchTypeEmail, MatchTypeContactNumber, MatchTypeNameSimilarity})

	assert.Less(t, single, exact)
	assert.Greater(t, combined, 0.9)
	assert.LessOrEqual(t, combined, 0.99)
}

func TestNameSimilarityBounds(t *testing.T) {
	assert.Equal(t, 1.0, nameSimilarity("maria santos", "maria santos"))
	assert.Equal(t, 0.0, nameSimilarity("", "maria santos"))
	sim := nameSimilarity("maria santos", "marla santos")
	assert.Greater(t, sim, 0.85)
	assert.Less(t, sim, 1.0)
}
