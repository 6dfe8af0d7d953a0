package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
)

func TestCriteriaForKnownProgram(t *testing.T) {
	table := Default()

	criteria, err := table.CriteriaFor(models.ProgramSocializedHousing)
	require.NoError(t, err)
	assert.Equal(t, 30000.0, criteria.MaxIncome)
	assert.Equal(t, 5, criteria.MinResidencyYears)
	assert.False(t, criteria.RequiresExistingProperty)
}

func TestCriteriaForUnknownProgramFails(t *testing.T) {
	table := Default()

	_, err := table.CriteriaFor("emergency_shelter")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProgramNotConfigured)
}

func TestRequiredDocumentsFor(t *testing.T) {
	table := Default()

	docs, err := table.RequiredDocumentsFor(models.ProgramSocializedHousing)
	require.NoError(t, err)
	assert.Len(t, docs, 5)
	assert.Contains(t, docs, models.DocumentTypeValidID)
	assert.Contains(t, docs, models.DocumentTypeTaxDeclaration)

	_, err = table.RequiredDocumentsFor("unknown")
	assert.ErrorIs(t, err, ErrProgramNotConfigured)
}

func TestPriorityWeightFor(t *testing.T) {
	table := Default()
	criteria, err := table.CriteriaFor(models.ProgramSocializedHousing)
	require.NoError(t, err)

	assert.Equal(t, 1.0, criteria.PriorityWeightFor(models.PriorityStatusNone))
	assert.Equal(t, 1.0, criteria.PriorityWeightFor(""))
	assert.Equal(t, 1.5, criteria.PriorityWeightFor(models.PriorityStatusPWD))
	assert.Equal(t, 1.6, criteria.PriorityWeightFor(models.PriorityStatusDisasterVictim))
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	table, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 0.85, table.NameSimilarityThreshold())
	assert.Contains(t, table.MandatoryFields(), "barangay")
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	content := `{
		"programs": {
			"rental_subsidy": {
				"max_income": 18000,
				"min_residency_years": 2,
				"min_family_size": 1
			}
		},
		"name_similarity_threshold": 0.9
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	table, err := Load(path)
	require.NoError(t, err)

	criteria, err := table.CriteriaFor(models.ProgramRentalSubsidy)
	require.NoError(t, err)
	assert.Equal(t, 18000.0, criteria.MaxIncome)
	assert.Equal(t, 2, criteria.MinResidencyYears)
	assert.Equal(t, 0.9, table.NameSimilarityThreshold())

	// untouched programs keep their defaults
	socialized, err := table.CriteriaFor(models.ProgramSocializedHousing)
	require.NoError(t, err)
	assert.Equal(t, 30000.0, socialized.MaxIncome)
}

func TestLoadRejectsUnknownProgram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	content := `{"programs": {"beach_house": {"max_income": 1}}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	content := `{"name_similarity_threshold": 1.5}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
