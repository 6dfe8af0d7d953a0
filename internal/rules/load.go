package rules

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
)

// fileConfig mirrors the JSON layout of an external rules file
type fileConfig struct {
	Programs                map[string]Criteria `json:"programs"`
	RequiredDocuments       map[string][]string `json:"required_documents"`
	MandatoryFields         []string            `json:"mandatory_fields"`
	NameSimilarityThreshold *float64            `json:"name_similarity_threshold"`
}

func intPtr(v int) *int { return &v }

var defaultMultipliers = map[string]float64{
	models.PriorityStatusPWD:            1.5,
	models.PriorityStatusSeniorCitizen:  1.4,
	models.PriorityStatusSoloParent:     1.3,
	models.PriorityStatusDisasterVictim: 1.6,
	models.PriorityStatusIndigenous:     1.3,
}

var baseDocuments = []string{
	models.DocumentTypeValidID,
	models.DocumentTypeBirthCertificate,
	models.DocumentTypeIncomeProof,
	models.DocumentTypeBarangayCertificate,
	models.DocumentTypeTaxDeclaration,
}

// Default returns the built-in rule table used when no external file is configured
func Default() *Table {
	return &Table{
		criteria: map[string]Criteria{
			models.ProgramSocializedHousing: {
				MaxIncome:                30000,
				MinResidencyYears:        5,
				MinFamilySize:            1,
				MaxFamilySize:            intPtr(15),
				RequiresExistingProperty: false,
				PriorityMultipliers:      defaultMultipliers,
			},
			models.ProgramRelocation: {
				MaxIncome:                25000,
				MinResidencyYears:        3,
				MinFamilySize:            1,
				MaxFamilySize:            intPtr(15),
				RequiresExistingProperty: false,
				PriorityMultipliers:      defaultMultipliers,
			},
			models.ProgramRentalSubsidy: {
				MaxIncome:                20000,
				MinResidencyYears:        1,
				MinFamilySize:            1,
				MaxFamilySize:            nil,
				RequiresExistingProperty: false,
				PriorityMultipliers:      defaultMultipliers,
			},
			models.ProgramHousingLoan: {
				MaxIncome:                50000,
				MinResidencyYears:        2,
				MinFamilySize:            1,
				MaxFamilySize:            nil,
				RequiresExistingProperty: true,
				PriorityMultipliers:      defaultMultipliers,
			},
		},
		requiredDocuments: map[string][]string{
			models.ProgramSocializedHousing: baseDocuments,
			models.ProgramRelocation:        baseDocuments,
			models.ProgramRentalSubsidy: {
				models.DocumentTypeValidID,
				models.DocumentTypeIncomeProof,
				models.DocumentTypeBarangayCertificate,
			},
			models.ProgramHousingLoan: baseDocuments,
		},
		mandatoryFields: []string{
			"first_name",
			"last_name",
			"birth_date",
			"civil_status",
			"current_address",
			"barangay",
			"monthly_income",
			"housing_program",
		},
		nameSimilarity: 0.85,
	}
}

// Load builds the rule table, merging an optional JSON file over the
// built-in defaults. An unreadable or malformed file is a hard error:
// silently falling back could change legal eligibility outcomes.
func Load(path string) (*Table, error) {
	table := Default()
	if path == "" {
		return table, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules config %s: %w", path, err)
	}

	var cfg fileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse rules config %s: %w", path, err)
	}

	for program, criteria := range cfg.Programs {
		if !models.IsValidProgram(program) {
			return nil, fmt.Errorf("rules config %s: unknown program %q", path, program)
		}
		if criteria.PriorityMultipliers == nil {
			criteria.PriorityMultipliers = defaultMultipliers
		}
		table.criteria[program] = criteria
	}
	for program, docs := range cfg.RequiredDocuments {
		if !models.IsValidProgram(program) {
			return nil, fmt.Errorf("rules config %s: unknown program %q", path, program)
		}
		table.requiredDocuments[program] = docs
	}
	if len(cfg.MandatoryFields) > 0 {
		table.mandatoryFields = cfg.MandatoryFields
	}
	if cfg.NameSimilarityThreshold != nil {
		if *cfg.NameSimilarityThreshold <= 0 || *cfg.NameSimilarityThreshold > 1 {
			return nil, fmt.Errorf("rules config %s: name_similarity_threshold must be in (0,1]", path)
		}
		table.nameSimilarity = *cfg.NameSimilarityThreshold
	}

	return table, nil
}
