package services

import (
	"context"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/repository"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/rules"
)

// Match type constants reported per candidate
const (
	MatchTypeFullName       = "full_name"
	MatchTypeNameSimilarity = "name_similarity"
	MatchTypePriorityID     = "priority_id_number"
	MatchTypeContactNumber  = "contact_number"
	MatchTypeEmail          = "email"
	MatchTypeAddress        = "current_address"
)

// matchWeights drive confidence aggregation. Exact identifiers (priority ID,
// email, contact number) carry the most evidence; a fuzzy name hit alone
// stays well below them.
var matchWeights = map[string]float64{
	MatchTypeFullName:       0.50,
	MatchTypeNameSimilarity: 0.45,
	MatchTypePriorityID:     0.95,
	MatchTypeEmail:          0.90,
	MatchTypeContactNumber:  0.85,
	MatchTypeAddress:        0.60,
}

// DuplicateMatch is one candidate beneficiary with aggregated evidence
type DuplicateMatch struct {
	BeneficiaryID uint     `json:"beneficiary_id"`
	Confidence    float64  `json:"confidence"`
	MatchTypes    []string `json:"match_types"`
}

// DuplicateCheckResult is the outcome of scanning one beneficiary against
// all existing records
type DuplicateCheckResult struct {
	HasDuplicates       bool             `json:"has_duplicates"`
	TotalMatches        int              `json:"total_matches"`
	PotentialDuplicates []DuplicateMatch `json:"potential_duplicates"`
}

// DuplicateCheckService scans existing beneficiary records for people who
// are plausibly the same person as a candidate. Pure read; finding a
// duplicate is a result value, never an error.
type DuplicateCheckService struct {
	beneficiaryRepo repository.BeneficiaryRepository
	rules           *rules.Table
}

// NewDuplicateCheckService creates a new duplicate check service
func NewDuplicateCheckService(beneficiaryRepo repository.BeneficiaryRepository, ruleTable *rules.Table) *DuplicateCheckService {
	return &DuplicateCheckService{
		beneficiaryRepo: beneficiaryRepo,
		rules:           ruleTable,
	}
}

// CheckForDuplicates compares the candidate against every other beneficiary
// on file and consolidates the evidence per candidate ID, highest confidence
// first. The candidate never matches itself, and missing optional fields
// simply cannot match.
func (s *DuplicateCheckService) CheckForDuplicates(ctx context.Context, candidate *models.Beneficiary) (*DuplicateCheckResult, error) {
	existing, err := s.beneficiaryRepo.FindAllExcept(ctx, candidate.ID)
	if err != nil {
		return nil, err
	}

	threshold := s.rules.NameSimilarityThreshold()
	var matches []DuplicateMatch

	for i := range existing {
		other := &existing[i]
		matchTypes := s.compare(candidate, other, threshold)
		if len(matchTypes) == 0 {
			continue
		}
		matches = append(matches, DuplicateMatch{
			BeneficiaryID: other.ID,
			Confidence:    aggregateConfidence(matchTypes),
			MatchTypes:    matchTypes,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Confidence != matches[j].Confidence {
			return matches[i].Confidence > matches[j].Confidence
		}
		return matches[i].BeneficiaryID < matches[j].BeneficiaryID
	})

	return &DuplicateCheckResult{
		HasDuplicates:       len(matches) > 0,
		TotalMatches:        len(matches),
		PotentialDuplicates: matches,
	}, nil
}

// compare returns every match type that fires between two records
func (s *DuplicateCheckService) compare(candidate, other *models.Beneficiary, threshold float64) []string {
	var matchTypes []string

	candidateName := normalize(candidate.FullName())
	otherName := normalize(other.FullName())
	exactName := candidateName != "" && candidateName == otherName
	if exactName {
		matchTypes = append(matchTypes, MatchTypeFullName)
	} else if nameSimilarity(candidateName, otherName) >= threshold {
		matchTypes = append(matchTypes, MatchTypeNameSimilarity)
	}

	// priority ID numbers are only comparable within the same category
	if candidate.HasPriorityStatus() && candidate.PriorityStatus == other.PriorityStatus &&
		bothPresent(candidate.PriorityIDNumber, other.PriorityIDNumber) &&
		normalize(*candidate.PriorityIDNumber) == normalize(*other.PriorityIDNumber) {
		matchTypes = append(matchTypes, MatchTypePriorityID)
	}

	if bothPresent(candidate.ContactNumber, other.ContactNumber) &&
		normalize(*candidate.ContactNumber) == normalize(*other.ContactNumber) {
		matchTypes = append(matchTypes, MatchTypeContactNumber)
	}

	if bothPresent(candidate.Email, other.Email) &&
		normalize(*candidate.Email) == normalize(*other.Email) {
		matchTypes = append(matchTypes, MatchTypeEmail)
	}

	if candidate.CurrentAddress != "" &&
		normalize(candidate.CurrentAddress) == normalize(other.CurrentAddress) {
		matchTypes = append(matchTypes, MatchTypeAddress)
	}

	return matchTypes
}

// aggregateConfidence combines per-type weights with a noisy-or: each extra
// match type shrinks the residual doubt. Capped below 1.
func aggregateConfidence(matchTypes []string) float64 {
	residual := 1.0
	for _, mt := range matchTypes {
		residual *= 1.0 - matchWeights[mt]
	}
	confidence := 1.0 - residual
	if confidence > 0.99 {
		confidence = 0.99
	}
	return confidence
}

// nameSimilarity is a normalized Levenshtein similarity in [0,1]
func nameSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(distance)/float64(longest)
}

// normalize lowercases and collapses internal whitespace
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func bothPresent(a, b *string) bool {
	return a != nil && *a != "" && b != nil && *b != ""
}
