package models

import (
	"strings"
	"time"
)

// Beneficiary holds the identity and socioeconomic profile of a housing applicant.
// Records are soft-retained: archiving sets ArchivedAt, rows are never deleted.
type Beneficiary struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	UserID              uint       `gorm:"not null;index" json:"user_id"`
	FirstName           string     `gorm:"not null" json:"first_name"`
	MiddleName          *string    `json:"middle_name"`
	LastName            string     `gorm:"not null" json:"last_name"`
	BirthDate           time.Time  `json:"birth_date"`
	Gender              string     `json:"gender"`
	CivilStatus         string     `gorm:"default:single" json:"civil_status"`
	ContactNumber       *string    `json:"contact_number"`
	Email               *string    `json:"email"`
	CurrentAddress      string     `json:"current_address"`
	Barangay            string     `gorm:"index" json:"barangay"`
	YearsOfResidency    int        `gorm:"default:0" json:"years_of_residency"`
	EmploymentStatus    string     `json:"employment_status"`
	MonthlyIncome       float64    `gorm:"type:decimal" json:"monthly_income"`
	HasExistingProperty bool       `gorm:"default:false" json:"has_existing_property"`
	PriorityStatus      string     `gorm:"default:none;index" json:"priority_status"`
	PriorityIDNumber    *string    `json:"priority_id_number"`
	ArchivedAt          *time.Time `gorm:"index" json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`

	// Associations
	User             User                     `gorm:"foreignKey:UserID" json:"-"`
	HouseholdMembers []HouseholdMember        `gorm:"foreignKey:BeneficiaryID" json:"household_members,omitempty"`
	Applications     []BeneficiaryApplication `gorm:"foreignKey:BeneficiaryID" json:"applications,omitempty"`
}

// TableName specifies the table name for Beneficiary
func (Beneficiary) TableName() string {
	return "beneficiaries"
}

// Civil status constants
const (
	CivilStatusSingle    = "single"
	CivilStatusMarried   = "married"
	CivilStatusWidowed   = "widowed"
	CivilStatusSeparated = "separated"
)

// Priority status constants
const (
	PriorityStatusNone           = "none"
	PriorityStatusPWD            = "pwd"
	PriorityStatusSeniorCitizen  = "senior_citizen"
	PriorityStatusSoloParent     = "solo_parent"
	PriorityStatusDisasterVictim = "disaster_victim"
	PriorityStatusIndigenous     = "indigenous"
)

// PriorityStatuses lists every recognized priority category except "none"
var PriorityStatuses = []string{
	PriorityStatusPWD,
	PriorityStatusSeniorCitizen,
	PriorityStatusSoloParent,
	PriorityStatusDisasterVictim,
	PriorityStatusIndigenous,
}

// FullName joins the name parts, skipping a missing middle name
func (b *Beneficiary) FullName() string {
	parts := []string{b.FirstName}
	if b.MiddleName != nil && *b.MiddleName != "" {
		parts = append(parts, *b.MiddleName)
	}
	parts = append(parts, b.LastName)
	return strings.Join(parts, " ")
}

// HasPriorityStatus returns true when the beneficiary belongs to a priority category
func (b *Beneficiary) HasPriorityStatus() bool {
	return b.PriorityStatus != "" && b.PriorityStatus != PriorityStatusNone
}

// IsArchived returns true if the record has been soft-retained
func (b *Beneficiary) IsArchived() bool {
	return b.ArchivedAt != nil
}

// HouseholdSize counts the beneficiary plus declared household members
func (b *Beneficiary) HouseholdSize() int {
	return 1 + len(b.HouseholdMembers)
}

// HouseholdIncome sums the beneficiary's income with every non-dependent
// member's declared income. Dependents never contribute.
func (b *Beneficiary) HouseholdIncome() float64 {
	total := b.MonthlyIncome
	for _, m := range b.HouseholdMembers {
		if m.IsDependent || m.MonthlyIncome == nil {
			continue
		}
		total += *m.MonthlyIncome
	}
	return total
}

// BeneficiaryResponse is the JSON response format for beneficiaries
type BeneficiaryResponse struct {
	ID                  uint      `json:"id"`
	UserID              uint      `json:"user_id"`
	FullName            string    `json:"full_name"`
	FirstName           string    `json:"first_name"`
	MiddleName          *string   `json:"middle_name"`
	LastName            string    `json:"last_name"`
	BirthDate           time.Time `json:"birth_date"`
	Gender              string    `json:"gender"`
	CivilStatus         string    `json:"civil_status"`
	ContactNumber       *string   `json:"contact_number"`
	Email               *string   `json:"email"`
	CurrentAddress      string    `json:"current_address"`
	Barangay            string    `json:"barangay"`
	YearsOfResidency    int       `json:"years_of_residency"`
	EmploymentStatus    string    `json:"employment_status"`
	MonthlyIncome       float64   `json:"monthly_income"`
	HouseholdIncome     float64   `json:"household_income"`
	HouseholdSize       int       `json:"household_size"`
	HasExistingProperty bool      `json:"has_existing_property"`
	PriorityStatus      string    `json:"priority_status"`
	PriorityIDNumber    *string   `json:"priority_id_number"`
	Archived            bool      `json:"archived"`
	CreatedAt           time.Time `json:"created_at"`
}

// ToResponse converts Beneficiary to BeneficiaryResponse
func (b *Beneficiary) ToResponse() BeneficiaryResponse {
	return BeneficiaryResponse{
		ID:                  b.ID,
		UserID:              b.UserID,
		FullName:            b.FullName(),
		FirstName:           b.FirstName,
		MiddleName:          b.MiddleName,
		LastName:            b.LastName,
		BirthDate:           b.BirthDate,
		Gender:              b.Gender,
		CivilStatus:         b.CivilStatus,
		ContactNumber:       b.ContactNumber,
		Email:               b.Email,
		CurrentAddress:      b.CurrentAddress,
		Barangay:            b.Barangay,
		YearsOfResidency:    b.YearsOfResidency,
		EmploymentStatus:    b.EmploymentStatus,
		MonthlyIncome:       b.MonthlyIncome,
		HouseholdIncome:     b.HouseholdIncome(),
		HouseholdSize:       b.HouseholdSize(),
		HasExistingProperty: b.HasExistingProperty,
		PriorityStatus:      b.PriorityStatus,
		PriorityIDNumber:    b.PriorityIDNumber,
		Archived:            b.IsArchived(),
		CreatedAt:           b.CreatedAt,
	}
}
