package models

import (
	"time"
)

// BeneficiaryApplication is one beneficiary's application to a housing program.
// ApplicationStatus moves only through the lifecycle state machine;
// EligibilityStatus is written only from evaluator output.
type BeneficiaryApplication struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	BeneficiaryID     uint       `gorm:"not null;index" json:"beneficiary_id"`
	ApplicationNumber string     `gorm:"uniqueIndex;not null" json:"application_number"`
	HousingProgram    string     `gorm:"not null;index" json:"housing_program"`
	ApplicationStatus string     `gorm:"default:submitted;index" json:"application_status"`
	EligibilityStatus string     `gorm:"default:pending" json:"eligibility_status"`
	PriorityWeight    float64    `gorm:"type:decimal;default:1" json:"priority_weight"`
	Remarks           *string    `gorm:"type:text" json:"remarks"`
	SubmittedAt       time.Time  `json:"submitted_at"`
	ReviewedAt        *time.Time `json:"reviewed_at"`
	ReviewedBy        *uint      `json:"reviewed_by"`
	ApprovedAt        *time.Time `json:"approved_at"`
	ApprovedBy        *uint      `json:"approved_by"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	// Associations
	Beneficiary Beneficiary `gorm:"foreignKey:BeneficiaryID" json:"beneficiary,omitempty"`
	Documents   []Document  `gorm:"foreignKey:ApplicationID" json:"documents,omitempty"`
	Reviewer    *User       `gorm:"foreignKey:ReviewedBy" json:"reviewer,omitempty"`
	Approver    *User       `gorm:"foreignKey:ApprovedBy" json:"approver,omitempty"`
}

// TableName specifies the table name for BeneficiaryApplication
func (BeneficiaryApplication) TableName() string {
	return "beneficiary_applications"
}

// Housing program constants
const (
	ProgramSocializedHousing = "socialized_housing"
	ProgramRelocation        = "relocation"
	ProgramRentalSubsidy     = "rental_subsidy"
	ProgramHousingLoan       = "housing_loan"
)

// HousingPrograms lists every supported program
var HousingPrograms = []string{
	ProgramSocializedHousing,
	ProgramRelocation,
	ProgramRentalSubsidy,
	ProgramHousingLoan,
}

// Application status constants
const (
	ApplicationStatusSubmitted          = "submitted"
	ApplicationStatusUnderReview        = "under_review"
	ApplicationStatusSiteVisitScheduled = "site_visit_scheduled"
	ApplicationStatusSiteVisitCompleted = "site_visit_completed"
	ApplicationStatusVerified           = "verified"
	ApplicationStatusEligible           = "eligible"
	ApplicationStatusNotEligible        = "not_eligible"
	ApplicationStatusApproved           = "approved"
	ApplicationStatusWaitlisted         = "waitlisted"
	ApplicationStatusAllocated          = "allocated"
	ApplicationStatusCancelled          = "cancelled"
	ApplicationStatusRejected           = "rejected"
)

// Eligibility status constants
const (
	EligibilityStatusPending     = "pending"
	EligibilityStatusEligible    = "eligible"
	EligibilityStatusNotEligible = "not_eligible"
	EligibilityStatusConditional = "conditional"
)

// terminalStatuses have no outbound transitions
var terminalStatuses = map[string]bool{
	ApplicationStatusNotEligible: true,
	ApplicationStatusAllocated:   true,
	ApplicationStatusCancelled:   true,
	ApplicationStatusRejected:    true,
}

// IsTerminalStatus reports whether a status permits no further transitions
func IsTerminalStatus(status string) bool {
	return terminalStatuses[status]
}

// IsTerminal reports whether the application has reached a final status
func (a *BeneficiaryApplication) IsTerminal() bool {
	return IsTerminalStatus(a.ApplicationStatus)
}

// MayCancel returns true if the application can still be cancelled
func (a *BeneficiaryApplication) MayCancel() bool {
	return !a.IsTerminal()
}

// IsValidProgram reports whether the program name is one of the supported schemes
func IsValidProgram(program string) bool {
	for _, p := range HousingPrograms {
		if p == program {
			return true
		}
	}
	return false
}

// ApplicationResponse is the JSON response format for applications
type ApplicationResponse struct {
	ID                uint                `json:"id"`
	ApplicationNumber string              `json:"application_number"`
	BeneficiaryID     uint                `json:"beneficiary_id"`
	BeneficiaryName   string              `json:"beneficiary_name"`
	HousingProgram    string              `json:"housing_program"`
	ApplicationStatus string              `json:"application_status"`
	EligibilityStatus string              `json:"eligibility_status"`
	PriorityWeight    float64             `json:"priority_weight"`
	Remarks           *string             `json:"remarks"`
	SubmittedAt       time.Time           `json:"submitted_at"`
	ReviewedAt        *time.Time          `json:"reviewed_at"`
	ReviewedByName    string              `json:"reviewed_by_name,omitempty"`
	ApprovedAt        *time.Time          `json:"approved_at"`
	ApprovedByName    string              `json:"approved_by_name,omitempty"`
	Documents         []DocumentResponse  `json:"documents,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
}

// ToResponse converts BeneficiaryApplication to ApplicationResponse
func (a *BeneficiaryApplication) ToResponse() ApplicationResponse {
	resp := ApplicationResponse{
		ID:                a.ID,
		ApplicationNumber: a.ApplicationNumber,
		BeneficiaryID:     a.BeneficiaryID,
		BeneficiaryName:   a.Beneficiary.FullName(),
		HousingProgram:    a.HousingProgram,
		ApplicationStatus: a.ApplicationStatus,
		EligibilityStatus: a.EligibilityStatus,
		PriorityWeight:    a.PriorityWeight,
		Remarks:           a.Remarks,
		SubmittedAt:       a.SubmittedAt,
		ReviewedAt:        a.ReviewedAt,
		ApprovedAt:        a.ApprovedAt,
		CreatedAt:         a.CreatedAt,
	}

	if a.Reviewer != nil {
		resp.ReviewedByName = a.Reviewer.FullName
	}
	if a.Approver != nil {
		resp.ApprovedByName = a.Approver.FullName
	}
	for _, doc := range a.Documents {
		resp.Documents = append(resp.Documents, doc.ToResponse())
	}

	return resp
}
