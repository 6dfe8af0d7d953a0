package models

import (
	"time"
)

// Document is an uploaded supporting file for an application. Only the most
// recently uploaded document per (application, type) counts toward
// completeness, and only when verified.
type Document struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	ApplicationID      uint       `gorm:"not null;index" json:"application_id"`
	DocumentType       string     `gorm:"not null;index" json:"document_type"`
	VerificationStatus string     `gorm:"default:pending;index" json:"verification_status"`
	FilePath           string     `gorm:"not null" json:"-"`
	OriginalFilename   string     `json:"original_filename"`
	UploadedBy         uint       `json:"uploaded_by"`
	VerifiedBy         *uint      `json:"verified_by"`
	VerifiedAt         *time.Time `json:"verified_at"`
	RejectionReason    *string    `gorm:"type:text" json:"rejection_reason"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	// Associations
	Application BeneficiaryApplication `gorm:"foreignKey:ApplicationID" json:"-"`
}

// TableName specifies the table name for Document
func (Document) TableName() string {
	return "documents"
}

// Document type constants
const (
	DocumentTypeValidID               = "valid_id"
	DocumentTypeBirthCertificate      = "birth_certificate"
	DocumentTypeIncomeProof           = "income_proof"
	DocumentTypeBarangayCertificate   = "barangay_certificate"
	DocumentTypeTaxDeclaration        = "tax_declaration"
	DocumentTypeMarriageCertificate   = "marriage_certificate"
	DocumentTypePWDID                 = "pwd_id"
	DocumentTypeSeniorCitizenID       = "senior_citizen_id"
	DocumentTypeSoloParentID          = "solo_parent_id"
	DocumentTypeDisasterCertificate   = "disaster_certificate"
	DocumentTypeIndigenousCertificate = "indigenous_certificate"
)

// Verification status constants
const (
	VerificationStatusPending  = "pending"
	VerificationStatusVerified = "verified"
	VerificationStatusInvalid  = "invalid"
)

// IsVerified returns true if the document passed staff verification
func (d *Document) IsVerified() bool {
	return d.VerificationStatus == VerificationStatusVerified
}

// IsInvalid returns true if the document was rejected by staff
func (d *Document) IsInvalid() bool {
	return d.VerificationStatus == VerificationStatusInvalid
}

// PriorityDocumentType maps a priority status to the ID document that proves it.
// "none" and unknown categories need no proof document.
func PriorityDocumentType(priorityStatus string) (string, bool) {
	switch priorityStatus {
	case PriorityStatusPWD:
		return DocumentTypePWDID, true
	case PriorityStatusSeniorCitizen:
		return DocumentTypeSeniorCitizenID, true
	case PriorityStatusSoloParent:
		return DocumentTypeSoloParentID, true
	case PriorityStatusDisasterVictim:
		return DocumentTypeDisasterCertificate, true
	case PriorityStatusIndigenous:
		return DocumentTypeIndigenousCertificate, true
	}
	return "", false
}

// DocumentResponse is the JSON response format for documents
type DocumentResponse struct {
	ID                 uint       `json:"id"`
	ApplicationID      uint       `json:"application_id"`
	DocumentType       string     `json:"document_type"`
	VerificationStatus string     `json:"verification_status"`
	OriginalFilename   string     `json:"original_filename"`
	VerifiedAt         *time.Time `json:"verified_at"`
	RejectionReason    *string    `json:"rejection_reason"`
	CreatedAt          time.Time  `json:"created_at"`
}

// ToResponse converts Document to DocumentResponse
func (d *Document) ToResponse() DocumentResponse {
	return DocumentResponse{
		ID:                 d.ID,
		ApplicationID:      d.ApplicationID,
		DocumentType:       d.DocumentType,
		VerificationStatus: d.VerificationStatus,
		OriginalFilename:   d.OriginalFilename,
		VerifiedAt:         d.VerifiedAt,
		RejectionReason:    d.RejectionReason,
		CreatedAt:          d.CreatedAt,
	}
}
