package models

import (
	"encoding/json"
	"time"
)

// AuditLog is an immutable, append-only record of an administrative action.
// Rows are never updated or deleted.
type AuditLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     *uint     `gorm:"index" json:"user_id"`
	Action     string    `gorm:"size:50;not null;index" json:"action"` // created, status_updated, document_verified, archived
	Entity     string    `gorm:"size:50;not null" json:"entity"`       // beneficiary_application, beneficiary, document
	EntityID   uint      `gorm:"index" json:"entity_id"`
	Changes    string    `gorm:"type:text" json:"changes"` // JSON payload
	IPAddress  string    `gorm:"size:45" json:"ip_address"`
	UserAgent  string    `gorm:"size:255" json:"user_agent"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// Audit action constants
const (
	AuditActionCreated          = "created"
	AuditActionUpdated          = "updated"
	AuditActionArchived         = "archived"
	AuditActionStatusUpdated    = "status_updated"
	AuditActionDocumentVerified = "document_verified"
	AuditActionDocumentRejected = "document_rejected"
)

// Audit entity constants
const (
	AuditEntityApplication = "beneficiary_application"
	AuditEntityBeneficiary = "beneficiary"
	AuditEntityDocument    = "document"
	AuditEntityUser        = "user"
)

// StatusChange is the structured payload recorded for every status transition
type StatusChange struct {
	StatusFrom string `json:"status_from"`
	StatusTo   string `json:"status_to"`
	Remarks    string `json:"remarks,omitempty"`
}

// MarshalChanges serializes a payload for the Changes column
func MarshalChanges(payload any) string {
	data, err := json.Marshal(payload)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// StatusChangePayload decodes the Changes column as a status transition.
// Returns false when the entry does not carry one.
func (l *AuditLog) StatusChangePayload() (StatusChange, bool) {
	if l.Action != AuditActionStatusUpdated {
		return StatusChange{}, false
	}
	var change StatusChange
	if err := json.Unmarshal([]byte(l.Changes), &change); err != nil {
		return StatusChange{}, false
	}
	return change, true
}
