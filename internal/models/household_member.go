package models

import (
	"time"
)

// HouseholdMember is one person living with a beneficiary. Non-dependent
// members contribute their income to the household income aggregation.
type HouseholdMember struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	BeneficiaryID uint      `gorm:"not null;index" json:"beneficiary_id"`
	FullName      string    `gorm:"not null" json:"full_name"`
	Relationship  string    `gorm:"not null" json:"relationship"`
	BirthDate     time.Time `json:"birth_date"`
	Gender        string    `json:"gender"`
	Occupation    *string   `json:"occupation"`
	MonthlyIncome *float64  `gorm:"type:decimal" json:"monthly_income"`
	IsDependent   bool      `gorm:"default:true" json:"is_dependent"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Associations
	Beneficiary Beneficiary `gorm:"foreignKey:BeneficiaryID" json:"-"`
}

// TableName specifies the table name for HouseholdMember
func (HouseholdMember) TableName() string {
	return "household_members"
}

// Relationship constants
const (
	RelationshipSpouse      = "spouse"
	RelationshipChild       = "child"
	RelationshipParent      = "parent"
	RelationshipSibling     = "sibling"
	RelationshipGrandparent = "grandparent"
	RelationshipOther       = "other"
)
