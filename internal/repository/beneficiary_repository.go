package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
)

// BeneficiaryRepository defines the interface for beneficiary data access.
// Beneficiaries are soft-retained: Archive marks them, nothing deletes rows.
type BeneficiaryRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Beneficiary, error)
	FindByIDWithHousehold(ctx context.Context, id uint) (*models.Beneficiary, error)
	FindByUser(ctx context.Context, userID uint) ([]models.Beneficiary, error)
	FindAllExcept(ctx context.Context, excludeID uint) ([]models.Beneficiary, error)
	Create(ctx context.Context, beneficiary *models.Beneficiary) error
	Update(ctx context.Context, beneficiary *models.Beneficiary) error
	Archive(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Beneficiary, int64, error)
	AddHouseholdMember(ctx context.Context, member *models.HouseholdMember) error
	UpdateHouseholdMember(ctx context.Context, member *models.HouseholdMember) error
	RemoveHouseholdMember(ctx context.Context, id uint) error
	FindHouseholdMembers(ctx context.Context, beneficiaryID uint) ([]models.HouseholdMember, error)
}

type beneficiaryRepository struct {
	db *gorm.DB
}

// NewBeneficiaryRepository creates a new beneficiary repository
func NewBeneficiaryRepository(db *gorm.DB) BeneficiaryRepository {
	return &beneficiaryRepository{db: db}
}

func (r *beneficiaryRepository) FindByID(ctx context.Context, id uint) (*models.Beneficiary, error) {
	var beneficiary models.Beneficiary
	err := r.db.WithContext(ctx).First(&beneficiary, id).Error
	if err != nil {
		return nil, err
	}
	return &beneficiary, nil
}

func (r *beneficiaryRepository) FindByIDWithHousehold(ctx context.Context, id uint) (*models.Beneficiary, error) {
	var beneficiary models.Beneficiary
	err := r.db.WithContext(ctx).
		Preload("HouseholdMembers").
		First(&beneficiary, id).Error
	if err != nil {
		return nil, err
	}
	return &beneficiary, nil
}

func (r *beneficiaryRepository) FindByUser(ctx context.Context, userID uint) ([]models.Beneficiary, error) {
	var beneficiaries []models.Beneficiary
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND archived_at IS NULL", userID).
		Find(&beneficiaries).Error
	return beneficiaries, err
}

// FindAllExcept returns every non-archived beneficiary other than the given
// one. Feeds the duplicate scan; read-only and safe to run concurrently with
// writes.
func (r *beneficiaryRepository) FindAllExcept(ctx context.Context, excludeID uint) ([]models.Beneficiary, error) {
	var beneficiaries []models.Beneficiary
	err := r.db.WithContext(ctx).
		Where("id <> ? AND archived_at IS NULL", excludeID).
		Find(&beneficiaries).Error
	return beneficiaries, err
}

func (r *beneficiaryRepository) Create(ctx context.Context, beneficiary *models.Beneficiary) error {
	return r.db.WithContext(ctx).Create(beneficiary).Error
}

func (r *beneficiaryRepository) Update(ctx context.Context, beneficiary *models.Beneficiary) error {
	return r.db.WithContext(ctx).Save(beneficiary).Error
}

func (r *beneficiaryRepository) Archive(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Beneficiary{}).
		Where("id = ?", id).
		Update("archived_at", gorm.Expr("NOW()")).Error
}

func (r *beneficiaryRepository) List(ctx context.Context, query *ListQuery) ([]models.Beneficiary, int64, error) {
	var beneficiaries []models.Beneficiary
	var total int64

	tx := r.db.WithContext(ctx).Model(&models.Beneficiary{}).Where("archived_at IS NULL")
	if query.Search != "" {
		like := "%" + query.Search + "%"
		tx = tx.Where("first_name ILIKE ? OR last_name ILIKE ? OR current_address ILIKE ?", like, like, like)
	}
	if barangay := query.Filters["barangay"]; barangay != "" {
		tx = tx.Where("barangay = ?", barangay)
	}
	if priority := query.Filters["priority_status"]; priority != "" {
		tx = tx.Where("priority_status = ?", priority)
	}

	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := tx.Preload("HouseholdMembers").
		Order("created_at desc").
		Limit(query.limit()).Offset(query.offset()).
		Find(&beneficiaries).Error
	return beneficiaries, total, err
}

func (r *beneficiaryRepository) AddHouseholdMember(ctx context.Context, member *models.HouseholdMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *beneficiaryRepository) UpdateHouseholdMember(ctx context.Context, member *models.HouseholdMember) error {
	return r.db.WithContext(ctx).Save(member).Error
}

func (r *beneficiaryRepository) RemoveHouseholdMember(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.HouseholdMember{}, id).Error
}

func (r *beneficiaryRepository) FindHouseholdMembers(ctx context.Context, beneficiaryID uint) ([]models.HouseholdMember, error) {
	var members []models.HouseholdMember
	err := r.db.WithContext(ctx).
		Where("beneficiary_id = ?", beneficiaryID).
		Order("created_at asc").
		Find(&members).Error
	return members, err
}
