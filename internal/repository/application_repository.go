package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
)

// ErrStaleStatus indicates the optimistic status guard failed: another
// writer transitioned the application between read and write.
var ErrStaleStatus = errors.New("application status changed concurrently")

// ApplicationQuery extends ListQuery with application-specific filters
type ApplicationQuery struct {
	*ListQuery
	Status  string
	Program string
	UserID  uint
	IsStaff bool
}

// ApplicationStats holds per-status counts for the dashboard
type ApplicationStats struct {
	Total       int64 `json:"total"`
	Submitted   int64 `json:"submitted"`
	UnderReview int64 `json:"under_review"`
	Eligible    int64 `json:"eligible"`
	Approved    int64 `json:"approved"`
	Waitlisted  int64 `json:"waitlisted"`
	Allocated   int64 `json:"allocated"`
	NotEligible int64 `json:"not_eligible"`
	Cancelled   int64 `json:"cancelled"`
}

// ApplicationRepository defines the interface for application data access
type ApplicationRepository interface {
	FindByID(ctx context.Context, id uint) (*models.BeneficiaryApplication, error)
	FindByIDWithDetails(ctx context.Context, id uint) (*models.BeneficiaryApplication, error)
	FindByBeneficiary(ctx context.Context, beneficiaryID uint) ([]models.BeneficiaryApplication, error)
	Create(ctx context.Context, application *models.BeneficiaryApplication) error
	Update(ctx context.Context, application *models.BeneficiaryApplication) error
	List(ctx context.Context, query *ApplicationQuery) ([]models.BeneficiaryApplication, int64, error)
	FindByStatus(ctx context.Context, status string) ([]models.BeneficiaryApplication, error)
	FindWaitlisted(ctx context.Context, program string) ([]models.BeneficiaryApplication, error)
	GetStats(ctx context.Context) (*ApplicationStats, error)
	UpdateStatusGuarded(ctx context.Context, applicationID uint, statusFrom string, updates map[string]any, entry *models.AuditLog) error
}

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) FindByID(ctx context.Context, id uint) (*models.BeneficiaryApplication, error) {
	var application models.BeneficiaryApplication
	err := r.db.WithContext(ctx).First(&application, id).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *applicationRepository) FindByIDWithDetails(ctx context.Context, id uint) (*models.BeneficiaryApplication, error) {
	var application models.BeneficiaryApplication
	err := r.db.WithContext(ctx).
		Preload("Beneficiary").
		Preload("Beneficiary.HouseholdMembers").
		Preload("Documents").
		Preload("Reviewer").
		Preload("Approver").
		First(&application, id).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *applicationRepository) FindByBeneficiary(ctx context.Context, beneficiaryID uint) ([]models.BeneficiaryApplication, error) {
	var applications []models.BeneficiaryApplication
	err := r.db.WithContext(ctx).
		Where("beneficiary_id = ?", beneficiaryID).
		Order("created_at desc").
		Find(&applications).Error
	return applications, err
}

func (r *applicationRepository) Create(ctx context.Context, application *models.BeneficiaryApplication) error {
	return r.db.WithContext(ctx).Create(application).Error
}

func (r *applicationRepository) Update(ctx context.Context, application *models.BeneficiaryApplication) error {
	return r.db.WithContext(ctx).Save(application).Error
}

func (r *applicationRepository) List(ctx context.Context, query *ApplicationQuery) ([]models.BeneficiaryApplication, int64, error) {
	var applications []models.BeneficiaryApplication
	var total int64

	tx := r.db.WithContext(ctx).Model(&models.BeneficiaryApplication{})
	if !query.IsStaff {
		tx = tx.Joins("JOIN beneficiaries ON beneficiaries.id = beneficiary_applications.beneficiary_id").
			Where("beneficiaries.user_id = ?", query.UserID)
	}
	if query.Status != "" {
		tx = tx.Where("application_status = ?", query.Status)
	}
	if query.Program != "" {
		tx = tx.Where("housing_program = ?", query.Program)
	}
	if query.Search != "" {
		tx = tx.Where("application_number ILIKE ?", "%"+query.Search+"%")
	}

	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := tx.Preload("Beneficiary").
		Order("submitted_at desc").
		Limit(query.limit()).Offset(query.offset()).
		Find(&applications).Error
	return applications, total, err
}

func (r *applicationRepository) FindByStatus(ctx context.Context, status string) ([]models.BeneficiaryApplication, error) {
	var applications []models.BeneficiaryApplication
	err := r.db.WithContext(ctx).
		Preload("Beneficiary").
		Where("application_status = ?", status).
		Order("submitted_at asc").
		Find(&applications).Error
	return applications, err
}

// FindWaitlisted returns waitlisted applications for a program ordered for
// allocation: heaviest priority weight first, earliest submission breaking ties.
func (r *applicationRepository) FindWaitlisted(ctx context.Context, program string) ([]models.BeneficiaryApplication, error) {
	var applications []models.BeneficiaryApplication
	err := r.db.WithContext(ctx).
		Preload("Beneficiary").
		Where("application_status = ? AND housing_program = ?", models.ApplicationStatusWaitlisted, program).
		Order("priority_weight desc, submitted_at asc").
		Find(&applications).Error
	return applications, err
}

func (r *applicationRepository) GetStats(ctx context.Context) (*ApplicationStats, error) {
	stats := &ApplicationStats{}
	type row struct {
		ApplicationStatus string
		Count             int64
	}
	var rows []row

	err := r.db.WithContext(ctx).
		Model(&models.BeneficiaryApplication{}).
		Select("application_status, COUNT(*) as count").
		Group("application_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, rw := range rows {
		stats.Total += rw.Count
		switch rw.ApplicationStatus {
		case models.ApplicationStatusSubmitted:
			stats.Submitted = rw.Count
		case models.ApplicationStatusUnderReview:
			stats.UnderReview = rw.Count
		case models.ApplicationStatusEligible:
			stats.Eligible = rw.Count
		case models.ApplicationStatusApproved:
			stats.Approved = rw.Count
		case models.ApplicationStatusWaitlisted:
			stats.Waitlisted = rw.Count
		case models.ApplicationStatusAllocated:
			stats.Allocated = rw.Count
		case models.ApplicationStatusNotEligible:
			stats.NotEligible = rw.Count
		case models.ApplicationStatusCancelled:
			stats.Cancelled = rw.Count
		}
	}

	return stats, nil
}

// UpdateStatusGuarded writes a status change and its audit row in one
// transaction, guarded on the status the caller validated against. When the
// guard misses (a concurrent writer got there first) nothing is written and
// ErrStaleStatus is returned.
func (r *applicationRepository) UpdateStatusGuarded(ctx context.Context, applicationID uint, statusFrom string, updates map[string]any, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.BeneficiaryApplication{}).
			Where("id = ? AND application_status = ?", applicationID, statusFrom).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleStatus
		}
		return tx.Create(entry).Error
	})
}
