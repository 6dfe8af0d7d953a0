package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
)

// AuditRepository defines the interface for audit log data access.
// The log is append-only: there is no update or delete.
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	FindByEntity(ctx context.Context, entity string, entityID uint) ([]models.AuditLog, error)
	FindStatusHistory(ctx context.Context, entity string, entityID uint) ([]models.AuditLog, error)
	List(ctx context.Context, query *ListQuery) ([]models.AuditLog, int64, error)
}

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditRepository) FindByEntity(ctx context.Context, entity string, entityID uint) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	err := r.db.WithContext(ctx).
		Where("entity = ? AND entity_id = ?", entity, entityID).
		Order("created_at asc, id asc").
		Find(&entries).Error
	return entries, err
}

// FindStatusHistory returns status transition entries in chronological order
func (r *auditRepository) FindStatusHistory(ctx context.Context, entity string, entityID uint) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	err := r.db.WithContext(ctx).
		Where("entity = ? AND entity_id = ? AND action = ?", entity, entityID, models.AuditActionStatusUpdated).
		Order("created_at asc, id asc").
		Find(&entries).Error
	return entries, err
}

func (r *auditRepository) List(ctx context.Context, query *ListQuery) ([]models.AuditLog, int64, error) {
	var entries []models.AuditLog
	var total int64

	tx := r.db.WithContext(ctx).Model(&models.AuditLog{})
	if action := query.Filters["action"]; action != "" {
		tx = tx.Where("action = ?", action)
	}
	if entity := query.Filters["entity"]; entity != "" {
		tx = tx.Where("entity = ?", entity)
	}

	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := tx.Preload("User").
		Order("created_at desc").
		Limit(query.limit()).Offset(query.offset()).
		Find(&entries).Error
	return entries, total, err
}
