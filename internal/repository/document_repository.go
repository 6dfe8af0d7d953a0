package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
)

// DocumentRepository defines the interface for document data access
type DocumentRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Document, error)
	FindByApplication(ctx context.Context, applicationID uint) ([]models.Document, error)
	Create(ctx context.Context, document *models.Document) error
	Update(ctx context.Context, document *models.Document) error
	FindPendingVerification(ctx context.Context, query *ListQuery) ([]models.Document, int64, error)
}

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) FindByID(ctx context.Context, id uint) (*models.Document, error) {
	var document models.Document
	err := r.db.WithContext(ctx).First(&document, id).Error
	if err != nil {
		return nil, err
	}
	return &document, nil
}

// FindByApplication returns an application's documents newest first, so the
// first row per type is the current one.
func (r *documentRepository) FindByApplication(ctx context.Context, applicationID uint) ([]models.Document, error) {
	var documents []models.Document
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("created_at desc").
		Find(&documents).Error
	return documents, err
}

func (r *documentRepository) Create(ctx context.Context, document *models.Document) error {
	return r.db.WithContext(ctx).Create(document).Error
}

func (r *documentRepository) Update(ctx context.Context, document *models.Document) error {
	return r.db.WithContext(ctx).Save(document).Error
}

func (r *documentRepository) FindPendingVerification(ctx context.Context, query *ListQuery) ([]models.Document, int64, error) {
	var documents []models.Document
	var total int64

	tx := r.db.WithContext(ctx).Model(&models.Document{}).
		Where("verification_status = ?", models.VerificationStatusPending)

	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := tx.Order("created_at asc").
		Limit(query.limit()).Offset(query.offset()).
		Find(&documents).Error
	return documents, total, err
}
