package services

import (
	"context"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/repository"
)

// Mock BeneficiaryRepository
type mockBeneficiaryRepository struct {
	repository.BeneficiaryRepository
	mockFindAllExcept func(ctx context.Context, excludeID uint) ([]models.Beneficiary, error)
}

func (m *mockBeneficiaryRepository) FindAllExcept(ctx context.Context, excludeID uint) ([]models.Beneficiary, error) {
	if m.mockFindAllExcept != nil {
		return m.mockFindAllExcept(ctx, excludeID)
	}
	return nil, nil
}

// Mock ApplicationRepository
type mockApplicationRepository struct {
	repository.ApplicationRepository
	mockFindByID            func(ctx context.Context, id uint) (*models.BeneficiaryApplication, error)
	mockUpdateStatusGuarded func(ctx context.Context, applicationID uint, statusFrom string, updates map[string]any, entry *models.AuditLog) error
}

func (m *mockApplicationRepository) FindByID(ctx context.Context, id uint) (*models.BeneficiaryApplication, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, nil
}

func (m *mockApplicationRepository) UpdateStatusGuarded(ctx context.Context, applicationID uint, statusFrom string, updates map[string]any, entry *models.AuditLog) error {
	if m.mockUpdateStatusGuarded != nil {
		return m.mockUpdateStatusGuarded(ctx, applicationID, statusFrom, updates, entry)
	}
	return nil
}

// Mock AuditRepository
type mockAuditRepository struct {
	repository.AuditRepository
	mockCreate            func(ctx context.Context, entry *models.AuditLog) error
	mockFindStatusHistory func(ctx context.Context, entity string, entityID uint) ([]models.AuditLog, error)
}

func (m *mockAuditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, entry)
	}
	return nil
}

func (m *mockAuditRepository) FindStatusHistory(ctx context.Context, entity string, entityID uint) ([]models.AuditLog, error) {
	if m.mockFindStatusHistory != nil {
		return m.mockFindStatusHistory(ctx, entity, entityID)
	}
	return nil, nil
}

func uintPtr(v uint) *uint        { return &v }
func strPtr(v string) *string     { return &v }
func floatPtr(v float64) *float64 { return &v }
