package services

import (
	"context"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/repository"
)

// AuditService appends immutable audit entries
type AuditService struct {
	repo repository.AuditRepository
}

// NewAuditService creates a new audit service
func NewAuditService(repo repository.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

// Log records an audit entry. The payload is serialized into the changes column.
func (s *AuditService) Log(ctx context.Context, actorID *uint, action, entity string, entityID uint, payload any, ip, userAgent string) error {
	entry := &models.AuditLog{
		UserID:    actorID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Changes:   models.MarshalChanges(payload),
		IPAddress: ip,
		UserAgent: userAgent,
	}
	return s.repo.Create(ctx, entry)
}

// List retrieves audit entries with filters
func (s *AuditService) List(ctx context.Context, query *repository.ListQuery) ([]models.AuditLog, int64, error) {
	return s.repo.List(ctx, query)
}

// ForEntity retrieves the full audit trail of one record, oldest first
func (s *AuditService) ForEntity(ctx context.Context, entity string, entityID uint) ([]models.AuditLog, error) {
	return s.repo.FindByEntity(ctx, entity, entityID)
}
