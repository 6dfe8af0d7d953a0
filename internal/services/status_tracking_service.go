package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/repository"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/statemachine"
)

// Actor identifies who is performing an administrative action, with request
// metadata carried through to the audit trail.
type Actor struct {
	UserID    *uint
	IPAddress string
	UserAgent string
}

// StatusHistoryEntry is one step in an application's lifecycle
type StatusHistoryEntry struct {
	Status    string    `json:"status"`
	Remarks   string    `json:"remarks,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StatusTrackingService enforces the application lifecycle state machine.
// Every successful transition writes the new status and exactly one audit
// row in the same transaction: both or neither.
type StatusTrackingService struct {
	appRepo   repository.ApplicationRepository
	auditRepo repository.AuditRepository
}

// NewStatusTrackingService creates a new status tracking service
func NewStatusTrackingService(appRepo repository.ApplicationRepository, auditRepo repository.AuditRepository) *StatusTrackingService {
	return &StatusTrackingService{
		appRepo:   appRepo,
		auditRepo: auditRepo,
	}
}

// UpdateStatus moves an application to newStatus if the edge is legal.
// The write is guarded on the status read at validation time: if a
// concurrent request transitioned the application in between, nothing is
// written and ErrConcurrentUpdate is returned instead of silently
// overwriting the transition that raced ahead.
func (s *StatusTrackingService) UpdateStatus(ctx context.Context, applicationID uint, newStatus, remarks string, actor Actor) (*models.BeneficiaryApplication, error) {
	application, err := s.appRepo.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	statusFrom := application.ApplicationStatus

	machine := statemachine.NewApplicationFSM(application)
	if !machine.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, statusFrom, newStatus)
	}
	if err := machine.TransitionTo(ctx, newStatus); err != nil {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, statusFrom, newStatus)
	}

	now := time.Now()
	updates := map[string]any{
		"application_status": newStatus,
		"updated_at":         now,
	}
	if remarks != "" {
		application.Remarks = &remarks
		updates["remarks"] = remarks
	}

	// review metadata is last-reviewer-wins: re-entering under_review
	// restamps it
	if newStatus == models.ApplicationStatusUnderReview {
		application.ReviewedAt = &now
		application.ReviewedBy = actor.UserID
		updates["reviewed_at"] = now
		updates["reviewed_by"] = actor.UserID
	}
	if newStatus == models.ApplicationStatusApproved {
		application.ApprovedAt = &now
		application.ApprovedBy = actor.UserID
		updates["approved_at"] = now
		updates["approved_by"] = actor.UserID
	}

	entry := &models.AuditLog{
		UserID:   actor.UserID,
		Action:   models.AuditActionStatusUpdated,
		Entity:   models.AuditEntityApplication,
		EntityID: application.ID,
		Changes: models.MarshalChanges(models.StatusChange{
			StatusFrom: statusFrom,
			StatusTo:   newStatus,
			Remarks:    remarks,
		}),
		IPAddress: actor.IPAddress,
		UserAgent: actor.UserAgent,
	}

	if err := s.appRepo.UpdateStatusGuarded(ctx, application.ID, statusFrom, updates, entry); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, ErrConcurrentUpdate
		}
		return nil, err
	}

	return application, nil
}

// GetStatusHistory reconstructs the chronological status history from the
// audit trail, prefixed with the initial submitted entry derived from
// submitted_at.
func (s *StatusTrackingService) GetStatusHistory(ctx context.Context, applicationID uint) ([]StatusHistoryEntry, error) {
	application, err := s.appRepo.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	entries, err := s.auditRepo.FindStatusHistory(ctx, models.AuditEntityApplication, application.ID)
	if err != nil {
		return nil, err
	}

	history := []StatusHistoryEntry{
		{
			Status:    models.ApplicationStatusSubmitted,
			UpdatedAt: application.SubmittedAt,
		},
	}
	for _, entry := range entries {
		change, ok := entry.StatusChangePayload()
		if !ok {
			continue
		}
		history = append(history, StatusHistoryEntry{
			Status:    change.StatusTo,
			Remarks:   change.Remarks,
			UpdatedAt: entry.CreatedAt,
		})
	}

	return history, nil
}
