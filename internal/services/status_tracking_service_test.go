package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/repository"
)

func trackedApplication(status string) *models.BeneficiaryApplication {
	return &models.BeneficiaryApplication{
		ID:                10,
		BeneficiaryID:     1,
		ApplicationNumber: "APP-2026-000010",
		HousingProgram:    models.ProgramSocializedHousing,
		ApplicationStatus: status,
		SubmittedAt:       time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
	}
}

func staffActor() Actor {
	return Actor{
		UserID:    uintPtr(42),
		IPAddress: "10.0.0.5",
		UserAgent: "test-agent",
	}
}

func TestLegalTransitionWritesStatusAndAudit(t *testing.T) {
	var gotUpdates map[string]any
	var gotEntry *models.AuditLog
	var gotStatusFrom string

	appRepo := &mockApplicationRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.BeneficiaryApplication, error) {
			return trackedApplication(models.ApplicationStatusSubmitted), nil
		},
		mockUpdateStatusGuarded: func(ctx context.Context, applicationID uint, statusFrom string, updates map[string]any, entry *models.AuditLog) error {
			gotStatusFrom = statusFrom
			gotUpdates = updates
			gotEntry = entry
			return nil
		},
	}
	svc := NewStatusTrackingService(appRepo, &mockAuditRepository{})

	updated, err := svc.UpdateStatus(context.Background(), 10, models.ApplicationStatusUnderReview, "assigned to reviewer", staffActor())
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusSubmitted, gotStatusFrom)
	assert.Equal(t, models.ApplicationStatusUnderReview, gotUpdates["application_status"])
	assert.Equal(t, "assigned to reviewer", gotUpdates["remarks"])

	// review metadata is stamped on entering under_review
	assert.NotNil(t, gotUpdates["reviewed_at"])
	assert.Equal(t, uintPtr(42), gotUpdates["reviewed_by"])
	require.NotNil(t, updated.ReviewedBy)
	assert.Equal(t, uint(42), *updated.ReviewedBy)

	require.NotNil(t, gotEntry)
	assert.Equal(t, models.AuditActionStatusUpdated, gotEntry.Action)
	assert.Equal(t, models.AuditEntityApplication, gotEntry.Entity)
	assert.Equal(t, uint(10), gotEntry.EntityID)
	assert.Equal(t, "10.0.0.5", gotEntry.IPAddress)

	change, ok := gotEntry.StatusChangePayload()
	require.True(t, ok)
	assert.Equal(t, models.ApplicationStatusSubmitted, change.StatusFrom)
	assert.Equal(t, models.ApplicationStatusUnderReview, change.StatusTo)
	assert.Equal(t, "assigned to reviewer", change.Remarks)
}

func TestSkippingStatesIsRejected(t *testing.T) {
	guardCalled := false
	appRepo := &mockApplicationRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.BeneficiaryApplication, error) {
			return trackedApplication(models.ApplicationStatusSubmitted), nil
		},
		mockUpdateStatusGuarded: func(ctx context.Context, applicationID uint, statusFrom string, updates map[string]any, entry *models.AuditLog) error {
			guardCalled = true
			return nil
		},
	}
	svc := NewStatusTrackingService(appRepo, &mockAuditRepository{})

	_, err := svc.UpdateStatus(context.Background(), 10, models.ApplicationStatusAllocated, "", staffActor())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.False(t, guardCalled, "nothing may be written when the edge is illegal")
}

func TestTerminalStatesRejectEveryTransition(t *testing.T) {
	terminals := []string{
		models.ApplicationStatusNotEligible,
		models.ApplicationStatusAllocated,
		models.ApplicationStatusCancelled,
		models.ApplicationStatusRejected,
	}
	targets := []string{
		models.ApplicationStatusUnderReview,
		models.ApplicationStatusEligible,
		models.ApplicationStatusApproved,
		models.ApplicationStatusCancelled,
	}
	for _, terminal := range terminals {
		appRepo := &mockApplicationRepository{
			mockFindByID: func(ctx context.Context, id uint) (*models.BeneficiaryApplication, error) {
				return trackedApplication(terminal), nil
			},
		}
		svc := NewStatusTrackingService(appRepo, &mockAuditRepository{})
		for _, target := range targets {
			if target == terminal {
				continue
			}
			_, err := svc.UpdateStatus(context.Background(), 10, target, "", staffActor())
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s must be rejected", terminal, target)
		}
	}
}

func TestApprovalStampsApproverMetadata(t *testing.T) {
	var gotUpdates map[string]any
	appRepo := &mockApplicationRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.BeneficiaryApplication, error) {
			return trackedApplication(models.ApplicationStatusEligible), nil
		},
		mockUpdateStatusGuarded: func(ctx context.Context, applicationID uint, statusFrom string, updates map[string]any, entry *models.AuditLog) error {
			gotUpdates = updates
			return nil
		},
	}
	svc := NewStatusTrackingService(appRepo, &mockAuditRepository{})

	updated, err := svc.UpdateStatus(context.Background(), 10, models.ApplicationStatusApproved, "", staffActor())
	require.NoError(t, err)
	assert.NotNil(t, gotUpdates["approved_at"])
	assert.Equal(t, uintPtr(42), gotUpdates["approved_by"])
	require.NotNil(t, updated.ApprovedAt)

	// no remarks key when the caller gave none
	_, hasRemarks := gotUpdates["remarks"]
	assert.False(t, hasRemarks)
}

func TestConcurrentTransitionSurfacesAsConflict(t *testing.T) {
	appRepo := &mockApplicationRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.BeneficiaryApplication, error) {
			return trackedApplication(models.ApplicationStatusSubmitted), nil
		},
		mockUpdateStatusGuarded: func(ctx context.Context, applicationID uint, statusFrom string, updates map[string]any, entry *models.AuditLog) error {
			return repository.ErrStaleStatus
		},
	}
	svc := NewStatusTrackingService(appRepo, &mockAuditRepository{})

	_, err := svc.UpdateStatus(context.Background(), 10, models.ApplicationStatusUnderReview, "", staffActor())
	assert.ErrorIs(t, err, ErrConcurrentUpdate)
}

func TestStatusHistoryStartsAtSubmission(t *testing.T) {
	appRepo := &mockApplicationRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.BeneficiaryApplication, error) {
			return trackedApplication(models.ApplicationStatusEligible), nil
		},
	}
	auditRepo := &mockAuditRepository{
		mockFindStatusHistory: func(ctx context.Context, entity string, entityID uint) ([]models.AuditLog, error) {
			assert.Equal(t, models.AuditEntityApplication, entity)
			assert.Equal(t, uint(10), entityID)
			return []models.AuditLog{
				{
					Action:    models.AuditActionStatusUpdated,
					CreatedAt: time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC),
					Changes: models.MarshalChanges(models.StatusChange{
						StatusFrom: models.ApplicationStatusSubmitted,
						StatusTo:   models.ApplicationStatusUnderReview,
						Remarks:    "assigned",
					}),
				},
				{
					Action:    models.AuditActionStatusUpdated,
					CreatedAt: time.Date(2026, 1, 8, 14, 0, 0, 0, time.UTC),
					Changes: models.MarshalChanges(models.StatusChange{
						StatusFrom: models.ApplicationStatusUnderReview,
						StatusTo:   models.ApplicationStatusEligible,
					}),
				},
			}, nil
		},
	}
	svc := NewStatusTrackingService(appRepo, auditRepo)

	history, err := svc.GetStatusHistory(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, history, 3)

	assert.Equal(t, models.ApplicationStatusSubmitted, history[0].Status)
	assert.Equal(t, time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC), history[0].UpdatedAt)

	assert.Equal(t, models.ApplicationStatusUnderReview, history[1].Status)
	assert.Equal(t, "assigned", history[1].Remarks)
	assert.Equal(t, models.ApplicationStatusEligible, history[2].Status)
}

func TestStatusHistorySkipsMalformedEntries(t *testing.T) {
	appRepo := &mockApplicationRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.BeneficiaryApplication, error) {
			return trackedApplication(models.ApplicationStatusUnderReview), nil
		},
	}
	auditRepo := &mockAuditRepository{
		mockFindStatusHistory: func(ctx context.Context, entity string, entityID uint) ([]models.AuditLog, error) {
			return []models.AuditLog{
				{Action: models.AuditActionStatusUpdated, Changes: "not-json"},
				{
					Action: models.AuditActionStatusUpdated,
					Changes: models.MarshalChanges(models.StatusChange{
						StatusFrom: models.ApplicationStatusSubmitted,
						StatusTo:   models.ApplicationStatusUnderReview,
					}),
				},
			}, nil
		},
	}
	svc := NewStatusTrackingService(appRepo, auditRepo)

	history, err := svc.GetStatusHistory(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.ApplicationStatusUnderReview, history[1].Status)
}
