package services

import (
	"context"
	"fmt"
	"time"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/jobs"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/repository"
)

// ApplicationService orchestrates the application lifecycle: intake,
// validation, eligibility evaluation and status transitions.
type ApplicationService struct {
	repo            repository.ApplicationRepository
	beneficiaryRepo repository.BeneficiaryRepository
	documentRepo    repository.DocumentRepository
	userRepo        repository.UserRepository
	validationSvc   *ApplicationValidationService
	eligibilitySvc  *EligibilityService
	statusSvc       *StatusTrackingService
	notificationSvc *NotificationService
	emailSvc        *EmailService
	auditSvc        *AuditService
	worker          *jobs.Worker
}

func NewApplicationService(
	repo repository.ApplicationRepository,
	beneficiaryRepo repository.BeneficiaryRepository,
	documentRepo repository.DocumentRepository,
	userRepo repository.UserRepository,
	validationSvc *ApplicationValidationService,
	eligibilitySvc *EligibilityService,
	statusSvc *StatusTrackingService,
	notificationSvc *NotificationService,
	emailSvc *EmailService,
	auditSvc *AuditService,
	worker *jobs.Worker,
) *ApplicationService {
	return &ApplicationService{
		repo:            repo,
		beneficiaryRepo: beneficiaryRepo,
		documentRepo:    documentRepo,
		userRepo:        userRepo,
		validationSvc:   validationSvc,
		eligibilitySvc:  eligibilitySvc,
		statusSvc:       statusSvc,
		notificationSvc: notificationSvc,
		emailSvc:        emailSvc,
		auditSvc:        auditSvc,
		worker:          worker,
	}
}

func (s *ApplicationService) FindByID(ctx context.Context, id uint) (*models.BeneficiaryApplication, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ApplicationService) FindByIDWithDetails(ctx context.Context, id uint) (*models.BeneficiaryApplication, error) {
	return s.repo.FindByIDWithDetails(ctx, id)
}

func (s *ApplicationService) FindByBeneficiary(ctx context.Context, beneficiaryID uint) ([]models.BeneficiaryApplication, error) {
	return s.repo.FindByBeneficiary(ctx, beneficiaryID)
}

func (s *ApplicationService) List(ctx context.Context, query *repository.ApplicationQuery) ([]models.BeneficiaryApplication, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *ApplicationService) GetStats(ctx context.Context) (*repository.ApplicationStats, error) {
	return s.repo.GetStats(ctx)
}

// Submit files a new application for a beneficiary. The program must be one
// of the configured housing programs; the application starts at submitted
// with eligibility pending.
func (s *ApplicationService) Submit(ctx context.Context, beneficiaryID uint, program string, actorID *uint) (*models.BeneficiaryApplication, error) {
	if !models.IsValidProgram(program) {
		return nil, fmt.Errorf("unknown housing program: %s", program)
	}

	beneficiary, err := s.beneficiaryRepo.FindByIDWithHousehold(ctx, beneficiaryID)
	if err != nil {
		return nil, err
	}

	application := &models.BeneficiaryApplication{
		BeneficiaryID:     beneficiaryID,
		HousingProgram:    program,
		ApplicationStatus: models.ApplicationStatusSubmitted,
		EligibilityStatus: models.EligibilityStatusPending,
		PriorityWeight:    1.0,
		SubmittedAt:       time.Now(),
	}
	if err := s.repo.Create(ctx, application); err != nil {
		return nil, err
	}

	// application number derives from the generated ID
	application.ApplicationNumber = fmt.Sprintf("APP-%d-%06d", application.SubmittedAt.Year(), application.ID)
	if err := s.repo.Update(ctx, application); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, models.AuditActionCreated, models.AuditEntityApplication, application.ID,
		map[string]string{"application_number": application.ApplicationNumber, "program": program}, "", "")

	s.worker.EnqueueAsync(func(ctx context.Context) error {
		return s.notificationSvc.NotifyStaff(ctx,
			"New housing application",
			fmt.Sprintf("Application %s was submitted for %s", application.ApplicationNumber, program),
			models.NotificationTypeApplicationSubmitted)
	})
	s.worker.EnqueueAsync(func(ctx context.Context) error {
		user, err := s.userRepo.FindByID(ctx, beneficiary.UserID)
		if err != nil {
			return err
		}
		return s.emailSvc.SendApplicationSubmitted(ctx, user, application)
	})

	return application, nil
}

// Validate runs the readiness check for one application
func (s *ApplicationService) Validate(ctx context.Context, applicationID uint) (*ValidationResult, error) {
	application, err := s.repo.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	beneficiary, err := s.beneficiaryRepo.FindByIDWithHousehold(ctx, application.BeneficiaryID)
	if err != nil {
		return nil, err
	}
	documents, err := s.documentRepo.FindByApplication(ctx, application.ID)
	if err != nil {
		return nil, err
	}
	return s.validationSvc.Validate(ctx, beneficiary, application, documents)
}

// EvaluateEligibility runs the criteria evaluation and persists its outcome
// onto the application. The lifecycle status is untouched: acting on the
// determination is a separate, explicit staff transition.
func (s *ApplicationService) EvaluateEligibility(ctx context.Context, applicationID uint, actorID *uint) (*EligibilityResult, error) {
	application, err := s.repo.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	beneficiary, err := s.beneficiaryRepo.FindByIDWithHousehold(ctx, application.BeneficiaryID)
	if err != nil {
		return nil, err
	}
	documents, err := s.documentRepo.FindByApplication(ctx, application.ID)
	if err != nil {
		return nil, err
	}

	result, err := s.eligibilitySvc.Evaluate(beneficiary, application, documents)
	if err != nil {
		return nil, err
	}

	application.EligibilityStatus = result.Determination
	application.PriorityWeight = result.PriorityWeight
	if err := s.repo.Update(ctx, application); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, models.AuditActionUpdated, models.AuditEntityApplication, application.ID,
		map[string]any{"eligibility_status": result.Determination, "failed_criteria": result.FailedCriteria}, "", "")

	return result, nil
}

// UpdateStatus transitions the application and notifies the applicant
func (s *ApplicationService) UpdateStatus(ctx context.Context, applicationID uint, newStatus, remarks string, actor Actor) (*models.BeneficiaryApplication, error) {
	application, err := s.statusSvc.UpdateStatus(ctx, applicationID, newStatus, remarks, actor)
	if err != nil {
		return nil, err
	}

	s.worker.EnqueueAsync(func(ctx context.Context) error {
		return s.notifyApplicant(ctx, application, remarks)
	})

	return application, nil
}

// Approve moves an eligible or waitlisted application to approved
func (s *ApplicationService) Approve(ctx context.Context, applicationID uint, remarks string, actor Actor) (*models.BeneficiaryApplication, error) {
	return s.UpdateStatus(ctx, applicationID, models.ApplicationStatusApproved, remarks, actor)
}

// MarkNotEligible closes an application as not eligible
func (s *ApplicationService) MarkNotEligible(ctx context.Context, applicationID uint, remarks string, actor Actor) (*models.BeneficiaryApplication, error) {
	return s.UpdateStatus(ctx, applicationID, models.ApplicationStatusNotEligible, remarks, actor)
}

// Waitlist parks an eligible application until a unit opens up
func (s *ApplicationService) Waitlist(ctx context.Context, applicationID uint, remarks string, actor Actor) (*models.BeneficiaryApplication, error) {
	return s.UpdateStatus(ctx, applicationID, models.ApplicationStatusWaitlisted, remarks, actor)
}

// Allocate records the housing unit award for an approved application
func (s *ApplicationService) Allocate(ctx context.Context, applicationID uint, remarks string, actor Actor) (*models.BeneficiaryApplication, error) {
	return s.UpdateStatus(ctx, applicationID, models.ApplicationStatusAllocated, remarks, actor)
}

// Cancel withdraws an application from any non-terminal state
func (s *ApplicationService) Cancel(ctx context.Context, applicationID uint, remarks string, actor Actor) (*models.BeneficiaryApplication, error) {
	return s.UpdateStatus(ctx, applicationID, models.ApplicationStatusCancelled, remarks, actor)
}

// GetStatusHistory returns the chronological lifecycle of an application
func (s *ApplicationService) GetStatusHistory(ctx context.Context, applicationID uint) ([]StatusHistoryEntry, error) {
	return s.statusSvc.GetStatusHistory(ctx, applicationID)
}

// GetWaitlist returns waitlisted applications for a program ranked by
// priority weight, oldest submission first within equal weight
func (s *ApplicationService) GetWaitlist(ctx context.Context, program string) ([]models.BeneficiaryApplication, error) {
	if program != "" && !models.IsValidProgram(program) {
		return nil, fmt.Errorf("unknown housing program: %s", program)
	}
	return s.repo.FindWaitlisted(ctx, program)
}

// RemindStaleReviews nudges staff about applications sitting in
// under_review for more than a week. Runs as a scheduled job.
func (s *ApplicationService) RemindStaleReviews(ctx context.Context) error {
	applications, err := s.repo.FindByStatus(ctx, models.ApplicationStatusUnderReview)
	if err != nil {
		return err
	}

	cutoff := time.Now().Add(-7 * 24 * time.Hour)
	stale := 0
	for _, app := range applications {
		if app.ReviewedAt != nil && app.ReviewedAt.Before(cutoff) {
			stale++
		}
	}

	if stale > 0 {
		return s.notificationSvc.NotifyStaff(ctx,
			"Applications awaiting review",
			fmt.Sprintf("%d applications have been under review for more than 7 days", stale),
			models.NotificationTypeStatusChanged)
	}
	return nil
}

func (s *ApplicationService) notifyApplicant(ctx context.Context, application *models.BeneficiaryApplication, remarks string) error {
	beneficiary, err := s.beneficiaryRepo.FindByID(ctx, application.BeneficiaryID)
	if err != nil {
		return err
	}
	user, err := s.userRepo.FindByID(ctx, beneficiary.UserID)
	if err != nil {
		return err
	}

	notifType := models.NotificationTypeStatusChanged
	switch application.ApplicationStatus {
	case models.ApplicationStatusApproved:
		notifType = models.NotificationTypeApplicationApproved
	case models.ApplicationStatusNotEligible, models.ApplicationStatusRejected:
		notifType = models.NotificationTypeApplicationRejected
	case models.ApplicationStatusSiteVisitScheduled:
		notifType = models.NotificationTypeSiteVisitScheduled
	}

	if err := s.notificationSvc.NotifyUser(ctx, user.ID,
		fmt.Sprintf("Application %s updated", application.ApplicationNumber),
		fmt.Sprintf("Your application is now %s", application.ApplicationStatus),
		notifType); err != nil {
		return err
	}

	return s.emailSvc.SendStatusChanged(ctx, user, application, remarks)
}
