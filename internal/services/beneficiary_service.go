package services

import (
	"context"
	"fmt"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/repository"
)

// BeneficiaryService manages beneficiary profiles and their households
type BeneficiaryService struct {
	repo            repository.BeneficiaryRepository
	duplicateSvc    *DuplicateCheckService
	notificationSvc *NotificationService
	auditSvc        *AuditService
}

func NewBeneficiaryService(repo repository.BeneficiaryRepository, duplicateSvc *DuplicateCheckService, notificationSvc *NotificationService, auditSvc *AuditService) *BeneficiaryService {
	return &BeneficiaryService{
		repo:            repo,
		duplicateSvc:    duplicateSvc,
		notificationSvc: notificationSvc,
		auditSvc:        auditSvc,
	}
}

func (s *BeneficiaryService) FindByID(ctx context.Context, id uint) (*models.Beneficiary, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BeneficiaryService) FindByIDWithHousehold(ctx context.Context, id uint) (*models.Beneficiary, error) {
	return s.repo.FindByIDWithHousehold(ctx, id)
}

func (s *BeneficiaryService) FindByUser(ctx context.Context, userID uint) ([]models.Beneficiary, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *BeneficiaryService) List(ctx context.Context, query *repository.ListQuery) ([]models.Beneficiary, int64, error) {
	return s.repo.List(ctx, query)
}

// Create registers a beneficiary profile and returns any duplicate warnings
// found against existing records. Duplicates warn, they do not block:
// resolution is a staff decision during review.
func (s *BeneficiaryService) Create(ctx context.Context, beneficiary *models.Beneficiary, actorID *uint) (*DuplicateCheckResult, error) {
	if err := s.repo.Create(ctx, beneficiary); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, models.AuditActionCreated, models.AuditEntityBeneficiary, beneficiary.ID,
		map[string]string{"full_name": beneficiary.FullName(), "barangay": beneficiary.Barangay}, "", "")

	duplicates, err := s.duplicateSvc.CheckForDuplicates(ctx, beneficiary)
	if err != nil {
		return nil, err
	}
	return duplicates, nil
}

func (s *BeneficiaryService) Update(ctx context.Context, beneficiary *models.Beneficiary, actorID *uint) error {
	if err := s.repo.Update(ctx, beneficiary); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, models.AuditActionUpdated, models.AuditEntityBeneficiary, beneficiary.ID,
		map[string]string{"full_name": beneficiary.FullName()}, "", "")
}

// Archive soft-retires a beneficiary record. Archived records drop out of
// listings and duplicate scans but their rows and audit trail remain.
func (s *BeneficiaryService) Archive(ctx context.Context, id uint, actorID *uint) error {
	if err := s.repo.Archive(ctx, id); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, models.AuditActionArchived, models.AuditEntityBeneficiary, id, nil, "", "")
}

// CheckDuplicates runs an on-demand duplicate scan for one beneficiary
func (s *BeneficiaryService) CheckDuplicates(ctx context.Context, id uint) (*DuplicateCheckResult, error) {
	beneficiary, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.duplicateSvc.CheckForDuplicates(ctx, beneficiary)
}

// SweepDuplicates rescans every active beneficiary for potential duplicates
// and flags staff when any are found. Runs as a scheduled job so records
// edited after intake still get caught.
func (s *BeneficiaryService) SweepDuplicates(ctx context.Context) error {
	query := repository.NewListQuery()
	query.PerPage = -1
	beneficiaries, _, err := s.repo.List(ctx, query)
	if err != nil {
		return err
	}

	flagged := 0
	for i := range beneficiaries {
		result, err := s.duplicateSvc.CheckForDuplicates(ctx, &beneficiaries[i])
		if err != nil {
			return err
		}
		if result.HasDuplicates {
			flagged++
		}
	}

	if flagged > 0 {
		return s.notificationSvc.NotifyStaff(ctx,
			"Duplicate sweep results",
			fmt.Sprintf("%d beneficiary records have potential duplicates pending review", flagged),
			models.NotificationTypeDuplicateFlagged)
	}
	return nil
}

func (s *BeneficiaryService) AddHouseholdMember(ctx context.Context, member *models.HouseholdMember) error {
	return s.repo.AddHouseholdMember(ctx, member)
}

func (s *BeneficiaryService) UpdateHouseholdMember(ctx context.Context, member *models.HouseholdMember) error {
	return s.repo.UpdateHouseholdMember(ctx, member)
}

func (s *BeneficiaryService) RemoveHouseholdMember(ctx context.Context, id uint) error {
	return s.repo.RemoveHouseholdMember(ctx, id)
}

func (s *BeneficiaryService) FindHouseholdMembers(ctx context.Context, beneficiaryID uint) ([]models.HouseholdMember, error) {
	return s.repo.FindHouseholdMembers(ctx, beneficiaryID)
}
