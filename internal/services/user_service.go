package services

import (
	"context"
	"strings"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/jobs"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/repository"
)

// UserService handles account management for staff and applicants
type UserService struct {
	repo         repository.UserRepository
	worker       *jobs.Worker
	emailService *EmailService
	auditSvc     *AuditService
}

func NewUserService(repo repository.UserRepository, worker *jobs.Worker, emailService *EmailService, auditSvc *AuditService) *UserService {
	return &UserService{
		repo:         repo,
		worker:       worker,
		emailService: emailService,
		auditSvc:     auditSvc,
	}
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *UserService) List(ctx context.Context, query *repository.ListQuery) ([]models.User, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *UserService) Create(ctx context.Context, user *models.User, password string, actorID *uint) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}
	user.EncryptedPassword = hashedPassword
	user.CreatedBy = actorID

	if err := s.repo.Create(ctx, user); err != nil {
		return err
	}

	// welcome email is best-effort
	s.worker.EnqueueAsync(func(ctx context.Context) error {
		return s.emailService.SendAccountCreated(ctx, user)
	})

	return s.auditSvc.Log(ctx, actorID, models.AuditActionCreated, models.AuditEntityUser, user.ID,
		map[string]string{"email": user.Email, "role": user.Role}, "", "")
}

func (s *UserService) Update(ctx context.Context, user *models.User, actorID *uint) error {
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, models.AuditActionUpdated, models.AuditEntityUser, user.ID,
		map[string]string{"email": user.Email}, "", "")
}

func (s *UserService) Delete(ctx context.Context, id uint, actorID *uint) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, models.AuditActionArchived, models.AuditEntityUser, id, nil, "", "")
}

func (s *UserService) Restore(ctx context.Context, id uint, actorID *uint) error {
	if err := s.repo.Restore(ctx, id); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, models.AuditActionUpdated, models.AuditEntityUser, id,
		map[string]string{"restored": "true"}, "", "")
}

func (s *UserService) ToggleStatus(ctx context.Context, id uint, actorID *uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Status == models.StatusActive {
		user.Status = models.StatusInactive
	} else {
		user.Status = models.StatusActive
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.auditSvc.Log(ctx, actorID, models.AuditActionUpdated, models.AuditEntityUser, id,
		map[string]string{"status": user.Status}, "", "")
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !VerifyPassword(currentPassword, user.EncryptedPassword) {
		return ErrInvalidPassword
	}
	hashedPassword, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.EncryptedPassword = hashedPassword
	return s.repo.Update(ctx, user)
}
