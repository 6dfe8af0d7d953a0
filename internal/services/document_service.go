package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/repository"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/storage"
)

// DocumentService handles document upload and staff verification
type DocumentService struct {
	repo     repository.DocumentRepository
	appRepo  repository.ApplicationRepository
	storage  *storage.LocalStorage
	auditSvc *AuditService
}

func NewDocumentService(repo repository.DocumentRepository, appRepo repository.ApplicationRepository, store *storage.LocalStorage, auditSvc *AuditService) *DocumentService {
	return &DocumentService{
		repo:     repo,
		appRepo:  appRepo,
		storage:  store,
		auditSvc: auditSvc,
	}
}

func (s *DocumentService) FindByID(ctx context.Context, id uint) (*models.Document, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *DocumentService) FindByApplication(ctx context.Context, applicationID uint) ([]models.Document, error) {
	return s.repo.FindByApplication(ctx, applicationID)
}

func (s *DocumentService) FindPendingVerification(ctx context.Context, query *repository.ListQuery) ([]models.Document, int64, error) {
	return s.repo.FindPendingVerification(ctx, query)
}

// Upload stores a new document for an application. Re-uploading a type is
// allowed; the newest upload supersedes older ones and starts back at
// pending verification.
func (s *DocumentService) Upload(ctx context.Context, applicationID uint, documentType string, file multipart.File, header *multipart.FileHeader, uploadedBy uint) (*models.Document, error) {
	application, err := s.appRepo.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if models.IsTerminalStatus(application.ApplicationStatus) {
		return nil, fmt.Errorf("application %s is closed", application.ApplicationNumber)
	}

	if header.Size > storage.MaxFileSize() {
		return nil, fmt.Errorf("file exceeds the %d byte limit", storage.MaxFileSize())
	}
	contentType := header.Header.Get("Content-Type")
	if !storage.IsValidContentType(contentType) {
		return nil, fmt.Errorf("unsupported content type: %s", contentType)
	}

	path, err := s.storage.Upload(file, header, "documents")
	if err != nil {
		return nil, err
	}

	document := &models.Document{
		ApplicationID:      applicationID,
		DocumentType:       documentType,
		VerificationStatus: models.VerificationStatusPending,
		FilePath:           path,
		OriginalFilename:   header.Filename,
		UploadedBy:         uploadedBy,
	}
	if err := s.repo.Create(ctx, document); err != nil {
		s.storage.Delete(path)
		return nil, err
	}

	return document, nil
}

// Verify marks a document as verified by staff
func (s *DocumentService) Verify(ctx context.Context, id uint, verifierID uint) (*models.Document, error) {
	document, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	document.VerificationStatus = models.VerificationStatusVerified
	document.VerifiedBy = &verifierID
	now := time.Now()
	document.VerifiedAt = &now
	document.RejectionReason = nil

	if err := s.repo.Update(ctx, document); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, &verifierID, models.AuditActionDocumentVerified, models.AuditEntityDocument, document.ID,
		map[string]string{"document_type": document.DocumentType}, "", "")
	return document, nil
}

// Reject marks a document as invalid with a reason
func (s *DocumentService) Reject(ctx context.Context, id uint, verifierID uint, reason string) (*models.Document, error) {
	document, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	document.VerificationStatus = models.VerificationStatusInvalid
	document.VerifiedBy = &verifierID
	now := time.Now()
	document.VerifiedAt = &now
	document.RejectionReason = &reason

	if err := s.repo.Update(ctx, document); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, &verifierID, models.AuditActionDocumentRejected, models.AuditEntityDocument, document.ID,
		map[string]string{"document_type": document.DocumentType, "reason": reason}, "", "")
	return document, nil
}

// Download resolves the absolute storage path of a document
func (s *DocumentService) Download(ctx context.Context, id uint) (string, string, error) {
	document, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", "", err
	}
	if !s.storage.Exists(document.FilePath) {
		return "", "", ErrNotFound
	}
	return s.storage.GetFullPath(document.FilePath), document.OriginalFilename, nil
}
