package services

import (
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/config"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/jobs"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/repository"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/rules"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/storage"
)

// Services holds all service instances
type Services struct {
	Auth         *AuthService
	User         *UserService
	Beneficiary  *BeneficiaryService
	Application  *ApplicationService
	Document     *DocumentService
	Duplicate    *DuplicateCheckService
	Eligibility  *EligibilityService
	Validation   *ApplicationValidationService
	Status       *StatusTrackingService
	Notification *NotificationService
	Email        *EmailService
	Audit        *AuditService
	Certificate  *CertificateService
	Report       *ReportService
	Export       *ExportService
	Job          *JobService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, ruleTable *rules.Table, worker *jobs.Worker, store *storage.LocalStorage, cfg *config.Config) *Services {
	auditSvc := NewAuditService(repos.Audit)
	emailSvc := NewEmailService(cfg)
	notificationSvc := NewNotificationService(repos.Notification, repos.User)

	duplicateSvc := NewDuplicateCheckService(repos.Beneficiary, ruleTable)
	eligibilitySvc := NewEligibilityService(ruleTable)
	validationSvc := NewApplicationValidationService(ruleTable, eligibilitySvc, duplicateSvc)
	statusSvc := NewStatusTrackingService(repos.Application, repos.Audit)

	applicationSvc := NewApplicationService(
		repos.Application,
		repos.Beneficiary,
		repos.Document,
		repos.User,
		validationSvc,
		eligibilitySvc,
		statusSvc,
		notificationSvc,
		emailSvc,
		auditSvc,
		worker,
	)

	return &Services{
		Auth:         NewAuthService(repos.User, repos.RefreshToken, cfg),
		User:         NewUserService(repos.User, worker, emailSvc, auditSvc),
		Beneficiary:  NewBeneficiaryService(repos.Beneficiary, duplicateSvc, notificationSvc, auditSvc),
		Application:  applicationSvc,
		Document:     NewDocumentService(repos.Document, repos.Application, store, auditSvc),
		Duplicate:    duplicateSvc,
		Eligibility:  eligibilitySvc,
		Validation:   validationSvc,
		Status:       statusSvc,
		Notification: notificationSvc,
		Email:        emailSvc,
		Audit:        auditSvc,
		Certificate:  NewCertificateService(repos.Application),
		Report:       NewReportService(repos.Application, repos.Beneficiary, statusSvc),
		Export:       NewExportService(repos.Beneficiary, repos.Application),
		Job:          NewJobService(worker),
	}
}
