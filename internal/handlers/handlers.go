package handlers

import (
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/services"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/storage"
)

// Handlers holds all handler instances
type Handlers struct {
	Health       *HealthHandler
	Auth         *AuthHandler
	User         *UserHandler
	Beneficiary  *BeneficiaryHandler
	Application  *ApplicationHandler
	Document     *DocumentHandler
	Notification *NotificationHandler
	Report       *ReportHandler
	Audit        *AuditHandler
	Job          *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, storage *storage.LocalStorage) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(),
		Auth:         NewAuthHandler(svcs.Auth, svcs.User),
		User:         NewUserHandler(svcs.User),
		Beneficiary:  NewBeneficiaryHandler(svcs.Beneficiary),
		Application:  NewApplicationHandler(svcs.Application, svcs.Certificate),
		Document:     NewDocumentHandler(svcs.Document, storage),
		Notification: NewNotificationHandler(svcs.Notification),
		Report:       NewReportHandler(svcs.Report, svcs.Export),
		Audit:        NewAuditHandler(svcs.Audit),
		Job:          NewJobHandler(svcs.Job),
	}
}
