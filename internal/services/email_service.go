package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/config"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/pkg/logger"
)

// EmailService sends transactional email through Resend
type EmailService struct {
	config       *config.Config
	resendClient *resend.Client
}

func NewEmailService(cfg *config.Config) *EmailService {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &EmailService{
		config:       cfg,
		resendClient: client,
	}
}

var emailTemplates = template.Must(template.New("email").Parse(`
{{define "recovery_code"}}
<p>Hello {{.Name}},</p>
<p>Your password recovery code is <strong>{{.Code}}</strong>.</p>
<p>The code expires in {{.Minutes}} minutes. If you did not request it, ignore this message.</p>
{{end}}

{{define "account_created"}}
<p>Hello {{.Name}},</p>
<p>An account has been created for you on the municipal housing beneficiary portal.</p>
<p>Sign in with your email address to track your housing applications.</p>
{{end}}

{{define "application_submitted"}}
<p>Hello {{.Name}},</p>
<p>Your application <strong>{{.ApplicationNumber}}</strong> for the {{.Program}} program was received on {{.SubmittedAt}}.</p>
<p>You will be notified as it moves through review.</p>
{{end}}

{{define "status_changed"}}
<p>Hello {{.Name}},</p>
<p>Your application <strong>{{.ApplicationNumber}}</strong> is now <strong>{{.Status}}</strong>.</p>
{{if .Remarks}}<p>Remarks: {{.Remarks}}</p>{{end}}
{{end}}
`))

func (s *EmailService) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func (s *EmailService) send(to, subject, body string) error {
	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}
	if _, err := s.resendClient.Emails.Send(params); err != nil {
		logger.Error(fmt.Sprintf("Failed to send email to %s: %v", to, err))
		return err
	}
	logger.Info("[Email Sent]", "to", to, "subject", subject)
	return nil
}

func (s *EmailService) SendRecoveryCode(ctx context.Context, user *models.User, code string) error {
	body, err := s.render("recovery_code", struct {
		Name    string
		Code    string
		Minutes int
	}{user.FullName, code, 15})
	if err != nil {
		return err
	}
	return s.send(user.Email, "Password recovery code", body)
}

func (s *EmailService) SendAccountCreated(ctx context.Context, user *models.User) error {
	body, err := s.render("account_created", struct {
		Name string
	}{user.FullName})
	if err != nil {
		return err
	}
	return s.send(user.Email, "Welcome to the housing beneficiary portal", body)
}

func (s *EmailService) SendApplicationSubmitted(ctx context.Context, user *models.User, application *models.BeneficiaryApplication) error {
	body, err := s.render("application_submitted", struct {
		Name              string
		ApplicationNumber string
		Program           string
		SubmittedAt       string
	}{
		Name:              user.FullName,
		ApplicationNumber: application.ApplicationNumber,
		Program:           application.HousingProgram,
		SubmittedAt:       application.SubmittedAt.Format("02/01/2006 15:04"),
	})
	if err != nil {
		return err
	}
	return s.send(user.Email, fmt.Sprintf("Application %s received", application.ApplicationNumber), body)
}

func (s *EmailService) SendStatusChanged(ctx context.Context, user *models.User, application *models.BeneficiaryApplication, remarks string) error {
	body, err := s.render("status_changed", struct {
		Name              string
		ApplicationNumber string
		Status            string
		Remarks           string
	}{
		Name:              user.FullName,
		ApplicationNumber: application.ApplicationNumber,
		Status:            application.ApplicationStatus,
		Remarks:           remarks,
	})
	if err != nil {
		return err
	}
	return s.send(user.Email, fmt.Sprintf("Application %s status update", application.ApplicationNumber), body)
}
