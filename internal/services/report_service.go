package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/repository"
)

// ReportService produces CSV and PDF reports for staff
type ReportService struct {
	appRepo         repository.ApplicationRepository
	beneficiaryRepo repository.BeneficiaryRepository
	statusSvc       *StatusTrackingService
}

func NewReportService(appRepo repository.ApplicationRepository, beneficiaryRepo repository.BeneficiaryRepository, statusSvc *StatusTrackingService) *ReportService {
	return &ReportService{
		appRepo:         appRepo,
		beneficiaryRepo: beneficiaryRepo,
		statusSvc:       statusSvc,
	}
}

// GenerateWaitlistCSV dumps the ranked waitlist for a program
func (s *ReportService) GenerateWaitlistCSV(ctx context.Context, program string) (*bytes.Buffer, error) {
	applications, err := s.appRepo.FindWaitlisted(ctx, program)
	if err != nil {
		return nil, err
	}

	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	header := []string{"Rank", "Application", "Beneficiary", "Barangay", "Program", "Priority Status", "Priority Weight", "Submitted"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for i, app := range applications {
		name := "N/A"
		barangay := "N/A"
		priority := models.PriorityStatusNone
		if app.Beneficiary.ID != 0 {
			name = app.Beneficiary.FullName()
			barangay = app.Beneficiary.Barangay
			priority = app.Beneficiary.PriorityStatus
		}

		record := []string{
			fmt.Sprintf("%d", i+1),
			app.ApplicationNumber,
			name,
			barangay,
			app.HousingProgram,
			priority,
			fmt.Sprintf("%.2f", app.PriorityWeight),
			app.SubmittedAt.Format("2006-01-02"),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b, nil
}

// GenerateStatusReportCSV dumps applications in one lifecycle status
func (s *ReportService) GenerateStatusReportCSV(ctx context.Context, status string) (*bytes.Buffer, error) {
	applications, err := s.appRepo.FindByStatus(ctx, status)
	if err != nil {
		return nil, err
	}

	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	header := []string{"Application", "Beneficiary", "Program", "Status", "Eligibility", "Submitted", "Reviewed"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, app := range applications {
		name := "N/A"
		if app.Beneficiary.ID != 0 {
			name = app.Beneficiary.FullName()
		}
		reviewed := ""
		if app.ReviewedAt != nil {
			reviewed = app.ReviewedAt.Format("2006-01-02")
		}

		record := []string{
			app.ApplicationNumber,
			name,
			app.HousingProgram,
			app.ApplicationStatus,
			app.EligibilityStatus,
			app.SubmittedAt.Format("2006-01-02"),
			reviewed,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b, nil
}

var applicationSummaryTmpl = template.Must(template.New("application_summary").Parse(`
<html>
<head><style>
body { font-family: Arial, sans-serif; font-size: 12px; }
h1 { font-size: 18px; }
table { border-collapse: collapse; width: 100%; }
td, th { border: 1px solid #999; padding: 6px; text-align: left; }
</style></head>
<body>
<h1>Application Summary {{.ApplicationNumber}}</h1>
<p>Generated {{.GeneratedAt}}</p>
<table>
<tr><th>Beneficiary</th><td>{{.BeneficiaryName}}</td></tr>
<tr><th>Barangay</th><td>{{.Barangay}}</td></tr>
<tr><th>Program</th><td>{{.Program}}</td></tr>
<tr><th>Status</th><td>{{.Status}}</td></tr>
<tr><th>Eligibility</th><td>{{.Eligibility}}</td></tr>
<tr><th>Priority Weight</th><td>{{.PriorityWeight}}</td></tr>
<tr><th>Submitted</th><td>{{.Submitted}}</td></tr>
</table>
<h1>Status History</h1>
<table>
<tr><th>Status</th><th>Date</th><th>Remarks</th></tr>
{{range .History}}<tr><td>{{.Status}}</td><td>{{.Date}}</td><td>{{.Remarks}}</td></tr>
{{end}}
</table>
</body>
</html>`))

// GenerateApplicationSummaryPDF renders one application's profile and full
// status history as a PDF
func (s *ReportService) GenerateApplicationSummaryPDF(ctx context.Context, applicationID uint) (*bytes.Buffer, error) {
	application, err := s.appRepo.FindByIDWithDetails(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	history, err := s.statusSvc.GetStatusHistory(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	type historyRow struct {
		Status  string
		Date    string
		Remarks string
	}
	rows := make([]historyRow, 0, len(history))
	for _, entry := range history {
		rows = append(rows, historyRow{
			Status:  entry.Status,
			Date:    entry.UpdatedAt.Format("2006-01-02 15:04"),
			Remarks: entry.Remarks,
		})
	}

	data := struct {
		ApplicationNumber string
		GeneratedAt       string
		BeneficiaryName   string
		Barangay          string
		Program           string
		Status            string
		Eligibility       string
		PriorityWeight    string
		Submitted         string
		History           []historyRow
	}{
		ApplicationNumber: application.ApplicationNumber,
		GeneratedAt:       time.Now().Format("2006-01-02 15:04"),
		BeneficiaryName:   application.Beneficiary.FullName(),
		Barangay:          application.Beneficiary.Barangay,
		Program:           application.HousingProgram,
		Status:            application.ApplicationStatus,
		Eligibility:       application.EligibilityStatus,
		PriorityWeight:    fmt.Sprintf("%.2f", application.PriorityWeight),
		Submitted:         application.SubmittedAt.Format("2006-01-02"),
		History:           rows,
	}

	var buf bytes.Buffer
	if err := applicationSummaryTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render report template: %w", err)
	}

	return htmlToPDF(&buf)
}

// htmlToPDF converts rendered HTML to a PDF buffer via wkhtmltopdf
func htmlToPDF(html *bytes.Buffer) (*bytes.Buffer, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create pdf generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(html.Bytes()))
	page.EnableLocalFileAccess.Set(true)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create pdf: %w", err)
	}

	return pdfg.Buffer(), nil
}
