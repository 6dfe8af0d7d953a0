package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/repository"
)

// CertificateService renders official certificates for beneficiaries
type CertificateService struct {
	appRepo repository.ApplicationRepository
}

func NewCertificateService(appRepo repository.ApplicationRepository) *CertificateService {
	return &CertificateService{appRepo: appRepo}
}

// GenerateEligibilityCertificate renders the certificate issued to a
// beneficiary whose application reached an approved or allocated state.
func (s *CertificateService) GenerateEligibilityCertificate(ctx context.Context, applicationID uint) ([]byte, string, error) {
	application, err := s.appRepo.FindByIDWithDetails(ctx, applicationID)
	if err != nil {
		return nil, "", err
	}

	if application.ApplicationStatus != models.ApplicationStatusApproved &&
		application.ApplicationStatus != models.ApplicationStatusAllocated {
		return nil, "", fmt.Errorf("application %s is not approved", application.ApplicationNumber)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, "Certificate of Eligibility", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, "Municipal Housing and Settlements Office", "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 7, fmt.Sprintf(
		"This certifies that %s of Barangay %s has been found eligible under the %s program and that application %s was approved on %s.",
		application.Beneficiary.FullName(),
		application.Beneficiary.Barangay,
		application.HousingProgram,
		application.ApplicationNumber,
		formatDate(application.ApprovedAt),
	), "", "L", false)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(60, 8, "Application Number:")
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, application.ApplicationNumber)
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(60, 8, "Priority Status:")
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, application.Beneficiary.PriorityStatus)
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(60, 8, "Issued:")
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, time.Now().Format("January 2, 2006"))
	pdf.Ln(24)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, "_________________________")
	pdf.Ln(6)
	pdf.Cell(0, 8, "Municipal Housing Officer")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render certificate: %w", err)
	}

	filename := fmt.Sprintf("certificate_%s.pdf", application.ApplicationNumber)
	return buf.Bytes(), filename, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("January 2, 2006")
}
