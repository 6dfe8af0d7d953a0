package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/repository"
)

// ExportService builds downloadable exports of the beneficiary masterlist
// and application statistics
type ExportService struct {
	beneficiaryRepo repository.BeneficiaryRepository
	appRepo         repository.ApplicationRepository
}

func NewExportService(beneficiaryRepo repository.BeneficiaryRepository, appRepo repository.ApplicationRepository) *ExportService {
	return &ExportService{
		beneficiaryRepo: beneficiaryRepo,
		appRepo:         appRepo,
	}
}

// ExportMasterlistXLSX builds the beneficiary masterlist workbook
func (s *ExportService) ExportMasterlistXLSX(ctx context.Context) ([]byte, string, error) {
	query := repository.NewListQuery()
	query.PerPage = -1 // unpaginated export
	beneficiaries, _, err := s.beneficiaryRepo.List(ctx, query)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Masterlist"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	headers := []string{"ID", "Full Name", "Barangay", "Civil Status", "Monthly Income", "Residency (yrs)", "Priority Status", "Registered"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for row, b := range beneficiaries {
		values := []any{
			b.ID,
			b.FullName(),
			b.Barangay,
			b.CivilStatus,
			b.MonthlyIncome,
			b.YearsOfResidency,
			b.PriorityStatus,
			b.CreatedAt.Format("2006-01-02"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("beneficiary_masterlist_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ExportStatsCSV dumps the per-status application counts
func (s *ExportService) ExportStatsCSV(ctx context.Context) ([]byte, string, error) {
	stats, err := s.appRepo.GetStats(ctx)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"Application Statistics", time.Now().Format("2006-01-02 15:04")})
	_ = writer.Write([]string{""})
	_ = writer.Write([]string{"Status", "Count"})
	_ = writer.Write([]string{models.ApplicationStatusSubmitted, fmt.Sprintf("%d", stats.Submitted)})
	_ = writer.Write([]string{models.ApplicationStatusUnderReview, fmt.Sprintf("%d", stats.UnderReview)})
	_ = writer.Write([]string{models.ApplicationStatusEligible, fmt.Sprintf("%d", stats.Eligible)})
	_ = writer.Write([]string{models.ApplicationStatusApproved, fmt.Sprintf("%d", stats.Approved)})
	_ = writer.Write([]string{models.ApplicationStatusWaitlisted, fmt.Sprintf("%d", stats.Waitlisted)})
	_ = writer.Write([]string{models.ApplicationStatusAllocated, fmt.Sprintf("%d", stats.Allocated)})
	_ = writer.Write([]string{models.ApplicationStatusNotEligible, fmt.Sprintf("%d", stats.NotEligible)})
	_ = writer.Write([]string{models.ApplicationStatusCancelled, fmt.Sprintf("%d", stats.Cancelled)})
	_ = writer.Write([]string{"total", fmt.Sprintf("%d", stats.Total)})

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("application_stats_%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
