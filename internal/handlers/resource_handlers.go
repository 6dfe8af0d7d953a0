package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/middleware"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/repository"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/services"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// @Summary List Notifications
// @Description Get a paginated list of notifications for the current user
// @Tags Notifications
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /notifications [get]
func (h *NotificationHandler) Index(c *gin.Context) {
	userID := middleware.GetUserID(c)
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))

	notifications, total, err := h.notificationService.FindByUser(c.Request.Context(), userID, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []models.NotificationResponse
	for _, n := range notifications {
		responses = append(responses, n.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"notifications": responses, "pagination": gin.H{"total": total}})
}

// @Summary Get Notification
// @Description Get a notification by ID
// @Tags Notifications
// @Accept json
// @Produce json
// @Param notification_id path int true "Notification ID"
// @Success 200 {object} models.NotificationResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /notifications/{notification_id} [get]
func (h *NotificationHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("notification_id"), 10, 32)
	notification, err := h.notificationService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notification": notification.ToResponse()})
}

// @Summary Mark Notification Read
// @Description Mark a notification as read
// @Tags Notifications
// @Accept json
// @Produce json
// @Param notification_id path int true "Notification ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /notifications/{notification_id} [put]
func (h *NotificationHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("notification_id"), 10, 32)
	if err := h.notificationService.MarkAsRead(c.Request.Context(), uint(id)); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// @Summary Mark All Notifications Read
// @Description Mark all notifications as read for current user
// @Tags Notifications
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /notifications/mark_all_as_read [post]
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if err := h.notificationService.MarkAllAsRead(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

type ReportHandler struct {
	reportService *services.ReportService
	exportService *services.ExportService
}

func NewReportHandler(reportService *services.ReportService, exportService *services.ExportService) *ReportHandler {
	return &ReportHandler{reportService: reportService, exportService: exportService}
}

// @Summary Waitlist Report
// @Description Download the ranked waitlist for a program as CSV
// @Tags Reports
// @Produce text/csv
// @Param program query string true "Housing Program"
// @Success 200 {file} file "waitlist.csv"
// @Security BearerAuth
// @Router /reports/waitlist_csv [get]
func (h *ReportHandler) WaitlistCSV(c *gin.Context) {
	program := c.Query("program")
	buf, err := h.reportService.GenerateWaitlistCSV(c.Request.Context(), program)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=waitlist_%s.csv", program))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// @Summary Status Report
// @Description Download applications in a given status as CSV
// @Tags Reports
// @Produce text/csv
// @Param status query string false "Lifecycle Status"
// @Success 200 {file} file "status_report.csv"
// @Security BearerAuth
// @Router /reports/status_csv [get]
func (h *ReportHandler) StatusReportCSV(c *gin.Context) {
	status := c.Query("status")
	buf, err := h.reportService.GenerateStatusReportCSV(c.Request.Context(), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", "attachment; filename=status_report.csv")
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// @Summary Application Summary PDF
// @Description Download a one-page summary of an application as PDF
// @Tags Reports
// @Produce application/pdf
// @Param application_id path int true "Application ID"
// @Success 200 {file} file "summary.pdf"
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /reports/applications/{application_id}/summary_pdf [get]
func (h *ReportHandler) ApplicationSummaryPDF(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("application_id"), 10, 32)
	buf, err := h.reportService.GenerateApplicationSummaryPDF(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=application_%d.pdf", id))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// @Summary Beneficiary Masterlist
// @Description Download the full beneficiary masterlist as XLSX
// @Tags Reports
// @Produce application/octet-stream
// @Success 200 {file} file "masterlist.xlsx"
// @Security BearerAuth
// @Router /reports/masterlist_xlsx [get]
func (h *ReportHandler) MasterlistXLSX(c *gin.Context) {
	data, filename, err := h.exportService.ExportMasterlistXLSX(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/octet-stream", data)
}

// @Summary Application Stats Export
// @Description Download per-status application counts as CSV
// @Tags Reports
// @Produce text/csv
// @Success 200 {file} file "stats.csv"
// @Security BearerAuth
// @Router /reports/stats_csv [get]
func (h *ReportHandler) StatsCSV(c *gin.Context) {
	data, filename, err := h.exportService.ExportStatsCSV(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// @Summary List Audit Logs
// @Description Get a paginated list of audit log entries
// @Tags Audits
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search by action or entity"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /audits [get]
func (h *AuditHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")

	logs, total, err := h.auditService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"audits": logs,
		"pagination": gin.H{
			"page":     query.Page,
			"per_page": query.PerPage,
			"total":    total,
		},
	})
}

// @Summary Entity Audit Trail
// @Description Get the audit trail for one entity
// @Tags Audits
// @Accept json
// @Produce json
// @Param entity path string true "Entity Name"
// @Param entity_id path int true "Entity ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /audits/{entity}/{entity_id} [get]
func (h *AuditHandler) ForEntity(c *gin.Context) {
	entity := c.Param("entity")
	entityID, _ := strconv.ParseUint(c.Param("entity_id"), 10, 32)

	logs, err := h.auditService.ForEntity(c.Request.Context(), entity, uint(entityID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"audits": logs})
}
