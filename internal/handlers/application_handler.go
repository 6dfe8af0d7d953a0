package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/middleware"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/repository"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/rules"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/services"
)

type ApplicationHandler struct {
	applicationService *services.ApplicationService
	certificateService *services.CertificateService
}

func NewApplicationHandler(applicationService *services.ApplicationService, certificateService *services.CertificateService) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
		certificateService: certificateService,
	}
}

// @Summary List Applications
// @Description Get a paginated list of applications. Applicants see only their own.
// @Tags Applications
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search by application number or name"
// @Param status query string false "Filter by lifecycle status"
// @Param program query string false "Filter by housing program"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /applications [get]
func (h *ApplicationHandler) Index(c *gin.Context) {
	query := &repository.ApplicationQuery{ListQuery: repository.NewListQuery()}
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.Status = c.Query("status")
	query.Program = c.Query("program")
	query.UserID = middleware.GetUserID(c)
	query.IsStaff = middleware.IsStaff(c)

	applications, total, err := h.applicationService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []models.ApplicationResponse
	for _, a := range applications {
		responses = append(responses, a.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Application Stats
// @Description Per-status application counts for the dashboard
// @Tags Applications
// @Accept json
// @Produce json
// @Success 200 {object} repository.ApplicationStats
// @Security BearerAuth
// @Router /applications/stats [get]
func (h *ApplicationHandler) GetStats(c *gin.Context) {
	stats, err := h.applicationService.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary Get Application
// @Description Get an application with beneficiary and documents
// @Tags Applications
// @Accept json
// @Produce json
// @Param application_id path int true "Application ID"
// @Success 200 {object} models.ApplicationResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /applications/{application_id} [get]
func (h *ApplicationHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("application_id"), 10, 32)
	application, err := h.applicationService.FindByIDWithDetails(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": application.ToResponse()})
}

type SubmitApplicationRequest struct {
	BeneficiaryID  uint   `json:"beneficiary_id" binding:"required"`
	HousingProgram string `json:"housing_program" binding:"required"`
}

// @Summary Submit Application
// @Description Submit a new application for a beneficiary to a housing program
// @Tags Applications
// @Accept json
// @Produce json
// @Param request body SubmitApplicationRequest true "Application Data"
// @Success 201 {object} models.ApplicationResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /applications [post]
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	application, err := h.applicationService.Submit(c.Request.Context(), req.BeneficiaryID, req.HousingProgram, currentActorID(c))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Beneficiary not found"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"application": application.ToResponse()})
}

// @Summary Validate Application
// @Description Run the readiness check: mandatory fields, required documents, duplicate warnings
// @Tags Applications
// @Accept json
// @Produce json
// @Param application_id path int true "Application ID"
// @Success 200 {object} services.ValidationResult
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /applications/{application_id}/validate [get]
func (h *ApplicationHandler) Validate(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("application_id"), 10, 32)
	result, err := h.applicationService.Validate(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Evaluate Eligibility
// @Description Run the eligibility rules for this application's program and persist the outcome
// @Tags Applications
// @Accept json
// @Produce json
// @Param application_id path int true "Application ID"
// @Success 200 {object} services.EligibilityResult
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /applications/{application_id}/evaluate [post]
func (h *ApplicationHandler) Evaluate(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("application_id"), 10, 32)
	result, err := h.applicationService.EvaluateEligibility(c.Request.Context(), uint(id), currentActorID(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		case errors.Is(err, rules.ErrProgramNotConfigured):
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

type StatusUpdateRequest struct {
	Status  string `json:"status" binding:"required"`
	Remarks string `json:"remarks"`
}

// @Summary Update Application Status
// @Description Move an application through its lifecycle. Illegal transitions are rejected.
// @Tags Applications
// @Accept json
// @Produce json
// @Param application_id path int true "Application ID"
// @Param request body StatusUpdateRequest true "Target Status"
// @Success 200 {object} models.ApplicationResponse
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /applications/{application_id}/status [put]
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("application_id"), 10, 32)

	var req StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Target status is required"})
		return
	}

	application, err := h.applicationService.UpdateStatus(c.Request.Context(), uint(id), req.Status, req.Remarks, currentActor(c))
	if err != nil {
		h.renderTransitionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": application.ToResponse()})
}

type RemarksRequest struct {
	Remarks string `json:"remarks"`
}

// @Summary Approve Application
// @Description Approve an eligible or waitlisted application
// @Tags Applications
// @Accept json
// @Produce json
// @Param application_id path int true "Application ID"
// @Param request body RemarksRequest false "Remarks"
// @Success 200 {object} models.ApplicationResponse
// @Security BearerAuth
// @Router /applications/{application_id}/approve [post]
func (h *ApplicationHandler) Approve(c *gin.Context) {
	h.transition(c, h.applicationService.Approve)
}

// @Summary Mark Not Eligible
// @Description Mark an application as not eligible
// @Tags Applications
// @Accept json
// @Produce json
// @Param application_id path int true "Application ID"
// @Param request body RemarksRequest false "Remarks"
// @Success 200 {object} models.ApplicationResponse
// @Security BearerAuth
// @Router /applications/{application_id}/not_eligible [post]
func (h *ApplicationHandler) MarkNotEligible(c *gin.Context) {
	h.transition(c, h.applicationService.MarkNotEligible)
}

// @Summary Waitlist Application
// @Description Place an eligible application on the waitlist
// @Tags Applications
// @Accept json
// @Produce json
// @Param application_id path int true "Application ID"
// @Param request body RemarksRequest false "Remarks"
// @Success 200 {object} models.ApplicationResponse
// @Security BearerAuth
// @Router /applications/{application_id}/waitlist [post]
func (h *ApplicationHandler) Waitlist(c *gin.Context) {
	h.transition(c, h.applicationService.Waitlist)
}

// @Summary Allocate Housing Unit
// @Description Mark an approved application as allocated
// @Tags Applications
// @Accept json
// @Produce json
// @Param application_id path int true "Application ID"
// @Param request body RemarksRequest false "Remarks"
// @Success 200 {object} models.ApplicationResponse
// @Security BearerAuth
// @Router /applications/{application_id}/allocate [post]
func (h *ApplicationHandler) Allocate(c *gin.Context) {
	h.transition(c, h.applicationService.Allocate)
}

// @Summary Cancel Application
// @Description Cancel an application from any non-terminal status
// @Tags Applications
// @Accept json
// @Produce json
// @Param application_id path int true "Application ID"
// @Param request body RemarksRequest false "Remarks"
// @Success 200 {object} models.ApplicationResponse
// @Security BearerAuth
// @Router /applications/{application_id}/cancel [post]
func (h *ApplicationHandler) Cancel(c *gin.Context) {
	h.transition(c, h.applicationService.Cancel)
}

// transition runs one of the named lifecycle operations, all of which share
// the same request and error shape.
func (h *ApplicationHandler) transition(c *gin.Context, op func(ctx context.Context, id uint, remarks string, actor services.Actor) (*models.BeneficiaryApplication, error)) {
	id, _ := strconv.ParseUint(c.Param("application_id"), 10, 32)

	var req RemarksRequest
	_ = c.ShouldBindJSON(&req)

	application, err := op(c.Request.Context(), uint(id), req.Remarks, currentActor(c))
	if err != nil {
		h.renderTransitionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": application.ToResponse()})
}

func (h *ApplicationHandler) renderTransitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
	case errors.Is(err, services.ErrConcurrentUpdate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// @Summary Status History
// @Description Chronological status history rebuilt from the audit trail
// @Tags Applications
// @Accept json
// @Produce json
// @Param application_id path int true "Application ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /applications/{application_id}/history [get]
func (h *ApplicationHandler) StatusHistory(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("application_id"), 10, 32)
	history, err := h.applicationService.GetStatusHistory(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

// @Summary Program Waitlist
// @Description Waitlisted applications for a program, ordered by priority weight then submission date
// @Tags Applications
// @Accept json
// @Produce json
// @Param program query string true "Housing Program"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /applications/waitlist [get]
func (h *ApplicationHandler) GetWaitlist(c *gin.Context) {
	program := c.Query("program")
	applications, err := h.applicationService.GetWaitlist(c.Request.Context(), program)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var responses []models.ApplicationResponse
	for _, a := range applications {
		responses = append(responses, a.ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"program": program, "waitlist": responses})
}

// @Summary Eligibility Certificate
// @Description Download the eligibility certificate PDF for an approved application
// @Tags Applications
// @Produce application/pdf
// @Param application_id path int true "Application ID"
// @Success 200 {file} file "certificate.pdf"
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /applications/{application_id}/certificate [get]
func (h *ApplicationHandler) Certificate(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("application_id"), 10, 32)
	data, filename, err := h.certificateService.GenerateEligibilityCertificate(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
