package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/middleware"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/repository"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/services"
)

type BeneficiaryHandler struct {
	beneficiaryService *services.BeneficiaryService
}

func NewBeneficiaryHandler(beneficiaryService *services.BeneficiaryService) *BeneficiaryHandler {
	return &BeneficiaryHandler{beneficiaryService: beneficiaryService}
}

// @Summary List Beneficiaries
// @Description Get a paginated list of beneficiary records
// @Tags Beneficiaries
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search by name"
// @Param barangay query string false "Filter by barangay"
// @Param priority_status query string false "Filter by priority category"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /beneficiaries [get]
func (h *BeneficiaryHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.Filters["barangay"] = c.Query("barangay")
	query.Filters["priority_status"] = c.Query("priority_status")

	beneficiaries, total, err := h.beneficiaryService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []models.BeneficiaryResponse
	for _, b := range beneficiaries {
		responses = append(responses, b.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"beneficiaries": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Get Beneficiary
// @Description Get a beneficiary with household members
// @Tags Beneficiaries
// @Accept json
// @Produce json
// @Param beneficiary_id path int true "Beneficiary ID"
// @Success 200 {object} models.BeneficiaryResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /beneficiaries/{beneficiary_id} [get]
func (h *BeneficiaryHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("beneficiary_id"), 10, 32)
	beneficiary, err := h.beneficiaryService.FindByIDWithHousehold(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Beneficiary not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"beneficiary":       beneficiary.ToResponse(),
		"household_members": beneficiary.HouseholdMembers,
	})
}

// @Summary Create Beneficiary
// @Description Register a new beneficiary. Potential duplicates are returned as warnings, never as a rejection.
// @Tags Beneficiaries
// @Accept json
// @Produce json
// @Param request body models.Beneficiary true "Beneficiary Data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /beneficiaries [post]
func (h *BeneficiaryHandler) Create(c *gin.Context) {
	var beneficiary models.Beneficiary
	if err := BindNestedOrFlat(c, "beneficiary", &beneficiary); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if beneficiary.FirstName == "" || beneficiary.LastName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "First name and last name are required"})
		return
	}
	if beneficiary.UserID == 0 {
		beneficiary.UserID = middleware.GetUserID(c)
	}

	duplicates, err := h.beneficiaryService.Create(c.Request.Context(), &beneficiary, currentActorID(c))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"beneficiary":     beneficiary.ToResponse(),
		"duplicate_check": duplicates,
	})
}

// @Summary Update Beneficiary
// @Description Update a beneficiary's profile
// @Tags Beneficiaries
// @Accept json
// @Produce json
// @Param beneficiary_id path int true "Beneficiary ID"
// @Param request body models.Beneficiary true "Beneficiary Fields"
// @Success 200 {object} models.BeneficiaryResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /beneficiaries/{beneficiary_id} [put]
func (h *BeneficiaryHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("beneficiary_id"), 10, 32)
	existing, err := h.beneficiaryService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Beneficiary not found"})
		return
	}

	var beneficiary models.Beneficiary
	if err := BindNestedOrFlat(c, "beneficiary", &beneficiary); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	beneficiary.ID = existing.ID
	beneficiary.UserID = existing.UserID
	beneficiary.CreatedAt = existing.CreatedAt

	if err := h.beneficiaryService.Update(c.Request.Context(), &beneficiary, currentActorID(c)); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"beneficiary": beneficiary.ToResponse()})
}

// @Summary Archive Beneficiary
// @Description Archive a beneficiary record. Records are retained, never deleted.
// @Tags Beneficiaries
// @Accept json
// @Produce json
// @Param beneficiary_id path int true "Beneficiary ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /beneficiaries/{beneficiary_id} [delete]
func (h *BeneficiaryHandler) Archive(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("beneficiary_id"), 10, 32)
	if err := h.beneficiaryService.Archive(c.Request.Context(), uint(id), currentActorID(c)); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Beneficiary archived"})
}

// @Summary Check Duplicates
// @Description Scan existing records for potential duplicates of this beneficiary
// @Tags Beneficiaries
// @Accept json
// @Produce json
// @Param beneficiary_id path int true "Beneficiary ID"
// @Success 200 {object} services.DuplicateCheckResult
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /beneficiaries/{beneficiary_id}/duplicates [get]
func (h *BeneficiaryHandler) CheckDuplicates(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("beneficiary_id"), 10, 32)
	result, err := h.beneficiaryService.CheckDuplicates(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Beneficiary not found"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary List Household Members
// @Description Get the declared household members of a beneficiary
// @Tags Beneficiaries
// @Accept json
// @Produce json
// @Param beneficiary_id path int true "Beneficiary ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /beneficiaries/{beneficiary_id}/household [get]
func (h *BeneficiaryHandler) ListHousehold(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("beneficiary_id"), 10, 32)
	members, err := h.beneficiaryService.FindHouseholdMembers(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"household_members": members})
}

// @Summary Add Household Member
// @Description Declare a new household member for a beneficiary
// @Tags Beneficiaries
// @Accept json
// @Produce json
// @Param beneficiary_id path int true "Beneficiary ID"
// @Param request body models.HouseholdMember true "Member Data"
// @Success 201 {object} models.HouseholdMember
// @Security BearerAuth
// @Router /beneficiaries/{beneficiary_id}/household [post]
func (h *BeneficiaryHandler) AddHouseholdMember(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("beneficiary_id"), 10, 32)

	var member models.HouseholdMember
	if err := BindNestedOrFlat(c, "household_member", &member); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if member.FullName == "" || member.Relationship == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Full name and relationship are required"})
		return
	}
	member.BeneficiaryID = uint(id)

	if err := h.beneficiaryService.AddHouseholdMember(c.Request.Context(), &member); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"household_member": member})
}

// @Summary Update Household Member
// @Description Update a declared household member
// @Tags Beneficiaries
// @Accept json
// @Produce json
// @Param beneficiary_id path int true "Beneficiary ID"
// @Param member_id path int true "Member ID"
// @Param request body models.HouseholdMember true "Member Fields"
// @Success 200 {object} models.HouseholdMember
// @Security BearerAuth
// @Router /beneficiaries/{beneficiary_id}/household/{member_id} [put]
func (h *BeneficiaryHandler) UpdateHouseholdMember(c *gin.Context) {
	beneficiaryID, _ := strconv.ParseUint(c.Param("beneficiary_id"), 10, 32)
	memberID, _ := strconv.ParseUint(c.Param("member_id"), 10, 32)

	var member models.HouseholdMember
	if err := BindNestedOrFlat(c, "household_member", &member); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	member.ID = uint(memberID)
	member.BeneficiaryID = uint(beneficiaryID)

	if err := h.beneficiaryService.UpdateHouseholdMember(c.Request.Context(), &member); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"household_member": member})
}

// @Summary Remove Household Member
// @Description Remove a declared household member
// @Tags Beneficiaries
// @Accept json
// @Produce json
// @Param beneficiary_id path int true "Beneficiary ID"
// @Param member_id path int true "Member ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /beneficiaries/{beneficiary_id}/household/{member_id} [delete]
func (h *BeneficiaryHandler) RemoveHouseholdMember(c *gin.Context) {
	memberID, _ := strconv.ParseUint(c.Param("member_id"), 10, 32)
	if err := h.beneficiaryService.RemoveHouseholdMember(c.Request.Context(), uint(memberID)); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Household member removed"})
}
