package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/middleware"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/repository"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/services"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/storage"
)

type DocumentHandler struct {
	documentService *services.DocumentService
	storage         *storage.LocalStorage
}

func NewDocumentHandler(documentService *services.DocumentService, storage *storage.LocalStorage) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, storage: storage}
}

// @Summary List Application Documents
// @Description Get all documents attached to an application
// @Tags Documents
// @Accept json
// @Produce json
// @Param application_id path int true "Application ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /applications/{application_id}/documents [get]
func (h *DocumentHandler) Index(c *gin.Context) {
	applicationID, _ := strconv.ParseUint(c.Param("application_id"), 10, 32)
	documents, err := h.documentService.FindByApplication(c.Request.Context(), uint(applicationID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []models.DocumentResponse
	for _, d := range documents {
		responses = append(responses, d.ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"documents": responses})
}

// @Summary Pending Verification Queue
// @Description Paginated list of documents awaiting staff verification
// @Tags Documents
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /documents/pending [get]
func (h *DocumentHandler) PendingVerification(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))

	documents, total, err := h.documentService.FindPendingVerification(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []models.DocumentResponse
	for _, d := range documents {
		responses = append(responses, d.ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{
		"documents": responses,
		"pagination": gin.H{
			"page":     query.Page,
			"per_page": query.PerPage,
			"total":    total,
		},
	})
}

// @Summary Upload Document
// @Description Attach a supporting document to an application
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param application_id path int true "Application ID"
// @Param document_type formData string true "Document Type"
// @Param file formData file true "Document File"
// @Success 201 {object} models.DocumentResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /applications/{application_id}/documents [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	applicationID, _ := strconv.ParseUint(c.Param("application_id"), 10, 32)

	documentType := c.PostForm("document_type")
	if documentType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "document_type is required"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file is required"})
		return
	}
	defer file.Close()

	document, err := h.documentService.Upload(c.Request.Context(), uint(applicationID), documentType, file, header, middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"document": document.ToResponse()})
}

// @Summary Verify Document
// @Description Mark a document as verified
// @Tags Documents
// @Accept json
// @Produce json
// @Param document_id path int true "Document ID"
// @Success 200 {object} models.DocumentResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /documents/{document_id}/verify [put]
func (h *DocumentHandler) Verify(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("document_id"), 10, 32)
	document, err := h.documentService.Verify(c.Request.Context(), uint(id), middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": document.ToResponse()})
}

type RejectDocumentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// @Summary Reject Document
// @Description Mark a document as invalid with a reason
// @Tags Documents
// @Accept json
// @Produce json
// @Param document_id path int true "Document ID"
// @Param request body RejectDocumentRequest true "Rejection Reason"
// @Success 200 {object} models.DocumentResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /documents/{document_id}/reject [put]
func (h *DocumentHandler) Reject(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("document_id"), 10, 32)

	var req RejectDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A rejection reason is required"})
		return
	}

	document, err := h.documentService.Reject(c.Request.Context(), uint(id), middleware.GetUserID(c), req.Reason)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": document.ToResponse()})
}

// @Summary Download Document
// @Description Download the stored file for a document
// @Tags Documents
// @Produce application/octet-stream
// @Param document_id path int true "Document ID"
// @Success 200 {file} file
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /documents/{document_id}/download [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("document_id"), 10, 32)
	fullPath, filename, err := h.documentService.Download(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.File(fullPath)
}
