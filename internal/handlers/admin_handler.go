package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jainvest/internal/models"
	"jainvest/internal/services"
)

// AdminHandler handles content moderation for reviewers and admins.
type AdminHandler struct {
	contentService services.ContentServicer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(contentService services.ContentServicer) *AdminHandler {
	return &AdminHandler{contentService: contentService}
}

// AddContentRequest represents a new learning resource.
type AddContentRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Type        string `json:"type" binding:"omitempty,oneof=pdf video article"`
	URL         string `json:"url" binding:"omitempty,url"`
	Description string `json:"description" binding:"max=2000"`
}

// UpdateContentStatusRequest carries a review outcome.
type UpdateContentStatusRequest struct {
	Status models.ContentStatus `json:"status" binding:"required,content_status"`
}

// ListContent handles listing content items.
// @Summary     List content
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.ContentItem "Content items"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /admin/content [get]
func (h *AdminHandler) ListContent(c *gin.Context) {
	items, err := h.contentService.ListContentItems(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// AddContent handles submitting a content item for review.
// @Summary     Add content
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AddContentRequest true "Content"
// @Success     201 {object} models.ContentItem "Pending item"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /admin/content [post]
func (h *AdminHandler) AddContent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddContentRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.contentService.AddContentItem(c.Request.Context(), services.ContentInput{
		Title:       req.Title,
		Type:        req.Type,
		URL:         req.URL,
		Description: req.Description,
	}, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// UpdateContentStatus handles approving or rejecting a pending item.
// @Summary     Review content
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                     true "Content ID"
// @Param       request body UpdateContentStatusRequest true "Outcome"
// @Success     200 {object} models.ContentItem "Reviewed item"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Content not found"
// @Failure     409 {object} ErrorResponse "Already reviewed"
// @Router      /admin/content/{id}/status [put]
func (h *AdminHandler) UpdateContentStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateContentStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.contentService.UpdateContentStatus(c.Request.Context(), c.Param("id"), req.Status, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// GetAuditLog handles retrieving the moderation audit log.
// @Summary     Audit log
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.AuditEntry "Entries, newest first"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /admin/audit [get]
func (h *AdminHandler) GetAuditLog(c *gin.Context) {
	entries, err := h.contentService.GetAuditLog(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
