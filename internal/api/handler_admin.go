package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"comrent-backend/internal/invoice"
	"comrent-backend/internal/model"
)

// GetNotifications handles GET /api/notifications: the bounded most-recent
// list the admin panel polls. Dismissal is a client-side filter; nothing is
// deleted here.
func (h *Handler) GetNotifications(c *gin.Context) {
	notifications := h.Detector.Notifications()
	if notifications == nil {
		notifications = []model.Notification{}
	}
	c.JSON(http.StatusOK, notifications)
}

// GetAuditLog handles GET /api/audit: the full activity history.
func (h *Handler) GetAuditLog(c *gin.Context) {
	c.JSON(http.StatusOK, h.Audit.Entries())
}

// GetEmailTemplate handles GET /api/email-template.
func (h *Handler) GetEmailTemplate(c *gin.Context) {
	c.JSON(http.StatusOK, h.Templates.Get())
}

type updateTemplateRequest struct {
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

// UpdateEmailTemplate handles POST /api/email-template.
func (h *Handler) UpdateEmailTemplate(c *gin.Context) {
	var req updateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.Templates.Set(model.EmailTemplate{Subject: req.Subject, Body: req.Body})
	h.Audit.Append("Updated the invoice email template.")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Template updated successfully."})
}

type sendInvoiceRequest struct {
	ID string `json:"id" binding:"required"`
}

// SendInvoice handles POST /api/invoices. A mailer failure is reported in
// the result body but is never an error for the session itself: the unit's
// state is read, not written, on this path.
func (h *Handler) SendInvoice(c *gin.Context) {
	var req sendInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.Registry.Get(req.ID)
	if err != nil {
		abortForUnitError(c, err)
		return
	}

	result, err := h.Invoices.Send(c.Request.Context(), u)
	if err != nil {
		if errors.Is(err, invoice.ErrNotEligible) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
