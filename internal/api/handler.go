package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"comrent-backend/internal/history"
	"comrent-backend/internal/invoice"
	"comrent-backend/internal/notify"
	"comrent-backend/internal/session"
	"comrent-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	Registry      *store.Registry
	Machine       *session.Machine
	Conversations *store.ConversationStore
	Pricing       *store.PricingStore
	Audit         *store.AuditLog
	Templates     *store.TemplateStore
	Detector      *notify.Detector
	History       *history.Store
	Archiver      *history.Worker
	Invoices      *invoice.Service
}

// abortForUnitError translates registry and state-machine failures into the
// HTTP statuses the clients act on: 404 for unknown units, 400 for rejected
// transitions and bad payloads.
func abortForUnitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "PC not found"})
	case errors.Is(err, session.ErrSameStatus),
		errors.Is(err, session.ErrInvalidStatus),
		errors.Is(err, session.ErrIllegalTransition),
		errors.Is(err, session.ErrMissingPayment),
		errors.Is(err, store.ErrEmptyName):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "could not update status"})
	}
}
