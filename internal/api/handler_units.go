package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"comrent-backend/internal/model"
	"comrent-backend/internal/session"
)

// GetUnits handles GET /api/units. Without an id parameter it returns the
// full grid; with one it returns a single unit or 404. Both customer and
// admin views poll this on their own timers, so it must always reflect the
// live registry.
func (h *Handler) GetUnits(c *gin.Context) {
	if id := c.Query("id"); id != "" {
		u, err := h.Registry.Get(id)
		if err != nil {
			abortForUnitError(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
		return
	}
	c.JSON(http.StatusOK, h.Registry.List())
}

type createUnitRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateUnit handles POST /api/units.
func (h *Handler) CreateUnit(c *gin.Context) {
	var req createUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.Registry.Create(req.Name)
	if err != nil {
		abortForUnitError(c, err)
		return
	}
	h.Audit.Append(fmt.Sprintf("Added new PC %q.", u.Name))
	c.JSON(http.StatusCreated, u)
}

type updateUnitRequest struct {
	ID            string `json:"id" binding:"required"`
	NewStatus     string `json:"newStatus"`
	NewName       string `json:"newName"`
	Duration      int    `json:"duration"`
	User          string `json:"user"`
	Email         string `json:"email"`
	PaymentMethod string `json:"paymentMethod"`
	PaymentProof  string `json:"paymentProof"`
}

// UpdateUnit handles PUT /api/units: a rename, a status transition, or
// both, applied as one atomic edit. A rejected transition comes back as 400
// and leaves the unit untouched, rename included.
func (h *Handler) UpdateUnit(c *gin.Context) {
	var req updateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.NewStatus == "" && req.NewName == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "newStatus or newName is required"})
		return
	}

	current, err := h.Registry.Get(req.ID)
	if err != nil {
		abortForUnitError(c, err)
		return
	}

	updated, err := h.Machine.Edit(req.ID, req.NewName, session.Request{
		Status:        model.UnitStatus(req.NewStatus),
		Duration:      req.Duration,
		User:          req.User,
		Email:         req.Email,
		PaymentMethod: req.PaymentMethod,
		PaymentProof:  req.PaymentProof,
	})
	if err != nil {
		abortForUnitError(c, err)
		return
	}

	if updated.Name != current.Name {
		h.Audit.Append(fmt.Sprintf("Renamed PC %q to %q.", current.Name, updated.Name))
	}
	if req.NewStatus != "" && updated.Status == model.StatusTimeUp {
		h.archiveEnded(current)
	}
	c.JSON(http.StatusOK, updated)
}

// archiveEnded queues the just-ended session for the analytics archive,
// using the pre-transition unit because time_up drops the start timestamp.
func (h *Handler) archiveEnded(before model.Unit) {
	if h.Archiver == nil || before.SessionStart == nil {
		return
	}
	var price float64
	if tier, ok := h.Pricing.Lookup(before.SessionDuration); ok {
		price = tier.Price
	}
	h.Archiver.Dispatch(model.SessionRecord{
		UnitName:        before.Name,
		User:            before.User,
		Email:           before.Email,
		DurationMinutes: before.SessionDuration,
		PaymentMethod:   before.PaymentMethod,
		Price:           price,
		StartedAt:       *before.SessionStart,
		EndedAt:         time.Now(),
	})
}

type deleteUnitRequest struct {
	ID string `json:"id" binding:"required"`
}

// DeleteUnit handles DELETE /api/units. The unit's conversation survives
// under the old name.
func (h *Handler) DeleteUnit(c *gin.Context) {
	var req deleteUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.Registry.Get(req.ID)
	if err != nil {
		abortForUnitError(c, err)
		return
	}
	deletedID, err := h.Registry.Delete(req.ID)
	if err != nil {
		abortForUnitError(c, err)
		return
	}
	h.Audit.Append(fmt.Sprintf("Deleted PC %q.", u.Name))
	c.JSON(http.StatusOK, gin.H{"deletedId": deletedID})
}
