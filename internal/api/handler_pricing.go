package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"comrent-backend/internal/model"
	"comrent-backend/internal/store"
)

// GetPricing handles GET /api/pricing.
func (h *Handler) GetPricing(c *gin.Context) {
	c.JSON(http.StatusOK, h.Pricing.List())
}

// CreatePricing handles POST /api/pricing.
func (h *Handler) CreatePricing(c *gin.Context) {
	var tier model.PricingTier
	if err := c.ShouldBindJSON(&tier); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Pricing.Create(tier); err != nil {
		abortForPricingError(c, err)
		return
	}
	h.Audit.Append(fmt.Sprintf("Added pricing tier %q (₱%.2f).", tier.Label, tier.Price))
	c.JSON(http.StatusCreated, tier)
}

type updatePricingRequest struct {
	OriginalValue int               `json:"originalValue" binding:"required"`
	UpdatedTier   model.PricingTier `json:"updatedTier" binding:"required"`
}

// UpdatePricing handles PUT /api/pricing. Tiers are addressed by their
// original duration, which doubles as the key.
func (h *Handler) UpdatePricing(c *gin.Context) {
	var req updatePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Pricing.Update(req.OriginalValue, req.UpdatedTier); err != nil {
		abortForPricingError(c, err)
		return
	}
	h.Audit.Append(fmt.Sprintf("Updated pricing tier %q (₱%.2f).", req.UpdatedTier.Label, req.UpdatedTier.Price))
	c.JSON(http.StatusOK, req.UpdatedTier)
}

type deletePricingRequest struct {
	Value int `json:"value" binding:"required"`
}

// DeletePricing handles DELETE /api/pricing.
func (h *Handler) DeletePricing(c *gin.Context) {
	var req deletePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Pricing.Delete(req.Value); err != nil {
		abortForPricingError(c, err)
		return
	}
	h.Audit.Append(fmt.Sprintf("Deleted pricing tier for %d minutes.", req.Value))
	c.JSON(http.StatusOK, gin.H{"deletedValue": req.Value})
}

func abortForPricingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "pricing tier not found"})
	case errors.Is(err, store.ErrDuplicateTier):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrInvalidTier):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
