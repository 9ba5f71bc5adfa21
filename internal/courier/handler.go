package courier

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sdpjss/community-registry-backend/internal/apperror"
)

type Handler struct{ service Service }

func NewHandler(s Service) *Handler { return &Handler{s} }

type createRuleRequest struct {
	Region Region  `json:"region" binding:"required"`
	Amount float64 `json:"amount" binding:"gte=0"`
}

func (h *Handler) CreateRule(c *gin.Context) {
	var req createRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule, err := h.service.CreateRule(c.Request.Context(), req.Region, req.Amount)
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"courierCharge": rule})
}

type updateRuleRequest struct {
	Amount float64 `json:"amount" binding:"gte=0"`
}

func (h *Handler) UpdateRule(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rule id"})
		return
	}

	var req updateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule, err := h.service.UpdateRule(c.Request.Context(), uint(id), req.Amount)
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"courierCharge": rule})
}

func (h *Handler) DeleteRule(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rule id"})
		return
	}

	if err := h.service.DeleteRule(c.Request.Context(), uint(id)); err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "courier charge rule deleted"})
}

func (h *Handler) ListRules(c *gin.Context) {
	rules, err := h.service.ListRules(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch courier charges"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"courierCharges": rules})
}
