package category

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sdpjss/community-registry-backend/internal/apperror"
)

type Handler struct{ service Service }

func NewHandler(s Service) *Handler { return &Handler{s} }

type createCategoryRequest struct {
	Name   string  `json:"name" binding:"required" example:"Laddu"`
	Rate   float64 `json:"rate" binding:"required,gt=0" example:"50"`
	Weight float64 `json:"weight" binding:"gte=0" example:"0.5"`
	Packet bool    `json:"packet"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cat, err := h.service.Create(c.Request.Context(), CreateInput(req))
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": cat})
}

type updateCategoryRequest struct {
	Name     *string  `json:"name,omitempty"`
	Rate     *float64 `json:"rate,omitempty"`
	Weight   *float64 `json:"weight,omitempty"`
	Packet   *bool    `json:"packet,omitempty"`
	IsActive *bool    `json:"is_active,omitempty"`
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cat, err := h.service.Update(c.Request.Context(), uint(id), UpdateInput(req))
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": cat})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	cat, err := h.service.Get(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": cat})
}

// List returns the full catalog for admins (?all=true) or only the
// selectable (active) entries otherwise.
func (h *Handler) List(c *gin.Context) {
	activeOnly := c.Query("all") != "true"

	cats, err := h.service.List(c.Request.Context(), activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uint(id)); err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deactivated"})
}
