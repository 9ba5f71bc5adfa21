package khandan

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sdpjss/community-registry-backend/internal/apperror"
)

type Handler struct{ service Service }

func NewHandler(s Service) *Handler { return &Handler{s} }

type khandanRequest struct {
	Name    string `json:"name" binding:"required" example:"Sharma Khandan"`
	Gotra   string `json:"gotra"`
	Address string `json:"address"`
	Contact string `json:"contact"`
}

func (h *Handler) Create(c *gin.Context) {
	var req khandanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	k, err := h.service.Create(c.Request.Context(), Input(req))
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"khandan": k})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("khandanId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid khandan id"})
		return
	}

	var req khandanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	k, err := h.service.Update(c.Request.Context(), uint(id), Input(req))
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"khandan": k})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("khandanId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid khandan id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uint(id)); err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "khandan deleted"})
}

func (h *Handler) List(c *gin.Context) {
	ks, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch khandans"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"khandans": ks, "count": len(ks)})
}

// Counts serves the monthly registration chart (?year=2025).
func (h *Handler) Counts(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))

	counts, total, err := h.service.MonthlyCounts(c.Request.Context(), year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute khandan counts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"monthly": counts, "total": total})
}

func (h *Handler) AvailableYears(c *gin.Context) {
	years, err := h.service.AvailableYears(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch years"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"years": years})
}
