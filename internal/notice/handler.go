package notice

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sdpjss/community-registry-backend/internal/apperror"
)

type Handler struct{ service Service }

func NewHandler(s Service) *Handler { return &Handler{s} }

type noticeRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	IsActive *bool  `json:"isActive"`
}

func (h *Handler) Create(c *gin.Context) {
	var req noticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n, err := h.service.Create(c.Request.Context(), req.Title, req.Body)
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"notice": n})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("noticeId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notice id"})
		return
	}

	var req noticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n, err := h.service.Update(c.Request.Context(), uint(id), req.Title, req.Body, req.IsActive)
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notice": n})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("noticeId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notice id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uint(id)); err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notice deleted"})
}

// ListPublic serves active notices to everyone.
func (h *Handler) ListPublic(c *gin.Context) {
	notices, err := h.service.List(c.Request.Context(), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch notices"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notices": notices, "count": len(notices)})
}

// ListAll serves every notice, including retired ones, to the back office.
func (h *Handler) ListAll(c *gin.Context) {
	notices, err := h.service.List(c.Request.Context(), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch notices"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notices": notices, "count": len(notices)})
}
