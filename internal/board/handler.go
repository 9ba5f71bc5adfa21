package board

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sdpjss/community-registry-backend/internal/apperror"
	"github.com/sdpjss/community-registry-backend/middleware"
)

type Handler struct{ service Service }

func NewHandler(s Service) *Handler { return &Handler{s} }

func requester(c *gin.Context) (id uint, name string, admin bool, ok bool) {
	if c.GetBool("is_admin") {
		return 0, "Admin", true, true
	}
	user, found := middleware.CurrentUser(c)
	if !found {
		return 0, "", false, false
	}
	return user.ID, user.FullName, false, true
}

func pathID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// =============================
// Job openings
// =============================

type jobRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Contact     string `json:"contact"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Salary      string `json:"salary"`
	IsActive    *bool  `json:"isActive"`
}

func (r jobRequest) input() JobInput {
	return JobInput{
		Title:       r.Title,
		Description: r.Description,
		Contact:     r.Contact,
		Company:     r.Company,
		Location:    r.Location,
		Salary:      r.Salary,
		IsActive:    r.IsActive,
	}
}

func (h *Handler) CreateJob(c *gin.Context) {
	id, name, _, ok := requester(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	row, err := h.service.CreateJob(c.Request.Context(), id, name, req.input())
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"job": row})
}

func (h *Handler) UpdateJob(c *gin.Context) {
	postID, ok := pathID(c, "jobId")
	if !ok {
		return
	}
	id, _, admin, ok := requester(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	row, err := h.service.UpdateJob(c.Request.Context(), postID, id, admin, req.input())
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": row})
}

func (h *Handler) DeleteJob(c *gin.Context) {
	postID, ok := pathID(c, "jobId")
	if !ok {
		return
	}
	id, _, admin, ok := requester(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.service.DeleteJob(c.Request.Context(), postID, id, admin); err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "job opening deleted"})
}

func (h *Handler) ListJobs(c *gin.Context) {
	rows, err := h.service.ListJobs(c.Request.Context(), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch job openings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": rows, "count": len(rows)})
}

// =============================
// Staff requirements
// =============================

type staffRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Contact     string `json:"contact"`
	Role        string `json:"role"`
	Location    string `json:"location"`
	IsActive    *bool  `json:"isActive"`
}

func (r staffRequest) input() StaffInput {
	return StaffInput{
		Title:       r.Title,
		Description: r.Description,
		Contact:     r.Contact,
		Role:        r.Role,
		Location:    r.Location,
		IsActive:    r.IsActive,
	}
}

func (h *Handler) CreateStaff(c *gin.Context) {
	id, name, _, ok := requester(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req staffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	row, err := h.service.CreateStaff(c.Request.Context(), id, name, req.input())
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"staff": row})
}

func (h *Handler) UpdateStaff(c *gin.Context) {
	postID, ok := pathID(c, "staffId")
	if !ok {
		return
	}
	id, _, admin, ok := requester(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req staffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	row, err := h.service.UpdateStaff(c.Request.Context(), postID, id, admin, req.input())
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": row})
}

func (h *Handler) DeleteStaff(c *gin.Context) {
	postID, ok := pathID(c, "staffId")
	if !ok {
		return
	}
	id, _, admin, ok := requester(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.service.DeleteStaff(c.Request.Context(), postID, id, admin); err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "staff requirement deleted"})
}

func (h *Handler) ListStaffs(c *gin.Context) {
	rows, err := h.service.ListStaffs(c.Request.Context(), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch staff requirements"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"staffs": rows, "count": len(rows)})
}

// =============================
// Advertisements
// =============================

type adRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Contact     string `json:"contact"`
	IsActive    *bool  `json:"isActive"`
}

func (r adRequest) input() AdInput {
	return AdInput{
		Title:       r.Title,
		Description: r.Description,
		Contact:     r.Contact,
		IsActive:    r.IsActive,
	}
}

func (h *Handler) CreateAd(c *gin.Context) {
	id, name, _, ok := requester(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req adRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	row, err := h.service.CreateAd(c.Request.Context(), id, name, req.input())
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"advertisement": row})
}

func (h *Handler) UpdateAd(c *gin.Context) {
	postID, ok := pathID(c, "adId")
	if !ok {
		return
	}
	id, _, admin, ok := requester(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req adRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	row, err := h.service.UpdateAd(c.Request.Context(), postID, id, admin, req.input())
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"advertisement": row})
}

func (h *Handler) DeleteAd(c *gin.Context) {
	postID, ok := pathID(c, "adId")
	if !ok {
		return
	}
	id, _, admin, ok := requester(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.service.DeleteAd(c.Request.Context(), postID, id, admin); err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "advertisement deleted"})
}

func (h *Handler) ListAds(c *gin.Context) {
	rows, err := h.service.ListAds(c.Request.Context(), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch advertisements"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"advertisements": rows, "count": len(rows)})
}
