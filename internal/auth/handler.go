package auth

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sdpjss/community-registry-backend/internal/apperror"
	"github.com/sdpjss/community-registry-backend/internal/courier"
)

type Handler struct{ service Service }

func NewHandler(s Service) *Handler { return &Handler{s} }

type registerRequest struct {
	Username     string `json:"username" binding:"required"`
	Password     string `json:"password" binding:"required"`
	FullName     string `json:"fullName" binding:"required"`
	Gender       string `json:"gender"`
	DOB          string `json:"dob"`
	Email        string `json:"email" binding:"required"`
	Mobile       string `json:"mobile" binding:"required"`
	KhandanID    uint   `json:"khandanId" binding:"required"`
	IsEldest     bool   `json:"isEldest"`
	FatherID     uint   `json:"fatherId"`
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	CurrLocation string `json:"currLocation" binding:"required"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	father := ChildOf(req.FatherID)
	if req.IsEldest {
		father = EldestFather()
	}

	user, err := h.service.Register(c.Request.Context(), RegisterInput{
		Username:     req.Username,
		Password:     req.Password,
		FullName:     req.FullName,
		Gender:       req.Gender,
		DOB:          req.DOB,
		Email:        req.Email,
		Mobile:       req.Mobile,
		KhandanID:    req.KhandanID,
		Father:       father,
		Street:       req.Street,
		City:         req.City,
		State:        req.State,
		Pincode:      req.Pincode,
		CurrLocation: courier.Region(req.CurrLocation),
	})
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "registration submitted, pending approval",
		"user":    user,
	})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokens, user, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
		"user":         user,
	})
}

type adminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.service.AdminLogin(req.Email, req.Password)
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": token})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func (h *Handler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.service.Refresh(req.RefreshToken)
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": token})
}

// Me returns the authenticated member's own profile.
func (h *Handler) Me(c *gin.Context) {
	user, ok := c.Get("user")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// =============================
// Recovery
// =============================

type recoveryRequestBody struct {
	Username string `json:"username" binding:"required"`
}

func (h *Handler) RequestRecoveryCode(c *gin.Context) {
	var req recoveryRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.RequestRecoveryCode(c.Request.Context(), req.Username); err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recovery code sent to the registered email"})
}

type recoveryVerifyBody struct {
	Username string `json:"username" binding:"required"`
	Code     string `json:"code" binding:"required"`
}

func (h *Handler) VerifyRecoveryCode(c *gin.Context) {
	var req recoveryVerifyBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.VerifyRecoveryCode(c.Request.Context(), req.Username, req.Code); err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "code verified"})
}

type recoveryCommitBody struct {
	Username    string `json:"username" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

func (h *Handler) CommitNewPassword(c *gin.Context) {
	var req recoveryCommitBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.CommitNewPassword(c.Request.Context(), req.Username, req.NewPassword); err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated, please log in again"})
}

// =============================
// Directory / admin
// =============================

// KhandanMembers lists the members of a khandan (used by the registration
// form to pick a father).
func (h *Handler) KhandanMembers(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("khandanId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid khandan id"})
		return
	}

	members, err := h.service.ListKhandanMembers(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch members"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members, "count": len(members)})
}

func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	search := c.Query("search")

	users, total, err := h.service.ListUsers(c.Request.Context(), search, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func (h *Handler) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.service.GetUserByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type approvalRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

func (h *Handler) SetApproval(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req approvalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.SetApproval(c.Request.Context(), uint(id), *req.Approved); err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "approval updated"})
}

// Counts serves the monthly registration chart (?year=2025).
func (h *Handler) Counts(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))

	counts, total, err := h.service.MonthlyCounts(c.Request.Context(), year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute user counts"})
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
