package donation

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sdpjss/community-registry-backend/internal/apperror"
	"github.com/sdpjss/community-registry-backend/internal/courier"
	"github.com/sdpjss/community-registry-backend/middleware"
)

type Handler struct{ service Service }

func NewHandler(s Service) *Handler { return &Handler{s} }

type lineRequest struct {
	CategoryID uint `json:"categoryId" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required"`
}

type createOrderRequest struct {
	Method         string        `json:"method" binding:"required"`
	Delivery       string        `json:"delivery" binding:"required"`
	Region         string        `json:"region"`
	CourierAddress string        `json:"courierAddress"`
	Lines          []lineRequest `json:"lines" binding:"required"`
}

// joinAddress builds a one-line postal address, skipping blank parts.
func joinAddress(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

func (h *Handler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lines := make([]LineInput, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, LineInput{CategoryID: l.CategoryID, Quantity: l.Quantity})
	}

	region := courier.Region(req.Region)
	if req.Delivery == DeliveryCourier && req.Region == "" {
		region = user.CurrLocation
	}

	// Courier shipments go to the stated address, falling back to the
	// donor's registered one.
	address := req.CourierAddress
	if req.Delivery == DeliveryCourier && strings.TrimSpace(address) == "" {
		address = joinAddress(user.Street, user.City, user.State, user.Pincode)
	}

	order, err := h.service.CreateOrder(c.Request.Context(), CreateInput{
		UserID:          user.ID,
		DonorName:       user.FullName,
		DonorEmail:      user.Email,
		Method:          req.Method,
		Delivery:        req.Delivery,
		Region:          region,
		DeliveryAddress: address,
		Lines:           lines,
		IPAddress:       middleware.ClientIP(c),
	})
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

type adminCreateRequest struct {
	UserID         uint          `json:"userId" binding:"required"`
	DonorName      string        `json:"donorName" binding:"required"`
	DonorEmail     string        `json:"donorEmail"`
	Delivery       string        `json:"delivery" binding:"required"`
	Region         string        `json:"region"`
	CourierAddress string        `json:"courierAddress"`
	Lines          []lineRequest `json:"lines" binding:"required"`
}

// AdminCreate records a cash receipt at the office on behalf of a donor.
func (h *Handler) AdminCreate(c *gin.Context) {
	var req adminCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lines := make([]LineInput, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, LineInput{CategoryID: l.CategoryID, Quantity: l.Quantity})
	}

	order, err := h.service.CreateOrder(c.Request.Context(), CreateInput{
		UserID:          req.UserID,
		DonorName:       req.DonorName,
		DonorEmail:      req.DonorEmail,
		Method:          MethodCash,
		Delivery:        req.Delivery,
		Region:          courier.Region(req.Region),
		DeliveryAddress: req.CourierAddress,
		Lines:           lines,
		IPAddress:       middleware.ClientIP(c),
	})
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

type verifyRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

func (h *Handler) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.service.VerifyPayment(c.Request.Context(), VerifyInput{
		GatewayOrderID: req.RazorpayOrderID,
		PaymentID:      req.RazorpayPaymentID,
		Signature:      req.RazorpaySignature,
		IPAddress:      middleware.ClientIP(c),
	})
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment verified", "order": order})
}

type failureRequest struct {
	RazorpayOrderID string `json:"razorpay_order_id" binding:"required"`
	Reason          string `json:"reason"`
}

func (h *Handler) ReportFailure(c *gin.Context) {
	var req failureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reason := req.Reason
	if reason == "" {
		reason = "payment failed at gateway"
	}

	if err := h.service.ReportPaymentFailure(c.Request.Context(), req.RazorpayOrderID, reason, middleware.ClientIP(c)); err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment failure recorded"})
}

// MyDonations lists the authenticated member's own receipts.
func (h *Handler) MyDonations(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	orders, err := h.service.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch donations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"donations": orders, "count": len(orders)})
}

// List serves the admin donation ledger (?status=&method=&search=&page=&limit=).
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	orders, total, err := h.service.List(c.Request.Context(), ListFilter{
		Status: c.Query("status"),
		Method: c.Query("method"),
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch donations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"donations": orders,
		"total":     total,
		"page":      page,
		"limit":     limit,
	})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("orderId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	order, err := h.service.GetOrder(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// Receipt streams the printable PDF receipt for a completed order. Members
// can only fetch their own receipts; admin routes skip the ownership check.
func (h *Handler) Receipt(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("orderId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	order, err := h.service.GetOrder(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.Message(err)})
		return
	}

	if user, ok := middleware.CurrentUser(c); ok && order.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your receipt"})
		return
	}

	if order.PaymentStatus != StatusCompleted {
		c.JSON(http.StatusConflict, gin.H{"error": "receipt is only available for completed donations"})
		return
	}

	pdf, err := GenerateReceiptPDF(order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate receipt"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+order.ReceiptNo+".pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Export streams the admin donation ledger as an Excel workbook.
func (h *Handler) Export(c *gin.Context) {
	orders, _, err := h.service.List(c.Request.Context(), ListFilter{
		Status: c.Query("status"),
		Method: c.Query("method"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch donations"})
		return
	}

	book, err := BuildLedgerWorkbook(orders)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build export"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=donations.xlsx")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", book)
}

// Stats serves the monthly donation chart (?year=2025).
func (h *Handler) Stats(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))

	stats, total, err := h.service.MonthlyTotals(c.Request.Context(), year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute donation stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"monthly": stats, "total": total})
}

func (h *Handler) AvailableYears(c *gin.Context) {
	years, err := h.service.AvailableYears(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch years"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"years": years})
}
