package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/buildcare-backend/internal/http/response"
	"github.com/yungbote/buildcare-backend/internal/platform/ctxutil"
	"github.com/yungbote/buildcare-backend/internal/services"
)

type PaymentHandler struct {
	paymentService services.PaymentService
}

func NewPaymentHandler(paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// POST /create-checkout-session
// body: { "price": 1200 }
func (ph *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	var req struct {
		Price float64 `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	email := ""
	if id := ctxutil.GetIdentity(c.Request.Context()); id != nil {
		email = id.Email
	}
	secret, err := ph.paymentService.Authorize(c.Request.Context(), email, req.Price)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"clientSecret": secret})
}

// POST /payments?acceptRequestId=&email=
// body: { "price": 1200, "transactionId": "...", "month": "..." }
func (ph *PaymentHandler) Settle(c *gin.Context) {
	contractID, err := uuid.Parse(c.Query("acceptRequestId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	var req struct {
		Price         float64 `json:"price"`
		TransactionID string  `json:"transactionId"`
		Month         string  `json:"month"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	rec, err := ph.paymentService.Settle(c.Request.Context(), services.SettleInput{
		Email:         c.Query("email"),
		ContractID:    contractID,
		Amount:        req.Price,
		TransactionID: req.TransactionID,
		Month:         req.Month,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"paymentResult": response.InsertResult{Acknowledged: true, InsertedID: rec.ID.String()},
		"deleteResult":  response.DeleteResult{Acknowledged: true, DeletedCount: 1},
	})
}

// GET /paymentHistory/:email
func (ph *PaymentHandler) History(c *gin.Context) {
	out, err := ph.paymentService.History(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}
