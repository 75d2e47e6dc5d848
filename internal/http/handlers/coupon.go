package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/buildcare-backend/internal/domain"
	"github.com/yungbote/buildcare-backend/internal/http/response"
	"github.com/yungbote/buildcare-backend/internal/services"
)

type CouponHandler struct {
	couponService services.CouponService
}

func NewCouponHandler(couponService services.CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService}
}

// GET /couponCodes
func (ch *CouponHandler) List(c *gin.Context) {
	out, err := ch.couponService.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /couponCodes
// body: { "code": "...", "discount_percent": 20, "description": "..." }
func (ch *CouponHandler) Create(c *gin.Context) {
	var req struct {
		Code            string  `json:"code"`
		DiscountPercent float64 `json:"discount_percent"`
		Description     string  `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := ch.couponService.Create(c.Request.Context(), &domain.Coupon{
		Code:            req.Code,
		DiscountPercent: req.DiscountPercent,
		Description:     req.Description,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondInserted(c, out.ID)
}

// DELETE /couponCodes/:id
func (ch *CouponHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	n, err := ch.couponService.Delete(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondDeleted(c, n)
}

// GET /couponCheck/:code?email=
func (ch *CouponHandler) Check(c *gin.Context) {
	contract, err := ch.couponService.ApplyCoupon(c.Request.Context(), c.Query("email"), c.Param("code"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"acknowledged":  true,
		"matchedCount":  1,
		"modifiedCount": 1,
		"rent":          contract.Rent,
	})
}
