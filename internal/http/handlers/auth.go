package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/buildcare-backend/internal/http/response"
	"github.com/yungbote/buildcare-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /jwt
// body: { "email": "..." }
func (ah *AuthHandler) IssueToken(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	token, err := ah.authService.MintToken(c.Request.Context(), req.Email)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"token":      token,
		"expires_in": int(ah.authService.GetAccessTTL().Seconds()),
	})
}
