package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/buildcare-backend/internal/domain"
	"github.com/yungbote/buildcare-backend/internal/http/response"
	"github.com/yungbote/buildcare-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// POST /users
// body: { "email": "...", "name": "...", "photo_url": "..." }
func (uh *UserHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		PhotoURL string `json:"photo_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	u, err := uh.userService.Register(c.Request.Context(), &domain.User{
		Email:    req.Email,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondInserted(c, u.ID)
}

// GET /users/:email
func (uh *UserHandler) GetUser(c *gin.Context) {
	u, err := uh.userService.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, u)
}

// GET /members
func (uh *UserHandler) ListMembers(c *gin.Context) {
	out, err := uh.userService.ListMembers(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// PATCH /members/:id
func (uh *UserHandler) RemoveMember(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	n, err := uh.userService.RevokeMember(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondUpdated(c, n)
}
