package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/buildcare-backend/internal/domain"
	"github.com/yungbote/buildcare-backend/internal/http/response"
	"github.com/yungbote/buildcare-backend/internal/services"
)

type BuildingHandler struct {
	buildingService services.BuildingService
}

func NewBuildingHandler(buildingService services.BuildingService) *BuildingHandler {
	return &BuildingHandler{buildingService: buildingService}
}

// GET /apartments?page=&limit=
func (bh *BuildingHandler) ListApartments(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	out, err := bh.buildingService.ListApartments(c.Request.Context(), page, limit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /apartmentsCount
func (bh *BuildingHandler) CountApartments(c *gin.Context) {
	total, err := bh.buildingService.CountApartments(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"total": total})
}

// GET /search?search=
func (bh *BuildingHandler) Search(c *gin.Context) {
	maxRent, err := strconv.ParseFloat(c.Query("search"), 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := bh.buildingService.SearchApartments(c.Request.Context(), maxRent)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /makeAnnouncements
func (bh *BuildingHandler) ListAnnouncements(c *gin.Context) {
	out, err := bh.buildingService.ListAnnouncements(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /makeAnnouncements
// body: { "title": "...", "description": "..." }
func (bh *BuildingHandler) CreateAnnouncement(c *gin.Context) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	a, err := bh.buildingService.CreateAnnouncement(c.Request.Context(), &domain.Announcement{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondInserted(c, a.ID)
}
