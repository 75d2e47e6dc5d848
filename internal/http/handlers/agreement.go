package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/buildcare-backend/internal/domain"
	"github.com/yungbote/buildcare-backend/internal/http/response"
	"github.com/yungbote/buildcare-backend/internal/services"
)

type AgreementHandler struct {
	agreementService    services.AgreementService
	adjudicationService services.AdjudicationService
}

func NewAgreementHandler(agreementService services.AgreementService, adjudicationService services.AdjudicationService) *AgreementHandler {
	return &AgreementHandler{
		agreementService:    agreementService,
		adjudicationService: adjudicationService,
	}
}

type agreementBody struct {
	UserName    string  `json:"userName"`
	FloorNo     int     `json:"floorNo"`
	BlockName   string  `json:"blockName"`
	ApartmentNo string  `json:"apartmentNo"`
	Rent        float64 `json:"rent"`
}

// POST /agreements/:email
// body: { "userName", "floorNo", "blockName", "apartmentNo", "rent", ... }
// Unknown fields are kept verbatim in details.
func (ah *AgreementHandler) Submit(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	var body agreementBody
	if err := json.Unmarshal(raw, &body); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	req, err := ah.agreementService.Submit(c.Request.Context(), c.Param("email"), &domain.AgreementRequest{
		UserName:    body.UserName,
		FloorNo:     body.FloorNo,
		BlockName:   body.BlockName,
		ApartmentNo: body.ApartmentNo,
		Rent:        body.Rent,
		Details:     datatypes.JSON(raw),
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondInserted(c, req.ID)
}

// GET /agreements
func (ah *AgreementHandler) List(c *gin.Context) {
	out, err := ah.agreementService.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /agreements/:email
func (ah *AgreementHandler) Get(c *gin.Context) {
	out, err := ah.agreementService.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

type adjudicationResponse struct {
	response.UpdateResult
	Decision     string  `json:"decision"`
	DeletedCount int64   `json:"deletedCount"`
	ContractID   *string `json:"contractId"`
}

// PATCH /agreementsRequest/:id?button=accept|reject&email=
func (ah *AgreementHandler) Adjudicate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	decision, err := services.ParseDecision(c.Query("button"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	res, err := ah.adjudicationService.Adjudicate(c.Request.Context(), id, c.Query("email"), decision)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	out := adjudicationResponse{
		UpdateResult: response.UpdateResult{
			Acknowledged:  true,
			MatchedCount:  res.RolesUpdated,
			ModifiedCount: res.RolesUpdated,
		},
		Decision:     string(res.Decision),
		DeletedCount: res.AgreementsDeleted,
	}
	if res.Contract != nil {
		cid := res.Contract.ID.String()
		out.ContractID = &cid
	}
	response.RespondOK(c, out)
}
