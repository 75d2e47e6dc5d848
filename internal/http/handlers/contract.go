package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/buildcare-backend/internal/http/response"
	"github.com/yungbote/buildcare-backend/internal/services"
)

type ContractHandler struct {
	contractService services.ContractService
}

func NewContractHandler(contractService services.ContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

// GET /acceptRequests/:email
func (ch *ContractHandler) Get(c *gin.Context) {
	out, err := ch.contractService.Get(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// PATCH /acceptRequest/:email?month=
func (ch *ContractHandler) SetMonth(c *gin.Context) {
	n, err := ch.contractService.SetMonth(c.Request.Context(), c.Param("email"), c.Query("month"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondUpdated(c, n)
}
