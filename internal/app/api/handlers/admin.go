package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	adminsvc "github.com/olharfest/inscricao-backend/internal/app/service/admin"
	"github.com/olharfest/inscricao-backend/pkg/auth"
	"github.com/olharfest/inscricao-backend/pkg/response"
)

type validateInscriptionResp struct {
	Success       bool   `json:"success"`
	InscriptionID string `json:"inscriptionId"`
	Aprovado      bool   `json:"aprovado"`
}

// @Summary      Validate inscription
// @Description  Approves or rejects a pending inscription. Approval promotes the applicant's platform role. Admin only.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body admin.ValidateRequest true "Validation request"
// @Success      200  {object}  handlers.RespValidateInscription
// @Router       /api/v1/admin/inscriptions/validate [post]
func ApiValidateInscription(val adminsvc.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adminsvc.ValidateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if req.InscriptionID == "" {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "missing inscriptionId"))
			return
		}

		res, err := val.Validate(c.Request.Context(), auth.FromGin(c), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](codeForError(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(validateInscriptionResp{
			Success:       true,
			InscriptionID: res.InscriptionID,
			Aprovado:      res.Aprovado,
		}))
	}
}

func RegisterAdminRoutes(r gin.IRouter, val adminsvc.Validator) {
	r.POST("/inscriptions/validate", ApiValidateInscription(val))
}
