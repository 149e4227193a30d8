package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/olharfest/inscricao-backend/internal/app/service/inscription"
	"github.com/olharfest/inscricao-backend/pkg/auth"
	"github.com/olharfest/inscricao-backend/pkg/response"
)

type createInscriptionResp struct {
	Success       bool   `json:"success"`
	InscriptionID string `json:"inscriptionId"`
}

// @Summary      Create inscription
// @Description  Registers an audiovisual-professional application for the authenticated caller.
// @Tags         Inscription
// @Accept       json
// @Produce      json
// @Param        request body inscription.CreateRequest true "Inscription submission"
// @Success      200  {object}  handlers.RespCreateInscription
// @Router       /api/v1/inscriptions [post]
func ApiCreateInscription(reg inscription.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req inscription.CreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		id, err := reg.Create(c.Request.Context(), auth.FromGin(c), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](codeForError(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(createInscriptionResp{Success: true, InscriptionID: id}))
	}
}

// @Summary      Get inscription
// @Tags         Inscription
// @Produce      json
// @Param        id path string true "Inscription id"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/inscriptions/{id} [get]
func ApiGetInscription(reg inscription.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		insc, err := reg.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](codeForError(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(insc))
	}
}

func RegisterInscriptionRoutes(r gin.IRouter, reg inscription.Registry) {
	r.POST("/inscriptions", ApiCreateInscription(reg))
	r.GET("/inscriptions/:id", ApiGetInscription(reg))
}
