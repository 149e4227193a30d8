package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/olharfest/inscricao-backend/internal/app/service/checkout"
	"github.com/olharfest/inscricao-backend/pkg/auth"
	"github.com/olharfest/inscricao-backend/pkg/response"
	"github.com/olharfest/inscricao-backend/pkg/types"
)

type createCheckoutResp struct {
	Success        bool             `json:"success"`
	CheckoutID     string           `json:"checkoutId"`
	GatewayOrderID string           `json:"gatewayOrderId"`
	CheckoutURL    string           `json:"checkoutUrl"`
	Amount         int64            `json:"amount"`
	Provenance     types.Provenance `json:"provenance"`
}

// @Summary      Create checkout
// @Description  Creates a payment session for the inscription fee and returns the hosted checkout URL.
// @Tags         Checkout
// @Accept       json
// @Produce      json
// @Param        request body checkout.CreateRequest true "Checkout request"
// @Success      200  {object}  handlers.RespCreateCheckout
// @Router       /api/v1/checkout [post]
func ApiCreateCheckout(orc checkout.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkout.CreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		res, err := orc.Create(c.Request.Context(), auth.FromGin(c), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](codeForError(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(createCheckoutResp{
			Success:        true,
			CheckoutID:     res.CheckoutID,
			GatewayOrderID: res.GatewayOrderID,
			CheckoutURL:    res.CheckoutURL,
			Amount:         res.Amount,
			Provenance:     res.Provenance,
		}))
	}
}

func RegisterCheckoutRoutes(r gin.IRouter, orc checkout.Orchestrator) {
	r.POST("/checkout", ApiCreateCheckout(orc))
}
