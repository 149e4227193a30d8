package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/olharfest/inscricao-backend/internal/app/service/webhook"
	"github.com/olharfest/inscricao-backend/pkg/logctx"
)

const webhookBodyLimit = 1 << 20

// @Summary      Payment webhook
// @Description  Handles asynchronous payment-provider callbacks. Responds 200 to everything actionable or safely ignorable; 4xx only on malformed payloads or bad signatures.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Router       /api/v1/webhook/payment [post]
func ApiPaymentWebhook(ing webhook.Ingestor, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := io.ReadAll(io.LimitReader(c.Request.Body, webhookBodyLimit))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"received": false})
			return
		}

		res, err := ing.Process(c.Request.Context(), raw, c.GetHeader("X-Webhook-Signature"))
		switch {
		case errors.Is(err, webhook.ErrMalformedPayload):
			c.JSON(http.StatusBadRequest, gin.H{"received": false, "error": "malformed payload"})
			return
		case errors.Is(err, webhook.ErrBadSignature):
			c.JSON(http.StatusUnauthorized, gin.H{"received": false, "error": "invalid signature"})
			return
		case err != nil:
			// Store failure: a 5xx makes the provider redeliver later.
			logctx.FromGin(c, log).Errorw("webhook_process_error", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"received": false})
			return
		}

		logctx.FromGin(c, log).Infow("webhook_processed", "outcome", res.Outcome, "session_id", res.SessionID)
		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}

func RegisterWebhookRoutes(r gin.IRouter, ing webhook.Ingestor, log *zap.SugaredLogger) {
	r.POST("/webhook/payment", ApiPaymentWebhook(ing, log))
}
