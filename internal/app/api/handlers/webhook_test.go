package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/olharfest/inscricao-backend/internal/app/service/webhook"
)

type stubIngestor struct {
	res       *webhook.Result
	err       error
	gotBody   string
	gotSig    string
	callCount int
}

func (s *stubIngestor) Process(_ context.Context, raw []byte, signature string) (*webhook.Result, error) {
	s.callCount++
	s.gotBody = string(raw)
	s.gotSig = signature
	if s.err != nil {
		return nil, s.err
	}
	return s.res, nil
}

func performWebhook(t *testing.T, ing webhook.Ingestor, body, signature string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterWebhookRoutes(r, ing, zap.NewNop().Sugar())

	req := httptest.NewRequest(http.MethodPost, "/webhook/payment", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("X-Webhook-Signature", signature)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestApiPaymentWebhook_Acknowledges(t *testing.T) {
	ing := &stubIngestor{res: &webhook.Result{Outcome: webhook.OutcomeApplied, SessionID: "s1"}}
	w := performWebhook(t, ing, `{"event":"order.paid","id":"ord_1"}`, "sig123")

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"received":true}`, w.Body.String())
	require.Equal(t, `{"event":"order.paid","id":"ord_1"}`, ing.gotBody)
	require.Equal(t, "sig123", ing.gotSig)
}

func TestApiPaymentWebhook_DuplicateStillAcknowledges(t *testing.T) {
	ing := &stubIngestor{res: &webhook.Result{Outcome: webhook.OutcomeDuplicate, SessionID: "s1"}}
	w := performWebhook(t, ing, `{"event":"order.paid","id":"ord_1"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"received":true}`, w.Body.String())
}

func TestApiPaymentWebhook_MalformedPayload(t *testing.T) {
	ing := &stubIngestor{err: webhook.ErrMalformedPayload}
	w := performWebhook(t, ing, `{not json`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), `"received":false`)
}

func TestApiPaymentWebhook_BadSignature(t *testing.T) {
	ing := &stubIngestor{err: webhook.ErrBadSignature}
	w := performWebhook(t, ing, `{"event":"order.paid"}`, "bad")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestApiPaymentWebhook_StoreFailureIs5xx(t *testing.T) {
	ing := &stubIngestor{err: errors.New("db down")}
	w := performWebhook(t, ing, `{"event":"order.paid","id":"ord_1"}`, "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
