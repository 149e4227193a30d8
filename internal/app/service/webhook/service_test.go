package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/olharfest/inscricao-backend/internal/app/service/audit"
	"github.com/olharfest/inscricao-backend/internal/models"
	"github.com/olharfest/inscricao-backend/pkg/config"
	"github.com/olharfest/inscricao-backend/pkg/tool"
	"github.com/olharfest/inscricao-backend/pkg/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.CheckoutSession{}, &models.Inscription{}, &models.SystemLog{}, &models.SecurityLog{},
	))
	return db
}

func newTestIngestor(t *testing.T, secret string) (Ingestor, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	log := zap.NewNop().Sugar()
	cfg := &config.Config{}
	cfg.Gateway.WebhookSecret = secret
	return NewService(db, log, cfg, audit.New(db, log)), db
}

func seedSession(t *testing.T, db *gorm.DB, status types.CheckoutStatus) *models.CheckoutSession {
	t.Helper()
	s := &models.CheckoutSession{
		ID:             tool.GenerateUUIDV7(),
		ExternalID:     "ext_1",
		GatewayOrderID: "ord_1",
		UserID:         "user-1",
		UserEmail:      "a@x.com",
		Amount:         5000,
		Currency:       "BRL",
		Status:         status,
		Provenance:     types.ProvenanceSimulated,
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

func paidEvent(orderID string) []byte {
	return []byte(fmt.Sprintf(`{"event":"order.paid","id":%q,"status":"paid","amount":5000,"currency":"BRL","payment":{"method":"pix","status":"paid","transactionId":"tx-1"}}`, orderID))
}

func TestProcess_MalformedPayload(t *testing.T) {
	ing, _ := newTestIngestor(t, "")
	_, err := ing.Process(context.Background(), []byte("{not json"), "")
	require.ErrorIs(t, err, ErrMalformedPayload)
}

func TestProcess_AppliesPaidTransition(t *testing.T) {
	ing, db := newTestIngestor(t, "")
	s := seedSession(t, db, types.CheckoutStatusPending)

	res, err := ing.Process(context.Background(), paidEvent(s.GatewayOrderID), "")
	require.NoError(t, err)
	require.Equal(t, OutcomeApplied, res.Outcome)
	require.Equal(t, types.CheckoutStatusPaid, res.Status)

	var stored models.CheckoutSession
	require.NoError(t, db.First(&stored, "id = ?", s.ID).Error)
	require.Equal(t, types.CheckoutStatusPaid, stored.Status)
	require.NotNil(t, stored.PaidAt)
}

func TestProcess_RedeliveryIsIdempotent(t *testing.T) {
	ing, db := newTestIngestor(t, "")
	s := seedSession(t, db, types.CheckoutStatusPending)

	_, err := ing.Process(context.Background(), paidEvent(s.GatewayOrderID), "")
	require.NoError(t, err)

	res, err := ing.Process(context.Background(), paidEvent(s.GatewayOrderID), "")
	require.NoError(t, err)
	require.Equal(t, OutcomeDuplicate, res.Outcome)

	var stored models.CheckoutSession
	require.NoError(t, db.First(&stored, "id = ?", s.ID).Error)
	require.Equal(t, types.CheckoutStatusPaid, stored.Status)
}

func TestProcess_TerminalStatesNeverMove(t *testing.T) {
	for _, from := range []types.CheckoutStatus{
		types.CheckoutStatusPaid, types.CheckoutStatusCancelled, types.CheckoutStatusExpired,
	} {
		t.Run(string(from), func(t *testing.T) {
			ing, db := newTestIngestor(t, "")
			s := seedSession(t, db, from)

			for _, evt := range []string{"order.paid", "order.cancelled", "order.expired"} {
				body := []byte(fmt.Sprintf(`{"event":%q,"id":%q}`, evt, s.GatewayOrderID))
				res, err := ing.Process(context.Background(), body, "")
				require.NoError(t, err)
				require.Equal(t, OutcomeDuplicate, res.Outcome)
			}

			var stored models.CheckoutSession
			require.NoError(t, db.First(&stored, "id = ?", s.ID).Error)
			require.Equal(t, from, stored.Status)
		})
	}
}

func TestProcess_CancelledAndExpired(t *testing.T) {
	for evt, want := range map[string]types.CheckoutStatus{
		"order.cancelled": types.CheckoutStatusCancelled,
		"order.expired":   types.CheckoutStatusExpired,
	} {
		ing, db := newTestIngestor(t, "")
		s := seedSession(t, db, types.CheckoutStatusPending)

		body := []byte(fmt.Sprintf(`{"event":%q,"id":%q}`, evt, s.GatewayOrderID))
		res, err := ing.Process(context.Background(), body, "")
		require.NoError(t, err)
		require.Equal(t, OutcomeApplied, res.Outcome)
		require.Equal(t, want, res.Status)
	}
}

func TestProcess_UnknownOrderAcknowledged(t *testing.T) {
	ing, _ := newTestIngestor(t, "")
	res, err := ing.Process(context.Background(), paidEvent("ord_missing"), "")
	require.NoError(t, err)
	require.Equal(t, OutcomeIgnored, res.Outcome)
}

func TestProcess_UnrecognizedEventAcknowledged(t *testing.T) {
	ing, db := newTestIngestor(t, "")
	s := seedSession(t, db, types.CheckoutStatusPending)

	body := []byte(fmt.Sprintf(`{"event":"order.refunded","id":%q}`, s.GatewayOrderID))
	res, err := ing.Process(context.Background(), body, "")
	require.NoError(t, err)
	require.Equal(t, OutcomeIgnored, res.Outcome)

	var stored models.CheckoutSession
	require.NoError(t, db.First(&stored, "id = ?", s.ID).Error)
	require.Equal(t, types.CheckoutStatusPending, stored.Status)
}

func TestProcess_ResolvesByExternalIDFallback(t *testing.T) {
	ing, db := newTestIngestor(t, "")
	s := seedSession(t, db, types.CheckoutStatusPending)

	body := []byte(`{"event":"order.paid","id":"ord_unknown","metadata":{"externalId":"ext_1"}}`)
	res, err := ing.Process(context.Background(), body, "")
	require.NoError(t, err)
	require.Equal(t, OutcomeApplied, res.Outcome)
	require.Equal(t, s.ID, res.SessionID)
}

func TestProcess_PaidDoesNotApproveInscription(t *testing.T) {
	ing, db := newTestIngestor(t, "")
	s := seedSession(t, db, types.CheckoutStatusPending)

	insc := &models.Inscription{
		ID: tool.InscriptionIDForEmail(s.UserEmail), UserID: s.UserID, UserEmail: s.UserEmail,
		UserName: "Ana", Tipo: "fotografo", Experiencia: "x", Portfolio: "https://p.example.com",
		Telefone: "+55", Status: types.InscriptionStatusPending,
	}
	require.NoError(t, db.Create(insc).Error)

	_, err := ing.Process(context.Background(), paidEvent(s.GatewayOrderID), "")
	require.NoError(t, err)

	var stored models.Inscription
	require.NoError(t, db.First(&stored, "id = ?", insc.ID).Error)
	require.Equal(t, types.InscriptionStatusPending, stored.Status)
}

func TestProcess_SignatureVerification(t *testing.T) {
	const secret = "whsec_test"
	ing, db := newTestIngestor(t, secret)
	s := seedSession(t, db, types.CheckoutStatusPending)
	body := paidEvent(s.GatewayOrderID)

	_, err := ing.Process(context.Background(), body, "deadbeef")
	require.ErrorIs(t, err, ErrBadSignature)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	res, err := ing.Process(context.Background(), body, hex.EncodeToString(mac.Sum(nil)))
	require.NoError(t, err)
	require.Equal(t, OutcomeApplied, res.Outcome)
}
