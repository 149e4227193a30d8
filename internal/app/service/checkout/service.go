package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/olharfest/inscricao-backend/internal/app/service/audit"
	"github.com/olharfest/inscricao-backend/internal/models"
	"github.com/olharfest/inscricao-backend/internal/platform/gateway"
	"github.com/olharfest/inscricao-backend/pkg/auth"
	"github.com/olharfest/inscricao-backend/pkg/config"
	"github.com/olharfest/inscricao-backend/pkg/logctx"
	"github.com/olharfest/inscricao-backend/pkg/tool"
	"github.com/olharfest/inscricao-backend/pkg/types"
)

var (
	ErrUnauthenticated = errors.New("caller is not authenticated")
	ErrInvalidArgument = errors.New("invalid checkout submission")
)

// CreateRequest mirrors the inscription submission plus an optional
// idempotency token. Retrying the identical logical submission with the same
// externalId returns the already-created session.
type CreateRequest struct {
	ExternalID string `json:"externalId"`
	UserEmail  string `json:"userEmail" validate:"required,email"`
	UserName   string `json:"userName" validate:"required"`
	Telefone   string `json:"telefone" validate:"required"`
}

type Result struct {
	CheckoutID     string           `json:"checkoutId"`
	GatewayOrderID string           `json:"gatewayOrderId"`
	CheckoutURL    string           `json:"checkoutUrl"`
	Amount         int64            `json:"amount"`
	Currency       string           `json:"currency"`
	Provenance     types.Provenance `json:"provenance"`
}

// Orchestrator creates payment sessions for inscription fees.
type Orchestrator interface {
	Create(ctx context.Context, caller *auth.Identity, req *CreateRequest) (*Result, error)
}

type Service struct {
	db       *gorm.DB
	log      *zap.SugaredLogger
	cfg      *config.Config
	gw       gateway.Client
	auditSvc *audit.Service
	validate *validator.Validate
}

func NewService(db *gorm.DB, log *zap.SugaredLogger, cfg *config.Config, gw gateway.Client, auditSvc *audit.Service) Orchestrator {
	return &Service{db: db, log: log, cfg: cfg, gw: gw, auditSvc: auditSvc, validate: validator.New()}
}

// Create builds the gateway order, delegates to the configured client
// strategy and persists the session before returning. The session row is the
// durable record the webhook ingestor updates later; it always carries the
// domain and provenance that actually served the order.
func (s *Service) Create(ctx context.Context, caller *auth.Identity, req *CreateRequest) (*Result, error) {
	if caller == nil || caller.UID == "" {
		s.auditSvc.Log(ctx, types.LogLevelSecurity, "checkout_create_unauthenticated", nil,
			audit.CtxContext(ctx, "createCheckout", ""))
		return nil, ErrUnauthenticated
	}
	email := strings.ToLower(strings.TrimSpace(req.UserEmail))
	req.UserEmail = email
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	externalID := req.ExternalID
	if externalID == "" {
		externalID = "ext_" + tool.GenerateUUIDV7()
	}

	// Idempotent replay: a known external id returns the stored session, but
	// only to the caller who created it.
	if existing, err := s.findByExternalID(ctx, externalID); err != nil {
		return nil, err
	} else if existing != nil {
		if existing.UserID != caller.UID {
			s.auditSvc.Log(ctx, types.LogLevelSecurity, "checkout_external_id_owner_mismatch", map[string]any{
				"external_id": externalID,
				"owner_id":    existing.UserID,
			}, audit.CtxContext(ctx, "createCheckout", caller.UID))
			return nil, fmt.Errorf("%w: externalId already in use", ErrInvalidArgument)
		}
		return toResult(existing), nil
	}
	orderReq := &gateway.OrderRequest{
		ExternalID:  externalID,
		Amount:      s.cfg.Inscription.FeeAmount,
		Currency:    s.cfg.Inscription.Currency,
		Description: s.cfg.Inscription.Description,
		Customer: gateway.Customer{
			Name:  req.UserName,
			Email: email,
			Phone: req.Telefone,
		},
		Items: []gateway.LineItem{{
			Description: s.cfg.Inscription.Description,
			Quantity:    1,
			Amount:      s.cfg.Inscription.FeeAmount,
		}},
		RedirectURL: s.cfg.Gateway.RedirectURL,
		WebhookURL:  s.cfg.Gateway.WebhookURL,
	}

	order, err := s.gw.CreateOrder(ctx, orderReq)
	if err != nil {
		// Real mode: the failure is terminal for this request, no session is
		// faked. The caller may resubmit with the same external id.
		s.auditSvc.Log(ctx, types.LogLevelError, "checkout_gateway_failed", map[string]any{
			"external_id": externalID,
		}, audit.CtxContext(ctx, "createCheckout", caller.UID))
		return nil, fmt.Errorf("failed to create gateway order: %w", err)
	}

	payload, _ := json.Marshal(orderReq)
	session := &models.CheckoutSession{
		ID:             tool.GenerateUUIDV7(),
		ExternalID:     externalID,
		GatewayOrderID: order.ID,
		UserID:         caller.UID,
		UserEmail:      email,
		Amount:         s.cfg.Inscription.FeeAmount,
		Currency:       s.cfg.Inscription.Currency,
		Status:         types.CheckoutStatusPending,
		CheckoutURL:    order.CheckoutURL,
		Provenance:     order.Provenance,
		Domain:         order.Domain,
		Payload:        datatypes.JSON(payload),
	}

	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(session)
	if res.Error != nil {
		logctx.FromCtx(ctx, s.log).Errorw("checkout_session_persist_failed", "external_id", externalID, "error", res.Error.Error())
		return nil, fmt.Errorf("failed to persist checkout session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Lost a race on the external id; the winner's session is the truth.
		existing, err := s.findByExternalID(ctx, externalID)
		if err != nil || existing == nil {
			return nil, fmt.Errorf("checkout session conflict on external id %s", externalID)
		}
		if existing.UserID != caller.UID {
			return nil, fmt.Errorf("%w: externalId already in use", ErrInvalidArgument)
		}
		return toResult(existing), nil
	}

	s.auditSvc.Log(ctx, types.LogLevelBusiness, "checkout_created", map[string]any{
		"checkout_id":      session.ID,
		"external_id":      externalID,
		"gateway_order_id": order.ID,
		"provenance":       order.Provenance,
		"amount":           session.Amount,
	}, audit.CtxContext(ctx, "createCheckout", caller.UID))

	return toResult(session), nil
}

func (s *Service) findByExternalID(ctx context.Context, externalID string) (*models.CheckoutSession, error) {
	var session models.CheckoutSession
	err := s.db.WithContext(ctx).Where("external_id = ?", externalID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load checkout session: %w", err)
	}
	return &session, nil
}

func toResult(session *models.CheckoutSession) *Result {
	return &Result{
		CheckoutID:     session.ID,
		GatewayOrderID: session.GatewayOrderID,
		CheckoutURL:    session.CheckoutURL,
		Amount:         session.Amount,
		Currency:       session.Currency,
		Provenance:     session.Provenance,
	}
}
