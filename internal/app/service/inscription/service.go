package inscription

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/olharfest/inscricao-backend/internal/app/service/audit"
	"github.com/olharfest/inscricao-backend/internal/models"
	"github.com/olharfest/inscricao-backend/pkg/auth"
	"github.com/olharfest/inscricao-backend/pkg/logctx"
	"github.com/olharfest/inscricao-backend/pkg/tool"
	"github.com/olharfest/inscricao-backend/pkg/types"
)

var (
	ErrUnauthenticated = errors.New("caller is not authenticated")
	ErrInvalidArgument = errors.New("invalid inscription submission")
	ErrAlreadyExists   = errors.New("inscription already exists for email")
	ErrNotFound        = errors.New("inscription not found")
)

// CreateRequest is the applicant submission. All fields are required.
type CreateRequest struct {
	UserEmail   string `json:"userEmail" validate:"required,email"`
	UserName    string `json:"userName" validate:"required"`
	Tipo        string `json:"tipo" validate:"required"`
	Experiencia string `json:"experiencia" validate:"required"`
	Portfolio   string `json:"portfolio" validate:"required,url"`
	Telefone    string `json:"telefone" validate:"required"`
}

// Registry owns the inscription lifecycle up to admin validation.
type Registry interface {
	Create(ctx context.Context, caller *auth.Identity, req *CreateRequest) (string, error)
	Get(ctx context.Context, id string) (*models.Inscription, error)
}

type Service struct {
	db       *gorm.DB
	log      *zap.SugaredLogger
	auditSvc *audit.Service
	validate *validator.Validate
}

func NewService(db *gorm.DB, log *zap.SugaredLogger, auditSvc *audit.Service) Registry {
	return &Service{db: db, log: log, auditSvc: auditSvc, validate: validator.New()}
}

// Create registers a pending inscription. The row id is derived from the
// normalized email, so the insert is the atomic uniqueness gate: concurrent
// submissions for one email produce exactly one row.
func (s *Service) Create(ctx context.Context, caller *auth.Identity, req *CreateRequest) (string, error) {
	if caller == nil || caller.UID == "" {
		s.auditSvc.Log(ctx, types.LogLevelSecurity, "inscription_create_unauthenticated", nil,
			audit.CtxContext(ctx, "createInscription", ""))
		return "", ErrUnauthenticated
	}
	// Normalize before validating so case or whitespace variants of a valid
	// address are accepted and collapse to one identity.
	email := strings.ToLower(strings.TrimSpace(req.UserEmail))
	req.UserEmail = email
	if err := s.validate.Struct(req); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	insc := &models.Inscription{
		ID:          tool.InscriptionIDForEmail(email),
		UserID:      caller.UID,
		UserEmail:   email,
		UserName:    req.UserName,
		Tipo:        types.ProfessionalType(req.Tipo),
		Experiencia: req.Experiencia,
		Portfolio:   req.Portfolio,
		Telefone:    req.Telefone,
		Status:      types.InscriptionStatusPending,
	}

	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(insc)
	if res.Error != nil {
		logctx.FromCtx(ctx, s.log).Errorw("inscription_create_failed", "email", email, "error", res.Error.Error())
		return "", fmt.Errorf("failed to create inscription: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return "", fmt.Errorf("%w: %s", ErrAlreadyExists, email)
	}

	s.auditSvc.Log(ctx, types.LogLevelBusiness, "inscription_created", map[string]any{
		"inscription_id": insc.ID,
		"tipo":           insc.Tipo,
	}, audit.CtxContext(ctx, "createInscription", caller.UID))

	return insc.ID, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Inscription, error) {
	var insc models.Inscription
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&insc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to load inscription: %w", err)
	}
	return &insc, nil
}
