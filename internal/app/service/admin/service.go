package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/olharfest/inscricao-backend/internal/app/service/audit"
	"github.com/olharfest/inscricao-backend/internal/models"
	"github.com/olharfest/inscricao-backend/pkg/auth"
	"github.com/olharfest/inscricao-backend/pkg/logctx"
	"github.com/olharfest/inscricao-backend/pkg/types"
)

var (
	ErrUnauthenticated  = errors.New("caller is not authenticated")
	ErrPermissionDenied = errors.New("caller is not an admin")
	ErrNotFound         = errors.New("inscription not found")
	// ErrAlreadyFinalized rejects re-validation of an approved or rejected
	// inscription; approver fields are immutable once set.
	ErrAlreadyFinalized = errors.New("inscription already validated")
)

const defaultRejectionReason = "Motivo não especificado"

type ValidateRequest struct {
	InscriptionID  string `json:"inscriptionId" validate:"required"`
	Aprovado       bool   `json:"aprovado"`
	MotivoRejeicao string `json:"motivoRejeicao"`
}

type Result struct {
	InscriptionID string `json:"inscriptionId"`
	Aprovado      bool   `json:"aprovado"`
}

// Validator performs the approve/reject transition, including the role
// promotion side effect on approval.
type Validator interface {
	Validate(ctx context.Context, caller *auth.Identity, req *ValidateRequest) (*Result, error)
}

type Service struct {
	db       *gorm.DB
	log      *zap.SugaredLogger
	auditSvc *audit.Service
}

func NewService(db *gorm.DB, log *zap.SugaredLogger, auditSvc *audit.Service) Validator {
	return &Service{db: db, log: log, auditSvc: auditSvc}
}

// Validate approves or rejects a pending inscription. The inscription status
// write and the applicant's role promotion run in one transaction, so a
// failed promotion rolls the approval back instead of leaving the two
// records disagreeing.
func (s *Service) Validate(ctx context.Context, caller *auth.Identity, req *ValidateRequest) (*Result, error) {
	if caller == nil || caller.UID == "" {
		s.auditSvc.Log(ctx, types.LogLevelSecurity, "admin_validate_unauthenticated", nil,
			audit.CtxContext(ctx, "validateInscription", ""))
		return nil, ErrUnauthenticated
	}

	var adminUser models.User
	err := s.db.WithContext(ctx).Where("id = ?", caller.UID).First(&adminUser).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load caller record: %w", err)
	}
	if !adminUser.IsAdmin() {
		s.auditSvc.Log(ctx, types.LogLevelSecurity, "admin_validate_permission_denied", map[string]any{
			"inscription_id": req.InscriptionID,
		}, audit.CtxContext(ctx, "validateInscription", caller.UID))
		return nil, ErrPermissionDenied
	}

	var insc models.Inscription
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", req.InscriptionID).First(&insc).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrNotFound, req.InscriptionID)
			}
			return fmt.Errorf("failed to load inscription: %w", err)
		}

		now := time.Now()
		var updates map[string]any
		if req.Aprovado {
			updates = map[string]any{
				"status":      types.InscriptionStatusApproved,
				"approved_by": caller.UID,
				"approved_at": now,
			}
		} else {
			reason := req.MotivoRejeicao
			if reason == "" {
				reason = defaultRejectionReason
			}
			updates = map[string]any{
				"status":           types.InscriptionStatusRejected,
				"rejected_by":      caller.UID,
				"rejected_at":      now,
				"rejection_reason": reason,
			}
		}

		res := tx.Model(&models.Inscription{}).
			Where("id = ? AND status = ?", req.InscriptionID, types.InscriptionStatusPending).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("failed to update inscription: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: %s is %s", ErrAlreadyFinalized, insc.ID, insc.Status)
		}

		if req.Aprovado {
			return s.promoteUser(tx, &insc)
		}
		return nil
	})
	if err != nil {
		logctx.FromCtx(ctx, s.log).Errorw("admin_validate_failed",
			"inscription_id", req.InscriptionID, "aprovado", req.Aprovado, "error", err.Error())
		return nil, err
	}

	action := lo.Ternary(req.Aprovado, "approve", "reject")
	s.auditSvc.Log(ctx, types.LogLevelBusiness, "inscription_validated", map[string]any{
		"inscription_id": req.InscriptionID,
		"action":         action,
		"tipo":           insc.Tipo,
	}, audit.CtxContext(ctx, "validateInscription", caller.UID))

	return &Result{InscriptionID: req.InscriptionID, Aprovado: req.Aprovado}, nil
}

// promoteUser sets the applicant's platform role to the inscription's
// professional type, creating the user record when it does not exist yet.
func (s *Service) promoteUser(tx *gorm.DB, insc *models.Inscription) error {
	res := tx.Model(&models.User{}).
		Where("id = ?", insc.UserID).
		Update("role", string(insc.Tipo))
	if res.Error != nil {
		return fmt.Errorf("failed to promote user role: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		user := &models.User{
			ID:    insc.UserID,
			Email: insc.UserEmail,
			Name:  insc.UserName,
			Role:  string(insc.Tipo),
		}
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create promoted user: %w", err)
		}
	}
	return nil
}
