package models

import (
	"time"

	"github.com/olharfest/inscricao-backend/pkg/types"
)

// Inscription is an applicant's audiovisual-professional registration.
// The id is derived from the normalized applicant email, which makes the
// insert itself enforce the one-inscription-per-email invariant.
type Inscription struct {
	ID          string                 `gorm:"column:id;primary_key;type:uuid" json:"id"`
	UserID      string                 `gorm:"column:user_id;type:varchar(64);not null;index" json:"user_id"`
	UserEmail   string                 `gorm:"column:user_email;type:varchar(255);not null;uniqueIndex" json:"user_email"`
	UserName    string                 `gorm:"column:user_name;type:varchar(255);not null" json:"user_name"`
	Tipo        types.ProfessionalType `gorm:"column:tipo;type:varchar(64);not null" json:"tipo"`
	Experiencia string                 `gorm:"column:experiencia;type:text;not null" json:"experiencia"`
	Portfolio   string                 `gorm:"column:portfolio;type:varchar(512);not null" json:"portfolio"`
	Telefone    string                 `gorm:"column:telefone;type:varchar(64);not null" json:"telefone"`

	Status types.InscriptionStatus `gorm:"column:status;type:varchar(32);not null;index" json:"status"`
	// Approver fields are written only by the admin validator.
	ApprovedBy      *string    `gorm:"column:approved_by;type:varchar(64)" json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `gorm:"column:approved_at;default:null" json:"approved_at,omitempty"`
	RejectedBy      *string    `gorm:"column:rejected_by;type:varchar(64)" json:"rejected_by,omitempty"`
	RejectedAt      *time.Time `gorm:"column:rejected_at;default:null" json:"rejected_at,omitempty"`
	RejectionReason *string    `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Inscription) TableName() string {
	return "inscription"
}

func (i *Inscription) Pending() bool {
	return i != nil && i.Status == types.InscriptionStatusPending
}
