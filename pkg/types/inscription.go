package types

type InscriptionStatus string

const (
	InscriptionStatusPending  InscriptionStatus = "pending"
	InscriptionStatusApproved InscriptionStatus = "approved"
	InscriptionStatusRejected InscriptionStatus = "rejected"
)

// ProfessionalType is the role category an applicant registers for. The
// approved inscription promotes the platform user to this role.
type ProfessionalType string

const (
	ProfessionalTypeFotografo  ProfessionalType = "fotografo"
	ProfessionalTypeVideomaker ProfessionalType = "videomaker"
	ProfessionalTypeEditor     ProfessionalType = "editor"
)
