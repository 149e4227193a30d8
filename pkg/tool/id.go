package tool

import (
	"strings"

	"github.com/google/uuid"
)

func GenerateUUIDV7() string {
	return uuid.Must(uuid.NewV7()).String()
}

// inscriptionNamespace scopes deterministic inscription ids.
var inscriptionNamespace = uuid.MustParse("9f2c1b6e-41d3-4a78-b3f1-6d0c52e8a917")

// InscriptionIDForEmail derives a stable id from the normalized applicant
// email. The primary-key insert is then the atomic uniqueness gate: two
// concurrent submissions for the same email collide on the same id instead of
// racing a read-then-write check.
func InscriptionIDForEmail(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return uuid.NewSHA1(inscriptionNamespace, []byte(normalized)).String()
}
