package tool

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGenerateUUIDV7(t *testing.T) {
	a := GenerateUUIDV7()
	b := GenerateUUIDV7()
	assert.NotEqual(t, a, b)
	assert.NoError(t, uuid.Validate(a))
}

func TestInscriptionIDForEmail(t *testing.T) {
	base := InscriptionIDForEmail("ana@x.com")
	assert.NoError(t, uuid.Validate(base))

	// Case and surrounding whitespace normalize to the same id.
	assert.Equal(t, base, InscriptionIDForEmail("Ana@X.com"))
	assert.Equal(t, base, InscriptionIDForEmail("  ana@x.com "))

	assert.NotEqual(t, base, InscriptionIDForEmail("bia@x.com"))
}
