package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danuartha/delivery-app/models"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(42, models.RoleDelivery)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, models.RoleDelivery, claims.Role)
	assert.Equal(t, "delivery-app", claims.Issuer)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token")
	assert.Error(t, err)

	_, err = ParseToken("")
	assert.Error(t, err)
}

func TestParseTokenRejectsTampering(t *testing.T) {
	token, err := GenerateToken(1, models.RoleClient)
	assert.NoError(t, err)

	// Rusak signature-nya
	parts := strings.Split(token, ".")
	assert.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]

	_, err = ParseToken(tampered)
	assert.Error(t, err)
}
