package helpers_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gocommerce/shop-api/pkg/helpers"
)

func TestJWT_GenerateParseRoundtrip(t *testing.T) {
	m := helpers.NewJWTManager("secret", time.Hour)

	token, exp, err := m.Generate("user-1")
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestJWT_WrongSecretRejected(t *testing.T) {
	m := helpers.NewJWTManager("secret", time.Hour)
	other := helpers.NewJWTManager("other", time.Hour)

	token, _, err := m.Generate("user-1")
	assert.NoError(t, err)

	_, err = other.Parse(token)
	assert.ErrorIs(t, err, helpers.ErrInvalidToken)
}

func TestJWT_ExpiredRejected(t *testing.T) {
	m := helpers.NewJWTManager("secret", -time.Minute)

	token, _, err := m.Generate("user-1")
	assert.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, helpers.ErrInvalidToken)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "jane-doe", helpers.Slugify("Jane Doe"))
	assert.Equal(t, "usb-c-hub-7-in-1", helpers.Slugify("  USB-C Hub (7-in-1)! "))
	assert.Equal(t, "", helpers.Slugify("!!!"))
}

func TestResetCode(t *testing.T) {
	code, err := helpers.GenResetCode()
	assert.NoError(t, err)
	assert.Len(t, code, 6)

	digest := helpers.HashResetCode(code)
	assert.Len(t, digest, 64)
	assert.NotEqual(t, code, digest)
	assert.Equal(t, digest, helpers.HashResetCode(code))
}
