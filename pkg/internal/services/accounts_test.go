package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitsphere/coaching/pkg/internal/models"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	viper.Set("security.jwt_secret", "test-secret")
	viper.Set("security.token_duration", "1h")
	defer viper.Set("security.jwt_secret", "")

	account := models.Account{
		BaseModel: models.BaseModel{ID: 42},
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "alice@example.com",
		Role:      models.RoleAdmin,
	}

	token, err := EncodeAccessToken(account)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	decoded, err := DecodeAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), decoded.ID)
	assert.Equal(t, "Alice", decoded.FirstName)
	assert.Equal(t, "alice@example.com", decoded.Email)
	assert.Equal(t, models.RoleAdmin, decoded.Role)
}

func TestDecodeAccessTokenRejectsTampering(t *testing.T) {
	viper.Set("security.jwt_secret", "test-secret")

	token, err := EncodeAccessToken(models.Account{BaseModel: models.BaseModel{ID: 1}})
	require.NoError(t, err)

	viper.Set("security.jwt_secret", "different-secret")
	_, err = DecodeAccessToken(token)
	assert.Error(t, err)

	viper.Set("security.jwt_secret", "test-secret")
	_, err = DecodeAccessToken(token + "x")
	assert.Error(t, err)
}

func TestTokenDurationDefault(t *testing.T) {
	viper.Set("security.jwt_secret", "test-secret")
	viper.Set("security.token_duration", "")

	token, err := EncodeAccessToken(models.Account{BaseModel: models.BaseModel{ID: 1}})
	require.NoError(t, err)

	var claims AccessClaims
	_, err = jwt.ParseWithClaims(token, &claims, func(tk *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	remaining := time.Until(claims.ExpiresAt.Time)
	assert.InDelta(t, time.Hour.Seconds(), remaining.Seconds(), 60)
}

func TestCanManage(t *testing.T) {
	admin := models.Account{BaseModel: models.BaseModel{ID: 1}, Role: models.RoleAdmin}
	owner := models.Account{BaseModel: models.BaseModel{ID: 2}, Role: models.RoleUser}
	other := models.Account{BaseModel: models.BaseModel{ID: 3}, Role: models.RoleUser}
	guest := models.GuestAccount()

	assert.True(t, CanManage(admin, 2), "admins manage anyone's records")
	assert.True(t, CanManage(owner, 2))
	assert.False(t, CanManage(other, 2))
	assert.False(t, CanManage(guest, 0), "the guest sentinel owns nothing")
}

func TestGuestAccount(t *testing.T) {
	guest := models.GuestAccount()
	assert.Zero(t, guest.ID)
	assert.Equal(t, models.RoleUser, guest.Role)
	assert.False(t, guest.IsAdmin())
}
