package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aidesk/saas-backend/internal/model"
	"github.com/aidesk/saas-backend/internal/utils"
)

const (
	accessSecret  = "access-secret"
	refreshSecret = "refresh-secret"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	raw, err := utils.NewAccessToken(accessSecret, "64f0c3e2a5b9d8e7f6a5b4c3", model.RoleAdmin, 15*time.Minute)
	require.NoError(t, err)

	claims, err := utils.VerifyAccessToken(accessSecret, raw)
	require.NoError(t, err)
	require.Equal(t, "64f0c3e2a5b9d8e7f6a5b4c3", claims.UserID)
	require.Equal(t, string(model.RoleAdmin), claims.Role)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	raw, err := utils.NewRefreshToken(refreshSecret, "64f0c3e2a5b9d8e7f6a5b4c3", 7*24*time.Hour)
	require.NoError(t, err)

	claims, err := utils.VerifyRefreshToken(refreshSecret, raw)
	require.NoError(t, err)
	require.Equal(t, "64f0c3e2a5b9d8e7f6a5b4c3", claims.UserID)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	raw, err := utils.NewAccessToken(accessSecret, "u1", model.RoleBusiness, time.Minute)
	require.NoError(t, err)

	_, err = utils.VerifyAccessToken("some-other-secret", raw)
	require.ErrorIs(t, err, utils.ErrInvalidToken)

	// Access tokens must not verify against the refresh secret either.
	_, err = utils.VerifyRefreshToken(refreshSecret, raw)
	require.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	raw, err := utils.NewRefreshToken(refreshSecret, "u1", time.Minute)
	require.NoError(t, err)

	_, err = utils.VerifyRefreshToken(refreshSecret, raw+"x")
	require.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	raw, err := utils.NewAccessToken(accessSecret, "u1", model.RoleAdmin, -time.Minute)
	require.NoError(t, err)

	_, err = utils.VerifyAccessToken(accessSecret, raw)
	require.ErrorIs(t, err, utils.ErrInvalidToken)
}
