package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projecthub/internal/model"
)

func newTestJWTService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService("test-secret", "HS256", time.Hour, 24*time.Hour)
	require.NoError(t, err)
	return svc
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestJWTService(t)

	token, err := svc.Issue(42, model.RoleManager)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, model.RoleManager, claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTService_RejectsTamperedToken(t *testing.T) {
	svc := newTestJWTService(t)
	token, err := svc.Issue(1, model.RoleUser)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	svc := newTestJWTService(t)
	other, err := NewJWTService("other-secret", "HS256", time.Hour, time.Hour)
	require.NoError(t, err)

	token, err := other.Issue(1, model.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := newTestJWTService(t)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.Issue(7, model.RoleUser)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsMissingUserID(t *testing.T) {
	svc := newTestJWTService(t)
	claims := jwt.MapClaims{
		"role": "admin",
		"typ":  "access",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsOtherAlgorithm(t *testing.T) {
	svc := newTestJWTService(t)
	claims := &Claims{
		UserID:    1,
		Role:      model.RoleAdmin,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_TokenTypesAreNotInterchangeable(t *testing.T) {
	svc := newTestJWTService(t)

	access, err := svc.Issue(3, model.RoleUser)
	require.NoError(t, err)
	_, refresh, err := svc.IssueRefresh(3, model.RoleUser)
	require.NoError(t, err)

	_, err = svc.VerifyRefresh(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.Verify(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims, err := svc.VerifyRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, uint(3), claims.UserID)
}

func TestNewJWTService_Validation(t *testing.T) {
	_, err := NewJWTService("", "HS256", time.Hour, time.Hour)
	assert.Error(t, err)

	_, err = NewJWTService("secret", "RS256", time.Hour, time.Hour)
	assert.Error(t, err)

	_, err = NewJWTService("secret", "none", time.Hour, time.Hour)
	assert.Error(t, err)
}
