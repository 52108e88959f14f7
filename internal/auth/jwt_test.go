package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestManager() *JWTManager {
	return NewJWTManager("test-secret", time.Hour, "eventbook")
}

func TestGenerateAndValidate(t *testing.T) {
	manager := newTestManager()

	token, err := manager.Generate("account-1", "keesun@email.com", []string{"USER"})
	require.NoError(t, err)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "account-1", claims.Subject)
	require.Equal(t, "keesun@email.com", claims.Email)
	require.Equal(t, []string{"USER"}, claims.Roles)
	require.Equal(t, "eventbook", claims.Issuer)
}

func TestGenerateRequiresSubject(t *testing.T) {
	manager := newTestManager()

	_, err := manager.Generate("", "keesun@email.com", nil)

	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsEmptyToken(t *testing.T) {
	manager := newTestManager()

	_, err := manager.Validate("   ")

	require.ErrorIs(t, err, ErrMissingToken)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := newTestManager().Generate("account-1", "", nil)
	require.NoError(t, err)

	other := NewJWTManager("other-secret", time.Hour, "eventbook")
	_, err = other.Validate(token)

	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute, "eventbook")
	token, err := manager.Generate("account-1", "", nil)
	require.NoError(t, err)

	_, err = manager.Validate(token)

	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenFromHeader(t *testing.T) {
	token, err := TokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", token)

	token, err = TokenFromHeader("bearer abc.def.ghi")
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", token)

	_, err = TokenFromHeader("")
	require.ErrorIs(t, err, ErrMissingToken)

	_, err = TokenFromHeader("Basic abc")
	require.ErrorIs(t, err, ErrMissingToken)
}
