package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Issue(Principal{Kind: PrincipalUser, ID: 42})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	principal, err := svc.Verify(token)
	require.NoError(t, err)
	require.Equal(t, PrincipalUser, principal.Kind)
	require.Equal(t, uint64(42), principal.ID)
}

func TestTokenService_VerifyCompanyToken(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Issue(Principal{Kind: PrincipalCompany, ID: 7})
	require.NoError(t, err)

	principal, err := svc.Verify(token)
	require.NoError(t, err)
	require.True(t, principal.IsCompany())
	require.False(t, principal.IsUser())
	require.Equal(t, uint64(7), principal.ID)
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	other := NewTokenService("another-secret", time.Hour)

	token, err := svc.Issue(Principal{Kind: PrincipalUser, ID: 1})
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	_, err := svc.Verify("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Verify("")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Issue(Principal{Kind: PrincipalUser, ID: 1})
	require.NoError(t, err)

	_, err = svc.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
