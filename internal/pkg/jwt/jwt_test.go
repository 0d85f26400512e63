package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestAuthenticate(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	valid, err := GenerateToken("a@b.com", secret, 24*time.Hour, now)
	require.NoError(t, err)
	expired, err := GenerateToken("a@b.com", secret, time.Hour, now.Add(-2*time.Hour))
	require.NoError(t, err)
	forged, err := GenerateToken("a@b.com", []byte("other"), 24*time.Hour, now)
	require.NoError(t, err)
	forgedExpired, err := GenerateToken("a@b.com", []byte("other"), time.Hour, now.Add(-2*time.Hour))
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		want    Identity
		wantErr error
	}{
		{name: "missing header is anonymous", header: "", want: Identity{}},
		{name: "valid", header: "Bearer " + valid, want: Identity{Email: "a@b.com", Authenticated: true}},
		{name: "no scheme", header: valid, wantErr: ErrMalformedHeader},
		{name: "wrong scheme", header: "Basic " + valid, wantErr: ErrMalformedHeader},
		{name: "extra parts", header: "Bearer " + valid + " x", wantErr: ErrMalformedHeader},
		{name: "empty token", header: "Bearer ", wantErr: ErrMalformedHeader},
		{name: "garbage token", header: "Bearer abc.def.ghi", wantErr: ErrInvalidToken},
		{name: "wrong secret", header: "Bearer " + forged, wantErr: ErrInvalidToken},
		{name: "expired", header: "Bearer " + expired, wantErr: ErrExpiredToken},
		{name: "expired and forged", header: "Bearer " + forgedExpired, wantErr: ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Authenticate(tt.header, secret, now)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.False(t, got.Authenticated)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestAuthenticateExpiresAtBoundary(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	token, err := GenerateToken("a@b.com", secret, time.Hour, now)
	require.NoError(t, err)

	_, err = Authenticate("Bearer "+token, secret, now.Add(time.Hour-time.Second))
	require.NoError(t, err)
	_, err = Authenticate("Bearer "+token, secret, now.Add(time.Hour))
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestAuthenticateRejectsOtherAlgorithms(t *testing.T) {
	now := time.Now()
	claims := Claims{
		Email: "a@b.com",
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS512, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = Authenticate("Bearer "+token, secret, now)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateTokenEmbedsExpiry(t *testing.T) {
	now := time.Unix(1700000000, 0)
	token, err := GenerateToken("a@b.com", secret, 24*time.Hour, now)
	require.NoError(t, err)
	claims, err := ParseToken(token, secret)
	require.NoError(t, err)
	require.Equal(t, "a@b.com", claims.Email)
	require.Equal(t, now.Unix()+86400, claims.ExpiresAt.Unix())
}
