package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	iss, err := NewIssuer("s3cret", 15*time.Minute)
	require.NoError(t, err)

	token, err := iss.Issue("learner-42")
	require.NoError(t, err)

	userID, err := iss.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "learner-42", userID)
}

func TestParse_Rejects(t *testing.T) {
	iss, err := NewIssuer("s3cret", time.Minute)
	require.NoError(t, err)
	other, err := NewIssuer("different", time.Minute)
	require.NoError(t, err)

	foreign, err := other.Issue("u1")
	require.NoError(t, err)

	expiredIssuer, err := NewIssuer("s3cret", time.Minute)
	require.NoError(t, err)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, err := expiredIssuer.Issue("u1")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "u1",
		Issuer:    issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "u1",
		Issuer:  issuer,
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	tests := map[string]string{
		"empty":          "",
		"garbage":        "not.a.token",
		"wrong secret":   foreign,
		"expired":        expired,
		"alg none":       none,
		"missing expiry": noExpiry,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := iss.Parse(token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidToken), "err = %v", err)
		})
	}
}

func TestNewIssuer_Validation(t *testing.T) {
	_, err := NewIssuer("", time.Minute)
	assert.Error(t, err)
	_, err = NewIssuer("x", 0)
	assert.Error(t, err)
}

func TestIssue_EmptyUser(t *testing.T) {
	iss, err := NewIssuer("s3cret", time.Minute)
	require.NoError(t, err)
	_, err = iss.Issue("  ")
	assert.Error(t, err)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"  Bearer   abc  ", "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := BearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, "header %q", tt.header)
		assert.Equal(t, tt.want, got, "header %q", tt.header)
	}
}
