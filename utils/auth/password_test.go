package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerifyPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)

	require.NoError(t, VerifyPassword(hash, "s3cret-password"))
	require.ErrorIs(t, VerifyPassword(hash, "wrong"), ErrPasswordMismatch)
}
