package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignerSignAndVerify(t *testing.T) {
	signer := NewSigner("secret", time.Hour)
	token, expiresAt, err := signer.Sign("surat", "42")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())

	resource, id, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "surat", resource)
	assert.Equal(t, "42", id)
}

func TestSignerRejectsTamperedAndExpired(t *testing.T) {
	signer := NewSigner("secret", time.Minute)
	token, _, err := signer.Sign("arsip", "7")
	require.NoError(t, err)

	_, _, err = NewSigner("other", time.Minute).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidLink)

	_, _, err = signer.Verify("garbage")
	assert.ErrorIs(t, err, ErrInvalidLink)

	signer.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, _, err = signer.Verify(token)
	assert.ErrorIs(t, err, ErrLinkExpired)
}

func TestSignerRequiresSecretAndTarget(t *testing.T) {
	_, _, err := NewSigner("", time.Minute).Sign("surat", "1")
	assert.Error(t, err)
	_, _, err = NewSigner("secret", time.Minute).Sign("", "1")
	assert.Error(t, err)
}
