package service

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptSecret(t *testing.T) {
	key := sha256.Sum256([]byte("vault-master-key"))

	ciphertext, err := encryptSecret(key[:], "s3cr3t-value")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cr3t-value", ciphertext)

	plaintext, err := decryptSecret(key[:], ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t-value", plaintext)
}

func TestEncryptSecretNonceUnique(t *testing.T) {
	key := sha256.Sum256([]byte("vault-master-key"))

	a, err := encryptSecret(key[:], "same")
	require.NoError(t, err)
	b, err := encryptSecret(key[:], "same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDecryptSecretWrongKey(t *testing.T) {
	key := sha256.Sum256([]byte("vault-master-key"))
	other := sha256.Sum256([]byte("another-key"))

	ciphertext, err := encryptSecret(key[:], "value")
	require.NoError(t, err)

	_, err = decryptSecret(other[:], ciphertext)
	assert.Error(t, err)
}

func TestDecryptSecretGarbage(t *testing.T) {
	key := sha256.Sum256([]byte("vault-master-key"))

	_, err := decryptSecret(key[:], "not-base64!!")
	assert.Error(t, err)

	_, err = decryptSecret(key[:], "c2hvcnQ=")
	assert.Error(t, err)
}
