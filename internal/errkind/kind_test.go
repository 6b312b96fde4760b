package errkind

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	assert.Equal(t, "permission denied", PermissionDenied.String())
	assert.Equal(t, "upload error", UploadError.String())
	assert.Equal(t, "unknown", Kind(999).String())
}

func TestFatal(t *testing.T) {
	assert.False(t, None.Fatal())
	assert.False(t, UnknownIdentifier.Fatal())
	assert.True(t, TransactionReverted.Fatal())
	assert.True(t, PermissionDenied.Fatal())
}
