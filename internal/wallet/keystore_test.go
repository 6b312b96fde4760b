package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormaliseHexKey(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"plain", "abcd1234", "abcd1234"},
		{"0x prefix", "0xabcd1234", "abcd1234"},
		{"0X prefix", "0Xabcd1234", "abcd1234"},
		{"whitespace", "  abcd1234\n", "abcd1234"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normaliseHexKey(tt.in))
		})
	}
}

func TestRetrieveEnvOverride(t *testing.T) {
	t.Setenv(EnvKey, "0xdeadbeef")

	// The env var wins even when the keyring would fail.
	ks := &Keystore{}
	got, err := ks.Retrieve("motormint.anything")
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", got)
}

func TestRetrieveNoRing(t *testing.T) {
	t.Setenv(EnvKey, "")
	ks := &Keystore{}
	_, err := ks.Retrieve("motormint.main")
	assert.Error(t, err)
}
