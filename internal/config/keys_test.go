package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key      string
		wantEnv  string
		wantFlag string
	}{
		{KeyAPIKey, "PROWL_API_KEY", "api-key"},
		{KeyProviderKey, "PROWL_PROVIDER_KEY", "provider-key"},
		{KeyApplication, "PROWL_APPLICATION", "application"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()

			assert.True(t, IsValidKey(tt.key))
			assert.Equal(t, tt.wantEnv, EnvVar(tt.key))
			assert.Equal(t, tt.wantFlag, FlagName(tt.key))
			assert.Equal(t, tt.key, keyForEnvVar(tt.wantEnv))
		})
	}
}

func TestIsValidKey_Rejects(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"", "apikey", "API_KEY", "token", "debug"} {
		assert.False(t, IsValidKey(key), key)
	}
	assert.Empty(t, keyForEnvVar("PROWL_LIVE_TEST"))
}
