package config

import (
	"errors"
	"testing"

	apperrors "github.com/darkkaiser/prowl-cli/internal/pkg/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	cfg Config
	err error
}

func (l stubLoader) Path() string           { return "/stub/config.json" }
func (l stubLoader) Load() (Config, error) { return l.cfg, l.err }

// clearEnv 테스트 중 실제 사용자 환경 변수가 결과에 영향을 주지 않도록 비웁니다.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range Keys {
		t.Setenv(EnvVar(key), "")
	}
}

func TestResolve_Precedence(t *testing.T) {
	type source struct {
		file, env, explicit string
	}

	tests := []struct {
		name   string
		source source
		want   string
	}{
		{"모두 없음", source{}, ""},
		{"파일만", source{file: "file"}, "file"},
		{"환경 변수가 파일보다 우선", source{file: "file", env: "env"}, "env"},
		{"명시 값이 환경 변수보다 우선", source{file: "file", env: "env", explicit: "flag"}, "flag"},
		{"명시 값이 파일보다 우선", source{file: "file", explicit: "flag"}, "flag"},
		{"환경 변수만", source{env: "env"}, "env"},
	}

	for _, key := range Keys {
		for _, tt := range tests {
			t.Run(key+"/"+tt.name, func(t *testing.T) {
				clearEnv(t)

				var fileCfg, explicit Config
				fileCfg.Set(key, tt.source.file)
				explicit.Set(key, tt.source.explicit)
				if tt.source.env != "" {
					t.Setenv(EnvVar(key), tt.source.env)
				}

				resolved, err := Resolve(stubLoader{cfg: fileCfg}, explicit)
				require.NoError(t, err)

				got := map[string]string{
					KeyAPIKey:      resolved.APIKey,
					KeyProviderKey: resolved.ProviderKey,
					KeyApplication: resolved.Application,
				}[key]

				want := tt.want
				if want == "" && key == KeyApplication {
					want = DefaultApplication
				}
				assert.Equal(t, want, got)
			})
		}
	}
}

func TestResolve_MixedSources(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvVar(KeyProviderKey), "env-provider")

	resolved, err := Resolve(
		stubLoader{cfg: Config{APIKey: "file-key", ProviderKey: "file-provider", Application: "file-app"}},
		Config{Application: "flag-app"},
	)
	require.NoError(t, err)

	want := &ResolvedConfig{
		APIKey:      "file-key",
		ProviderKey: "env-provider",
		Application: "flag-app",
	}
	if diff := cmp.Diff(want, resolved); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_DefaultApplicationOnly(t *testing.T) {
	clearEnv(t)

	resolved, err := Resolve(stubLoader{}, Config{})
	require.NoError(t, err)
	assert.Equal(t, &ResolvedConfig{Application: DefaultApplication}, resolved)
}

func TestResolve_CorruptFileFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvVar(KeyAPIKey), "env-key")

	loadErr := apperrors.New(apperrors.Config, "Config file error: Failed to parse config file")
	resolved, err := Resolve(stubLoader{cfg: Config{APIKey: "ignored"}, err: loadErr}, Config{ProviderKey: "flag-pk"})
	require.NoError(t, err)

	assert.Equal(t, "env-key", resolved.APIKey)
	assert.Equal(t, "flag-pk", resolved.ProviderKey)
	assert.Equal(t, DefaultApplication, resolved.Application)
}

func TestResolve_CorruptFileOnDisk(t *testing.T) {
	clearEnv(t)

	s := newTempStore(t)
	writeConfigFile(t, s, `{{{ definitely not json`)

	resolved, err := Resolve(s, Config{APIKey: "flag-key"})
	require.NoError(t, err)
	assert.Equal(t, "flag-key", resolved.APIKey)
	assert.Equal(t, DefaultApplication, resolved.Application)
}

func TestResolve_FileWithUnknownKeys(t *testing.T) {
	clearEnv(t)

	s := newTempStore(t)
	writeConfigFile(t, s, `{"api_key": "abcdef123456", "note": "work phone"}`)

	resolved, err := Resolve(s, Config{})
	require.NoError(t, err)
	assert.Equal(t, "abcdef123456", resolved.APIKey)
	assert.Equal(t, DefaultApplication, resolved.Application)
}

func TestResolve_NilLoader(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvVar(KeyApplication), "from-env")

	resolved, err := Resolve(nil, Config{})
	require.NoError(t, err)
	assert.Equal(t, "from-env", resolved.Application)
}

func TestResolve_IgnoresUnrelatedPrefixedEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROWL_SOMETHING_ELSE", "x")

	_, err := Resolve(stubLoader{}, Config{})
	require.NoError(t, err)
}

func TestResolvedConfig_Require(t *testing.T) {
	t.Parallel()

	empty := &ResolvedConfig{Application: DefaultApplication}

	_, err := empty.RequireAPIKey()
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
	assert.True(t, apperrors.Is(err, apperrors.Unauthorized))
	assert.Equal(t, "No API key provided. Set via --api-key, PROWL_API_KEY env var, or config file", err.Error())

	_, err = empty.RequireProviderKey()
	assert.True(t, errors.Is(err, ErrMissingProviderKey))
	assert.Equal(t, "No provider key provided. Set via --provider-key or PROWL_PROVIDER_KEY env var", err.Error())

	full := &ResolvedConfig{APIKey: "k", ProviderKey: "p", Application: "a"}
	key, err := full.RequireAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "k", key)

	pk, err := full.RequireProviderKey()
	require.NoError(t, err)
	assert.Equal(t, "p", pk)
}
