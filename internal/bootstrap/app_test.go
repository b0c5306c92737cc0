package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artifai/internal/config"
	"artifai/internal/logging"
	"artifai/internal/pkg/jwtutil"
)

func testConfig(env, secret string) *config.Config {
	cfg := config.Default()
	cfg.App.Env = env
	cfg.Auth.SessionSecret = secret
	cfg.Database.URL = "sqlite://:memory:"
	cfg.Image.Provider = "fake"
	return cfg
}

func TestEnsureSessionSecret(t *testing.T) {
	cases := []struct {
		name    string
		env     string
		secret  string
		wantErr bool
		keep    bool
	}{
		{name: "production without secret", env: "production", secret: "", wantErr: true},
		{name: "production with placeholder", env: "production", secret: "change-me-in-production", wantErr: true},
		{name: "production with real secret", env: "production", secret: "s3cr3t-from-vault", keep: true},
		{name: "dev without secret", env: "dev", secret: ""},
		{name: "test with placeholder", env: "test", secret: "change-me-in-production"},
		{name: "dev with real secret", env: "dev", secret: "s3cr3t-from-vault", keep: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig(tc.env, tc.secret)
			err := ensureSessionSecret(cfg, logging.Nop)
			if tc.wantErr {
				assert.ErrorContains(t, err, "SESSION_SECRET")
				return
			}
			require.NoError(t, err)
			if tc.keep {
				assert.Equal(t, tc.secret, cfg.Auth.SessionSecret)
				return
			}
			assert.False(t, weakSessionSecrets[cfg.Auth.SessionSecret])
			assert.GreaterOrEqual(t, len(cfg.Auth.SessionSecret), 32)
		})
	}
}

func TestEnsureSessionSecret_RandomPerProcess(t *testing.T) {
	a := testConfig("dev", "")
	b := testConfig("dev", "")
	require.NoError(t, ensureSessionSecret(a, logging.Nop))
	require.NoError(t, ensureSessionSecret(b, logging.Nop))
	assert.NotEqual(t, a.Auth.SessionSecret, b.Auth.SessionSecret)
}

func TestNew_RefusesPlaceholderSecretOutsideDev(t *testing.T) {
	app, err := New(context.Background(), testConfig("production", ""), logging.Nop)
	assert.Error(t, err)
	assert.Nil(t, app)
}

func TestNew_DefaultConfigCannotBeForged(t *testing.T) {
	app, err := New(context.Background(), testConfig("dev", ""), logging.Nop)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.Equal(t, "SQLite", app.DatabaseBackend)
	assert.Nil(t, app.Redis)
	assert.Nil(t, app.MQConn)

	forged, _, err := jwtutil.GenerateToken("change-me-in-production", time.Hour, 1, "victim")
	require.NoError(t, err)
	_, err = jwtutil.ParseToken(app.Config.Auth.SessionSecret, forged)
	assert.Error(t, err)
}
