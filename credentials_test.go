package dash2pdf

// Notes:
// - ResolveCredentials takes a lookup function, so tests inject maps and
//   stay parallel instead of mutating the process environment.
// - Presence of PDF_DOWNLOAD_USER decides the source; values are not merged.

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func lookupFrom(vars map[string]string) LookupFunc {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

// ---------------------------------------------------------------------------
// TestResolveCredentials - Env override replaces the static pair
// ---------------------------------------------------------------------------

func TestResolveCredentials(t *testing.T) {
	t.Parallel()

	static := Credentials{Username: "config-user", Password: "config-pass"}

	tests := []struct {
		name   string
		lookup LookupFunc
		want   Credentials
	}{
		{"nil lookup", nil, static},
		{"no env", lookupFrom(nil), static},
		{"env pair", lookupFrom(map[string]string{EnvDownloadUser: "u", EnvDownloadPass: "p"}), Credentials{Username: "u", Password: "p"}},
		{"env user only", lookupFrom(map[string]string{EnvDownloadUser: "u"}), Credentials{Username: "u"}},
		{"env password only is ignored", lookupFrom(map[string]string{EnvDownloadPass: "p"}), static},
		{"empty env user still overrides", lookupFrom(map[string]string{EnvDownloadUser: ""}), Credentials{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ResolveCredentials(static, tt.lookup))
		})
	}
}

// ---------------------------------------------------------------------------
// TestCredentials_Redaction - Passwords never reach logs
// ---------------------------------------------------------------------------

func TestCredentials_Redaction(t *testing.T) {
	t.Parallel()

	c := Credentials{Username: "reporter", Password: "hunter2"}

	assert.Equal(t, "reporter:[redacted]", c.String())

	core, logs := observer.New(zap.InfoLevel)
	zap.New(core).Info("login", zap.Object("credentials", c))

	entry := logs.All()[0]
	fields := entry.ContextMap()["credentials"].(map[string]any)
	assert.Equal(t, "reporter", fields["username"])
	assert.Equal(t, true, fields["password_set"])
	for k, v := range fields {
		if s, ok := v.(string); ok {
			assert.False(t, strings.Contains(s, "hunter2"), "field %s leaks password", k)
		}
	}
}
