package scout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/dhi-eol/internal/model"
)

// TestCredentialsFromEnv verifies that both environment variables are
// required and that missing credentials carry the general error exit code.
func TestCredentialsFromEnv(t *testing.T) {
	t.Run("both set", func(t *testing.T) {
		t.Setenv(EnvUsername, "alice")
		t.Setenv(EnvPAT, "dckr_pat_xyz")

		creds, err := CredentialsFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "alice", creds.Username)
		assert.Equal(t, "dckr_pat_xyz", creds.PAT)
	})

	t.Run("missing PAT", func(t *testing.T) {
		t.Setenv(EnvUsername, "alice")
		t.Setenv(EnvPAT, "")

		_, err := CredentialsFromEnv()
		require.Error(t, err)

		var cliErr *model.CLIError
		require.ErrorAs(t, err, &cliErr)
		assert.Equal(t, model.ExitGeneralError, cliErr.Code)
		assert.Contains(t, cliErr.Message, EnvPAT)
	})

	t.Run("missing username", func(t *testing.T) {
		t.Setenv(EnvUsername, "")
		t.Setenv(EnvPAT, "dckr_pat_xyz")

		_, err := CredentialsFromEnv()
		require.Error(t, err)
	})
}

// TestExchangeToken verifies the token exchange against a local HTTP
// server: request shape, both token response keys, and the failure modes
// that must terminate the remote-lookup path.
func TestExchangeToken(t *testing.T) {
	creds := Credentials{Username: "alice", PAT: "dckr_pat_xyz"}

	t.Run("token key", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// The exchange is a JSON POST with the credentials as
			// identifier/secret.
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "alice", body["identifier"])
			assert.Equal(t, "dckr_pat_xyz", body["secret"])

			_ = json.NewEncoder(w).Encode(map[string]string{"token": "jwt-123"})
		}))
		defer srv.Close()

		token, err := ExchangeToken(context.Background(), srv.URL, creds)
		require.NoError(t, err)
		assert.Equal(t, "jwt-123", token)
	})

	t.Run("access_token key", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "jwt-456"})
		}))
		defer srv.Close()

		token, err := ExchangeToken(context.Background(), srv.URL, creds)
		require.NoError(t, err)
		assert.Equal(t, "jwt-456", token)
	})

	t.Run("non-2xx status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad credentials", http.StatusUnauthorized)
		}))
		defer srv.Close()

		_, err := ExchangeToken(context.Background(), srv.URL, creds)
		require.Error(t, err)

		var cliErr *model.CLIError
		require.ErrorAs(t, err, &cliErr)
		assert.Equal(t, model.ExitGeneralError, cliErr.Code)
		assert.Contains(t, cliErr.Message, "401")
	})

	t.Run("success without a token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "ok"})
		}))
		defer srv.Close()

		_, err := ExchangeToken(context.Background(), srv.URL, creds)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no token")
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		// A server that is already closed produces a connection error.
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		_, err := ExchangeToken(context.Background(), srv.URL, creds)
		require.Error(t, err)
	})
}
