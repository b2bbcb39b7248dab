package scout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/shinji-kodama/dhi-eol/internal/model"
)

// Default service endpoints. Both can be overridden via the config file,
// which is how the tests point the client at local fixtures.
const (
	// DefaultAuthURL is the Docker Hub token endpoint that exchanges a
	// username + PAT pair for a short-lived JWT.
	DefaultAuthURL = "https://hub.docker.com/v2/auth/token"

	// DefaultGraphQLURL is the Docker Scout GraphQL API endpoint.
	DefaultGraphQLURL = "https://api.scout.docker.com/v1/graphql"
)

// Environment variable names for the Docker Hub credentials.
const (
	EnvUsername = "DOCKER_USERNAME"
	EnvPAT      = "DOCKER_PAT"
)

// authTimeout bounds the token exchange request.
const authTimeout = 30 * time.Second

// Credentials is a Docker Hub username + personal access token pair.
type Credentials struct {
	Username string
	PAT      string
}

// CredentialsFromEnv reads the Docker Hub credentials from the
// DOCKER_USERNAME and DOCKER_PAT environment variables.
//
// Returns a CLIError with ExitGeneralError when either variable is unset
// or empty — per the CLI contract, missing credentials are fatal for the
// remote-lookup path.
func CredentialsFromEnv() (Credentials, error) {
	username := os.Getenv(EnvUsername)
	pat := os.Getenv(EnvPAT)

	if username == "" || pat == "" {
		return Credentials{}, model.NewCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("%s and %s environment variables must be set", EnvUsername, EnvPAT),
		)
	}

	return Credentials{Username: username, PAT: pat}, nil
}

// tokenRequest is the JSON body of the Docker Hub token exchange.
type tokenRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

// tokenResponse is the JSON body returned by the token endpoint. Docker Hub
// has returned the JWT under both "token" and "access_token" over time, so
// both keys are accepted.
type tokenResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
}

// ExchangeToken exchanges the given credentials for a JWT at the Docker Hub
// token endpoint.
//
// Any failure — network error, non-2xx status, or a success response without
// a token — is an unrecoverable authentication failure and is returned as a
// CLIError with ExitGeneralError, terminating the remote-lookup path.
func ExchangeToken(ctx context.Context, authURL string, creds Credentials) (string, error) {
	body, err := json.Marshal(tokenRequest{
		Identifier: creds.Username,
		Secret:     creds.PAT,
	})
	if err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError, "failed to encode auth request", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, authURL, bytes.NewReader(body))
	if err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError, "failed to build auth request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError, "authentication failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain the body so the connection can be reused; the content is
		// not included in the error to keep credentials-adjacent server
		// responses out of logs.
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", model.NewCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("authentication failed: %s returned status %d", authURL, resp.StatusCode),
		)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError, "failed to decode auth response", err)
	}

	token := tr.Token
	if token == "" {
		token = tr.AccessToken
	}
	if token == "" {
		return "", model.NewCLIError(
			model.ExitGeneralError,
			"authentication succeeded but no token was returned",
		)
	}

	log.Debug().Str("username", creds.Username).Msg("docker hub token exchange succeeded")
	return token, nil
}
