// Package scout implements the Docker Scout catalog lookup for the
// dhi-eol CLI.
//
// This package handles:
//   - Exchanging a Docker Hub username + personal access token (PAT)
//     for a short-lived JWT
//   - Querying the Scout GraphQL API for a DHI repository's tag
//     definitions and for the full DHI catalog listing
//   - Selecting the tag definition that best matches a detected version
//
// Credentials come from the DOCKER_USERNAME and DOCKER_PAT environment
// variables. Missing credentials are the one condition under which the
// CLI terminates with a non-zero exit code.
package scout
